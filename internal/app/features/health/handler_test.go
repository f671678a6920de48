package health_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/shelfhub/internal/app/features/health"
	"github.com/dalemusser/shelfhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServe_ReportsConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), zap.NewNop())

	req := testutil.NewRequest("GET", "/health")
	rec := testutil.NewRecorder()

	handler.Serve(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Database != "connected" {
		t.Errorf("unexpected health body: %+v", body)
	}
}
