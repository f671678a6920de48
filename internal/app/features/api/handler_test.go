package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/shelfhub/internal/app/catalog"
	"github.com/dalemusser/shelfhub/internal/app/features/api"
	categorystore "github.com/dalemusser/shelfhub/internal/app/store/categories"
	itemstore "github.com/dalemusser/shelfhub/internal/app/store/items"
	"github.com/dalemusser/shelfhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*api.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := catalog.NewService(itemstore.New(db), categorystore.New(db), zap.NewNop())
	return api.NewHandler(svc, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestServeAllItems_EnvelopeAndOrder(t *testing.T) {
	handler, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "owner@example.com")
	cat := fx.CreateCategory(ctx, "Soccer")
	fx.CreateItem(ctx, "zebra stripes", cat.ID, owner.ID)
	fx.CreateItem(ctx, "Ball", cat.ID, owner.ID)

	req := testutil.NewRequest("GET", "/json/")
	rec := testutil.NewRecorder()

	handler.ServeAllItems(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Items []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			CategoryID string `json:"category_id"`
			OwnerID    string `json:"owner_id"`
			LastUpdate int64  `json:"last_update"`
		} `json:"Items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(body.Items))
	}
	if body.Items[0].Name != "Ball" {
		t.Errorf("items not ordered by name: first is %q", body.Items[0].Name)
	}
	if body.Items[0].CategoryID != cat.ID.Hex() {
		t.Errorf("category_id: got %q, want %q", body.Items[0].CategoryID, cat.ID.Hex())
	}
	if body.Items[0].OwnerID != owner.ID.Hex() {
		t.Errorf("owner_id: got %q, want %q", body.Items[0].OwnerID, owner.ID.Hex())
	}
	if body.Items[0].LastUpdate == 0 {
		t.Error("last_update missing from projection")
	}
}

func TestServeAllItems_EmptyCatalogIsEmptyList(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/json/")
	rec := testutil.NewRecorder()

	handler.ServeAllItems(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(body["Items"]) != "[]" {
		t.Errorf("empty catalog encoded as %s, want []", body["Items"])
	}
}

func TestServeCategoryItems_UnknownIsEmptyList(t *testing.T) {
	handler, _ := newTestHandler(t)

	unknown := "64b000000000000000000000"
	req := testutil.WithChiURLParam(
		testutil.NewRequest("GET", "/categories/"+unknown+"/json/"), "categoryID", unknown)
	rec := testutil.NewRecorder()

	handler.ServeCategoryItems(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Items []json.RawMessage `json:"Items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 0 {
		t.Errorf("unknown category returned %d items", len(body.Items))
	}
}

func TestServeCategoryItems_MalformedIDIs404(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(
		testutil.NewRequest("GET", "/categories/nope/json/"), "categoryID", "nope")
	rec := testutil.NewRecorder()

	handler.ServeCategoryItems(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeItem_FoundAndNotFound(t *testing.T) {
	handler, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "owner@example.com")
	cat := fx.CreateCategory(ctx, "Soccer")
	it := fx.CreateItem(ctx, "Ball", cat.ID, owner.ID)

	req := testutil.WithChiURLParam(
		testutil.NewRequest("GET", "/items/"+it.ID.Hex()+"/json/"), "itemID", it.ID.Hex())
	rec := testutil.NewRecorder()

	handler.ServeItem(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var view struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.ID != it.ID.Hex() || view.Name != "Ball" {
		t.Errorf("unexpected view: %+v", view)
	}

	unknown := "64b000000000000000000000"
	req2 := testutil.WithChiURLParam(
		testutil.NewRequest("GET", "/items/"+unknown+"/json/"), "itemID", unknown)
	rec2 := testutil.NewRecorder()

	handler.ServeItem(rec2, req2)

	rec2.AssertStatus(t, http.StatusNotFound)
}
