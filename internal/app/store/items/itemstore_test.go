package itemstore_test

import (
	"errors"
	"testing"

	itemstore "github.com/dalemusser/shelfhub/internal/app/store/items"
	"github.com/dalemusser/shelfhub/internal/domain/models"
	"github.com/dalemusser/shelfhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T) (*itemstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return itemstore.New(db), testutil.NewFixtures(t, db)
}

func TestListLatest_NewestFirstWithLimit(t *testing.T) {
	store, fx := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "owner@example.com")
	cat := fx.CreateCategory(ctx, "Soccer")

	var last models.Item
	for i, name := range []string{"first", "second", "third"} {
		it := models.Item{
			Name:       name,
			CategoryID: cat.ID,
			OwnerID:    owner.ID,
			LastUpdate: int64(1000 + i),
		}
		created, err := store.Create(ctx, it)
		if err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
		last = created
	}

	latest, err := store.ListLatest(ctx, 2)
	if err != nil {
		t.Fatalf("list latest: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("got %d items, want 2", len(latest))
	}
	if latest[0].ID != last.ID {
		t.Errorf("newest item is %q, want %q", latest[0].Name, last.Name)
	}
	if latest[0].LastUpdate < latest[1].LastUpdate {
		t.Error("latest list is not ordered newest first")
	}
}

func TestListByCategory_NameOrderAndIsolation(t *testing.T) {
	store, fx := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "owner@example.com")
	soccer := fx.CreateCategory(ctx, "Soccer")
	hockey := fx.CreateCategory(ctx, "Hockey")

	for _, name := range []string{"goggles", "Ball", "cleats"} {
		if _, err := store.Create(ctx, models.Item{
			Name: name, CategoryID: soccer.ID, OwnerID: owner.ID,
		}); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}
	if _, err := store.Create(ctx, models.Item{
		Name: "Stick", CategoryID: hockey.ID, OwnerID: owner.ID,
	}); err != nil {
		t.Fatalf("create stick: %v", err)
	}

	items, err := store.ListByCategory(ctx, soccer.ID)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}

	want := []string{"Ball", "cleats", "goggles"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestListByCategory_UnknownIsEmpty(t *testing.T) {
	store, _ := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	items, err := store.ListByCategory(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("unknown category returned %d items", len(items))
	}
}

func TestUpdate_UnknownIsNotFound(t *testing.T) {
	store, fx := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	cat := fx.CreateCategory(ctx, "Soccer")

	err := store.Update(ctx, primitive.NewObjectID(), models.Item{
		Name: "ghost", CategoryID: cat.ID, LastUpdate: 1,
	})
	if !errors.Is(err, itemstore.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDelete_UnknownIsNotFound(t *testing.T) {
	store, _ := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Delete(ctx, primitive.NewObjectID()); !errors.Is(err, itemstore.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteSeedRun_OnlyRemovesTaggedItems(t *testing.T) {
	store, fx := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "owner@example.com")
	cat := fx.CreateCategory(ctx, "Soccer")

	if _, err := store.Create(ctx, models.Item{
		Name: "seeded", CategoryID: cat.ID, OwnerID: owner.ID, SeedRun: "run-1",
	}); err != nil {
		t.Fatalf("create seeded: %v", err)
	}
	kept, err := store.Create(ctx, models.Item{
		Name: "manual", CategoryID: cat.ID, OwnerID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create manual: %v", err)
	}

	n, err := store.DeleteSeedRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("delete seed run: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d items, want 1", n)
	}
	if _, err := store.GetByID(ctx, kept.ID); err != nil {
		t.Errorf("manual item was removed: %v", err)
	}
}

func TestDeleteSeeded_RemovesAllRuns(t *testing.T) {
	store, fx := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "owner@example.com")
	cat := fx.CreateCategory(ctx, "Soccer")

	for _, run := range []string{"run-1", "run-1", "run-2"} {
		if _, err := store.Create(ctx, models.Item{
			Name: "seeded", CategoryID: cat.ID, OwnerID: owner.ID, SeedRun: run,
		}); err != nil {
			t.Fatalf("create seeded: %v", err)
		}
	}
	kept, err := store.Create(ctx, models.Item{
		Name: "manual", CategoryID: cat.ID, OwnerID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create manual: %v", err)
	}

	n, err := store.DeleteSeeded(ctx)
	if err != nil {
		t.Fatalf("delete seeded: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted %d items, want 3", n)
	}
	if _, err := store.GetByID(ctx, kept.ID); err != nil {
		t.Errorf("manual item was removed: %v", err)
	}
}
