package categorystore_test

import (
	"testing"

	categorystore "github.com/dalemusser/shelfhub/internal/app/store/categories"
	"github.com/dalemusser/shelfhub/internal/testutil"
)

func TestList_OrdersCaseInsensitively(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"banana", "Apple", "cherry"} {
		if _, err := store.Create(ctx, name); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	cats, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"Apple", "banana", "cherry"}
	if len(cats) != len(want) {
		t.Fatalf("got %d categories, want %d", len(cats), len(want))
	}
	for i, name := range want {
		if cats[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, cats[i].Name, name)
		}
	}
}

func TestCreate_RejectsBlankName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "  "); err == nil {
		t.Fatal("blank category name was accepted")
	}
}
