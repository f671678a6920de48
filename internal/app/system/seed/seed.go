// Package seed bulk-loads demo catalog data from CSV files.
//
// The loader reads three files from a directory: users.csv (one email per
// row), categories.csv (one name per row), and items.csv (pipe-delimited
// rows of image_url|name|description). Items are assigned categories and
// owners round-robin, matching the layout the demo data was authored for.
// Every loaded item is tagged with a run id. A reset load wipes the items
// of all earlier tagged runs before loading, so a restarted demo instance
// does not accumulate duplicates; without reset, running the loader twice
// loads the data twice.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	categorystore "github.com/dalemusser/shelfhub/internal/app/store/categories"
	itemstore "github.com/dalemusser/shelfhub/internal/app/store/items"
	userstore "github.com/dalemusser/shelfhub/internal/app/store/users"
	"github.com/dalemusser/shelfhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	usersFile      = "users.csv"
	categoriesFile = "categories.csv"
	itemsFile      = "items.csv"

	// MaxRows bounds each file; the seeder is for demo data, not imports.
	MaxRows = 20000
)

// itemRow is one parsed line of items.csv.
type itemRow struct {
	ImageURL    string
	Name        string
	Description string
}

// LoadDir loads the three CSV files from dir into the database and returns
// the run id tagged onto the loaded items. When reset is set, items from
// earlier seed runs are deleted before loading; users and categories are
// left in place and reused.
func LoadDir(ctx context.Context, db *mongo.Database, dir string, reset bool, log *zap.Logger) (string, error) {
	emails, err := readColumn(filepath.Join(dir, usersFile))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", usersFile, err)
	}
	names, err := readColumn(filepath.Join(dir, categoriesFile))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", categoriesFile, err)
	}
	rows, err := readItems(filepath.Join(dir, itemsFile))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", itemsFile, err)
	}
	if len(emails) == 0 || len(names) == 0 {
		return "", fmt.Errorf("seed needs at least one user and one category")
	}

	users := userstore.New(db)
	categories := categorystore.New(db)
	items := itemstore.New(db)
	runID := uuid.NewString()

	if reset {
		wiped, err := items.DeleteSeeded(ctx)
		if err != nil {
			return "", fmt.Errorf("wiping earlier seed runs: %w", err)
		}
		log.Info("earlier seed runs wiped", zap.Int64("items", wiped))
	}

	owners := make([]models.User, 0, len(emails))
	for _, email := range emails {
		// Get-or-create keeps reruns from tripping the unique email index.
		u, err := users.GetOrCreateByEmail(ctx, email)
		if err != nil {
			return "", fmt.Errorf("seeding user %q: %w", email, err)
		}
		owners = append(owners, *u)
	}

	cats := make([]models.Category, 0, len(names))
	for _, name := range names {
		cat, err := categories.Create(ctx, name)
		if err != nil {
			return "", fmt.Errorf("seeding category %q: %w", name, err)
		}
		cats = append(cats, cat)
	}

	for i, row := range rows {
		it := models.Item{
			Name:        row.Name,
			Description: row.Description,
			ImageURL:    row.ImageURL,
			CategoryID:  cats[i%len(cats)].ID,
			OwnerID:     owners[i%len(owners)].ID,
			LastUpdate:  time.Now().UnixMilli(),
			SeedRun:     runID,
		}
		if _, err := items.Create(ctx, it); err != nil {
			return "", fmt.Errorf("seeding item %q: %w", row.Name, err)
		}
	}

	log.Info("seed load complete",
		zap.String("run_id", runID),
		zap.Int("users", len(owners)),
		zap.Int("categories", len(cats)),
		zap.Int("items", len(rows)))
	return runID, nil
}

// readColumn reads the first field of every row.
func readColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rdr := csv.NewReader(f)
	rdr.FieldsPerRecord = -1

	var out []string
	for {
		rec, err := rdr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(rec) == 0 || rec[0] == "" {
			continue
		}
		out = append(out, rec[0])
		if len(out) > MaxRows {
			return nil, fmt.Errorf("too many rows (limit %d)", MaxRows)
		}
	}
	return out, nil
}

// readItems reads pipe-delimited rows of image_url|name|description.
func readItems(path string) ([]itemRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rdr := csv.NewReader(f)
	rdr.Comma = '|'
	rdr.FieldsPerRecord = -1

	var out []itemRow
	for {
		rec, err := rdr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("row %d: want image_url|name|description, got %d fields", len(out)+1, len(rec))
		}
		out = append(out, itemRow{ImageURL: rec[0], Name: rec[1], Description: rec[2]})
		if len(out) > MaxRows {
			return nil, fmt.Errorf("too many rows (limit %d)", MaxRows)
		}
	}
	return out, nil
}
