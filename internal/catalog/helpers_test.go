package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// newTestService returns a service backed by a fresh SQLite file with the
// reference states and genres loaded. Its clock is pinned to testNow.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "catalog.db") + "?_foreign_keys=on"
	db, err := database.Open(config.DriverSQLite, dsn, "silent")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedReferenceData(db); err != nil {
		t.Fatalf("seed reference data: %v", err)
	}

	svc := NewService(db)
	svc.now = func() time.Time { return testNow }
	return svc, db
}

func mustCreateVenue(t *testing.T, svc *Service, in VenueInput) uint {
	t.Helper()
	id, err := svc.CreateVenue(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateVenue(%q) error = %v", in.Name, err)
	}
	return id
}

func mustCreateArtist(t *testing.T, svc *Service, in ArtistInput) uint {
	t.Helper()
	id, err := svc.CreateArtist(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateArtist(%q) error = %v", in.Name, err)
	}
	return id
}

// mustCreateShow inserts a show directly so tests can place it at any time.
func mustCreateShow(t *testing.T, db *gorm.DB, venueID, artistID uint, start time.Time) uint {
	t.Helper()
	show := models.Show{VenueID: venueID, ArtistID: artistID, StartTime: start}
	if err := db.Omit("Venue", "Artist").Create(&show).Error; err != nil {
		t.Fatalf("create show: %v", err)
	}
	return show.ID
}

func venueInput(name, city, state string, genres ...string) VenueInput {
	return VenueInput{
		Name:    name,
		City:    city,
		State:   state,
		Address: "1 Main St",
		Genres:  genres,
	}
}

func artistInput(name, city, state string, genres ...string) ArtistInput {
	return ArtistInput{
		Name:   name,
		City:   city,
		State:  state,
		Genres: genres,
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
