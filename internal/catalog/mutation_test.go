package catalog

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"gorm.io/gorm"
)

func TestCreateVenueReusesCity(t *testing.T) {
	svc, db := newTestService(t)

	mustCreateVenue(t, svc, venueInput("The Musical Hop", "San Francisco", "CA"))
	mustCreateVenue(t, svc, venueInput("Park Square Live Music & Coffee", "San Francisco", "CA"))
	mustCreateArtist(t, svc, artistInput("Guns N Petals", "San Francisco", "CA"))
	// Same city name in another state is a different city.
	mustCreateVenue(t, svc, venueInput("Bay Hall", "San Francisco", "TX"))

	if n := countRows(t, db, &models.City{}); n != 2 {
		t.Errorf("cities = %d, want 2", n)
	}
}

func TestCreateVenueStoresFields(t *testing.T) {
	svc, db := newTestService(t)

	in := venueInput("  The Musical Hop  ", "San Francisco", "CA", "Jazz", "Jazz", "Polka")
	in.FacebookLink = "https://www.facebook.com/TheMusicalHop"
	id := mustCreateVenue(t, svc, in)

	var venue models.Venue
	if err := db.Preload("Genres").First(&venue, id).Error; err != nil {
		t.Fatalf("load venue: %v", err)
	}
	if venue.Name != "The Musical Hop" {
		t.Errorf("Name = %q, want trimmed", venue.Name)
	}
	if venue.SeekingTalent {
		t.Error("SeekingTalent = true, want false")
	}
	if venue.FacebookLink != in.FacebookLink {
		t.Errorf("FacebookLink = %q", venue.FacebookLink)
	}
	// Duplicates collapse and unknown genres are dropped.
	if len(venue.Genres) != 1 || venue.Genres[0].Name != "Jazz" {
		t.Errorf("Genres = %+v, want [Jazz]", venue.Genres)
	}
	if n := countRows(t, db, &models.Genre{}); n != 19 {
		t.Errorf("genres = %d, want the 19 reference genres", n)
	}
}

func TestCreateVenueValidation(t *testing.T) {
	svc, db := newTestService(t)

	in := venueInput("", "San Francisco", "CA")
	in.Address = "   "
	_, err := svc.CreateVenue(context.Background(), in)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("CreateVenue() error = %v, want *ValidationError", err)
	}
	if want := []string{"name", "address"}; !reflect.DeepEqual(validationErr.Fields, want) {
		t.Errorf("Fields = %v, want %v", validationErr.Fields, want)
	}
	if n := countRows(t, db, &models.Venue{}); n != 0 {
		t.Errorf("venues = %d, want 0", n)
	}
}

func TestCreateVenueUnknownState(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.CreateVenue(context.Background(), venueInput("The Musical Hop", "Atlantis", "ZZ"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("CreateVenue() error = %v, want ErrNotFound", err)
	}
	if n := countRows(t, db, &models.City{}); n != 0 {
		t.Errorf("cities = %d, want 0", n)
	}
}

func TestCreateVenueRollsBack(t *testing.T) {
	svc, db := newTestService(t)

	err := db.Callback().Create().Before("gorm:create").Register("test:fail_venue_insert", func(tx *gorm.DB) {
		if tx.Statement.Table == "venues" {
			tx.AddError(errors.New("disk full"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = svc.CreateVenue(context.Background(), venueInput("The Musical Hop", "Oakland", "CA", "Jazz"))
	var persistenceErr *PersistenceError
	if !errors.As(err, &persistenceErr) {
		t.Fatalf("CreateVenue() error = %v, want *PersistenceError", err)
	}
	if Kind(err) != "persistence" {
		t.Errorf("Kind() = %q, want persistence", Kind(err))
	}

	// The city created earlier in the transaction must be gone too.
	if n := countRows(t, db, &models.City{}); n != 0 {
		t.Errorf("cities = %d, want 0", n)
	}
	if n := countRows(t, db, &models.Venue{}); n != 0 {
		t.Errorf("venues = %d, want 0", n)
	}
	var links int64
	if err := db.Table("venue_genres").Count(&links).Error; err != nil {
		t.Fatalf("count venue_genres: %v", err)
	}
	if links != 0 {
		t.Errorf("venue_genres = %d, want 0", links)
	}
}

func TestCreateArtist(t *testing.T) {
	svc, db := newTestService(t)

	in := artistInput("Guns N Petals", "San Francisco", "CA", "Rock n Roll")
	in.SeekingVenue = true
	id := mustCreateArtist(t, svc, in)

	var artist models.Artist
	if err := db.Preload("City.State").Preload("Genres").First(&artist, id).Error; err != nil {
		t.Fatalf("load artist: %v", err)
	}
	if !artist.SeekingVenue {
		t.Error("SeekingVenue = false, want true")
	}
	if artist.City == nil || artist.City.Name != "San Francisco" || artist.City.State.Name != "CA" {
		t.Errorf("City = %+v", artist.City)
	}
	if len(artist.Genres) != 1 {
		t.Errorf("Genres = %+v", artist.Genres)
	}

	_, err := svc.CreateArtist(context.Background(), ArtistInput{Name: "No Home"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("CreateArtist() error = %v, want *ValidationError", err)
	}
	if want := []string{"city", "state"}; !reflect.DeepEqual(validationErr.Fields, want) {
		t.Errorf("Fields = %v, want %v", validationErr.Fields, want)
	}
}

func TestCreateShow(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	venue := mustCreateVenue(t, svc, venueInput("The Musical Hop", "San Francisco", "CA"))
	artist := mustCreateArtist(t, svc, artistInput("Guns N Petals", "San Francisco", "CA"))

	tests := []struct {
		name       string
		in         ShowInput
		wantErr    error
		wantFields []string
	}{
		{
			name:    "missing venue",
			in:      ShowInput{VenueID: "999", ArtistID: itoa(artist), StartTime: "2035-04-01 20:00:00"},
			wantErr: ErrNotFound,
		},
		{
			name:    "missing artist",
			in:      ShowInput{VenueID: itoa(venue), ArtistID: "999", StartTime: "2035-04-01 20:00:00"},
			wantErr: ErrNotFound,
		},
		{
			name:       "blank fields",
			in:         ShowInput{},
			wantFields: []string{"venue_id", "artist_id", "start_time"},
		},
		{
			name:       "malformed values",
			in:         ShowInput{VenueID: "abc", ArtistID: "0", StartTime: "next friday"},
			wantFields: []string{"venue_id", "artist_id", "start_time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateShow(ctx, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateShow() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("CreateShow() error = %v, want *ValidationError", err)
			}
			if !reflect.DeepEqual(validationErr.Fields, tt.wantFields) {
				t.Errorf("Fields = %v, want %v", validationErr.Fields, tt.wantFields)
			}
		})
	}

	if n := countRows(t, db, &models.Show{}); n != 0 {
		t.Errorf("shows = %d after failed creates, want 0", n)
	}
}

// A new venue, artist and show show up on every page that lists them.
func TestMusicalHopScenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	venue := mustCreateVenue(t, svc, venueInput("The Musical Hop", "San Francisco", "CA", "Jazz"))
	artist := mustCreateArtist(t, svc, artistInput("Guns N Petals", "San Francisco", "CA", "Rock n Roll"))

	showID, err := svc.CreateShow(ctx, ShowInput{
		VenueID:   itoa(venue),
		ArtistID:  itoa(artist),
		StartTime: "2035-04-01T20:00",
	})
	if err != nil {
		t.Fatalf("CreateShow() error = %v", err)
	}

	result, err := svc.SearchVenues(ctx, "hop")
	if err != nil {
		t.Fatalf("SearchVenues() error = %v", err)
	}
	if result.Count != 1 || result.Data[0].ID != venue || result.Data[0].NumUpcomingShows != 1 {
		t.Errorf("SearchVenues(hop) = %+v", result)
	}

	areas, err := svc.ListVenuesByArea(ctx)
	if err != nil {
		t.Fatalf("ListVenuesByArea() error = %v", err)
	}
	if len(areas) != 1 || areas[0].Venues[0].NumUpcomingShows != 1 {
		t.Errorf("ListVenuesByArea() = %+v", areas)
	}

	detail, err := svc.GetArtist(ctx, artist)
	if err != nil {
		t.Fatalf("GetArtist() error = %v", err)
	}
	want := time.Date(2035, time.April, 1, 20, 0, 0, 0, time.UTC)
	if detail.UpcomingShowsCount != 1 || !detail.UpcomingShows[0].StartTime.Equal(want) {
		t.Errorf("artist upcoming shows = %+v", detail.UpcomingShows)
	}

	shows, err := svc.ListShows(ctx)
	if err != nil {
		t.Fatalf("ListShows() error = %v", err)
	}
	if len(shows) != 1 || shows[0].ID != showID || shows[0].VenueName != "The Musical Hop" {
		t.Errorf("ListShows() = %+v", shows)
	}
}

func TestUpdateVenue(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	in := venueInput("The Musical Hop", "San Francisco", "CA", "Jazz", "Folk")
	in.SeekingTalent = true
	id := mustCreateVenue(t, svc, in)

	in = venueInput("The Musical Hop Annex", "New York", "NY", "Blues")
	if err := svc.UpdateVenue(ctx, id, in); err != nil {
		t.Fatalf("UpdateVenue() error = %v", err)
	}

	detail, err := svc.GetVenue(ctx, id)
	if err != nil {
		t.Fatalf("GetVenue() error = %v", err)
	}
	if detail.Name != "The Musical Hop Annex" || detail.City != "New York" || detail.State != "NY" {
		t.Errorf("detail = %+v", detail)
	}
	if detail.SeekingTalent {
		t.Error("SeekingTalent = true, want false after update")
	}
	if len(detail.Genres) != 1 || detail.Genres[0].Name != "Blues" {
		t.Errorf("Genres = %+v, want [Blues]", detail.Genres)
	}

	if err := svc.UpdateVenue(ctx, id, venueInput("The Musical Hop Annex", "New York", "NY")); err != nil {
		t.Fatalf("UpdateVenue() without genres error = %v", err)
	}
	var links int64
	if err := db.Table("venue_genres").Count(&links).Error; err != nil {
		t.Fatalf("count venue_genres: %v", err)
	}
	if links != 0 {
		t.Errorf("venue_genres = %d, want 0", links)
	}

	if err := svc.UpdateVenue(ctx, 999, in); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateVenue(999) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateArtist(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustCreateArtist(t, svc, artistInput("Matt Quevedo", "New York", "NY", "Jazz"))

	in := artistInput("Matt Quevedo Trio", "New York", "NY", "Jazz", "Soul")
	in.SeekingVenue = true
	if err := svc.UpdateArtist(ctx, id, in); err != nil {
		t.Fatalf("UpdateArtist() error = %v", err)
	}

	detail, err := svc.GetArtist(ctx, id)
	if err != nil {
		t.Fatalf("GetArtist() error = %v", err)
	}
	if detail.Name != "Matt Quevedo Trio" || !detail.SeekingVenue || len(detail.Genres) != 2 {
		t.Errorf("detail = %+v", detail)
	}

	if err := svc.UpdateArtist(ctx, id, ArtistInput{}); !IsValidation(err) {
		t.Errorf("UpdateArtist(empty) error = %v, want validation error", err)
	}
	if err := svc.UpdateArtist(ctx, 999, in); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateArtist(999) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteVenue(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	venue := mustCreateVenue(t, svc, venueInput("The Musical Hop", "San Francisco", "CA", "Jazz", "Folk"))
	other := mustCreateVenue(t, svc, venueInput("Park Square Live Music & Coffee", "San Francisco", "CA", "Jazz"))
	artist := mustCreateArtist(t, svc, artistInput("Guns N Petals", "San Francisco", "CA"))
	mustCreateShow(t, db, venue, artist, testNow.Add(time.Hour))
	mustCreateShow(t, db, venue, artist, testNow.Add(-time.Hour))
	kept := mustCreateShow(t, db, other, artist, testNow.Add(time.Hour))

	if err := svc.DeleteVenue(ctx, venue); err != nil {
		t.Fatalf("DeleteVenue() error = %v", err)
	}

	if _, err := svc.GetVenue(ctx, venue); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetVenue() after delete error = %v, want ErrNotFound", err)
	}

	var shows []models.Show
	if err := db.Find(&shows).Error; err != nil {
		t.Fatalf("list shows: %v", err)
	}
	if len(shows) != 1 || shows[0].ID != kept {
		t.Errorf("remaining shows = %+v, want only show %d", shows, kept)
	}

	var links int64
	if err := db.Table("venue_genres").Count(&links).Error; err != nil {
		t.Fatalf("count venue_genres: %v", err)
	}
	if links != 1 {
		t.Errorf("venue_genres = %d, want 1", links)
	}

	// Artists and cities are untouched.
	if n := countRows(t, db, &models.Artist{}); n != 1 {
		t.Errorf("artists = %d, want 1", n)
	}

	if err := svc.DeleteVenue(ctx, venue); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteVenue() error = %v, want ErrNotFound", err)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
