package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"gorm.io/gorm"
)

const (
	venueColumn  = "venue_id"
	artistColumn = "artist_id"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListVenuesByArea returns every city that has at least one venue, with its
// venues and their upcoming show counts. Areas are ordered by state then city
// name, venues by name. Venues without a city are not part of any area.
func (s *Service) ListVenuesByArea(ctx context.Context) ([]Area, error) {
	db := s.db.WithContext(ctx)

	var areaRows []struct {
		CityID    uint
		CityName  string
		StateName string
	}
	err := db.Table("cities").
		Select("DISTINCT cities.id AS city_id, cities.name AS city_name, states.name AS state_name").
		Joins("JOIN states ON states.id = cities.state_id").
		Joins("JOIN venues ON venues.city_id = cities.id").
		Order("state_name, city_name, city_id").
		Scan(&areaRows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list areas", Err: err}
	}
	if len(areaRows) == 0 {
		return []Area{}, nil
	}

	cityIDs := make([]uint, len(areaRows))
	for i, row := range areaRows {
		cityIDs[i] = row.CityID
	}

	var venueRows []struct {
		ID     uint
		Name   string
		CityID uint
	}
	err = db.Table("venues").
		Select("id, name, city_id").
		Where("city_id IN ?", cityIDs).
		Order("name, id").
		Scan(&venueRows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list venues", Err: err}
	}

	venueIDs := make([]uint, len(venueRows))
	for i, row := range venueRows {
		venueIDs[i] = row.ID
	}
	counts, err := upcomingCounts(db, venueColumn, venueIDs, s.clock())
	if err != nil {
		return nil, err
	}

	byCity := make(map[uint][]Summary, len(areaRows))
	for _, row := range venueRows {
		byCity[row.CityID] = append(byCity[row.CityID], Summary{
			ID:               row.ID,
			Name:             row.Name,
			NumUpcomingShows: counts[row.ID],
		})
	}

	areas := make([]Area, len(areaRows))
	for i, row := range areaRows {
		areas[i] = Area{
			City:   row.CityName,
			State:  row.StateName,
			Venues: byCity[row.CityID],
		}
	}
	return areas, nil
}

// SearchVenues returns venues whose name contains term, ignoring case.
func (s *Service) SearchVenues(ctx context.Context, term string) (*SearchResult, error) {
	return s.search(ctx, "venues", venueColumn, term)
}

// SearchArtists returns artists whose name contains term, ignoring case.
func (s *Service) SearchArtists(ctx context.Context, term string) (*SearchResult, error) {
	return s.search(ctx, "artists", artistColumn, term)
}

func (s *Service) search(ctx context.Context, table, showColumn, term string) (*SearchResult, error) {
	db := s.db.WithContext(ctx)

	// Both sides go through the database's LOWER so they fold identically;
	// SQLite only folds ASCII letters.
	pattern := "%" + likeEscaper.Replace(term) + "%"
	var matches []Summary
	err := db.Table(table).
		Select("id, name").
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, pattern).
		Order("name, id").
		Scan(&matches).Error
	if err != nil {
		return nil, &PersistenceError{Op: "search " + table, Err: err}
	}

	if err := s.fillCounts(db, showColumn, matches); err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []Summary{}
	}
	return &SearchResult{Count: len(matches), Data: matches}, nil
}

// ListArtists returns all artists ordered by name.
func (s *Service) ListArtists(ctx context.Context) ([]Summary, error) {
	db := s.db.WithContext(ctx)

	var artists []Summary
	err := db.Table("artists").Select("id, name").Order("name, id").Scan(&artists).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list artists", Err: err}
	}
	if err := s.fillCounts(db, artistColumn, artists); err != nil {
		return nil, err
	}
	return artists, nil
}

func (s *Service) fillCounts(db *gorm.DB, showColumn string, rows []Summary) error {
	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	counts, err := upcomingCounts(db, showColumn, ids, s.clock())
	if err != nil {
		return err
	}
	for i := range rows {
		rows[i].NumUpcomingShows = counts[rows[i].ID]
	}
	return nil
}

// upcomingCounts counts shows strictly after now, keyed by the owner id in
// column (venue_id or artist_id).
func upcomingCounts(db *gorm.DB, column string, ids []uint, now time.Time) (map[uint]int, error) {
	counts := make(map[uint]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		OwnerID uint
		Total   int
	}
	err := db.Model(&models.Show{}).
		Select(column+" AS owner_id, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Where("start_time > ?", now).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "count upcoming shows", Err: err}
	}
	for _, row := range rows {
		counts[row.OwnerID] = row.Total
	}
	return counts, nil
}

// GetVenue returns the venue page for id. Shows starting before now are
// past, all others upcoming.
func (s *Service) GetVenue(ctx context.Context, id uint) (*VenueDetail, error) {
	db := s.db.WithContext(ctx)

	var venue models.Venue
	err := db.Preload("City.State").
		Preload("Genres", orderByName).
		First(&venue, id).Error
	if err != nil {
		return nil, lookupError("venue", id, err)
	}

	var shows []models.Show
	err = db.Preload("Artist").
		Where("venue_id = ?", venue.ID).
		Order("start_time, id").
		Find(&shows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list venue shows", Err: err}
	}

	detail := &VenueDetail{
		ID:                 venue.ID,
		Name:               venue.Name,
		Genres:             genreRefs(venue.Genres),
		Address:            venue.Address,
		Phone:              venue.Phone,
		Website:            venue.Website,
		FacebookLink:       venue.FacebookLink,
		SeekingTalent:      venue.SeekingTalent,
		SeekingDescription: venue.SeekingDescription,
		ImageLink:          venue.ImageLink,
		PastShows:          []VenueShow{},
		UpcomingShows:      []VenueShow{},
	}
	detail.City, detail.State = location(venue.City)

	now := s.clock()
	for _, show := range shows {
		entry := VenueShow{
			ArtistID:        show.ArtistID,
			ArtistName:      show.Artist.Name,
			ArtistImageLink: show.Artist.ImageLink,
			StartTime:       show.StartTime,
		}
		if show.StartTime.Before(now) {
			detail.PastShows = append(detail.PastShows, entry)
		} else {
			detail.UpcomingShows = append(detail.UpcomingShows, entry)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)

	return detail, nil
}

// GetArtist returns the artist page for id, partitioned like GetVenue.
func (s *Service) GetArtist(ctx context.Context, id uint) (*ArtistDetail, error) {
	db := s.db.WithContext(ctx)

	var artist models.Artist
	err := db.Preload("City.State").
		Preload("Genres", orderByName).
		First(&artist, id).Error
	if err != nil {
		return nil, lookupError("artist", id, err)
	}

	var shows []models.Show
	err = db.Preload("Venue").
		Where("artist_id = ?", artist.ID).
		Order("start_time, id").
		Find(&shows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list artist shows", Err: err}
	}

	detail := &ArtistDetail{
		ID:                 artist.ID,
		Name:               artist.Name,
		Genres:             genreRefs(artist.Genres),
		Phone:              artist.Phone,
		Website:            artist.Website,
		FacebookLink:       artist.FacebookLink,
		SeekingVenue:       artist.SeekingVenue,
		SeekingDescription: artist.SeekingDescription,
		ImageLink:          artist.ImageLink,
		PastShows:          []ArtistShow{},
		UpcomingShows:      []ArtistShow{},
	}
	detail.City, detail.State = location(artist.City)

	now := s.clock()
	for _, show := range shows {
		entry := ArtistShow{
			VenueID:        show.VenueID,
			VenueName:      show.Venue.Name,
			VenueImageLink: show.Venue.ImageLink,
			StartTime:      show.StartTime,
		}
		if show.StartTime.Before(now) {
			detail.PastShows = append(detail.PastShows, entry)
		} else {
			detail.UpcomingShows = append(detail.UpcomingShows, entry)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)

	return detail, nil
}

// ListShows returns every show with its venue and artist, latest first.
func (s *Service) ListShows(ctx context.Context) ([]ShowSummary, error) {
	var shows []models.Show
	err := s.db.WithContext(ctx).
		Joins("Venue").
		Joins("Artist").
		Order("shows.start_time DESC, shows.id DESC").
		Find(&shows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list shows", Err: err}
	}

	summaries := make([]ShowSummary, len(shows))
	for i, show := range shows {
		summaries[i] = ShowSummary{
			ID:              show.ID,
			VenueID:         show.VenueID,
			VenueName:       show.Venue.Name,
			ArtistID:        show.ArtistID,
			ArtistName:      show.Artist.Name,
			ArtistImageLink: show.Artist.ImageLink,
			StartTime:       show.StartTime,
		}
	}
	return summaries, nil
}

// ListStates returns the state names offered by the forms.
func (s *Service) ListStates(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.State{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list states", Err: err}
	}
	return names, nil
}

// ListGenres returns the genre names offered by the forms.
func (s *Service) ListGenres(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Genre{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list genres", Err: err}
	}
	return names, nil
}

// VenueForm returns the stored values of a venue for the edit form.
func (s *Service) VenueForm(ctx context.Context, id uint) (*VenueInput, error) {
	var venue models.Venue
	err := s.db.WithContext(ctx).Preload("City.State").Preload("Genres", orderByName).First(&venue, id).Error
	if err != nil {
		return nil, lookupError("venue", id, err)
	}

	in := &VenueInput{
		Name:               venue.Name,
		Address:            venue.Address,
		Phone:              venue.Phone,
		Website:            venue.Website,
		FacebookLink:       venue.FacebookLink,
		SeekingDescription: venue.SeekingDescription,
		ImageLink:          venue.ImageLink,
		SeekingTalent:      venue.SeekingTalent,
		Genres:             genreNames(venue.Genres),
	}
	in.City, in.State = location(venue.City)
	return in, nil
}

// ArtistForm returns the stored values of an artist for the edit form.
func (s *Service) ArtistForm(ctx context.Context, id uint) (*ArtistInput, error) {
	var artist models.Artist
	err := s.db.WithContext(ctx).Preload("City.State").Preload("Genres", orderByName).First(&artist, id).Error
	if err != nil {
		return nil, lookupError("artist", id, err)
	}

	in := &ArtistInput{
		Name:               artist.Name,
		Phone:              artist.Phone,
		Website:            artist.Website,
		FacebookLink:       artist.FacebookLink,
		SeekingDescription: artist.SeekingDescription,
		ImageLink:          artist.ImageLink,
		SeekingVenue:       artist.SeekingVenue,
		Genres:             genreNames(artist.Genres),
	}
	in.City, in.State = location(artist.City)
	return in, nil
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name")
}

func location(city *models.City) (cityName, stateName string) {
	if city == nil {
		return "", ""
	}
	return city.Name, city.State.Name
}

// genreRefs maps genres to id/name pairs, dropping duplicate ids.
func genreRefs(genres []models.Genre) []GenreRef {
	seen := make(map[uint]bool, len(genres))
	refs := make([]GenreRef, 0, len(genres))
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		refs = append(refs, GenreRef{ID: g.ID, Name: g.Name})
	}
	return refs
}

func genreNames(genres []models.Genre) []string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return names
}
