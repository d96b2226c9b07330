package database

import (
	"fmt"
	"log"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateNames are the state choices offered by the venue and artist forms.
var StateNames = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

// GenreNames are the genre choices offered by the venue and artist forms.
var GenreNames = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
	"Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
	"Soul", "Other",
}

// SeedReferenceData inserts the states and genres the forms rely on.
// Existing rows are left untouched.
func SeedReferenceData(db *gorm.DB) error {
	states := make([]models.State, len(StateNames))
	for i, name := range StateNames {
		states[i] = models.State{Name: name}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&states).Error; err != nil {
		return fmt.Errorf("failed to seed states: %w", err)
	}

	genres := make([]models.Genre, len(GenreNames))
	for i, name := range GenreNames {
		genres[i] = models.Genre{Name: name}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&genres).Error; err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}

	log.Printf("Reference data seeded: %d states, %d genres", len(states), len(genres))
	return nil
}

// SeedSampleData loads the demo venues, artists and shows. It is a no-op
// when any venue already exists.
func SeedSampleData(db *gorm.DB) error {
	// Check if data already exists
	var count int64
	if err := db.Model(&models.Venue{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count venues: %w", err)
	}
	if count > 0 {
		log.Println("Sample data already seeded, skipping...")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		sanFrancisco, err := sampleCity(tx, "San Francisco", "CA")
		if err != nil {
			return err
		}
		newYork, err := sampleCity(tx, "New York", "NY")
		if err != nil {
			return err
		}

		// Create venues
		venues := []models.Venue{
			{
				Name:               "The Musical Hop",
				CityID:             &sanFrancisco.ID,
				Address:            "1015 Folsom Street",
				Phone:              "123-123-1234",
				Website:            "https://www.themusicalhop.com",
				FacebookLink:       "https://www.facebook.com/TheMusicalHop",
				SeekingTalent:      true,
				SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
				ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?ixlib=rb-1.2.1&auto=format&fit=crop&w=400&q=60",
			},
			{
				Name:          "The Dueling Pianos Bar",
				CityID:        &newYork.ID,
				Address:       "335 Delancey Street",
				Phone:         "914-003-1132",
				Website:       "https://www.theduelingpianos.com",
				FacebookLink:  "https://www.facebook.com/theduelingpianos",
				SeekingTalent: false,
				ImageLink:     "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?ixlib=rb-1.2.1&auto=format&fit=crop&w=750&q=80",
			},
			{
				Name:          "Park Square Live Music & Coffee",
				CityID:        &sanFrancisco.ID,
				Address:       "34 Whiskey Moore Ave",
				Phone:         "415-000-1234",
				Website:       "https://www.parksquarelivemusicandcoffee.com",
				FacebookLink:  "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
				SeekingTalent: false,
				ImageLink:     "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?ixlib=rb-1.2.1&auto=format&fit=crop&w=747&q=80",
			},
		}
		venueGenres := [][]string{
			{"Jazz", "Reggae", "Classical", "Folk"},
			{"Classical", "R&B", "Hip-Hop"},
			{"Rock n Roll", "Jazz", "Classical", "Folk"},
		}
		for i := range venues {
			genres, err := sampleGenres(tx, venueGenres[i])
			if err != nil {
				return err
			}
			venues[i].Genres = genres
			if err := tx.Create(&venues[i]).Error; err != nil {
				return fmt.Errorf("failed to create venue: %w", err)
			}
		}

		// Create artists
		artists := []models.Artist{
			{
				Name:               "Guns N Petals",
				CityID:             &sanFrancisco.ID,
				Phone:              "326-123-5000",
				Website:            "https://www.gunsnpetalsband.com",
				FacebookLink:       "https://www.facebook.com/GunsNPetals",
				SeekingVenue:       true,
				SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
				ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?ixlib=rb-1.2.1&auto=format&fit=crop&w=300&q=80",
			},
			{
				Name:         "Matt Quevedo",
				CityID:       &newYork.ID,
				Phone:        "300-400-5000",
				FacebookLink: "https://www.facebook.com/mattquevedo923251523",
				SeekingVenue: false,
				ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?ixlib=rb-1.2.1&auto=format&fit=crop&w=334&q=80",
			},
			{
				Name:         "The Wild Sax Band",
				CityID:       &sanFrancisco.ID,
				Phone:        "432-325-5432",
				SeekingVenue: false,
				ImageLink:    "https://images.unsplash.com/photo-1558369981-f9ca78462e61?ixlib=rb-1.2.1&auto=format&fit=crop&w=794&q=80",
			},
		}
		artistGenres := [][]string{
			{"Rock n Roll"},
			{"Jazz"},
			{"Jazz", "Classical"},
		}
		for i := range artists {
			genres, err := sampleGenres(tx, artistGenres[i])
			if err != nil {
				return err
			}
			artists[i].Genres = genres
			if err := tx.Create(&artists[i]).Error; err != nil {
				return fmt.Errorf("failed to create artist: %w", err)
			}
		}

		// Create shows, one past and a few upcoming relative to now
		now := time.Now().UTC().Truncate(time.Hour)
		shows := []models.Show{
			{VenueID: venues[0].ID, ArtistID: artists[0].ID, StartTime: now.AddDate(0, -2, 0)},
			{VenueID: venues[2].ID, ArtistID: artists[1].ID, StartTime: now.AddDate(0, -1, 0)},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: now.AddDate(0, 1, 0)},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: now.AddDate(0, 1, 7)},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: now.AddDate(0, 1, 14)},
		}
		if err := tx.Omit(clause.Associations).Create(&shows).Error; err != nil {
			return fmt.Errorf("failed to create shows: %w", err)
		}

		log.Println("Sample data seeded successfully")
		return nil
	})
}

func sampleCity(tx *gorm.DB, cityName, stateName string) (*models.City, error) {
	var state models.State
	if err := tx.Where("name = ?", stateName).First(&state).Error; err != nil {
		return nil, fmt.Errorf("failed to find state %s: %w", stateName, err)
	}

	city := models.City{Name: cityName, StateID: state.ID}
	if err := tx.Where(city).FirstOrCreate(&city).Error; err != nil {
		return nil, fmt.Errorf("failed to create city %s: %w", cityName, err)
	}
	return &city, nil
}

func sampleGenres(tx *gorm.DB, names []string) ([]models.Genre, error) {
	var genres []models.Genre
	if err := tx.Where("name IN ?", names).Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	return genres, nil
}
