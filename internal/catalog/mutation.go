package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateVenue records a new venue and returns its id. The city is created on
// first use of a (city, state) pair; unknown genre names are ignored. All
// writes happen in one transaction.
func (s *Service) CreateVenue(ctx context.Context, in VenueInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	venue := models.Venue{
		Name:               in.Name,
		Address:            in.Address,
		Phone:              in.Phone,
		Website:            in.Website,
		FacebookLink:       in.FacebookLink,
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: in.SeekingDescription,
		ImageLink:          in.ImageLink,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cityID, err := resolveCity(tx, in.City, in.State)
		if err != nil {
			return err
		}
		venue.CityID = &cityID

		genres, err := resolveGenres(tx, in.Genres)
		if err != nil {
			return err
		}
		venue.Genres = genres

		// Genres are reference data: link them without upserting.
		if err := tx.Omit("Genres.*").Create(&venue).Error; err != nil {
			return &PersistenceError{Op: "create venue", Err: err}
		}
		return nil
	})
	if err != nil {
		return 0, txError("create venue", err)
	}
	return venue.ID, nil
}

// CreateArtist records a new artist and returns its id, following the same
// rules as CreateVenue.
func (s *Service) CreateArtist(ctx context.Context, in ArtistInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	artist := models.Artist{
		Name:               in.Name,
		Phone:              in.Phone,
		Website:            in.Website,
		FacebookLink:       in.FacebookLink,
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: in.SeekingDescription,
		ImageLink:          in.ImageLink,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cityID, err := resolveCity(tx, in.City, in.State)
		if err != nil {
			return err
		}
		artist.CityID = &cityID

		genres, err := resolveGenres(tx, in.Genres)
		if err != nil {
			return err
		}
		artist.Genres = genres

		if err := tx.Omit("Genres.*").Create(&artist).Error; err != nil {
			return &PersistenceError{Op: "create artist", Err: err}
		}
		return nil
	})
	if err != nil {
		return 0, txError("create artist", err)
	}
	return artist.ID, nil
}

// CreateShow records a show between an existing venue and artist.
func (s *Service) CreateShow(ctx context.Context, in ShowInput) (uint, error) {
	venueID, artistID, startTime, err := in.Validate()
	if err != nil {
		return 0, err
	}

	show := models.Show{
		VenueID:   venueID,
		ArtistID:  artistID,
		StartTime: startTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Venue{}, "venue", venueID); err != nil {
			return err
		}
		if err := exists(tx, &models.Artist{}, "artist", artistID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&show).Error; err != nil {
			return &PersistenceError{Op: "create show", Err: err}
		}
		return nil
	})
	if err != nil {
		return 0, txError("create show", err)
	}
	return show.ID, nil
}

// UpdateVenue overwrites a venue's fields and replaces its genres.
func (s *Service) UpdateVenue(ctx context.Context, id uint, in VenueInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.First(&venue, id).Error; err != nil {
			return lookupError("venue", id, err)
		}

		cityID, err := resolveCity(tx, in.City, in.State)
		if err != nil {
			return err
		}
		genres, err := resolveGenres(tx, in.Genres)
		if err != nil {
			return err
		}

		venue.Name = in.Name
		venue.CityID = &cityID
		venue.Address = in.Address
		venue.Phone = in.Phone
		venue.Website = in.Website
		venue.FacebookLink = in.FacebookLink
		venue.SeekingTalent = in.SeekingTalent
		venue.SeekingDescription = in.SeekingDescription
		venue.ImageLink = in.ImageLink

		if err := tx.Omit(clause.Associations).Save(&venue).Error; err != nil {
			return &PersistenceError{Op: "update venue", Err: err}
		}
		return replaceGenres(tx, &venue, genres)
	})
	return txError("update venue", err)
}

// UpdateArtist overwrites an artist's fields and replaces its genres.
func (s *Service) UpdateArtist(ctx context.Context, id uint, in ArtistInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artist models.Artist
		if err := tx.First(&artist, id).Error; err != nil {
			return lookupError("artist", id, err)
		}

		cityID, err := resolveCity(tx, in.City, in.State)
		if err != nil {
			return err
		}
		genres, err := resolveGenres(tx, in.Genres)
		if err != nil {
			return err
		}

		artist.Name = in.Name
		artist.CityID = &cityID
		artist.Phone = in.Phone
		artist.Website = in.Website
		artist.FacebookLink = in.FacebookLink
		artist.SeekingVenue = in.SeekingVenue
		artist.SeekingDescription = in.SeekingDescription
		artist.ImageLink = in.ImageLink

		if err := tx.Omit(clause.Associations).Save(&artist).Error; err != nil {
			return &PersistenceError{Op: "update artist", Err: err}
		}
		return replaceGenres(tx, &artist, genres)
	})
	return txError("update artist", err)
}

// DeleteVenue removes a venue together with its shows and genre links.
// It returns ErrNotFound when no venue has the id.
func (s *Service) DeleteVenue(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.First(&venue, id).Error; err != nil {
			return lookupError("venue", id, err)
		}

		if err := tx.Model(&venue).Association("Genres").Clear(); err != nil {
			return &PersistenceError{Op: "unlink venue genres", Err: err}
		}
		if err := tx.Where("venue_id = ?", venue.ID).Delete(&models.Show{}).Error; err != nil {
			return &PersistenceError{Op: "delete venue shows", Err: err}
		}
		if err := tx.Delete(&venue).Error; err != nil {
			return &PersistenceError{Op: "delete venue", Err: err}
		}
		return nil
	})
	return txError("delete venue", err)
}

// resolveCity returns the id of the city named cityName in stateName,
// creating it when the pair is new. The state must already exist.
func resolveCity(tx *gorm.DB, cityName, stateName string) (uint, error) {
	var city models.City
	err := tx.Joins("JOIN states ON states.id = cities.state_id").
		Where("cities.name = ? AND states.name = ?", cityName, stateName).
		First(&city).Error
	if err == nil {
		return city.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, &PersistenceError{Op: "find city", Err: err}
	}

	var state models.State
	if err := tx.Where("name = ?", stateName).First(&state).Error; err != nil {
		return 0, lookupError("state", fmt.Sprintf("%q", stateName), err)
	}

	city = models.City{Name: cityName, StateID: state.ID}
	err = tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&city).Error
	if err != nil {
		return 0, &PersistenceError{Op: "create city", Err: err}
	}
	if city.ID != 0 {
		return city.ID, nil
	}

	// A concurrent request inserted the same pair first.
	if err := tx.Where("name = ? AND state_id = ?", cityName, state.ID).First(&city).Error; err != nil {
		return 0, lookupError("city", fmt.Sprintf("%q", cityName), err)
	}
	return city.ID, nil
}

// resolveGenres loads the genres matching names. Names without a genre row
// are skipped.
func resolveGenres(tx *gorm.DB, names []string) ([]models.Genre, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var genres []models.Genre
	if err := tx.Where("name IN ?", names).Order("name").Find(&genres).Error; err != nil {
		return nil, &PersistenceError{Op: "find genres", Err: err}
	}
	return genres, nil
}

func replaceGenres(tx *gorm.DB, owner any, genres []models.Genre) error {
	association := tx.Model(owner).Association("Genres")
	var err error
	if len(genres) == 0 {
		err = association.Clear()
	} else {
		err = association.Replace(genres)
	}
	if err != nil {
		return &PersistenceError{Op: "replace genres", Err: err}
	}
	return nil
}

func exists(tx *gorm.DB, model any, what string, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return &PersistenceError{Op: "find " + what, Err: err}
	}
	if count == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
