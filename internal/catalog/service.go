// Package catalog builds the venue, artist and show pages from the database
// and records new listings.
package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Ping checks that the database answers.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}
