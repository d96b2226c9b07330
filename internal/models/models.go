package models

import (
	"time"

	"gorm.io/gorm"
)

type State struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null;uniqueIndex"`
	Cities []City `gorm:"foreignKey:StateID"`
}

type City struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"not null;uniqueIndex:idx_city_state"`
	StateID uint   `gorm:"not null;uniqueIndex:idx_city_state"`

	// Relationships
	State   State    `gorm:"foreignKey:StateID"`
	Venues  []Venue  `gorm:"foreignKey:CityID"`
	Artists []Artist `gorm:"foreignKey:CityID"`
}

type Genre struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
}

type Venue struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null;index"`
	CityID             *uint  `gorm:"index"` // optional
	Address            string `gorm:"size:120"`
	Phone              string `gorm:"size:120"`
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:120"`
	Website            string `gorm:"size:500"`
	SeekingTalent      bool   `gorm:"not null"`
	SeekingDescription string `gorm:"size:500"`

	// Relationships
	City   *City   `gorm:"foreignKey:CityID"`
	Shows  []Show  `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE"`
	Genres []Genre `gorm:"many2many:venue_genres;constraint:OnDelete:CASCADE"`
}

type Artist struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null;index"`
	CityID             *uint  `gorm:"index"` // optional
	Phone              string `gorm:"size:120"`
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:120"`
	Website            string `gorm:"size:500"`
	SeekingVenue       bool   `gorm:"not null"`
	SeekingDescription string `gorm:"size:500"`

	// Relationships
	City   *City   `gorm:"foreignKey:CityID"`
	Shows  []Show  `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
	Genres []Genre `gorm:"many2many:artist_genres;constraint:OnDelete:CASCADE"`
}

type Show struct {
	ID        uint      `gorm:"primaryKey"`
	StartTime time.Time `gorm:"not null;index"`
	VenueID   uint      `gorm:"not null;index"`
	ArtistID  uint      `gorm:"not null;index"`

	// Relationships
	Venue  Venue  `gorm:"foreignKey:VenueID"`
	Artist Artist `gorm:"foreignKey:ArtistID"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&State{},
		&City{},
		&Genre{},
		&Venue{},
		&Artist{},
		&Show{},
	)
}
