package catalog

import "time"

// Summary is one row of a listing or search page.
type Summary struct {
	ID               uint
	Name             string
	NumUpcomingShows int
}

// Area groups the venues of one city.
type Area struct {
	City   string
	State  string
	Venues []Summary
}

// SearchResult is the outcome of a name search.
type SearchResult struct {
	Count int
	Data  []Summary
}

// GenreRef identifies a genre attached to a venue or artist.
type GenreRef struct {
	ID   uint
	Name string
}

// VenueShow is a show as listed on a venue page.
type VenueShow struct {
	ArtistID        uint
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// ArtistShow is a show as listed on an artist page.
type ArtistShow struct {
	VenueID        uint
	VenueName      string
	VenueImageLink string
	StartTime      time.Time
}

type VenueDetail struct {
	ID                 uint
	Name               string
	Genres             []GenreRef
	Address            string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingTalent      bool
	SeekingDescription string
	ImageLink          string
	PastShows          []VenueShow
	UpcomingShows      []VenueShow
	PastShowsCount     int
	UpcomingShowsCount int
}

type ArtistDetail struct {
	ID                 uint
	Name               string
	Genres             []GenreRef
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingVenue       bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ArtistShow
	UpcomingShows      []ArtistShow
	PastShowsCount     int
	UpcomingShowsCount int
}

// ShowSummary is one row of the shows page.
type ShowSummary struct {
	ID              uint
	VenueID         uint
	VenueName       string
	ArtistID        uint
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}
