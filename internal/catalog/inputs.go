package catalog

import (
	"errors"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// VenueInput carries the fields of the venue creation and edit forms.
type VenueInput struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required"`
	Address            string   `form:"address" validate:"required"`
	Phone              string   `form:"phone"`
	Website            string   `form:"website"`
	FacebookLink       string   `form:"facebook_link"`
	SeekingDescription string   `form:"seeking_description"`
	ImageLink          string   `form:"image_link"`
	Genres             []string `form:"genres"`

	// Set from the presence of the seeking_talent checkbox.
	SeekingTalent bool `form:"-"`
}

// ArtistInput carries the fields of the artist creation and edit forms.
type ArtistInput struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required"`
	Phone              string   `form:"phone"`
	Website            string   `form:"website"`
	FacebookLink       string   `form:"facebook_link"`
	SeekingDescription string   `form:"seeking_description"`
	ImageLink          string   `form:"image_link"`
	Genres             []string `form:"genres"`

	// Set from the presence of the seeking_venue checkbox.
	SeekingVenue bool `form:"-"`
}

// ShowInput carries the fields of the show creation form.
type ShowInput struct {
	VenueID   string `form:"venue_id" validate:"required"`
	ArtistID  string `form:"artist_id" validate:"required"`
	StartTime string `form:"start_time" validate:"required"`
}

// startTimeLayouts are tried in order when parsing a submitted start time.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report form field names rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate trims the input and checks required fields.
func (in *VenueInput) Validate() error {
	trimAll(&in.Name, &in.City, &in.State, &in.Address, &in.Phone, &in.Website,
		&in.FacebookLink, &in.SeekingDescription, &in.ImageLink)
	in.Genres = cleanNames(in.Genres)
	return validateStruct(in)
}

// Validate trims the input and checks required fields.
func (in *ArtistInput) Validate() error {
	trimAll(&in.Name, &in.City, &in.State, &in.Phone, &in.Website,
		&in.FacebookLink, &in.SeekingDescription, &in.ImageLink)
	in.Genres = cleanNames(in.Genres)
	return validateStruct(in)
}

// Validate checks required fields and parses ids and start time.
func (in *ShowInput) Validate() (venueID, artistID uint, startTime time.Time, err error) {
	trimAll(&in.VenueID, &in.ArtistID, &in.StartTime)
	if err := validateStruct(in); err != nil {
		return 0, 0, time.Time{}, err
	}

	var invalid []string
	venueID, ok := parseID(in.VenueID)
	if !ok {
		invalid = append(invalid, "venue_id")
	}
	artistID, ok = parseID(in.ArtistID)
	if !ok {
		invalid = append(invalid, "artist_id")
	}
	startTime, err = ParseStartTime(in.StartTime)
	if err != nil {
		invalid = append(invalid, "start_time")
	}
	if len(invalid) > 0 {
		return 0, 0, time.Time{}, &ValidationError{Fields: invalid}
	}
	return venueID, artistID, startTime, nil
}

// ParseStartTime accepts the datetime formats produced by the show form and
// by datetime-local inputs. Times without a zone are taken as UTC.
func ParseStartTime(value string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unable to parse start time: " + value)
}

func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = fe.Field()
	}
	return &ValidationError{Fields: fields}
}

func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// cleanNames trims, drops blanks and removes duplicates, keeping the result sorted.
func cleanNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
