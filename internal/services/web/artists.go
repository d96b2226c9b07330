package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonasLeetTheWay/fyyur-go/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (s *Service) ListArtists(c *gin.Context) {
	artists, err := s.catalog.ListArtists(c.Request.Context())
	if err != nil {
		s.fail(c, "list artists", err)
		return
	}

	s.render(c, http.StatusOK, "artists", gin.H{"Artists": artists})
}

func (s *Service) SearchArtists(c *gin.Context) {
	term := c.PostForm("search_term")

	results, err := s.catalog.SearchArtists(c.Request.Context(), term)
	if err != nil {
		s.fail(c, "search artists", err)
		return
	}

	s.render(c, http.StatusOK, "search_artists", gin.H{
		"Results":    results,
		"SearchTerm": term,
	})
}

func (s *Service) ShowArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.NotFound(c)
		return
	}

	artist, err := s.catalog.GetArtist(c.Request.Context(), id)
	if err != nil {
		s.fail(c, "show artist", err)
		return
	}

	s.render(c, http.StatusOK, "show_artist", gin.H{"Artist": artist})
}

func (s *Service) NewArtistForm(c *gin.Context) {
	s.formPage(c, http.StatusOK, "new_artist", gin.H{"Form": catalog.ArtistInput{}})
}

func (s *Service) CreateArtist(c *gin.Context) {
	in, ok := bindArtist(c)
	if !ok {
		s.formPage(c, http.StatusBadRequest, "new_artist", gin.H{"Form": in})
		return
	}

	// Create artist
	_, err := s.catalog.CreateArtist(c.Request.Context(), in)
	if catalog.IsValidation(err) {
		s.formPage(c, http.StatusBadRequest, "new_artist", gin.H{
			"Form":   in,
			"Errors": invalidFields(err),
		})
		return
	}
	if err != nil {
		logError(c, "create artist", err)
		s.notify(c, "/", fmt.Sprintf("An error occurred. Artist %s could not be listed.", in.Name))
		return
	}

	s.notify(c, "/", fmt.Sprintf("Artist %s was successfully listed!", in.Name))
}

func (s *Service) EditArtistForm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.NotFound(c)
		return
	}

	form, err := s.catalog.ArtistForm(c.Request.Context(), id)
	if err != nil {
		s.fail(c, "load artist", err)
		return
	}

	s.formPage(c, http.StatusOK, "edit_artist", gin.H{"ID": id, "Form": form})
}

func (s *Service) UpdateArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.NotFound(c)
		return
	}

	in, ok := bindArtist(c)
	if !ok {
		s.formPage(c, http.StatusBadRequest, "edit_artist", gin.H{"ID": id, "Form": in})
		return
	}

	location := fmt.Sprintf("/artists/%d", id)
	err := s.catalog.UpdateArtist(c.Request.Context(), id, in)
	switch {
	case err == nil:
		s.notify(c, location, fmt.Sprintf("Artist %s was successfully updated!", in.Name))
	case catalog.IsValidation(err):
		s.formPage(c, http.StatusBadRequest, "edit_artist", gin.H{
			"ID":     id,
			"Form":   in,
			"Errors": invalidFields(err),
		})
	case errors.Is(err, catalog.ErrNotFound):
		s.fail(c, "update artist", err)
	default:
		logError(c, "update artist", err)
		s.notify(c, location, fmt.Sprintf("An error occurred. Artist %s could not be updated.", in.Name))
	}
}

// bindArtist decodes the artist form. The seeking_venue checkbox counts as
// set whenever it is submitted.
func bindArtist(c *gin.Context) (catalog.ArtistInput, bool) {
	var in catalog.ArtistInput
	if err := c.ShouldBind(&in); err != nil {
		logError(c, "bind artist form", err)
		return in, false
	}
	_, in.SeekingVenue = c.GetPostForm("seeking_venue")
	return in, true
}
