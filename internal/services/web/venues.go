package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonasLeetTheWay/fyyur-go/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (s *Service) ListVenues(c *gin.Context) {
	areas, err := s.catalog.ListVenuesByArea(c.Request.Context())
	if err != nil {
		s.fail(c, "list venues", err)
		return
	}

	s.render(c, http.StatusOK, "venues", gin.H{"Areas": areas})
}

func (s *Service) SearchVenues(c *gin.Context) {
	term := c.PostForm("search_term")

	results, err := s.catalog.SearchVenues(c.Request.Context(), term)
	if err != nil {
		s.fail(c, "search venues", err)
		return
	}

	s.render(c, http.StatusOK, "search_venues", gin.H{
		"Results":    results,
		"SearchTerm": term,
	})
}

func (s *Service) ShowVenue(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.NotFound(c)
		return
	}

	venue, err := s.catalog.GetVenue(c.Request.Context(), id)
	if err != nil {
		s.fail(c, "show venue", err)
		return
	}

	s.render(c, http.StatusOK, "show_venue", gin.H{"Venue": venue})
}

func (s *Service) NewVenueForm(c *gin.Context) {
	s.formPage(c, http.StatusOK, "new_venue", gin.H{"Form": catalog.VenueInput{}})
}

func (s *Service) CreateVenue(c *gin.Context) {
	in, ok := bindVenue(c)
	if !ok {
		s.formPage(c, http.StatusBadRequest, "new_venue", gin.H{"Form": in})
		return
	}

	// Create venue
	_, err := s.catalog.CreateVenue(c.Request.Context(), in)
	if catalog.IsValidation(err) {
		s.formPage(c, http.StatusBadRequest, "new_venue", gin.H{
			"Form":   in,
			"Errors": invalidFields(err),
		})
		return
	}
	if err != nil {
		logError(c, "create venue", err)
		s.notify(c, "/", fmt.Sprintf("An error occurred. Venue %s could not be listed.", in.Name))
		return
	}

	s.notify(c, "/", fmt.Sprintf("Venue %s was successfully listed!", in.Name))
}

func (s *Service) EditVenueForm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.NotFound(c)
		return
	}

	form, err := s.catalog.VenueForm(c.Request.Context(), id)
	if err != nil {
		s.fail(c, "load venue", err)
		return
	}

	s.formPage(c, http.StatusOK, "edit_venue", gin.H{"ID": id, "Form": form})
}

func (s *Service) UpdateVenue(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.NotFound(c)
		return
	}

	in, ok := bindVenue(c)
	if !ok {
		s.formPage(c, http.StatusBadRequest, "edit_venue", gin.H{"ID": id, "Form": in})
		return
	}

	location := fmt.Sprintf("/venues/%d", id)
	err := s.catalog.UpdateVenue(c.Request.Context(), id, in)
	switch {
	case err == nil:
		s.notify(c, location, fmt.Sprintf("Venue %s was successfully updated!", in.Name))
	case catalog.IsValidation(err):
		s.formPage(c, http.StatusBadRequest, "edit_venue", gin.H{
			"ID":     id,
			"Form":   in,
			"Errors": invalidFields(err),
		})
	case errors.Is(err, catalog.ErrNotFound):
		s.fail(c, "update venue", err)
	default:
		logError(c, "update venue", err)
		s.notify(c, location, fmt.Sprintf("An error occurred. Venue %s could not be updated.", in.Name))
	}
}

// DeleteVenue answers the JSON delete request sent by the venue page.
func (s *Service) DeleteVenue(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Venue not found",
		})
		return
	}

	err := s.catalog.DeleteVenue(c.Request.Context(), id)
	if err != nil {
		logError(c, "delete venue", err)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Venue not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete venue",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteVenueForm deletes from a plain HTML form and returns to the home page.
func (s *Service) DeleteVenueForm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.NotFound(c)
		return
	}

	err := s.catalog.DeleteVenue(c.Request.Context(), id)
	switch {
	case err == nil:
		s.notify(c, "/", "Venue was successfully deleted.")
	case errors.Is(err, catalog.ErrNotFound):
		s.fail(c, "delete venue", err)
	default:
		logError(c, "delete venue", err)
		s.notify(c, "/", "An error occurred. Venue could not be deleted.")
	}
}

// formPage renders a venue or artist form with the state and genre choices.
func (s *Service) formPage(c *gin.Context, status int, page string, data gin.H) {
	if err := s.addChoices(c, data); err != nil {
		s.fail(c, "load form choices", err)
		return
	}
	s.render(c, status, page, data)
}

func (s *Service) addChoices(c *gin.Context, data gin.H) error {
	states, err := s.catalog.ListStates(c.Request.Context())
	if err != nil {
		return err
	}
	genres, err := s.catalog.ListGenres(c.Request.Context())
	if err != nil {
		return err
	}
	data["States"] = states
	data["Genres"] = genres
	return nil
}

// bindVenue decodes the venue form. The seeking_talent checkbox counts as
// set whenever it is submitted.
func bindVenue(c *gin.Context) (catalog.VenueInput, bool) {
	var in catalog.VenueInput
	if err := c.ShouldBind(&in); err != nil {
		logError(c, "bind venue form", err)
		return in, false
	}
	_, in.SeekingTalent = c.GetPostForm("seeking_talent")
	return in, true
}
