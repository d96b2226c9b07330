package web

import (
	"net/http"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/catalog"

	"github.com/gin-gonic/gin"
)

// startTimeLayout prefills the start time field of the show form.
const startTimeLayout = "2006-01-02 15:04:05"

func (s *Service) ListShows(c *gin.Context) {
	shows, err := s.catalog.ListShows(c.Request.Context())
	if err != nil {
		s.fail(c, "list shows", err)
		return
	}

	s.render(c, http.StatusOK, "shows", gin.H{"Shows": shows})
}

func (s *Service) NewShowForm(c *gin.Context) {
	form := catalog.ShowInput{StartTime: time.Now().UTC().Format(startTimeLayout)}
	s.render(c, http.StatusOK, "new_show", gin.H{"Form": form})
}

func (s *Service) CreateShow(c *gin.Context) {
	var in catalog.ShowInput
	if err := c.ShouldBind(&in); err != nil {
		logError(c, "bind show form", err)
		s.render(c, http.StatusBadRequest, "new_show", gin.H{"Form": in})
		return
	}

	// Create show
	_, err := s.catalog.CreateShow(c.Request.Context(), in)
	if catalog.IsValidation(err) {
		s.render(c, http.StatusBadRequest, "new_show", gin.H{
			"Form":   in,
			"Errors": invalidFields(err),
		})
		return
	}
	if err != nil {
		logError(c, "create show", err)
		s.notify(c, "/", "An error occurred. Show could not be listed.")
		return
	}

	s.notify(c, "/", "Show was successfully listed!")
}
