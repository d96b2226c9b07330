package web

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/catalog"
	"github.com/JonasLeetTheWay/fyyur-go/internal/flash"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

type Service struct {
	catalog *catalog.Service
	flashes flash.Store
	static  fs.FS
}

// NewService wires the page handlers. static may be nil when no assets are
// served.
func NewService(catalogService *catalog.Service, flashes flash.Store, static fs.FS) *Service {
	return &Service{
		catalog: catalogService,
		flashes: flashes,
		static:  static,
	}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	r.GET("/", s.Home)

	// Venues
	r.GET("/venues", s.ListVenues)
	r.POST("/venues/search", s.SearchVenues)
	r.GET("/venues/create", s.NewVenueForm)
	r.POST("/venues/create", s.CreateVenue)
	r.GET("/venues/:id", s.ShowVenue)
	r.DELETE("/venues/:id", s.DeleteVenue)
	r.POST("/venues/:id/delete", s.DeleteVenueForm)
	r.GET("/venues/:id/edit", s.EditVenueForm)
	r.POST("/venues/:id/edit", s.UpdateVenue)

	// Artists
	r.GET("/artists", s.ListArtists)
	r.POST("/artists/search", s.SearchArtists)
	r.GET("/artists/create", s.NewArtistForm)
	r.POST("/artists/create", s.CreateArtist)
	r.GET("/artists/:id", s.ShowArtist)
	r.GET("/artists/:id/edit", s.EditArtistForm)
	r.POST("/artists/:id/edit", s.UpdateArtist)

	// Shows
	r.GET("/shows", s.ListShows)
	r.GET("/shows/create", s.NewShowForm)
	r.POST("/shows/create", s.CreateShow)

	if s.static != nil {
		r.StaticFS("/static", http.FS(s.static))
	}
	r.GET("/health", s.HealthCheck)
	r.NoRoute(s.NotFound)
}

// RequestID tags every request with an id, reusing the caller's
// X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Recovery renders the error page when a handler panics.
func (s *Service) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[%s] panic serving %s %s: %v", requestID(c), c.Request.Method, c.Request.URL.Path, recovered)
		s.render(c, http.StatusInternalServerError, "500", gin.H{})
		c.Abort()
	})
}

func (s *Service) Home(c *gin.Context) {
	s.render(c, http.StatusOK, "home", gin.H{})
}

func (s *Service) NotFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "404", gin.H{})
}

func (s *Service) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.catalog.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "fyyur",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fyyur",
	})
}

// render executes page with data plus the notices queued for this browser.
func (s *Service) render(c *gin.Context, status int, page string, data gin.H) {
	messages, err := s.flashes.Pop(c)
	if err != nil {
		logError(c, "read flashes", err)
	}
	data["Flashes"] = messages
	data["Path"] = c.Request.URL.Path
	c.HTML(status, page, data)
}

// fail renders the error page matching err: 404 for missing records, 500
// for everything else.
func (s *Service) fail(c *gin.Context, op string, err error) {
	logError(c, op, err)
	if errors.Is(err, catalog.ErrNotFound) {
		s.NotFound(c)
		return
	}
	s.render(c, http.StatusInternalServerError, "500", gin.H{})
}

// notify queues a notice and sends the browser to location.
func (s *Service) notify(c *gin.Context, location, message string) {
	if err := s.flashes.Add(c, message); err != nil {
		logError(c, "write flash", err)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// idParam parses the :id path segment. Anything that is not a positive
// integer is treated as a missing page.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// invalidFields returns the field names of a validation failure.
func invalidFields(err error) []string {
	var validationErr *catalog.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func logError(c *gin.Context, op string, err error) {
	log.Printf("[%s] %s failed (%s): %v", requestID(c), op, catalog.Kind(err), err)
}
