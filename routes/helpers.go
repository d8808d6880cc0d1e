package routes

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ibrahimbiplob75/taskhub/models"
	"github.com/ibrahimbiplob75/taskhub/services"

	"github.com/gin-gonic/gin"
)

// statusForError maps service errors onto the HTTP taxonomy. Anything
// unrecognized is an internal failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrParentTaskNotFound),
		errors.Is(err, services.ErrMeetingNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmailExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

// callerID returns the authenticated user id. Handlers behind
// AuthMiddleware can rely on it being present.
func callerID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// optionalCaller returns the caller id when the request carried a valid
// token, nil otherwise.
func optionalCaller(c *gin.Context) *uint {
	if id, ok := callerID(c); ok {
		return &id
	}
	return nil
}

func requireCaller(c *gin.Context) (uint, bool) {
	id, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return id, ok
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", services.ErrValidation, name, raw)
	}
	return uint(id), nil
}

// parseUintQuery parses an optional numeric query parameter. Non-numeric
// values are rejected rather than silently dropped.
func parseUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", services.ErrValidation, name, raw)
	}
	value := uint(id)
	return &value, nil
}

func parseIntQuery(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", services.ErrValidation, name, raw)
	}
	return value, nil
}

// PageLink is one entry of the page-link control: Previous, a numbered
// page, or Next. URL is nil when the link is not navigable.
type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// buildPageLinks synthesizes the navigable link list for a listing,
// reusing the request's query string with only the page replaced.
func buildPageLinks(c *gin.Context, meta models.PageMeta) []PageLink {
	pageURL := func(page int) *string {
		u := url.URL{
			Scheme: "http",
			Host:   c.Request.Host,
			Path:   c.Request.URL.Path,
		}
		if c.Request.TLS != nil {
			u.Scheme = "https"
		}
		query := c.Request.URL.Query()
		query.Set("page", strconv.Itoa(page))
		u.RawQuery = query.Encode()
		s := u.String()
		return &s
	}

	links := make([]PageLink, 0, meta.LastPage+2)

	previous := PageLink{Label: "Previous"}
	if meta.Page > 1 {
		previous.URL = pageURL(meta.Page - 1)
	}
	links = append(links, previous)

	for page := 1; page <= meta.LastPage; page++ {
		links = append(links, PageLink{
			URL:    pageURL(page),
			Label:  strconv.Itoa(page),
			Active: page == meta.Page,
		})
	}

	next := PageLink{Label: "Next"}
	if meta.Page < meta.LastPage {
		next.URL = pageURL(meta.Page + 1)
	}
	links = append(links, next)

	return links
}
