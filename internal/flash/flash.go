// Package flash carries one-shot notices across a redirect.
package flash

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CookieName holds the encoded notices for the cookie store.
	CookieName = "fyyur_flash"
	// SessionCookieName identifies the browser for the Redis store.
	SessionCookieName = "fyyur_sid"

	pendingKey = "flash.pending"
)

// Store queues notices for the next page a browser renders.
type Store interface {
	Add(c *gin.Context, message string) error
	Pop(c *gin.Context) ([]string, error)
}

// CookieStore keeps notices in a cookie on the browser.
type CookieStore struct {
	ttl time.Duration
}

func NewCookieStore(ttl time.Duration) *CookieStore {
	return &CookieStore{ttl: ttl}
}

func (s *CookieStore) Add(c *gin.Context, message string) error {
	messages, ok := pending(c)
	if !ok {
		// An unreadable cookie is overwritten.
		messages, _ = readCookie(c)
	}
	messages = append(messages, message)
	c.Set(pendingKey, messages)

	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode flashes: %w", err)
	}
	setCookie(c, CookieName, base64.URLEncoding.EncodeToString(raw), int(s.ttl.Seconds()))
	return nil
}

func (s *CookieStore) Pop(c *gin.Context) ([]string, error) {
	if _, err := c.Request.Cookie(CookieName); err == nil {
		setCookie(c, CookieName, "", -1)
	}
	return readCookie(c)
}

func readCookie(c *gin.Context) ([]string, error) {
	value, err := c.Cookie(CookieName)
	if err != nil || value == "" {
		return nil, nil
	}
	raw, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode flash cookie: %w", err)
	}
	var messages []string
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("decode flash cookie: %w", err)
	}
	return messages, nil
}

// Queue is the Redis side of RedisStore.
type Queue interface {
	PushFlash(ctx context.Context, sessionID, message string, ttl time.Duration) error
	PopFlashes(ctx context.Context, sessionID string) ([]string, error)
}

// RedisStore keeps notices in Redis, keyed by a random per-browser id.
type RedisStore struct {
	queue Queue
	ttl   time.Duration
}

func NewRedisStore(queue Queue, ttl time.Duration) *RedisStore {
	return &RedisStore{queue: queue, ttl: ttl}
}

func (s *RedisStore) Add(c *gin.Context, message string) error {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		sessionID = uuid.NewString()
		setCookie(c, SessionCookieName, sessionID, 0)
	}
	return s.queue.PushFlash(c.Request.Context(), sessionID, message, s.ttl)
}

func (s *RedisStore) Pop(c *gin.Context) ([]string, error) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return nil, nil
	}
	return s.queue.PopFlashes(c.Request.Context(), sessionID)
}

// pending returns the notices already added during this request.
func pending(c *gin.Context) ([]string, bool) {
	v, ok := c.Get(pendingKey)
	if !ok {
		return nil, false
	}
	messages, ok := v.([]string)
	return messages, ok
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}
