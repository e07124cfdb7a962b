package drafts

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

// CookieName carries the signed draft token.
const CookieName = "barali_booking_draft"

var (
	errSecretMissing    = errors.New("draft cookie secret missing")
	errInvalidSignature = errors.New("draft cookie signature invalid")
)

// Cookies signs draft tokens into a short-lived cookie so the
// confirmation view can find the draft the booking view stored.
type Cookies struct {
	secret []byte
	secure bool
	ttl    time.Duration
}

// NewCookies creates a cookie codec. secure controls the Secure flag.
func NewCookies(secret string, secure bool, ttl time.Duration) *Cookies {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cookies{secret: []byte(secret), secure: secure, ttl: ttl}
}

// Set writes the signed token cookie.
func (c *Cookies) Set(w http.ResponseWriter, token string) error {
	if w == nil {
		return errors.New("draft cookie requires response writer")
	}
	signature, err := c.sign(token)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token + "." + signature,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(c.ttl),
		MaxAge:   int(c.ttl.Seconds()),
	})
	return nil
}

// Token returns the verified draft token from r, or "" when the cookie is
// missing. A tampered cookie yields an error.
func (c *Cookies) Token(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", nil
	}

	token, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok || token == "" || signature == "" {
		return "", errInvalidSignature
	}

	expected, err := c.sign(token)
	if err != nil {
		return "", err
	}
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return "", errInvalidSignature
	}
	return token, nil
}

// Clear expires the cookie.
func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func (c *Cookies) sign(token string) (string, error) {
	if len(c.secret) == 0 {
		return "", errSecretMissing
	}
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}
