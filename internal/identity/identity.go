// Package identity resolves the signed-in user from the session token the
// external identity provider issues. Credentials and sessions are managed
// entirely by the provider; this package only verifies and reads the token.
package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie the identity provider sets after sign-in.
const SessionCookie = "tf_session"

const contextUserKey = "identity.user"

// ErrInvalidToken is returned when the session token fails verification.
var ErrInvalidToken = errors.New("identity: invalid session token")

// User is the identity the provider vouches for.
type User struct {
	ExternalID string
	Email      string
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier checks provider-issued session tokens with the shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given HMAC secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Parse verifies a raw token and extracts the user.
func (v *Verifier) Parse(raw string) (*User, error) {
	claims := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &User{ExternalID: claims.Subject, Email: claims.Email}, nil
}

// Resolve reads the session cookie and, when it verifies, attaches the user
// to the request context. It never blocks the request.
func (v *Verifier) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err == nil && raw != "" {
			if u, err := v.Parse(raw); err == nil {
				c.Set(contextUserKey, u)
			}
		}
		c.Next()
	}
}

// RequireUser redirects signed-out visitors to the sign-in page.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusSeeOther, "/sign-in")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin blocks users whose email is not on the admin allowlist.
func RequireAdmin(admins map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/sign-in")
			c.Abort()
			return
		}
		if !admins[strings.ToLower(u.Email)] {
			c.String(http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user for the request, if any.
func CurrentUser(c *gin.Context) (*User, bool) {
	val, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	u, ok := val.(*User)
	return u, ok
}
