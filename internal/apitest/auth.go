package apitest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionCookie = "session"
	ctxUserKey    = "session_user"
)

// sessionTTL is how long a login cookie stays valid.
const sessionTTL = time.Hour

// sessionKey signs login cookies. The cookie carries only the user id (as
// the subject) and an expiry; the account itself is read from the store on
// every request.
type sessionKey []byte

func (k sessionKey) issue(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(k))
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return raw, nil
}

// userID verifies raw and returns the user it was issued to.
func (k sessionKey) userID(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return []byte(k), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("verify session: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("verify session: no subject")
	}
	return claims.Subject, nil
}

// requireSession rejects requests without a valid session cookie with the
// JSON 401 the scripts expect.
func (s *Server) requireSession(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		id, err := s.key.userID(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		u, err := s.Store.userByID(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

func currentUser(c *gin.Context) *User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*User)
	return u
}

// login is the form login: a page and a cookie on success, a redirect
// back to /login otherwise.
func (s *Server) login(c *gin.Context) {
	u, err := s.Store.userByEmail(c.Request.Context(), c.PostForm("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(c.PostForm("password"))) != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	token, err := s.key.issue(u.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}
	c.SetCookie(SessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!doctype html><p>Login successful</p>"))
}

// HashPassword is bcrypt at minimum cost, enough for a fake.
func HashPassword(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}
