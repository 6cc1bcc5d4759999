package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

type sessionFile struct {
	BaseURL string          `json:"base_url"`
	Cookies []sessionCookie `json:"cookies"`
}

type sessionCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Login posts the login form. The backend answers a good login with a page
// and a session cookie, and a bad one with a redirect back to /login.
func (c *Client) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	form := url.Values{"email": {email}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve("/login"), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build login: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	hc := *c.http
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return ErrInvalidCredentials
	case resp.StatusCode >= 400:
		return &StatusError{Method: http.MethodPost, Path: "/login", Status: resp.StatusCode}
	}
	if len(c.http.Jar.Cookies(c.base)) == 0 {
		return fmt.Errorf("login: %w", ErrNoSession)
	}
	return nil
}

// SaveSession writes the session cookies for the base URL to path (0600).
func (c *Client) SaveSession(path string) error {
	cookies := c.http.Jar.Cookies(c.base)
	if len(cookies) == 0 {
		return ErrNoSession
	}
	sf := sessionFile{BaseURL: c.base.String()}
	for _, ck := range cookies {
		sf.Cookies = append(sf.Cookies, sessionCookie{Name: ck.Name, Value: ck.Value})
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadSession restores cookies saved by SaveSession. A missing file, or one
// saved for another backend, is ErrNoSession.
func (c *Client) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNoSession
		}
		return fmt.Errorf("read session: %w", err)
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	if sf.BaseURL != c.base.String() || len(sf.Cookies) == 0 {
		return ErrNoSession
	}
	cookies := make([]*http.Cookie, 0, len(sf.Cookies))
	for _, ck := range sf.Cookies {
		cookies = append(cookies, &http.Cookie{Name: ck.Name, Value: ck.Value, Path: "/"})
	}
	c.http.Jar.SetCookies(c.base, cookies)
	return nil
}

func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
