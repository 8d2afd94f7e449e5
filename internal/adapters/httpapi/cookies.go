package httpapi

import (
	"net/http"

	"github.com/example/sprintdesk/internal/ports/secondary"
)

// SessionCookies returns the name and value of every cookie the jar holds
// for the backend.
func (c *Client) SessionCookies() map[string]string {
	out := map[string]string{}
	for _, ck := range c.http.Jar.Cookies(c.base) {
		out[ck.Name] = ck.Value
	}
	return out
}

// SetSessionCookies loads cookies saved by an earlier process into the jar.
func (c *Client) SetSessionCookies(cookies map[string]string) {
	if len(cookies) == 0 {
		return
	}
	list := make([]*http.Cookie, 0, len(cookies))
	for name, value := range cookies {
		list = append(list, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	c.http.Jar.SetCookies(c.base, list)
}

var _ secondary.CookieCarrier = (*Client)(nil)
