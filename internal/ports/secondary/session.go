package secondary

import "context"

// SessionStore persists backend session cookies between CLI invocations.
type SessionStore interface {
	// SaveCookies replaces the cookies stored for baseURL.
	SaveCookies(ctx context.Context, baseURL string, cookies map[string]string) error

	// LoadCookies returns the cookies stored for baseURL, or an empty map.
	LoadCookies(ctx context.Context, baseURL string) (map[string]string, error)

	// ClearCookies forgets the cookies stored for baseURL.
	ClearCookies(ctx context.Context, baseURL string) error
}

// CookieCarrier is implemented by transports that keep the session in cookies.
type CookieCarrier interface {
	SessionCookies() map[string]string
	SetSessionCookies(cookies map[string]string)
}
