// Package clients holds the HTTP clients the services use to talk to each
// other. The caller's Authorization header value is forwarded unchanged;
// each peer performs its own authorization.
package clients

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

var (
	// ErrUnauthorized means the peer rejected the forwarded credential.
	ErrUnauthorized = errors.New("credential rejected by peer service")
	// ErrUserNotFound means the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrServiceUnavailable covers network failures and unexpected peer errors.
	ErrServiceUnavailable = errors.New("peer service unavailable")
)

// envelope is the wire shape every service responds with.
type envelope struct {
	Status  string          `json:"status"`
	Mensaje string          `json:"mensaje,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// statusToErr maps a non-200 peer status code to a typed error.
func statusToErr(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		return ErrServiceUnavailable
	}
}
