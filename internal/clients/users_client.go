package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/capasdev/redsocial/internal/models"
)

// UserVerifier confirms that a username exists and that the forwarded
// credential is valid, returning the canonical user record.
type UserVerifier interface {
	VerifyUser(ctx context.Context, username, credential string) (*models.Usuario, error)
}

// HTTPUsersClient implements UserVerifier against the Usuarios service.
type HTTPUsersClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPUsersClient creates a new HTTPUsersClient. baseURL is the Usuarios
// service prefix, e.g. http://localhost:3310/redesSocial/usuarios.
func NewHTTPUsersClient(baseURL string, timeout time.Duration) *HTTPUsersClient {
	return &HTTPUsersClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
	}
}

func (c *HTTPUsersClient) VerifyUser(ctx context.Context, username, credential string) (*models.Usuario, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+username, nil)
	if err != nil {
		return nil, fmt.Errorf("building user lookup request: %w", err)
	}
	req.Header.Set("Authorization", credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusToErr(resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decoding user response: %v", ErrServiceUnavailable, err)
	}

	var usuario models.Usuario
	if err := json.Unmarshal(env.Data, &usuario); err != nil {
		return nil, fmt.Errorf("%w: decoding user record: %v", ErrServiceUnavailable, err)
	}
	return &usuario, nil
}
