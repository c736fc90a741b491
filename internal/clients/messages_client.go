package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/capasdev/redsocial/internal/models"
)

// MessageFetcher returns one user's messages, newest first by the
// Mensajes service's contract.
type MessageFetcher interface {
	FetchMessages(ctx context.Context, username, credential string) ([]models.Mensaje, error)
}

// HTTPMessagesClient implements MessageFetcher against the Mensajes service.
type HTTPMessagesClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPMessagesClient creates a new HTTPMessagesClient. baseURL is the
// Mensajes service prefix, e.g. http://localhost:3311/redesSocial/mensajes.
func NewHTTPMessagesClient(baseURL string, timeout time.Duration) *HTTPMessagesClient {
	return &HTTPMessagesClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
	}
}

func (c *HTTPMessagesClient) FetchMessages(ctx context.Context, username, credential string) ([]models.Mensaje, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+username, nil)
	if err != nil {
		return nil, fmt.Errorf("building messages request: %w", err)
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
		return nil, fmt.Errorf("%w: decoding messages response: %v", ErrServiceUnavailable, err)
	}

	mensajes := []models.Mensaje{}
	if err := json.Unmarshal(env.Data, &mensajes); err != nil {
		return nil, fmt.Errorf("%w: decoding message list: %v", ErrServiceUnavailable, err)
	}
	return mensajes, nil
}
