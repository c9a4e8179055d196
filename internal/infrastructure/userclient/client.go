package userclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domain "seller-service/internal/domain/seller"
	interfaces "seller-service/internal/interfaces/infrastructure"
	"seller-service/pkg/logger"

	"github.com/google/uuid"
)

// Client calls the external user service to validate user references.
// A confirmed missing or inactive user is a normal (false, nil) answer;
// only failures to reach the user service return an error, so callers can
// retry transient failures without retrying definitive ones.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type userResponse struct {
	Data struct {
		ID     uuid.UUID `json:"id"`
		Active bool      `json:"active"`
	} `json:"data"`
}

func (c *Client) ValidateUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	url := fmt.Sprintf("%s/api/v1/users/%s", c.baseURL, userID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build user service request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("User service unreachable: %v", err)
		return false, domain.NewError(domain.ErrKindUpstreamUnavailable, "User service is unavailable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 500:
		logger.Warn("User service returned %d for user %s", resp.StatusCode, userID)
		return false, domain.NewError(domain.ErrKindUpstreamUnavailable, "User service is unavailable")
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("unexpected user service status %d", resp.StatusCode)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode user service response: %w", err)
	}

	return body.Data.Active, nil
}

var _ interfaces.UserValidator = (*Client)(nil)
