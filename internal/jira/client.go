package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/Gyeom/jira-automation/internal/config"
	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/httpclient"
	"github.com/Gyeom/jira-automation/internal/models"
)

// Client talks to a Jira Cloud instance over its v3 REST API and the agile
// API. Every call checks the credential triple first so a misconfigured
// client fails with a remediation hint instead of a 401.
type Client struct {
	cfg    *config.JiraConfig
	client httpclient.HTTPClient
}

// NewClient creates a tracker client bound to the given configuration.
func NewClient(cfg *config.Config, client httpclient.HTTPClient) *Client {
	return &Client{
		cfg:    &cfg.JiraConfig,
		client: client,
	}
}

func (c *Client) baseURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/")
}

func (c *Client) checkCredentials() error {
	if c.cfg.BaseURL == "" || c.cfg.Email == "" || c.cfg.APIKey == "" {
		return apperrors.ErrJiraNotConfigured
	}
	return nil
}

// BrowseURL builds the human-facing URL of an issue.
func (c *Client) BrowseURL(issueKey string) string {
	return fmt.Sprintf("%s/browse/%s", c.baseURL(), issueKey)
}

// CreateIssue files the assembled creation request and returns the new
// issue's identifiers.
func (c *Client) CreateIssue(ctx context.Context, request issueRequest) (*models.CreatedIssue, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response createdIssueResponse
	url := fmt.Sprintf("%s/rest/api/3/issue", c.baseURL())
	if err := c.doJSON(ctx, http.MethodPost, url, request, &response); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	return &models.CreatedIssue{
		ID:   response.ID,
		Key:  response.Key,
		Self: response.Self,
	}, nil
}

// CreateTicket assembles the creation payload from ticket fields plus
// metadata and files it.
func (c *Client) CreateTicket(ctx context.Context, ticket models.Ticket, meta models.TicketMetadata) (*models.CreatedIssue, error) {
	return c.CreateIssue(ctx, BuildCreateRequest(ticket, meta, c.cfg))
}

// TestConnection verifies the credentials against the current-user endpoint.
func (c *Client) TestConnection(ctx context.Context) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/rest/api/3/myself", c.baseURL())
	if err := c.doJSON(ctx, http.MethodGet, url, nil, nil); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	return nil
}

// doJSON performs one request and decodes the response body into out when
// out is non-nil. Non-2xx statuses are rendered through the tracker's error
// body format.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", basicAuth(c.cfg.Email, c.cfg.APIKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			fmt.Println("error closing response body:", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// apiError renders the tracker's error body, which carries either a list of
// messages or a field-to-message map, into one combined string.
func apiError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var body apiErrorResponse
	if err := json.Unmarshal(data, &body); err == nil {
		if len(body.ErrorMessages) > 0 {
			return fmt.Errorf("%s", strings.Join(body.ErrorMessages, ", "))
		}
		if len(body.Errors) > 0 {
			parts := make([]string, 0, len(body.Errors))
			for field, message := range body.Errors {
				parts = append(parts, fmt.Sprintf("%s: %s", field, message))
			}
			sort.Strings(parts)
			return fmt.Errorf("%s", strings.Join(parts, ", "))
		}
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

func basicAuth(username, token string) string {
	credentials := fmt.Sprintf("%s:%s", username, token)
	return fmt.Sprintf("Basic %s", base64.StdEncoding.EncodeToString([]byte(credentials)))
}
