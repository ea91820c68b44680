// Package dashboard is a minimal HTTP client for the remote time-tracking API.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorewood/worklog/internal/logging"
	"github.com/gorewood/worklog/internal/output"
)

// DefaultBaseURL is the dashboard API root the official UI talks to.
const DefaultBaseURL = "https://app.povio.com/api/castro/professional"

// sessionCookieName is the dashboard session cookie. Tokens supplied without
// the cookie-name prefix get it prepended.
const sessionCookieName = "_session_id"

// userAgent mirrors what the dashboard's own UI sends; the endpoint rejects
// obviously non-browser agents.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// ErrProjectNotFound signals that a project name resolved to nothing.
var ErrProjectNotFound = errors.New("project not found")

// Project is one entry of the user's assigned-project listing.
// Fetched fresh on every resolution call; never cached.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PostResult is the outcome of a worklog submission.
// Posting failures are values, not errors, so a generate-and-post composition
// can still return the generated draft alongside the failure.
type PostResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the dashboard API. It owns the session token for its
// lifetime; the token is read once at construction and never refreshed.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPDoer
}

// New creates a dashboard client. The token is required; an empty baseURL
// falls back to DefaultBaseURL.
func New(token, baseURL string) (*Client, error) {
	if token == "" {
		return nil, output.NewUserError(
			"POVIO_API_TOKEN not configured. Set it in the environment or an env file.")
	}

	if !strings.HasPrefix(token, sessionCookieName+"=") {
		token = sessionCookieName + "=" + token
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// ListProjects fetches the user's assigned projects.
// Entries without a positive numeric id or a non-empty name are dropped;
// an empty surviving list is an error.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	body, status, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/projects", "", nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, c.apiError("failed to list projects", status, body)
	}

	entries, err := decodeProjects(body)
	if err != nil {
		return nil, output.NewSystemError("failed to list projects: unexpected response body (expected a project array)")
	}

	projects := make([]Project, 0, len(entries))
	for _, p := range entries {
		if p.ID <= 0 || strings.TrimSpace(p.Name) == "" {
			continue
		}
		projects = append(projects, p)
	}

	if len(projects) == 0 {
		return nil, output.NewSystemError("failed to list projects: no valid projects in response")
	}

	return projects, nil
}

// decodeProjects accepts either a bare JSON array or a {"projects": [...]}
// wrapper, matching both shapes the dashboard has served. Elements are decoded
// one at a time; an entry that does not fit the Project shape (a string id,
// say) is dropped instead of failing the whole listing.
func decodeProjects(body []byte) ([]Project, error) {
	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return decodeProjectEntries(bare), nil
	}

	var wrapped struct {
		Projects []json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Projects != nil {
		return decodeProjectEntries(wrapped.Projects), nil
	}

	return nil, errors.New("response is not a project array")
}

// decodeProjectEntries decodes each array element independently, skipping
// malformed ones.
func decodeProjectEntries(raw []json.RawMessage) []Project {
	projects := make([]Project, 0, len(raw))
	for _, entry := range raw {
		var p Project
		if err := json.Unmarshal(entry, &p); err != nil {
			continue
		}
		projects = append(projects, p)
	}
	return projects
}

// ResolveProjectID resolves a human project name to its numeric id.
// Tries exact case-insensitive match first, then case-insensitive substring.
// Every call re-fetches the listing; project assignments change server-side.
func (c *Client) ResolveProjectID(ctx context.Context, name string) (int, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return 0, err
	}

	for _, p := range projects {
		if strings.EqualFold(p.Name, name) {
			return p.ID, nil
		}
	}

	lowerName := strings.ToLower(name)
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), lowerName) {
			return p.ID, nil
		}
	}

	return 0, output.NewUserErrorWithCause(fmt.Sprintf(
		"project %q not found; use the project-listing tool to see available projects", name),
		ErrProjectNotFound)
}

// postPayload is the submission body, shaped exactly like the dashboard UI's
// own request (estimate travels as a string).
type postPayload struct {
	Description string `json:"description"`
	ProjectID   int    `json:"project_id"`
	Estimate    string `json:"estimate"`
	EndDate     string `json:"end_date"`
}

// PostWorklog submits a worklog entry for a date/hours/description/project
// tuple. Failures are reported in the result, never raised: the caller may
// hold a successfully generated draft that is still worth returning.
//
// The request carries the Sunday-through-Saturday week containing the date as
// query parameters; the endpoint requires them even though the payload alone
// identifies the entry.
func (c *Client) PostWorklog(ctx context.Context, description string, projectID int, hours float64, date string) PostResult {
	if projectID <= 0 {
		return PostResult{Message: "✗ no project ID provided and no default project configured"}
	}
	if hours <= 0 {
		return PostResult{Message: "✗ hours must be a positive number"}
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return PostResult{Message: fmt.Sprintf("✗ invalid date %q: expected YYYY-MM-DD", date)}
	}

	weekStart, weekEnd := weekRange(day)
	query := url.Values{}
	query.Set("filters[daterange_start]", weekStart)
	query.Set("filters[daterange_end]", weekEnd)
	query.Set("filters[project_id]", "")
	query.Set("filters[group]", "day")

	payload := postPayload{
		Description: description,
		ProjectID:   projectID,
		Estimate:    strconv.FormatFloat(hours, 'f', -1, 64),
		EndDate:     date,
	}

	endpoint := c.baseURL + "/time_logs?" + query.Encode()
	body, status, err := c.doRequest(ctx, http.MethodPost, endpoint, "application/json", payload)
	if err != nil {
		return PostResult{Message: "✗ failed to post worklog: " + c.sanitize(err.Error())}
	}
	if status < 200 || status >= 300 {
		apiErr := c.apiError("failed to post worklog", status, body)
		return PostResult{Message: "✗ " + apiErr.Error()}
	}

	return PostResult{
		Success: true,
		Message: fmt.Sprintf("✓ Worklog posted successfully!\nDate: %s\nHours: %g\nProject ID: %d",
			date, hours, projectID),
	}
}

// weekRange returns the Sunday-start/Saturday-end week containing day,
// formatted as ISO dates. time.Weekday numbers Sunday as 0.
func weekRange(day time.Time) (start, end string) {
	weekday := int(day.Weekday())
	startDay := day.AddDate(0, 0, -weekday)
	endDay := day.AddDate(0, 0, 6-weekday)
	return startDay.Format("2006-01-02"), endDay.Format("2006-01-02")
}

// doRequest performs an HTTP request with the session cookie attached.
// Returns the response body and status; transport failures are errors.
func (c *Client) doRequest(ctx context.Context, method, endpoint, contentType string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, output.NewSystemErrorWithCause("failed to marshal request", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, 0, output.NewSystemErrorWithCause("failed to create request", err)
	}

	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Cookie", c.token)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, output.NewSystemErrorWithCause("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, output.NewSystemErrorWithCause("failed to read response", err)
	}

	logging.Logger().Debug().
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Int("body_bytes", len(respBody)).
		Msg("dashboard request")

	return respBody, resp.StatusCode, nil
}

// apiError builds a coded error for a non-success dashboard response.
// The body is sanitized and truncated before it can reach any output path.
func (c *Client) apiError(action string, status int, body []byte) *output.ExitError {
	return output.NewSystemError(fmt.Sprintf("%s: dashboard API error (status %d): %s",
		action, status, c.sanitize(string(body))))
}

// sanitize redacts the session token and token-like runs from outward-facing
// text and truncates it.
func (c *Client) sanitize(text string) string {
	return Sanitize(text, c.token)
}
