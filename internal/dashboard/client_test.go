package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/worklog/internal/output"
)

func mustParseDate(t *testing.T, date string) time.Time {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return day
}

// mockHTTPDoer implements HTTPDoer for testing, recording each request.
type mockHTTPDoer struct {
	response *http.Response
	err      error
	requests []*http.Request
	bodies   []string
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	body := ""
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	m.bodies = append(m.bodies, body)
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func mockResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, doer HTTPDoer) *Client {
	t.Helper()
	client, err := New("test-token", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.httpClient = doer
	return client
}

func TestNew(t *testing.T) {
	t.Run("empty token rejected", func(t *testing.T) {
		_, err := New("", "")
		if err == nil {
			t.Fatal("expected error for empty token")
		}
		if output.GetExitCode(err) != output.ExitUserError {
			t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
		}
	})

	t.Run("cookie prefix prepended", func(t *testing.T) {
		client, err := New("abc123", "")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if client.token != "_session_id=abc123" {
			t.Errorf("token = %q, want prefixed form", client.token)
		}
	})

	t.Run("existing prefix kept", func(t *testing.T) {
		client, err := New("_session_id=abc123", "")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if client.token != "_session_id=abc123" {
			t.Errorf("token = %q, want unchanged", client.token)
		}
	})

	t.Run("base URL defaults and trailing slash trimmed", func(t *testing.T) {
		client, _ := New("abc", "")
		if client.baseURL != DefaultBaseURL {
			t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
		}
		client, _ = New("abc", "https://example.com/api/")
		if client.baseURL != "https://example.com/api" {
			t.Errorf("baseURL = %q, want trailing slash removed", client.baseURL)
		}
	})
}

func TestListProjects(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(200,
			`[{"id": 1, "name": "FaceFlip"}, {"id": 2, "name": "Backend"}]`)}
		client := newTestClient(t, doer)

		projects, err := client.ListProjects(context.Background())
		if err != nil {
			t.Fatalf("ListProjects error = %v", err)
		}
		if len(projects) != 2 {
			t.Fatalf("got %d projects, want 2", len(projects))
		}
		if projects[0].Name != "FaceFlip" || projects[0].ID != 1 {
			t.Errorf("projects[0] = %+v", projects[0])
		}

		req := doer.requests[0]
		if req.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", req.Method)
		}
		if !strings.HasSuffix(req.URL.Path, "/projects") {
			t.Errorf("path = %q, want /projects suffix", req.URL.Path)
		}
		if got := req.Header.Get("Cookie"); got != "_session_id=test-token" {
			t.Errorf("Cookie = %q", got)
		}
		if got := req.Header.Get("User-Agent"); !strings.HasPrefix(got, "Mozilla/") {
			t.Errorf("User-Agent = %q, want browser-like", got)
		}
	})

	t.Run("wrapped object", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(200,
			`{"projects": [{"id": 7, "name": "FaceFlip"}]}`)}
		client := newTestClient(t, doer)

		projects, err := client.ListProjects(context.Background())
		if err != nil {
			t.Fatalf("ListProjects error = %v", err)
		}
		if len(projects) != 1 || projects[0].ID != 7 {
			t.Errorf("projects = %+v", projects)
		}
	})

	t.Run("invalid entries dropped", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(200,
			`[{"id": 0, "name": "Zero"}, {"id": 3, "name": "  "}, {"id": 4, "name": "Kept"}]`)}
		client := newTestClient(t, doer)

		projects, err := client.ListProjects(context.Background())
		if err != nil {
			t.Fatalf("ListProjects error = %v", err)
		}
		if len(projects) != 1 || projects[0].Name != "Kept" {
			t.Errorf("projects = %+v, want only the valid entry", projects)
		}
	})

	t.Run("entries with a non-numeric id dropped", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(200,
			`[{"id": "legacy", "name": "Bad"}, {"id": 4, "name": "Kept"}]`)}
		client := newTestClient(t, doer)

		projects, err := client.ListProjects(context.Background())
		if err != nil {
			t.Fatalf("ListProjects error = %v", err)
		}
		if len(projects) != 1 || projects[0].ID != 4 || projects[0].Name != "Kept" {
			t.Errorf("projects = %+v, want only the decodable entry", projects)
		}
	})

	t.Run("no valid entries is an error", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(200, `[{"id": 0, "name": ""}]`)}
		client := newTestClient(t, doer)

		if _, err := client.ListProjects(context.Background()); err == nil {
			t.Fatal("expected error for a listing with no valid projects")
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(401, `{"error": "unauthorized"}`)}
		client := newTestClient(t, doer)

		_, err := client.ListProjects(context.Background())
		if err == nil {
			t.Fatal("expected error for 401")
		}
		if !strings.Contains(err.Error(), "status 401") {
			t.Errorf("error = %q, want status in message", err.Error())
		}
		if output.GetExitCode(err) != output.ExitSystemError {
			t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(200, `<html>login page</html>`)}
		client := newTestClient(t, doer)

		if _, err := client.ListProjects(context.Background()); err == nil {
			t.Fatal("expected error for a non-JSON body")
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		doer := &mockHTTPDoer{err: errors.New("connection refused")}
		client := newTestClient(t, doer)

		if _, err := client.ListProjects(context.Background()); err == nil {
			t.Fatal("expected error for transport failure")
		}
	})
}

func TestResolveProjectID(t *testing.T) {
	listing := `[{"id": 1, "name": "FaceFlip"}, {"id": 2, "name": "Backend Platform"}]`

	tests := []struct {
		name    string
		query   string
		wantID  int
		wantErr bool
	}{
		{"exact match", "FaceFlip", 1, false},
		{"exact match case insensitive", "faceflip", 1, false},
		{"substring match", "face", 1, false},
		{"substring match case insensitive", "PLATFORM", 2, false},
		{"no match", "Mobile", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mockHTTPDoer{response: mockResponse(200, listing)}
			client := newTestClient(t, doer)

			id, err := client.ResolveProjectID(context.Background(), tt.query)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrProjectNotFound) {
					t.Errorf("error = %v, want ErrProjectNotFound", err)
				}
				if output.GetExitCode(err) != output.ExitUserError {
					t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveProjectID error = %v", err)
			}
			if id != tt.wantID {
				t.Errorf("id = %d, want %d", id, tt.wantID)
			}
		})
	}

	t.Run("exact match outranks substring", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(200,
			`[{"id": 1, "name": "FaceFlip Mobile"}, {"id": 2, "name": "FaceFlip"}]`)}
		client := newTestClient(t, doer)

		id, err := client.ResolveProjectID(context.Background(), "faceflip")
		if err != nil {
			t.Fatalf("ResolveProjectID error = %v", err)
		}
		if id != 2 {
			t.Errorf("id = %d, want the exact match (2)", id)
		}
	})
}

func TestPostWorklog(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(201, `{}`)}
		client := newTestClient(t, doer)

		// 2024-10-11 is a Friday; its Sunday-start week is Oct 6 through Oct 12.
		result := client.PostWorklog(context.Background(), "Did things", 42, 7.5, "2024-10-11")

		if !result.Success {
			t.Fatalf("Success = false: %s", result.Message)
		}
		for _, want := range []string{"✓ Worklog posted successfully!", "Date: 2024-10-11", "Hours: 7.5", "Project ID: 42"} {
			if !strings.Contains(result.Message, want) {
				t.Errorf("message missing %q: %s", want, result.Message)
			}
		}

		req := doer.requests[0]
		if req.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", req.Method)
		}
		if !strings.HasSuffix(req.URL.Path, "/time_logs") {
			t.Errorf("path = %q, want /time_logs suffix", req.URL.Path)
		}
		query := req.URL.Query()
		if got := query.Get("filters[daterange_start]"); got != "2024-10-06" {
			t.Errorf("daterange_start = %q, want 2024-10-06", got)
		}
		if got := query.Get("filters[daterange_end]"); got != "2024-10-12" {
			t.Errorf("daterange_end = %q, want 2024-10-12", got)
		}
		if got := query.Get("filters[group]"); got != "day" {
			t.Errorf("group = %q, want day", got)
		}
		if _, present := query["filters[project_id]"]; !present {
			t.Error("filters[project_id] missing from query")
		}

		var payload map[string]any
		if err := json.Unmarshal([]byte(doer.bodies[0]), &payload); err != nil {
			t.Fatalf("payload is not JSON: %v", err)
		}
		if payload["description"] != "Did things" {
			t.Errorf("description = %v", payload["description"])
		}
		if payload["project_id"] != float64(42) {
			t.Errorf("project_id = %v", payload["project_id"])
		}
		if payload["estimate"] != "7.5" {
			t.Errorf("estimate = %v, want the string \"7.5\"", payload["estimate"])
		}
		if payload["end_date"] != "2024-10-11" {
			t.Errorf("end_date = %v", payload["end_date"])
		}
		if got := req.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
	})

	t.Run("validation failures never hit the network", func(t *testing.T) {
		tests := []struct {
			name      string
			projectID int
			hours     float64
			date      string
		}{
			{"missing project", 0, 8, "2024-10-11"},
			{"zero hours", 42, 0, "2024-10-11"},
			{"negative hours", 42, -1, "2024-10-11"},
			{"bad date", 42, 8, "10/11/2024"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				doer := &mockHTTPDoer{response: mockResponse(201, `{}`)}
				client := newTestClient(t, doer)

				result := client.PostWorklog(context.Background(), "x", tt.projectID, tt.hours, tt.date)
				if result.Success {
					t.Error("Success = true, want validation failure")
				}
				if !strings.HasPrefix(result.Message, "✗ ") {
					t.Errorf("Message = %q, want the failure marker prefix", result.Message)
				}
				if len(doer.requests) != 0 {
					t.Errorf("made %d requests, want 0", len(doer.requests))
				}
			})
		}
	})

	t.Run("api failure reported in result", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(422, `{"error": "description too short"}`)}
		client := newTestClient(t, doer)

		result := client.PostWorklog(context.Background(), "x", 42, 8, "2024-10-11")
		if result.Success {
			t.Fatal("Success = true, want failure")
		}
		if !strings.Contains(result.Message, "status 422") {
			t.Errorf("message = %q, want status included", result.Message)
		}
		if !strings.HasPrefix(result.Message, "✗ ") {
			t.Errorf("message = %q, want the failure marker prefix", result.Message)
		}
	})

	t.Run("token never leaks into failure messages", func(t *testing.T) {
		doer := &mockHTTPDoer{response: mockResponse(401, `rejected token _session_id=test-token in cookie`)}
		client := newTestClient(t, doer)

		result := client.PostWorklog(context.Background(), "x", 42, 8, "2024-10-11")
		if strings.Contains(result.Message, "test-token") {
			t.Errorf("message leaks the token: %s", result.Message)
		}
		if !strings.Contains(result.Message, "[REDACTED]") {
			t.Errorf("message should mark redaction: %s", result.Message)
		}
	})
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		date      string
		wantStart string
		wantEnd   string
	}{
		{"2024-10-11", "2024-10-06", "2024-10-12"}, // Friday
		{"2024-10-06", "2024-10-06", "2024-10-12"}, // Sunday: week starts on itself
		{"2024-10-12", "2024-10-06", "2024-10-12"}, // Saturday: week ends on itself
		{"2024-12-31", "2024-12-29", "2025-01-04"}, // year boundary
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			day := mustParseDate(t, tt.date)
			start, end := weekRange(day)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("weekRange(%s) = (%s, %s), want (%s, %s)",
					tt.date, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
