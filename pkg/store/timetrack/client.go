package timetrack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// Client is a minimal client for the time tracking REST API. It only covers
// the timesheet listing the report updates need.
type Client struct {
	http    *http.Client
	baseURL string
	users   map[string]string
}

// Options configure a Client. Users maps time tracking user ids to the
// employee display names used on the report sheets; when non-empty, entries
// from unmapped users are dropped.
type Options struct {
	BaseURL string
	Token   string
	Users   map[string]string
	Timeout time.Duration
}

func NewClient(opts Options) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := oauth2.NewClient(context.Background(), src)
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	httpClient.Timeout = opts.Timeout

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		users:   opts.Users,
	}
}

type timesheetRecord struct {
	UserID    int64   `json:"user_id"`
	JobcodeID int64   `json:"jobcode_id"`
	Duration  float64 `json:"duration"`
	Date      string  `json:"date"`
}

type jobcode struct {
	Name     string `json:"name"`
	ParentID int64  `json:"parent_id"`
}

type apiUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type timesheetsResponse struct {
	Results struct {
		Timesheets map[string]timesheetRecord `json:"timesheets"`
	} `json:"results"`
	SupplementalData struct {
		Users    map[string]apiUser `json:"users"`
		Jobcodes map[string]jobcode `json:"jobcodes"`
	} `json:"supplemental_data"`
	More bool `json:"more"`
}

// Timesheets returns normalized entries for the date range, inclusive on
// both ends. Pages are fetched until the service reports no more results.
func (c *Client) Timesheets(ctx context.Context, start, end time.Time) ([]domain.TimeEntry, error) {
	var entries []domain.TimeEntry
	for page := 1; ; page++ {
		resp, err := c.fetchPage(ctx, start, end, page)
		if err != nil {
			return nil, err
		}
		entries = append(entries, c.mapEntries(resp)...)
		if !resp.More {
			break
		}
	}
	return entries, nil
}

func (c *Client) fetchPage(ctx context.Context, start, end time.Time, page int) (*timesheetsResponse, error) {
	q := url.Values{}
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	q.Set("page", strconv.Itoa(page))
	q.Set("supplemental_data", "yes")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/timesheets?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build timesheets request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timesheets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.APIStatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload timesheetsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode timesheets response: %w", err)
	}
	return &payload, nil
}

func (c *Client) mapEntries(resp *timesheetsResponse) []domain.TimeEntry {
	var entries []domain.TimeEntry
	for _, ts := range resp.Results.Timesheets {
		name := c.employeeName(ts.UserID, resp)
		if name == "" {
			continue
		}
		first, last := splitName(name)
		primary, secondary := resolveJobcodes(ts.JobcodeID, resp.SupplementalData.Jobcodes)

		entries = append(entries, domain.TimeEntry{
			FirstName:  first,
			LastName:   last,
			Hours:      ts.Duration / 3600,
			JobCode:    primary,
			SubJobCode: secondary,
		})
	}
	return entries
}

func (c *Client) employeeName(userID int64, resp *timesheetsResponse) string {
	id := strconv.FormatInt(userID, 10)
	if len(c.users) > 0 {
		return c.users[id]
	}
	if u, ok := resp.SupplementalData.Users[id]; ok {
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return ""
}

// resolveJobcodes maps a timesheet's job code to the top level code and the
// service item under it. Child codes report their parent as the top level.
func resolveJobcodes(id int64, codes map[string]jobcode) (string, string) {
	jc, ok := codes[strconv.FormatInt(id, 10)]
	if !ok {
		return "", ""
	}
	if jc.ParentID != 0 {
		if parent, ok := codes[strconv.FormatInt(jc.ParentID, 10)]; ok {
			return parent.Name, jc.Name
		}
	}
	return jc.Name, ""
}

func splitName(name string) (string, string) {
	first, last, found := strings.Cut(name, " ")
	if !found {
		return name, ""
	}
	return first, last
}
