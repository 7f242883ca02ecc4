// Package store is the client for the spreadsheet-backed record store (a
// Google-Apps-Script-style web app fronting the team's sheet). Every call
// is best-effort and single-shot: a failed call yields nil/false and a log
// line, never an error past this boundary, and is not retried — the
// operator re-runs when the network is back.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hayate-io/kintai/internal/model"
)

const defaultTimeout = 15 * time.Second

// Client talks to the record store web app.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// New creates a Client for the web app at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LateArrival is one row of the store's late-check sheet.
type LateArrival struct {
	Date   string `json:"date"`
	Person string `json:"userName"`
}

type recordsResponse struct {
	Data []model.Record `json:"data"`
}

type usersResponse struct {
	Users []string `json:"users"`
}

type lateChecksResponse struct {
	Checks []LateArrival `json:"checks"`
}

type balancesResponse struct {
	Balances map[string]float64 `json:"balances"`
}

type datasetResponse struct {
	Data      []model.Event `json:"data"`
	Timestamp string        `json:"timestamp"`
	FileCount int           `json:"fileCount"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// get performs one GET with the given action and query params, decoding
// into dest. Returns false (after logging) on any transport or HTTP error.
func (c *Client) get(ctx context.Context, action string, params map[string]string, dest any) bool {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("action", action).
		SetResult(dest)
	for k, v := range params {
		req.SetQueryParam(k, v)
	}

	resp, err := req.Get("")
	if err != nil {
		slog.Warn("store: request failed", "action", action, "error", err)
		return false
	}
	if resp.IsError() {
		slog.Warn("store: request rejected", "action", action, "status", resp.StatusCode())
		return false
	}
	return true
}

// post performs one POST of the given body. Same best-effort contract.
func (c *Client) post(ctx context.Context, action string, body any) bool {
	var result successResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post("")
	if err != nil {
		slog.Warn("store: post failed", "action", action, "error", err)
		return false
	}
	if resp.IsError() {
		slog.Warn("store: post rejected", "action", action, "status", resp.StatusCode())
		return false
	}
	if result.Error != "" {
		slog.Warn("store: post returned error", "action", action, "error", result.Error)
		return false
	}
	return true
}

// ListRecords fetches stored records for a user ("all" for everyone).
func (c *Client) ListRecords(ctx context.Context, user string) []model.Record {
	if user == "" {
		user = "all"
	}
	var resp recordsResponse
	if !c.get(ctx, "getData", map[string]string{"userName": user}, &resp) {
		return nil
	}
	return resp.Data
}

// AppendRecord stores one self-report record.
func (c *Client) AppendRecord(ctx context.Context, r model.Record) bool {
	return c.post(ctx, "saveData", map[string]any{
		"action": "saveData",
		"data":   r,
	})
}

// FetchReferenceDataset pulls the store's reference dataset snapshot.
// Returns nil when the store is unreachable or holds no snapshot.
func (c *Client) FetchReferenceDataset(ctx context.Context) *model.ReferenceDataset {
	var resp datasetResponse
	if !c.get(ctx, "getCBOData", nil, &resp) {
		return nil
	}
	if resp.Timestamp == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, resp.Timestamp)
	if err != nil {
		slog.Warn("store: bad dataset timestamp", "timestamp", resp.Timestamp, "error", err)
		return nil
	}
	fileCount := resp.FileCount
	if fileCount == 0 {
		fileCount = 1
	}
	return &model.ReferenceDataset{
		Events:    resp.Data,
		Timestamp: ts,
		FileCount: fileCount,
	}
}

// PushReferenceDataset replaces the store's snapshot with the given events.
// Deliberately fire-and-forget: the bool is reported to the operator but a
// failure does not block the run.
func (c *Client) PushReferenceDataset(ctx context.Context, events []model.Event, fileCount int) bool {
	return c.post(ctx, "saveCBOData", map[string]any{
		"action":    "saveCBOData",
		"cboData":   events,
		"fileCount": fileCount,
	})
}

// ListUsers fetches the registered user names.
func (c *Client) ListUsers(ctx context.Context) []string {
	var resp usersResponse
	if !c.get(ctx, "getUsers", nil, &resp) {
		return nil
	}
	return resp.Users
}

// ListLateArrivals fetches the late-check rows for a month (YYYY-MM).
func (c *Client) ListLateArrivals(ctx context.Context, month string) []LateArrival {
	var resp lateChecksResponse
	if !c.get(ctx, "getLateChecksMonthly", map[string]string{"month": month}, &resp) {
		return nil
	}
	return resp.Checks
}

// GetLeaveBalances fetches remaining paid-leave days per person. Keys are
// raw sheet names; callers normalize them before matching.
func (c *Client) GetLeaveBalances(ctx context.Context) map[string]float64 {
	var resp balancesResponse
	if !c.get(ctx, "getPaidLeaveBalance", nil, &resp) {
		return nil
	}
	return resp.Balances
}
