// Package backend is a thin client for the hosted data backend's REST
// surface. It exposes table resources with equality-filtered selects,
// single-row lookups, and batched inserts. No joins, no transactions,
// no retries.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// ErrNoRows is returned by Single when the filter matches nothing.
var ErrNoRows = errors.New("backend: no rows")

// Error is a remote failure reported by the backend. The message is kept
// verbatim for display.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: request failed with status %d", e.Status)
	}
	return e.Message
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Client talks to one hosted backend project.
type Client struct {
	http *resty.Client
}

// New creates a client for the backend at baseURL, authenticating every
// request with the project API key.
func New(baseURL, apiKey string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL+"/rest/v1").
		SetHeader("apikey", apiKey).
		SetHeader("Authorization", "Bearer "+apiKey)
	return &Client{http: rc}
}

// From starts a query against a table resource.
func (c *Client) From(table string) *Query {
	return &Query{client: c, table: table, params: url.Values{}}
}

// Query is a single table request under construction.
type Query struct {
	client *Client
	table  string
	params url.Values
}

// Select restricts the returned columns.
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

// Eq adds an equality filter on a column.
func (q *Query) Eq(column, value string) *Query {
	q.params.Set(column, "eq."+value)
	return q
}

// Order sorts the result by a column, descending when desc is true.
func (q *Query) Order(column string, desc bool) *Query {
	direction := "asc"
	if desc {
		direction = "desc"
	}
	q.params.Set("order", column+"."+direction)
	return q
}

// Get runs the select and decodes all matching rows into dest.
func (q *Query) Get(ctx context.Context, dest any) error {
	resp, err := q.client.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(q.params).
		SetResult(dest).
		SetError(&apiError{}).
		Get(q.table)
	if err != nil {
		return err
	}
	return q.checkResponse(resp)
}

// Single runs the select expecting exactly one row. ErrNoRows is returned
// when the filter matches nothing.
func (q *Query) Single(ctx context.Context, dest any) error {
	resp, err := q.client.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.pgrst.object+json").
		SetQueryParamsFromValues(q.params).
		SetResult(dest).
		SetError(&apiError{}).
		Get(q.table)
	if err != nil {
		return err
	}
	if resp.StatusCode() == 406 {
		return ErrNoRows
	}
	return q.checkResponse(resp)
}

// Insert writes payload to the table. A slice payload becomes one batched
// request. When dest is non-nil the created representation is decoded
// into it.
func (q *Query) Insert(ctx context.Context, payload any, dest any) error {
	req := q.client.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(payload).
		SetError(&apiError{})
	if dest != nil {
		req.SetResult(dest)
	}
	resp, err := req.Post(q.table)
	if err != nil {
		return err
	}
	return q.checkResponse(resp)
}

func (q *Query) checkResponse(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	remote := &Error{Status: resp.StatusCode()}
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
		remote.Message = apiErr.Message
	}
	return remote
}
