// Package interlex is a client for the InterLex terminology registry API.
//
// The client covers the handful of operations bulk ingestion needs: the
// curie catalog, entity lookups by curie or native id, scoped
// duplicate-label queries, and term submission. Every call takes a
// context so a batch deadline or interrupt cancels in-flight requests.
//
// Responses arrive wrapped in a {"data": ...} envelope. The registry
// reports "not found" on lookup endpoints inside a 200 response (empty or
// false data) rather than with an HTTP status, so lookup misses decode to
// zero values instead of errors.
package interlex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the staging registry used unless production is requested.
	DefaultBaseURL = "https://test3.scicrunch.org/api/1/"

	// ProductionBaseURL is the live registry.
	ProductionBaseURL = "https://scicrunch.org/api/1/"
)

// Client talks to one registry instance with one API key.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     *slog.Logger
}

// NewClient creates a registry client. baseURL must be absolute; a
// trailing slash is added if missing. timeout bounds each individual
// request on top of any context deadline.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("interlex: api key is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("interlex: invalid base URL %q", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
		log:     slog.Default().With("component", "interlex"),
	}, nil
}

// CurieCatalog returns the registry's known prefix-to-namespace mappings.
// Fetched once per run to build the prefix table.
func (c *Client) CurieCatalog(ctx context.Context) ([]CuriePrefix, error) {
	var catalog []CuriePrefix
	if err := c.get(ctx, "curies/catalog", nil, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// EntityByCurie looks up a term by an external curie. A miss returns a
// zero Entity with no error.
func (c *Client) EntityByCurie(ctx context.Context, curie string) (Entity, error) {
	var ent Entity
	endpoint := "ilx/search/curie/" + url.PathEscape(curie)
	if err := c.get(ctx, endpoint, nil, &ent); err != nil {
		return Entity{}, err
	}
	return ent, nil
}

// EntityByID looks up a term by its native registry identifier
// (ilx_/tmp_ fragment or ILX:/TMP: curie form). A miss returns a zero
// Entity with no error.
func (c *Client) EntityByID(ctx context.Context, id string) (Entity, error) {
	var ent Entity
	endpoint := "ilx/search/identifier/" + url.PathEscape(id)
	if err := c.get(ctx, endpoint, nil, &ent); err != nil {
		return Entity{}, err
	}
	return ent, nil
}

// TermExists returns existing terms with the given label owned by the
// given user. An empty result means the label is free under that scope.
func (c *Client) TermExists(ctx context.Context, label, uid string) ([]TermMatch, error) {
	params := url.Values{}
	params.Set("label", label)
	params.Set("uid", uid)

	var matches []TermMatch
	if err := c.get(ctx, "term/exists", params, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// UserInfo resolves the account behind the API key. Used once at startup
// when no user id is configured.
func (c *Client) UserInfo(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "user/info", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// AddEntity submits a new term. Unlike the lookup endpoints this fails
// loudly: any non-2xx response is an error.
func (c *Client) AddEntity(ctx context.Context, req AddEntityRequest) (Entity, error) {
	var ent Entity
	if err := c.post(ctx, "term/add", req, &ent); err != nil {
		return Entity{}, err
	}
	if !ent.Exists() {
		return Entity{}, &APIError{Endpoint: "term/add", StatusCode: http.StatusOK,
			Message: fmt.Sprintf("no ilx id assigned for label %q", req.Label)}
	}

	c.log.Debug("entity added", "label", req.Label, "ilx", ent.ILX)
	return ent, nil
}

// envelope is the registry's standard response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(endpoint, params), nil)
	if err != nil {
		return fmt.Errorf("interlex: build request for %s: %w", endpoint, err)
	}

	return c.do(httpReq, endpoint, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("interlex: encode request for %s: %w", endpoint, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(endpoint, nil), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("interlex: build request for %s: %w", endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, endpoint, out)
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("interlex: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("interlex: read response from %s: %w", endpoint, err)
	}

	c.log.Debug("registry call",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusNotFound {
		// Lookup miss; leave out at its zero value.
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    apiMessage(body),
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("interlex: decode envelope from %s: %w", endpoint, err)
	}

	return decodeData(env.Data, endpoint, out)
}

// decodeData unpacks the data payload, tolerating the registry's habit of
// returning false, null, or an empty object where a miss occurred.
func decodeData(data json.RawMessage, endpoint string, out any) error {
	trimmed := strings.TrimSpace(string(data))
	switch trimmed {
	case "", "null", "false", "[]", "{}":
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("interlex: decode data from %s: %w", endpoint, err)
	}
	return nil
}

// apiMessage pulls a human-readable message out of an error body, falling
// back to the raw text.
func apiMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func (c *Client) requestURL(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)
	return c.baseURL + endpoint + "?" + params.Encode()
}
