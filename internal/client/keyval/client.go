// Package keyval is a client for the public single-key/single-value HTTP
// store at api.keyval.org (and the compatible kvserver in this repo).
//
// Both operations are plain GETs:
//
//	/set/{key}/{value}  stores value under key
//	/get/{key}          reads the value (empty when the key is unknown)
//
// Keys longer than MaxRawKeyLength are replaced by Hash(key) before they
// are sent. There is no retry and no caching.
package keyval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/logging"
	"github.com/dmitrijs2005/postkeeper/internal/netx"
)

// DefaultBaseURL is the public KeyVal API.
const DefaultBaseURL = "https://api.keyval.org"

// Response is the body of both /set and /get.
type Response struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Val    string `json:"val"`
}

// Client is the remote key-value API.
type Client interface {
	Set(ctx context.Context, key, value string) (*Response, error)
	Get(ctx context.Context, key string) (*Response, error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a Client talking to baseURL. A nil httpClient
// selects netx.New with default settings.
func NewHTTPClient(baseURL string, httpClient *http.Client, logger logging.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if httpClient == nil {
		httpClient = netx.New(netx.Config{Logger: logger})
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

func (c *HTTPClient) Set(ctx context.Context, key, value string) (*Response, error) {
	shortKey := ShortKey(key)
	url := c.baseURL + "/set/" + EscapeComponent(shortKey) + "/" + EscapeComponent(value)

	resp, err := c.call(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to set key %s: %w", shortKey, err)
	}

	if resp.Status == common.StatusTooLong {
		return nil, fmt.Errorf("failed to set key %s: %w", shortKey, common.ErrValueTooLarge)
	}

	c.logger.Debug(ctx, "keyval set", "key", shortKey, "status", resp.Status, "size", len(value))
	return resp, nil
}

func (c *HTTPClient) Get(ctx context.Context, key string) (*Response, error) {
	shortKey := ShortKey(key)
	url := c.baseURL + "/get/" + EscapeComponent(shortKey)

	resp, err := c.call(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", shortKey, err)
	}

	c.logger.Debug(ctx, "keyval get", "key", shortKey, "status", resp.Status, "size", len(resp.Val))
	return resp, nil
}

func (c *HTTPClient) call(ctx context.Context, url string) (*Response, error) {
	body, err := netx.Get(ctx, c.http, url)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode keyval response: %v", common.ErrSerialization, err)
	}
	return &resp, nil
}
