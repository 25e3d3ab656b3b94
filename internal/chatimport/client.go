package chatimport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPDoer abstracts the HTTP client so tests can inject one.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client forwards chat blocks to a remote bulk-import endpoint.
type Client struct {
	URL    string
	Token  string // optional bearer token
	Client HTTPDoer
}

func NewClient(url, token string, client HTTPDoer) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("chat import url is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{URL: url, Token: token, Client: client}, nil
}

func (c *Client) Import(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		hreq.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.Client.Do(hreq)
	if err != nil {
		return Response{}, fmt.Errorf("chat import request: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Response{}, err
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return Response{}, fmt.Errorf("%w: %s", ErrNoBlocks, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode/100 != 2 {
		return Response{}, fmt.Errorf("chat import: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return Response{}, fmt.Errorf("chat import: decode response: %w", err)
	}
	return out, nil
}
