package jooble

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
)

const contentType = "application/json"

type SearchParams struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Radius   int    `json:"radius"`
	Page     int    `json:"page"`
}

type Response struct {
	TotalCount int   `json:"totalCount"`
	Jobs       []Job `json:"jobs"`
}

type Job struct {
	ID       ID     `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Snippet  string `json:"snippet"`
	Salary   string `json:"salary"`
	Source   string `json:"source"`
	Type     string `json:"type"`
	Link     string `json:"link"`
	Company  string `json:"company"`
	Updated  string `json:"updated"`
}

// ID is the opaque job identifier. The API sends it either as a string or
// as a number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("job id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Search posts one search request. Page numbering starts at 1.
func (c *Client) Search(ctx context.Context, params SearchParams) (*Response, error) {
	const op = "search"

	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errs.Misconfigured(source, op, errors.New("api key is not configured"))
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.Radius <= 0 {
		params.Radius = c.Radius
	}

	key := cacheKey(params)
	if body, ok := c.cached(ctx, key); ok {
		var response Response
		if err := json.Unmarshal(body, &response); err == nil {
			c.logger.Debug("search served from cache", zap.String("location", params.Location))
			return &response, nil
		}
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return nil, errs.Parse(source, op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Upstream(source, op, 0, err)
	}
	req.Header.Set("Content-Type", contentType)

	// The key is part of the path so the URL is never logged.
	c.logger.Debug("make request",
		zap.String("keywords", params.Keywords),
		zap.String("location", params.Location),
		zap.Int("page", params.Page),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.Upstream(source, op, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Upstream(source, op, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.Upstream(source, op, resp.StatusCode, fmt.Errorf("bad status: %s", resp.Status))
	}

	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errs.Parse(source, op, err)
	}

	c.store(ctx, key, body)

	c.logger.Debug("got response from jooble",
		zap.Int("total", response.TotalCount),
		zap.Int("jobs", len(response.Jobs)),
	)

	return &response, nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", zap.Error(err))
		return nil, false
	}
	return body, ok
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, body); err != nil {
		c.logger.Warn("cache write failed", zap.Error(err))
	}
}

func cacheKey(params SearchParams) string {
	sum := sha256.Sum256([]byte(params.Keywords + "|" + params.Location + "|" + strconv.Itoa(params.Page)))
	return "jooble:search:" + hex.EncodeToString(sum[:])
}
