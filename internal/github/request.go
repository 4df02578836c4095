package github

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
)

const (
	acceptHeader    = "application/vnd.github+json"
	contentEncoding = "gzip"
)

// getJSON performs a GET request and decodes the JSON body into target.
// A 404 maps to errs.ErrNotFound, any other non-200 status or transport
// failure to errs.ErrUpstreamUnavailable and a malformed body to errs.ErrParseFailure.
func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+path, nil)
	if err != nil {
		return errs.Upstream(source, op, 0, err)
	}

	req = c.setHeaders(req)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.request(req)
	if err != nil {
		return errs.Upstream(source, op, 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NotFound(source, op)
	case resp.StatusCode != http.StatusOK:
		return errs.Upstream(source, op, resp.StatusCode, fmt.Errorf("bad status: %s", resp.Status))
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == contentEncoding {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return errs.Parse(source, op, err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	if target == nil {
		return nil
	}

	if err := json.NewDecoder(reader).Decode(target); err != nil {
		return errs.Parse(source, op, err)
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}
