// Package client is the single outbound HTTP client of the campus app. Its
// bearer credential is set only by the session manager; callers just issue
// requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger

	mu             sync.RWMutex
	token          string
	onUnauthorized func(token string)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client rooted at baseURL (scheme://host[/prefix]).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken arms every following request with a bearer credential.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken disarms the client.
func (c *Client) ClearToken() { c.SetToken("") }

// Armed reports whether a bearer credential is set.
func (c *Client) Armed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// OnUnauthorized registers fn to run when an armed request receives 401.
// fn gets the token the rejected request was sent with.
func (c *Client) OnUnauthorized(fn func(token string)) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

type skipHookKey struct{}

// SkipUnauthorizedHook marks ctx so a 401 on its requests is returned to
// the caller without running the OnUnauthorized hook.
func SkipUnauthorizedHook(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipHookKey{}, true)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

// FilePart is the file half of a multipart upload.
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// Upload sends fields and file as a multipart/form-data POST.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file FilePart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	fw, err := mw.CreateFormFile(file.Field, file.FileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, file.Content); err != nil {
		return fmt.Errorf("reading %s: %w", file.FileName, err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, func(body io.Reader) error { return decode(body, out) })
}

// Download streams the response body of a GET to w.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, func(body io.Reader) error {
		_, err := io.Copy(w, body)
		return err
	})
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, func(body io.Reader) error { return decode(body, out) })
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("building url for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, handle func(io.Reader) error) error {
	start := time.Now()
	path := req.URL.Path
	fields := logrus.Fields{
		"method":     req.Method,
		"path":       path,
		"request_id": req.Header.Get("X-Request-ID"),
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// A cancelled caller gets its own error back, not a network failure.
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.WithFields(fields).WithError(err).Warn("request failed without response")
		return &NetworkError{Method: req.Method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	fields["status"] = resp.StatusCode
	fields["duration"] = time.Since(start).String()
	c.log.WithFields(fields).Debug("request completed")

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    messageFromBody(b),
		}
		if resp.StatusCode == http.StatusUnauthorized && req.Header.Get("Authorization") != "" {
			c.notifyUnauthorized(req.Context(), strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer "))
		}
		return apiErr
	}

	if err := handle(resp.Body); err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("reading %s %s response: %w", req.Method, path, err)
	}
	return nil
}

func (c *Client) notifyUnauthorized(ctx context.Context, token string) {
	if skip, _ := ctx.Value(skipHookKey{}).(bool); skip {
		return
	}
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(token)
	}
}

func decode(body io.Reader, out any) error {
	if out == nil {
		_, err := io.Copy(io.Discard, body)
		return err
	}
	err := json.NewDecoder(body).Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
