package httpsession

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultTimeout is the request timeout of sessions built without
	// WithHTTPClient or WithTimeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent unless WithUserAgent overrides it.
	DefaultUserAgent = "ephemeralmail-go"

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 4096
)

// Session is an HTTP client bound to one provider login.
type Session struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	headers    http.Header
	timeout    time.Duration // applied after all options

	mu    sync.RWMutex
	token string
}

// Option configures a Session.
type Option func(*Session)

// WithBaseURL sets the URL that request paths are resolved against.
func WithBaseURL(url string) Option {
	return func(s *Session) {
		s.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets the underlying HTTP client. The session works on a
// shallow copy; if the client has no cookie jar the session's own jar is used.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Session) {
		c := *client
		if c.Jar == nil {
			c.Jar = s.httpClient.Jar
		}
		s.httpClient = &c
	}
}

// WithTimeout sets the request timeout. It applies to the client given with
// WithHTTPClient too, regardless of option order.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(s *Session) {
		s.userAgent = userAgent
	}
}

// WithHeader adds a header sent with every request,
// for example X-Requested-With for XHR-only endpoints.
func WithHeader(key, value string) Option {
	return func(s *Session) {
		s.headers.Add(key, value)
	}
}

// New creates a session with an empty cookie jar.
func New(opts ...Option) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err) //coverage:ignore
	}

	s := &Session{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		userAgent: DefaultUserAgent,
		headers:   make(http.Header),
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.timeout > 0 {
		s.httpClient.Timeout = s.timeout
	}

	return s, nil
}

// SetBearerToken sets the token sent in the Authorization header.
// An empty token removes the header.
func (s *Session) SetBearerToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// BearerToken returns the current bearer token.
func (s *Session) BearerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Cookies returns the cookies the session would send to rawURL.
func (s *Session) Cookies(rawURL string) ([]*http.Cookie, error) {
	u, err := url.Parse(s.resolve(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if s.httpClient.Jar == nil {
		return nil, nil
	}
	return s.httpClient.Jar.Cookies(u), nil
}

// Do sends a JSON request and decodes a JSON response into result.
// body and result may be nil.
func (s *Session) Do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.resolve(path), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	data, err := s.send(req)
	if err != nil {
		return err
	}

	if result != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// GetText sends a GET request with the given query and returns the body.
func (s *Session) GetText(ctx context.Context, path string, query url.Values) (string, error) {
	target := s.resolve(path)
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	data, err := s.send(req)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PostForm sends a url-encoded form and returns the body.
func (s *Session) PostForm(ctx context.Context, path string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.resolve(path), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	data, err := s.send(req)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// resolve joins path onto the base URL. Absolute URLs are used as is.
func (s *Session) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || s.baseURL == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}

// send performs req once. There are no retries: failures go straight back
// to the caller.
func (s *Session) send(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", s.userAgent)
	for key, values := range s.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if token := s.BearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: req.URL.String()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: req.URL.String()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
			URL:        req.URL.String(),
		}
	}

	return data, nil
}
