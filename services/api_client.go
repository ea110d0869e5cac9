package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

const (
	defaultTimeout = 30 * time.Second
	// tokenSkew refreshes a JWT slightly before its exp claim.
	tokenSkew = 10 * time.Second

	tokenPath   = "/api/token/"
	refreshPath = "/api/token/refresh/"
	verifyPath  = "/api/token/verify/"
)

// APIClient talks to the finance backend on behalf of the logged-in user.
// Every request goes through authTransport, which attaches the bearer token and
// renews it once on a 401.
type APIClient struct {
	baseURL string
	session *Session
	log     *zap.Logger
	now     func() time.Time

	timeout   time.Duration
	transport http.RoundTripper

	// httpClient is intercepted; plainClient is used for login and refresh so a
	// failing refresh can never recurse into another refresh.
	httpClient  *http.Client
	plainClient *http.Client

	refreshGroup singleflight.Group
}

type ClientOption func(*APIClient)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *APIClient) { c.timeout = d }
}

// WithTransport replaces the underlying network transport.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *APIClient) { c.transport = rt }
}

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *APIClient) { c.log = log }
}

func WithClock(now func() time.Time) ClientOption {
	return func(c *APIClient) { c.now = now }
}

func NewAPIClient(baseURL string, session *Session, opts ...ClientOption) *APIClient {
	c := &APIClient{
		baseURL:   baseURL,
		session:   session,
		log:       zap.NewNop(),
		now:       time.Now,
		timeout:   defaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = &http.Client{
		Timeout:   c.timeout,
		Transport: &authTransport{client: c, base: c.transport},
	}
	c.plainClient = &http.Client{
		Timeout:   c.timeout,
		Transport: c.transport,
	}
	return c
}

func (c *APIClient) Session() *Session {
	return c.session
}

// ============================================================================
// TRANSPORT
// ============================================================================

type retriedKey struct{}

func isRetried(req *http.Request) bool {
	retried, _ := req.Context().Value(retriedKey{}).(bool)
	return retried
}

type authTransport struct {
	client *APIClient
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c := t.client
	ctx := req.Context()

	token := c.session.AccessToken()
	if token != "" && utils.TokenExpired(token, c.now(), tokenSkew) {
		fresh, err := c.refresh(ctx, token)
		if err != nil {
			return nil, err
		}
		token = fresh
	}

	resp, err := t.base.RoundTrip(authorize(req, token))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// A replayed request is never refreshed twice, and a body we cannot rewind
	// cannot be replayed.
	if isRetried(req) || !rewindable(req) {
		return resp, nil
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	c.log.Info("Access token rejected, refreshing", zap.String("path", req.URL.Path))
	if _, err := c.refresh(ctx, token); err != nil {
		return nil, err
	}

	replay := req.Clone(context.WithValue(ctx, retriedKey{}, true))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		replay.Body = body
	}
	return t.RoundTrip(replay)
}

// authorize returns a copy of req carrying the bearer token, or no
// Authorization header at all when token is empty.
func authorize(req *http.Request, token string) *http.Request {
	out := req.Clone(req.Context())
	if token == "" {
		out.Header.Del("Authorization")
		return out
	}
	out.Header.Set("Authorization", "Bearer "+token)
	return out
}

func rewindable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

// refresh returns a fresh access token. Concurrent callers share one in-flight
// refresh; a caller whose token is already stale gets the current one.
func (c *APIClient) refresh(ctx context.Context, failedToken string) (string, error) {
	if current := c.session.AccessToken(); current != "" && current != failedToken {
		return current, nil
	}

	v, err, shared := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		if current := c.session.AccessToken(); current != "" && current != failedToken {
			return current, nil
		}
		// One caller going away must not fail the refresh for the others.
		return c.doRefresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.log.Debug("Joined in-flight token refresh")
	}
	return v.(string), nil
}

func (c *APIClient) doRefresh(ctx context.Context) (string, error) {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		c.log.Warn("No refresh token, redirecting to login")
		c.session.ClearAccessToken(ctx)
		return "", fmt.Errorf("%w: no refresh token", ErrSessionExpired)
	}

	var pair models.TokenPair
	err := c.call(ctx, c.plainClient, http.MethodPost, refreshPath, map[string]string{"refresh": refreshToken}, &pair)
	if err == nil && pair.Access == "" {
		err = fmt.Errorf("refresh response has no access token")
	}
	if err != nil {
		c.log.Warn("Token refresh failed, redirecting to login", zap.Error(err))
		c.session.Clear(ctx, SessionExpired)
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	c.session.Refreshed(ctx, pair.Access, pair.Refresh)
	c.log.Info("Access token refreshed", utils.Token("token", pair.Access))
	return pair.Access, nil
}

// ============================================================================
// REQUEST HELPERS
// ============================================================================

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.call(ctx, c.httpClient, method, path, body, out)
}

func (c *APIClient) call(ctx context.Context, client *http.Client, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
