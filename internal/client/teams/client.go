// Package teams is the client of the roster store HTTP surface. Reads and
// writes that cannot reach the store fall back to a local cache and flip an
// observable degraded status instead of failing.
package teams

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/infernalwolves/clan-dashboard/internal/api/metrics"
	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// HTTPError is a response the store answered with a non-success status.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("roster store: %d %s", e.StatusCode, e.Message)
}

// Is maps status codes onto the domain sentinels.
func (e *HTTPError) Is(target error) bool {
	switch e.StatusCode {
	case fasthttp.StatusBadRequest, fasthttp.StatusUnprocessableEntity:
		return target == domain.ErrValidation
	case fasthttp.StatusUnauthorized:
		return target == domain.ErrInvalidCredentials
	case fasthttp.StatusForbidden:
		return target == domain.ErrForbidden
	case fasthttp.StatusNotFound:
		return target == domain.ErrNotFound
	case fasthttp.StatusConflict:
		return target == domain.ErrAlreadyOnAnotherTeam
	}
	return false
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
	cache   *LocalCache
	status  statusTracker
	token   string
	log     zerolog.Logger
	now     func() time.Time
}

func NewClient(cfg Config, cache *LocalCache, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		client: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) { c.token = token }

// Status reports whether the store is being bypassed or still lacks writes
// made during an outage.
func (c *Client) Status() SyncStatus {
	st := c.status.get()
	st.Unsynced = c.cache.Pending()
	if len(st.Unsynced) > 0 {
		st.Degraded = true
	}
	return st
}

type teamResponse struct {
	Success bool            `json:"success"`
	Team    []domain.Member `json:"team"`
	Version int64           `json:"version"`
	Error   string          `json:"error"`
}

type teamsResponse struct {
	Success   bool                       `json:"success"`
	Teams     map[string][]domain.Member `json:"teams"`
	Versions  map[string]int64           `json:"versions"`
	Conflicts []domain.Conflict          `json:"conflicts"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Version int64  `json:"version"`
	Error   string `json:"error"`
}

// Get returns the owner's roster, or the locally cached copy when the store
// is unreachable. An unknown owner yields an empty roster.
func (c *Client) Get(ctx context.Context, owner string) ([]domain.Member, error) {
	key, err := domain.OwnerKey(owner)
	if err != nil {
		return nil, err
	}

	resp, err := doJSON[teamResponse](ctx, c, fasthttp.MethodGet, "/api/teams/"+url.PathEscape(key), nil)
	if errors.Is(err, domain.ErrTransport) {
		metrics.RosterFallbackTotal.WithLabelValues("get").Inc()
		c.degrade(err, "get", key)
		members, _, cacheErr := c.cache.Load(key)
		if cacheErr != nil {
			c.log.Warn().Err(cacheErr).Str("owner", key).Msg("local roster cache unreadable")
		}
		if members == nil {
			members = []domain.Member{}
		}
		return members, nil
	}
	if err != nil {
		return nil, err
	}

	team := resp.Team
	if team == nil {
		team = []domain.Member{}
	}
	if !c.cache.IsPending(key) {
		c.writeCache(key, team)
	}
	c.recovered()
	return team, nil
}

// Set replaces the owner's roster. When the store is unreachable the roster
// is written to the local cache and WriteDegraded is returned with a nil error.
func (c *Client) Set(ctx context.Context, owner string, members []domain.Member) (domain.WriteStatus, error) {
	key, err := domain.OwnerKey(owner)
	if err != nil {
		return domain.WriteSynced, err
	}
	if members == nil {
		members = []domain.Member{}
	}

	body := map[string]any{"team": members}
	_, err = doJSON[ackResponse](ctx, c, fasthttp.MethodPost, "/api/teams/"+url.PathEscape(key), body)
	if errors.Is(err, domain.ErrTransport) {
		metrics.RosterFallbackTotal.WithLabelValues("set").Inc()
		c.degrade(err, "set", key)
		if cacheErr := c.cache.Store(key, members); cacheErr != nil {
			return domain.WriteDegraded, fmt.Errorf("roster store unreachable and local cache failed: %w", cacheErr)
		}
		if cacheErr := c.cache.MarkPending(key); cacheErr != nil {
			c.log.Warn().Err(cacheErr).Str("owner", key).Msg("failed to flag unsynced roster")
		}
		return domain.WriteDegraded, nil
	}
	if err != nil {
		return domain.WriteSynced, err
	}

	c.writeCache(key, members)
	c.clearPending(key)
	c.recovered()
	return domain.WriteSynced, nil
}

// GetAll returns every roster, or every locally cached roster when the store
// is unreachable. A successful call also drops cached owners the store no
// longer has, except those holding unsynced writes.
func (c *Client) GetAll(ctx context.Context) (domain.RosterCollection, error) {
	resp, err := doJSON[teamsResponse](ctx, c, fasthttp.MethodGet, "/api/teams", nil)
	if errors.Is(err, domain.ErrTransport) {
		metrics.RosterFallbackTotal.WithLabelValues("get_all").Inc()
		c.degrade(err, "get_all", "")
		return c.cache.LoadAll(), nil
	}
	if err != nil {
		return nil, err
	}

	out := make(domain.RosterCollection, len(resp.Teams))
	keep := make(map[string]struct{}, len(resp.Teams))
	for owner, team := range resp.Teams {
		if team == nil {
			team = []domain.Member{}
		}
		out[owner] = domain.TeamRoster{Owner: owner, Members: team, Version: resp.Versions[owner]}
		keep[owner] = struct{}{}
		if !c.cache.IsPending(owner) {
			c.writeCache(owner, team)
		}
	}
	removed, err := c.cache.Prune(keep)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to prune local roster cache")
	}
	if len(removed) > 0 {
		c.log.Debug().Strs("owners", removed).Msg("dropped rosters gone from the store")
	}
	c.recovered()
	return out, nil
}

// Delete clears the owner's roster on the store. There is no local fallback.
func (c *Client) Delete(ctx context.Context, owner string) error {
	key, err := domain.OwnerKey(owner)
	if err != nil {
		return err
	}
	if _, err := doJSON[ackResponse](ctx, c, fasthttp.MethodDelete, "/api/teams/"+url.PathEscape(key), nil); err != nil {
		return err
	}
	if err := c.cache.Remove(key); err != nil {
		c.log.Warn().Err(err).Str("owner", key).Msg("failed to drop cached roster")
	}
	c.clearPending(key)
	c.recovered()
	return nil
}

// Health reports whether the store answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	_, err := doJSON[ackResponse](ctx, c, fasthttp.MethodGet, "/api/health", nil)
	return err
}

// LoginResult is the token and identity issued by the server.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	return doJSON[LoginResult](ctx, c, fasthttp.MethodPost, "/api/auth/login", body)
}

// Member looks up a clan member by account id.
func (c *Client) Member(ctx context.Context, accountID int64) (*domain.Member, error) {
	type memberResponse struct {
		Member domain.Member `json:"member"`
	}
	resp, err := doJSON[memberResponse](ctx, c, fasthttp.MethodGet, "/api/clan/members/"+strconv.FormatInt(accountID, 10), nil)
	if err != nil {
		return nil, err
	}
	return &resp.Member, nil
}

func (c *Client) degrade(err error, op, owner string) {
	c.status.degrade(err, c.now())
	c.log.Warn().Err(err).Str("op", op).Str("owner", owner).Msg("roster store unreachable, using local cache")
}

func (c *Client) recovered() {
	c.status.reset(len(c.cache.Pending()) > 0)
}

func (c *Client) clearPending(key string) {
	if err := c.cache.ClearPending(key); err != nil {
		c.log.Warn().Err(err).Str("owner", key).Msg("failed to clear unsynced roster flag")
	}
}

func (c *Client) writeCache(key string, members []domain.Member) {
	if err := c.cache.Store(key, members); err != nil {
		c.log.Warn().Err(err).Str("owner", key).Msg("failed to refresh local roster cache")
	}
}

// doJSON sends body as JSON and decodes the response into T. Connection
// failures and 5xx responses wrap domain.ErrTransport; other non-2xx
// responses are returned as *HTTPError.
func doJSON[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(raw)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrTransport, err)
	}

	status := resp.StatusCode()
	if status >= fasthttp.StatusInternalServerError {
		return nil, fmt.Errorf("%s %s: %w: status %d", method, path, domain.ErrTransport, status)
	}
	if status < 200 || status >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(resp.Body(), &e)
		return nil, &HTTPError{StatusCode: status, Message: e.Error}
	}

	var out T
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return &out, nil
}
