package wargaming

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"github.com/infernalwolves/clan-dashboard/internal/api/metrics"
	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

const (
	// accountBatchSize is the provider's limit of ids per account request.
	accountBatchSize   = 100
	accountConcurrency = 4
	defaultTimeout     = 30 * time.Second
)

var regionBaseURLs = map[string]string{
	"na":   "https://api.worldoftanks.com/wot",
	"eu":   "https://api.worldoftanks.eu/wot",
	"asia": "https://api.worldoftanks.asia/wot",
	"ru":   "https://api.tanki.su/wot",
}

// BaseURL returns the API root of region, falling back to North America.
func BaseURL(region string) string {
	if u, ok := regionBaseURLs[strings.ToLower(region)]; ok {
		return u
	}
	return regionBaseURLs["na"]
}

type Config struct {
	ApplicationID string
	BaseURL       string
	Timeout       time.Duration
}

// Client talks to the public game statistics API.
type Client struct {
	appID   string
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		appID:   cfg.ApplicationID,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		logger: logger,
	}
}

func (c *Client) ClanInfo(ctx context.Context, clanID int64) (*domain.Clan, error) {
	id := strconv.FormatInt(clanID, 10)
	resp, err := doRequest[clanInfoResponse](ctx, c, "clans/info", url.Values{"clan_id": {id}})
	if err != nil {
		return nil, err
	}
	info := resp.Data[id]
	if info == nil {
		return nil, fmt.Errorf("clan %d: %w", clanID, domain.ErrNotFound)
	}
	return info.toDomain(), nil
}

// AccountsInfo fetches profiles in batches of accountBatchSize, a few batches at a time.
func (c *Client) AccountsInfo(ctx context.Context, accountIDs []int64) (map[int64]*domain.PlayerProfile, error) {
	var (
		mu  sync.Mutex
		out = make(map[int64]*domain.PlayerProfile, len(accountIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(accountConcurrency)
	for _, batch := range chunk(accountIDs, accountBatchSize) {
		g.Go(func() error {
			resp, err := doRequest[accountInfoResponse](gctx, c, "account/info", url.Values{
				"account_id": {joinIDs(batch)},
				"extra":      {"statistics.random"},
			})
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for key, p := range resp.Data {
				if p == nil {
					continue
				}
				id, err := strconv.ParseInt(key, 10, 64)
				if err != nil {
					continue
				}
				if p.AccountID == 0 {
					p.AccountID = id
				}
				out[id] = p
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AccountTanks(ctx context.Context, accountID int64) ([]domain.TankRef, error) {
	id := strconv.FormatInt(accountID, 10)
	resp, err := doRequest[accountTanksResponse](ctx, c, "account/tanks", url.Values{"account_id": {id}})
	if err != nil {
		return nil, err
	}
	return resp.Data[id], nil
}

// Vehicles loads the whole vehicle encyclopedia, following pagination.
func (c *Client) Vehicles(ctx context.Context) (map[int64]domain.Vehicle, error) {
	out := make(map[int64]domain.Vehicle)
	for page := 1; ; page++ {
		resp, err := doRequest[vehiclesResponse](ctx, c, "encyclopedia/vehicles", url.Values{
			"fields":  {"tank_id,name,tier,nation,type"},
			"page_no": {strconv.Itoa(page)},
		})
		if err != nil {
			return nil, err
		}
		for key, v := range resp.Data {
			if v == nil {
				continue
			}
			if v.TankID == 0 {
				v.TankID, _ = strconv.ParseInt(key, 10, 64)
			}
			out[v.TankID] = *v
		}
		if page >= resp.Meta.PageTotal {
			break
		}
	}
	return out, nil
}

func doRequest[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (*T, error) {
	start := time.Now()
	defer func() {
		metrics.StatsRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	params.Set("application_id", c.appID)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/" + endpoint + "/?" + params.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		metrics.StatsRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("stats provider unreachable")
		return nil, fmt.Errorf("%s: %w: %v", endpoint, domain.ErrTransport, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.StatsRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return nil, fmt.Errorf("%s: %w: status %d", endpoint, domain.ErrTransport, resp.StatusCode())
	}

	var status struct {
		Status string    `json:"status"`
		Error  *apiError `json:"error"`
	}
	body := resp.Body()
	if err := json.Unmarshal(body, &status); err != nil {
		metrics.StatsRequestsTotal.WithLabelValues(endpoint, "api_error").Inc()
		return nil, fmt.Errorf("%s: %w: decode: %v", endpoint, domain.ErrStatsAPI, err)
	}
	if status.Status != "ok" {
		metrics.StatsRequestsTotal.WithLabelValues(endpoint, "api_error").Inc()
		msg := "unknown error"
		if status.Error != nil {
			msg = fmt.Sprintf("%d %s", status.Error.Code, status.Error.Message)
		}
		c.logger.Warn().Str("endpoint", endpoint).Str("error", msg).Msg("stats provider rejected request")
		return nil, fmt.Errorf("%s: %w: %s", endpoint, domain.ErrStatsAPI, msg)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.StatsRequestsTotal.WithLabelValues(endpoint, "api_error").Inc()
		return nil, fmt.Errorf("%s: %w: decode: %v", endpoint, domain.ErrStatsAPI, err)
	}
	metrics.StatsRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return &result, nil
}

func chunk(ids []int64, size int) [][]int64 {
	var out [][]int64
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
