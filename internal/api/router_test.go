package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
	"github.com/infernalwolves/clan-dashboard/internal/core/service"
	"github.com/infernalwolves/clan-dashboard/internal/infrastructure/directory"
	"github.com/infernalwolves/clan-dashboard/internal/infrastructure/store"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const testSecret = "router-test-secret"

// downClan fails every call as if the stats provider were unreachable.
type downClan struct{}

func (downClan) Overview(context.Context) (*ports.ClanOverview, error) {
	return nil, fmt.Errorf("clan overview: %w", domain.ErrTransport)
}
func (downClan) Members(context.Context, ports.MembersQuery) ([]domain.MemberView, error) {
	return nil, domain.ErrTransport
}
func (downClan) Player(context.Context, int64) (*ports.PlayerDetail, error) {
	return nil, domain.ErrStatsAPI
}
func (downClan) Tier10Counts(context.Context, []int64) (map[int64]int, error) {
	return nil, domain.ErrTransport
}
func (downClan) Profiles(context.Context, []int64) (map[int64]*domain.PlayerProfile, error) {
	return nil, domain.ErrTransport
}

func newTestDirectory(t *testing.T) *directory.Directory {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	raw := fmt.Sprintf(`[
		{"username":"FireAriel","password_hash":%[1]q,"role":"admin","display_name":"FireAriel"},
		{"username":"Kiritonyu","password_hash":%[1]q,"role":"officer","display_name":"Kiritonyu"},
		{"username":"recruta","password_hash":%[1]q,"role":"member","display_name":"Recruta"}
	]`, string(hash))
	dir, err := directory.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse directory: %v", err)
	}
	return dir
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo, err := store.NewFileRepository(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("file repository: %v", err)
	}
	rosters := service.NewRosterService(repo, "file", zerolog.Nop())
	clan := downClan{}
	reg := prometheus.NewRegistry()

	e := NewRouter(Deps{
		Rosters:    rosters,
		Exporter:   service.NewExportService(rosters, clan),
		Clan:       clan,
		Auth:       service.NewAuthService(newTestDirectory(t), testSecret, time.Hour),
		JWTSecret:  testSecret,
		Log:        zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
	srv := httptest.NewServer(WithCORS(e, nil))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	var err error
	if body != "" {
		req, err = http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func login(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()
	code, resp := call(t, srv, http.MethodPost, "/api/auth/login", "", fmt.Sprintf(`{"username":%q,"password":"secret"}`, username))
	if code != http.StatusOK {
		t.Fatalf("login %s: status %d %+v", username, code, resp)
	}
	token, _ := resp["token"].(string)
	return token
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	code, resp := call(t, srv, http.MethodGet, "/api/health", "", "")
	if code != http.StatusOK || resp["success"] != true {
		t.Fatalf("unexpected health: %d %+v", code, resp)
	}
}

func TestRouter_Login(t *testing.T) {
	srv := newTestServer(t)

	code, resp := call(t, srv, http.MethodPost, "/api/auth/login", "", `{"username":"kiritonyu","password":"wrong"}`)
	if code != http.StatusUnauthorized || resp["success"] != false || resp["error"] != "invalid credentials" {
		t.Fatalf("unexpected response: %d %+v", code, resp)
	}

	token := login(t, srv, "KIRITONYU")
	code, resp = call(t, srv, http.MethodGet, "/api/auth/me", token, "")
	user, _ := resp["user"].(map[string]any)
	if code != http.StatusOK || user["username"] != "Kiritonyu" || user["role"] != domain.RoleOfficer {
		t.Fatalf("unexpected me: %d %+v", code, resp)
	}
}

func TestRouter_TeamLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "Kiritonyu")

	code, resp := call(t, srv, http.MethodGet, "/api/teams/Kiritonyu", "", "")
	if code != http.StatusOK || resp["version"] != float64(0) {
		t.Fatalf("unexpected empty team: %d %+v", code, resp)
	}

	body := `{"team":[{"account_id":1,"account_name":"jefe","role":"commander"}]}`
	code, resp = call(t, srv, http.MethodPost, "/api/teams/Kiritonyu", token, body)
	if code != http.StatusOK || resp["success"] != true {
		t.Fatalf("unexpected save: %d %+v", code, resp)
	}
	saved, _ := resp["version"].(float64)
	if saved <= 0 {
		t.Fatalf("expected positive version, got %v", resp["version"])
	}

	code, resp = call(t, srv, http.MethodGet, "/api/teams", "", "")
	teams, _ := resp["teams"].(map[string]any)
	versions, _ := resp["versions"].(map[string]any)
	if code != http.StatusOK || len(teams) != 1 || versions["kiritonyu"] != saved {
		t.Fatalf("unexpected listing: %d %+v", code, resp)
	}

	code, _ = call(t, srv, http.MethodDelete, "/api/teams/kiritonyu", token, "")
	if code != http.StatusOK {
		t.Fatalf("unexpected delete status %d", code)
	}
	_, resp = call(t, srv, http.MethodGet, "/api/teams/kiritonyu", "", "")
	if team, _ := resp["team"].([]any); len(team) != 0 {
		t.Fatalf("expected empty team after delete, got %+v", resp)
	}
}

func TestRouter_TeamWritesRequireOwnerOrAdmin(t *testing.T) {
	srv := newTestServer(t)
	body := `{"team":[]}`

	if code, _ := call(t, srv, http.MethodPost, "/api/teams/kiritonyu", "", body); code != http.StatusUnauthorized {
		t.Fatalf("anonymous write: expected 401, got %d", code)
	}

	member := login(t, srv, "recruta")
	if code, _ := call(t, srv, http.MethodPost, "/api/teams/recruta", member, body); code != http.StatusForbidden {
		t.Fatalf("member write: expected 403, got %d", code)
	}

	officer := login(t, srv, "Kiritonyu")
	if code, _ := call(t, srv, http.MethodPost, "/api/teams/fireariel", officer, body); code != http.StatusForbidden {
		t.Fatalf("officer on other team: expected 403, got %d", code)
	}

	admin := login(t, srv, "FireAriel")
	if code, _ := call(t, srv, http.MethodPost, "/api/teams/kiritonyu", admin, body); code != http.StatusOK {
		t.Fatalf("admin on other team: expected 200, got %d", code)
	}
}

func TestRouter_InvalidTeamPayload(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "Kiritonyu")

	code, resp := call(t, srv, http.MethodPost, "/api/teams/kiritonyu", token, `{"team":"nope"}`)
	if code != http.StatusBadRequest || resp["success"] != false {
		t.Fatalf("expected 400 envelope, got %d %+v", code, resp)
	}
}

func TestRouter_UpstreamFailureIsRetryable(t *testing.T) {
	srv := newTestServer(t)

	code, resp := call(t, srv, http.MethodGet, "/api/clan", "", "")
	if code != http.StatusBadGateway || resp["retryable"] != true {
		t.Fatalf("expected retryable 502, got %d %+v", code, resp)
	}
	code, _ = call(t, srv, http.MethodGet, "/api/clan/members/7", "", "")
	if code != http.StatusBadGateway {
		t.Fatalf("expected 502 for stats API error, got %d", code)
	}
}

func TestRouter_ExportEmptyTeamIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	code, resp := call(t, srv, http.MethodGet, "/api/teams/nobody/export", "", "")
	if code != http.StatusNotFound || resp["success"] != false {
		t.Fatalf("expected 404, got %d %+v", code, resp)
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	srv := newTestServer(t)
	call(t, srv, http.MethodGet, "/api/health", "", "")

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/teams/kiritonyu", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS headers, got %v", resp.Header)
	}
}

func TestRouter_SwaggerDocument(t *testing.T) {
	srv := newTestServer(t)

	code, doc := call(t, srv, http.MethodGet, "/swagger/doc.json", "", "")
	if code != http.StatusOK {
		t.Fatalf("unexpected swagger status %d", code)
	}
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range []string{"/api/teams", "/api/teams/{owner}", "/api/teams/{owner}/export", "/api/health/ready"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("swagger document missing %s", p)
		}
	}
	defs, _ := doc["definitions"].(map[string]any)
	if _, ok := defs["handler.ErrorResponse"]; !ok {
		t.Fatalf("swagger document missing ErrorResponse: %v", defs)
	}
	if _, ok := defs["domain.RoleTag"]; !ok {
		t.Fatalf("swagger document missing RoleTag enum")
	}
}
