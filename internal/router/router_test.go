package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/handlers"
	"github.com/GregMSThompson/flowadmin/internal/middleware"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/internal/response"
)

type tokenTable map[string]*auth.Token

func (t tokenTable) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := t[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("unknown token")
}

type rawConfig string

func (c rawConfig) Raw() []byte { return []byte(c) }

type fakeDocuments struct{}

func (fakeDocuments) List(_ context.Context, collection string, params dto.PageParams) (dto.Page[models.Document], error) {
	return dto.NewPage([]models.Document{{"id": "1"}}, 1, params), nil
}
func (fakeDocuments) Get(_ context.Context, _, id string) (models.Document, error) {
	return models.Document{"id": id}, nil
}
func (fakeDocuments) Create(_ context.Context, _ *models.AuthUser, _ string, doc models.Document) (models.Document, error) {
	return doc, nil
}
func (fakeDocuments) Update(_ context.Context, _, _ string, doc models.Document) (models.Document, error) {
	return doc, nil
}
func (fakeDocuments) Delete(_ context.Context, _, _ string) error { return nil }
func (fakeDocuments) ListOwned(_ context.Context, _ *models.AuthUser, _ string, params dto.PageParams) (dto.Page[models.Document], error) {
	return dto.NewPage[models.Document](nil, 0, params), nil
}
func (fakeDocuments) GetOwned(_ context.Context, _ *models.AuthUser, _, id string) (models.Document, error) {
	return models.Document{"id": id}, nil
}
func (fakeDocuments) CreateOwned(_ context.Context, _ *models.AuthUser, _ string, doc models.Document) (models.Document, error) {
	return doc, nil
}
func (fakeDocuments) DeleteOwned(_ context.Context, _ *models.AuthUser, _, _ string) error { return nil }

type fakeTables struct{}

func (fakeTables) List(_ context.Context, table string, params dto.PageParams) (dto.Page[models.Document], error) {
	return dto.NewPage([]models.Document{{"table": table}}, 1, params), nil
}
func (fakeTables) ListOwned(_ context.Context, _ *models.AuthUser, _ string, params dto.PageParams) (dto.Page[models.Document], error) {
	return dto.NewPage[models.Document](nil, 0, params), nil
}
func (fakeTables) Delete(_ context.Context, _, _ string) error { return nil }
func (fakeTables) DeleteOwned(_ context.Context, _ *models.AuthUser, _, _ string) error {
	return nil
}

type fakeUsers struct{}

func (fakeUsers) ListUsers(context.Context) ([]models.AdminUser, error) { return []models.AdminUser{}, nil }
func (fakeUsers) GetUser(_ context.Context, uid string) (models.AdminUser, error) {
	return models.AdminUser{UID: uid}, nil
}
func (fakeUsers) SetRole(_ context.Context, _ *models.AuthUser, req dto.SetRoleRequest) (models.AdminUser, error) {
	return models.AdminUser{UID: req.UID}, nil
}
func (fakeUsers) VerificationLink(context.Context, string) (string, error) { return "link", nil }
func (fakeUsers) SyncSupabaseUsers(context.Context) (dto.UserSyncResult, error) {
	return dto.UserSyncResult{}, nil
}

func newTestRouter(t *testing.T, rateLimit int) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rh := response.New(log)
	tokens := tokenTable{
		"admin": {UID: "a1", Claims: map[string]interface{}{"role": "admin"}},
		"user":  {UID: "u1", Claims: map[string]interface{}{}},
	}
	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: rh,
		DashboardConfig: rawConfig(`{"app_name":"Test"}`),
		DocumentSvc:     fakeDocuments{},
		UserSvc:         fakeUsers{},
		TableSvc:        fakeTables{},
		SupabaseProxy: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	}
	mw := middleware.NewMiddleware(tokens, rh, false, "")
	return NewRouter(deps, mw, Options{AllowedOrigins: []string{"https://admin.example.com"}, RateLimit: rateLimit})
}

func do(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterAccessControl(t *testing.T) {
	h := newTestRouter(t, 0)

	cases := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/configure", "", http.StatusOK},
		{http.MethodGet, "/admin/posts", "", http.StatusUnauthorized},
		{http.MethodGet, "/admin/posts", "user", http.StatusUnauthorized},
		{http.MethodGet, "/admin/posts", "admin", http.StatusOK},
		{http.MethodGet, "/admin/posts/1", "admin", http.StatusOK},
		{http.MethodPatch, "/admin/posts/1", "admin", http.StatusOK},
		{http.MethodDelete, "/admin/posts/1", "admin", http.StatusOK},
		{http.MethodGet, "/admin/auth/users", "admin", http.StatusOK},
		{http.MethodGet, "/admin/auth/users", "user", http.StatusUnauthorized},
		{http.MethodGet, "/records/notes", "user", http.StatusOK},
		{http.MethodGet, "/records/notes", "", http.StatusUnauthorized},
		{http.MethodGet, "/admin/tables/orders", "admin", http.StatusOK},
		{http.MethodGet, "/admin/tables/orders", "user", http.StatusUnauthorized},
		{http.MethodDelete, "/admin/tables/orders/7", "admin", http.StatusOK},
		{http.MethodGet, "/tables/orders", "user", http.StatusOK},
		{http.MethodDelete, "/tables/orders/7", "user", http.StatusOK},
		{http.MethodGet, "/tables/orders", "", http.StatusUnauthorized},
		{http.MethodGet, "/supabase/rest/v1/orders", "user", http.StatusTeapot},
		{http.MethodGet, "/supabase/rest/v1/orders", "bogus", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		rr := do(h, tc.method, tc.path, tc.token)
		if rr.Code != tc.want {
			t.Errorf("%s %s (token %q): expected %d, got %d", tc.method, tc.path, tc.token, tc.want, rr.Code)
		}
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	h := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodOptions, "/admin/posts", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestRouterRateLimit(t *testing.T) {
	h := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		if rr := do(h, http.MethodGet, "/configure", ""); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
	if rr := do(h, http.MethodGet, "/configure", ""); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}
