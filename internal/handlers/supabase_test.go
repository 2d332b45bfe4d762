package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/flowadmin/internal/models"
)

type stubMinter struct {
	uid   string
	admin bool
	err   error
}

func (s *stubMinter) Token(uid string, admin bool) (string, error) {
	s.uid, s.admin = uid, admin
	return "minted-" + uid, s.err
}

func TestSupabaseProxy_ForwardsWithMintedToken(t *testing.T) {
	var got *http.Request
	var gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Range", "0-0/1")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `[{"id":1}]`)
	}))
	defer upstream.Close()

	minter := &stubMinter{}
	p, err := NewSupabaseProxy(realResponseHandler(), upstream.URL+"/", "anon-key", minter)
	if err != nil {
		t.Fatalf("NewSupabaseProxy: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/rest/v1/orders?select=id&status=eq.open", strings.NewReader(`{"a":1}`))
	req.Header.Set("Authorization", "Bearer firebase-token")
	req = withUser(req, testAdmin)
	rr := httptest.NewRecorder()
	p.ProxyRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated || rr.Body.String() != `[{"id":1}]` {
		t.Fatalf("upstream response not passed through: %d %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Content-Range") != "0-0/1" {
		t.Fatalf("upstream headers not passed through")
	}
	if got.URL.Path != "/rest/v1/orders" || got.URL.RawQuery != "select=id&status=eq.open" {
		t.Fatalf("unexpected upstream url: %s", got.URL.String())
	}
	if got.Header.Get("Authorization") != "Bearer minted-admin-1" || got.Header.Get("apikey") != "anon-key" {
		t.Fatalf("unexpected upstream headers: %v", got.Header)
	}
	if gotBody != `{"a":1}` {
		t.Fatalf("body not forwarded: %q", gotBody)
	}
	if minter.uid != "admin-1" || !minter.admin {
		t.Fatalf("token minted for %q admin=%v", minter.uid, minter.admin)
	}
}

func TestSupabaseProxy_RequiresUser(t *testing.T) {
	p, _ := NewSupabaseProxy(realResponseHandler(), "http://127.0.0.1:1", "k", &stubMinter{})

	rr := httptest.NewRecorder()
	p.ProxyRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/rest/v1/orders", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestSupabaseProxy_MintError(t *testing.T) {
	p, _ := NewSupabaseProxy(realResponseHandler(), "http://127.0.0.1:1", "k", &stubMinter{err: errors.New("no secret")})

	rr := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/rest/v1/orders", nil), &models.AuthUser{UID: "u1"})
	p.ProxyRoutes().ServeHTTP(rr, req)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestSupabaseProxy_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := upstream.URL
	upstream.Close()

	p, _ := NewSupabaseProxy(realResponseHandler(), addr, "k", &stubMinter{})
	rr := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/rest/v1/orders", nil), &models.AuthUser{UID: "u1"})
	p.ProxyRoutes().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
}
