package handlers

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flowadmin/internal/middleware"
	"github.com/GregMSThompson/flowadmin/internal/response"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type tokenMinter interface {
	Token(uid string, admin bool) (string, error)
}

// supabaseProxy forwards /supabase/* to the Supabase project, replacing the
// caller's Firebase token with a minted Supabase JWT.
type supabaseProxy struct {
	ResponseHandler response.ResponseHandler
	Minter          tokenMinter
	APIKey          string
	target          *url.URL
	proxy           *httputil.ReverseProxy
}

func NewSupabaseProxy(rh response.ResponseHandler, baseURL, apiKey string, minter tokenMinter) (*supabaseProxy, error) {
	target, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, err
	}
	p := &supabaseProxy{
		ResponseHandler: rh,
		Minter:          minter,
		APIKey:          apiKey,
		target:          target,
	}
	p.proxy = &httputil.ReverseProxy{
		Rewrite:      p.rewrite,
		ErrorHandler: p.upstreamError,
	}
	return p, nil
}

// ProxyRoutes is mounted at /supabase behind FirebaseAuth.
func (p *supabaseProxy) ProxyRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/*", p.ServeHTTP)
	r.Post("/*", p.ServeHTTP)
	r.Patch("/*", p.ServeHTTP)
	r.Delete("/*", p.ServeHTTP)
	return r
}

func (p *supabaseProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := middleware.User(r.Context())
	if user == nil {
		p.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "Missing authenticated user")
		return
	}
	token, err := p.Minter.Token(user.UID, user.IsAdmin())
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to mint supabase token", "error", err)
		p.ResponseHandler.HandleError(w, r, err)
		return
	}

	out := r.Clone(r.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	out.Header.Set("apikey", p.APIKey)
	p.proxy.ServeHTTP(w, out)
}

func (p *supabaseProxy) rewrite(pr *httputil.ProxyRequest) {
	rest := chi.URLParam(pr.In, "*")
	pr.Out.URL.Scheme = p.target.Scheme
	pr.Out.URL.Host = p.target.Host
	pr.Out.URL.Path = p.target.Path + "/" + strings.TrimLeft(rest, "/")
	pr.Out.URL.RawPath = ""
	pr.Out.URL.RawQuery = pr.In.URL.RawQuery
	pr.Out.Host = ""
}

func (p *supabaseProxy) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Warn("supabase proxy request failed", "error", err)
	p.ResponseHandler.WriteError(w, r, http.StatusBadGateway, "service_unavailable", "Supabase request failed")
}
