package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jahangeer-44/Job-Nest/internal/identity/service"
	"github.com/jahangeer-44/Job-Nest/internal/identity/store"
	"github.com/jahangeer-44/Job-Nest/pkg/httpx"
	"github.com/jahangeer-44/Job-Nest/pkg/sessionx"
	"github.com/jahangeer-44/Job-Nest/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessions     *sessionx.Issuer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	Identity *service.IdentityService
}

func NewRouter(sessions *sessionx.Issuer, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		sessions:     sessions,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	// Credential endpoints carry a strict per-IP limit to slow down brute
	// force and bulk account creation.
	r.Mux.Handle("POST /v1/users/register",
		httpx.Chain(&RegisterHandler{Identity: r.Identity},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/users/login",
		httpx.Chain(&LoginHandler{Identity: r.Identity},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/users/logout", &LogoutHandler{Identity: r.Identity})

	r.Mux.Handle("POST /v1/users/profile",
		httpx.Chain(&ProfileHandler{Identity: r.Identity},
			SessionAuth(r.sessions),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
