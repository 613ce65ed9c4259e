package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/config"
	"github.com/heartmarshall/lostfound-backend/internal/transport/dataloader"
	"github.com/heartmarshall/lostfound-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Handlers groups every endpoint the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	LostItems    *LostItemHandler
	FoundItems   *FoundItemHandler
	Email        *EmailHandler
	Bookmarks    *BookmarkHandler
	Notification *NotificationHandler
	Socket       http.Handler
	Metrics      http.Handler
}

// RouterDeps holds the cross-cutting pieces of the HTTP stack.
type RouterDeps struct {
	Logger    *slog.Logger
	CORS      config.CORSConfig
	Tokens    tokenValidator
	Loaders   *dataloader.Repos
	Limiter   *middleware.RateLimiter
	RateLimit int
}

// NewRouter builds the HTTP surface. Middleware runs outermost first:
// recovery, request id, logging, CORS, then optional bearer auth.
func NewRouter(deps RouterDeps, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Chain(
		middleware.Recovery(deps.Logger),
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.CORS),
		middleware.Auth(deps.Tokens),
	))

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}
	r.Method(http.MethodGet, "/socket", h.Socket)

	limit := deps.Limiter.Limit(deps.RateLimit)

	r.Route("/api", func(r chi.Router) {
		r.Use(dataloader.Middleware(deps.Loaders))

		r.Route("/auth", func(r chi.Router) {
			r.With(limit).Post("/signup", h.Auth.Signup)
			r.With(limit).Post("/login", h.Auth.Login)
			r.Get("/user/{userId}", h.Auth.GetUser)
		})

		r.Route("/lostitems", func(r chi.Router) {
			r.Get("/", h.LostItems.List)
			r.Get("/{id}", h.LostItems.Get)
			r.With(requireAuth).Post("/", h.LostItems.Create)
			r.With(requireAuth).Put("/{id}", h.LostItems.Update)
			r.With(requireAuth).Delete("/{id}", h.LostItems.Delete)
		})

		r.Route("/founditems", func(r chi.Router) {
			r.Get("/", h.FoundItems.List)
			r.Get("/{id}", h.FoundItems.Get)
			r.With(requireAuth).Post("/", h.FoundItems.Create)
			r.With(requireAuth).Delete("/{id}", h.FoundItems.Delete)
		})

		r.With(requireAuth, limit).Post("/send-found-email", h.Email.SendFoundEmail)
		r.With(requireAuth, limit).Post("/send-email", h.Email.SendEmail)

		r.Route("/bookmarks", func(r chi.Router) {
			r.With(requireAuth).Post("/", h.Bookmarks.Create)
			// Same param name as DELETE: {id} is the user id here.
			r.Get("/{id}", h.Bookmarks.ListByUser)
			r.With(requireAuth).Delete("/{id}", h.Bookmarks.Delete)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.Notification.List)
			r.Patch("/{id}/read", h.Notification.MarkRead)
		})
	})

	return r
}
