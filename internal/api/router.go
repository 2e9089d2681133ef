package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/calebmoss/promptvault/internal/api/handlers"
	"github.com/calebmoss/promptvault/internal/api/middleware"
	"github.com/calebmoss/promptvault/internal/audit"
	"github.com/calebmoss/promptvault/internal/cache"
	"github.com/calebmoss/promptvault/internal/config"
	"github.com/calebmoss/promptvault/internal/library"
	"github.com/calebmoss/promptvault/internal/store"
)

type Router struct {
	mux     *chi.Mux
	db      *pgxpool.Pool
	redis   *redis.Client
	cfg     *config.Config
	limiter *middleware.RateLimiter
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rt.limiter = middleware.NewRateLimiter(float64(rt.cfg.Server.RateLimitRPS), rt.cfg.Server.RateLimitBurst)
	r.Use(rt.limiter.Limit)

	// Health endpoints (no identity needed)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	var c library.Cache
	if rt.redis != nil {
		c = cache.New(rt.redis)
	}
	recorder := audit.NewRecorder(rt.db)
	svc := library.NewService(store.NewPostgres(rt.db), c, recorder, rt.cfg.Library.CacheTTL)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(rt.cfg.Library.DefaultUserID))

		promptH := handlers.NewPromptHandler(svc)
		versionH := handlers.NewVersionHandler(svc)
		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", promptH.List)
			r.Post("/", promptH.Create)
			r.Get("/{id}", promptH.Get)
			r.Delete("/{id}", promptH.Delete)
			r.Patch("/{id}/title", promptH.UpdateTitle)
			r.Patch("/{id}/category", promptH.UpdateCategory)
			r.Patch("/{id}/tags", promptH.UpdateTags)
			r.Put("/{id}/favorite", promptH.Favorite)
			r.Delete("/{id}/favorite", promptH.Unfavorite)
			r.Post("/{id}/versions", versionH.Create)
			r.Get("/{id}/diff", versionH.Diff)
		})

		r.Route("/versions", func(r chi.Router) {
			r.Patch("/{id}/content", versionH.UpdateContent)
			r.Patch("/{id}/label", versionH.UpdateLabel)
		})

		categoryH := handlers.NewCategoryHandler(svc)
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryH.List)
			r.Post("/", categoryH.Create)
		})

		tagH := handlers.NewTagHandler(svc)
		r.Get("/tags/trending", tagH.Trending)

		bulkH := handlers.NewBulkHandler(svc)
		r.Route("/bulk", func(r chi.Router) {
			r.Post("/move", bulkH.Move)
			r.Post("/tags", bulkH.AddTags)
			r.Post("/delete", bulkH.Delete)
		})

		shareH := handlers.NewShareHandler(svc)
		r.Get("/share/{shareID}", shareH.Resolve)

		adminH := handlers.NewAdminHandler(recorder)
		r.Get("/admin/audit", adminH.AuditLog)
	})

	return r
}

// Close stops the router's background workers.
func (rt *Router) Close() {
	if rt.limiter != nil {
		rt.limiter.Stop()
	}
}
