package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamevault/catalog/internal/auth"
	"github.com/gamevault/catalog/internal/handler"
	adminhandler "github.com/gamevault/catalog/internal/handler/admin"
	"github.com/gamevault/catalog/internal/repository"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool               *pgxpool.Pool
	JWTMgr             *auth.JWTManager
	Logger             *slog.Logger
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	gameRepo := repository.NewGameRepository()
	achievementRepo := repository.NewAchievementRepository()
	itemRepo := repository.NewItemRepository()
	playerRepo := repository.NewPlayerRepository()
	adminRepo := repository.NewAdminRepository()
	userRepo := repository.NewAppUserRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Handlers
	gameHandler := handler.NewGameHandler(pool, pool, gameRepo, achievementRepo, itemRepo, outboxRepo)
	achievementHandler := handler.NewAchievementHandler(pool, pool, achievementRepo, gameRepo, outboxRepo)
	itemHandler := handler.NewItemHandler(pool, pool, itemRepo, gameRepo, outboxRepo)
	authHandler := handler.NewAuthHandler(pool, pool, userRepo, playerRepo, outboxRepo, jwtMgr)

	// Admin handlers
	playerAdmin := adminhandler.NewPlayerAdminHandler(pool, pool, playerRepo, userRepo, gameRepo, achievementRepo, itemRepo, outboxRepo)
	adminAccounts := adminhandler.NewAdminAccountHandler(pool, pool, adminRepo, userRepo, outboxRepo)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.Metrics)
	r.Use(handler.CORSWithOrigins(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Open routes
	r.Get("/health", handler.HealthHandler(pool))
	r.Method("GET", "/metrics", handler.MetricsHandler())
	r.Post("/auth/login", authHandler.Login)
	r.Post("/players/register", authHandler.Register)

	// Catalog management (ADMIN only)
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))
		r.Use(auth.RequireRole(auth.RoleAdmin))

		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameHandler.List)
			r.Post("/", gameHandler.Create)
			r.Get("/{id}", gameHandler.Get)
			r.Put("/{id}", gameHandler.Update)
			r.Delete("/{id}", gameHandler.Delete)
			r.Get("/{id}/achievements", gameHandler.Achievements)
			r.Get("/{id}/items", gameHandler.Items)
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", achievementHandler.List)
			r.Post("/", achievementHandler.Create)
			r.Get("/{id}", achievementHandler.Get)
			r.Put("/{id}", achievementHandler.Update)
			r.Delete("/{id}", achievementHandler.Delete)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Post("/", itemHandler.Create)
			r.Get("/{id}", itemHandler.Get)
			r.Put("/{id}", itemHandler.Update)
			r.Delete("/{id}", itemHandler.Delete)
		})
	})

	// Name-scoped game lookups (any authenticated role)
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))
		r.Use(auth.RequireRole(auth.AllRoles()...))

		r.Get("/games/name/{name}/achievements", gameHandler.AchievementsByName)
		r.Get("/games/name/{name}/items", gameHandler.ItemsByName)
	})

	// Account management (ADMIN only)
	r.Route("/admins", func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))
		r.Use(auth.RequireRole(auth.RoleAdmin))

		r.Get("/list", adminAccounts.List)
		r.Post("/create-admins", adminAccounts.Create)
		r.Post("/create-players", playerAdmin.Create)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerAdmin.List)
			r.Get("/{id}", playerAdmin.Get)
			r.Put("/{id}/update", playerAdmin.Update)
			r.Delete("/{id}/delete", playerAdmin.Delete)
			r.Get("/{id}/games", playerAdmin.Games)
			r.Get("/{id}/achievements", playerAdmin.Achievements)
			r.Get("/{id}/items", playerAdmin.Items)
			r.Post("/{id}/games/{gameID}", playerAdmin.GrantGame)
			r.Post("/{id}/achievements/{achievementID}", playerAdmin.GrantAchievement)
			r.Post("/{id}/items/{itemID}", playerAdmin.GrantItem)
		})

		r.Get("/{id}", adminAccounts.Get)
		r.Put("/{id}/update", adminAccounts.Update)
		r.Delete("/{id}/delete", adminAccounts.Delete)
	})

	return r
}
