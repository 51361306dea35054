package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/robocafe/api/internal/auth"
	"github.com/robocafe/api/internal/catalog"
	"github.com/robocafe/api/internal/config"
	"github.com/robocafe/api/internal/enum"
	"github.com/robocafe/api/internal/handler"
	"github.com/robocafe/api/internal/logger"
	"github.com/robocafe/api/internal/middleware"
	"github.com/robocafe/api/internal/payment"
	"github.com/robocafe/api/internal/service"
	"github.com/robocafe/api/internal/ws"
)

// New creates a Chi router with all application routes wired up. Customer
// endpoints are public; staff endpoints require a chef session token.
func New(
	cfg *config.Config,
	svc *service.OrderService,
	cat *catalog.Catalog,
	chefKeys *auth.ChefKeyTable,
	payments payment.Processor,
	hub *ws.Hub,
	log *logger.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	orderHandler := handler.NewOrderHandler(svc, cat, payments, log)
	catalogHandler := handler.NewCatalogHandler(cat)
	robotHandler := handler.NewRobotHandler(svc, svc, log)
	authHandler := handler.NewAuthHandler(chefKeys, cfg.JWTSecret, log)
	healthHandler := handler.NewHealthHandler(svc)

	// Public: customer app, robot bridge, login.
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/menu", catalogHandler.Menu)
		r.Get("/combos", catalogHandler.Combos)
		r.Post("/order", orderHandler.Create)
		r.Get("/table", robotHandler.Table)
		r.Post("/auth/chef", authHandler.ChefLogin)

		// Staff: chef dashboard actions.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecret))
			r.Use(middleware.RequireRole(enum.RoleChef))

			r.Get("/orders", orderHandler.List)
			r.Put("/orders/{orderId}/status", orderHandler.UpdateStatus)
			r.Delete("/orders", orderHandler.Clear)
			r.Post("/robot/dispatch", robotHandler.Dispatch)
		})
	})

	// Websocket staff feed (handles auth internally via query param).
	r.Get("/ws/orders", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, req)
	})

	return r
}
