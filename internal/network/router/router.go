package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lavkaplus/loyalty/internal/config"
	"github.com/lavkaplus/loyalty/internal/network/handlers"
	"github.com/lavkaplus/loyalty/internal/network/middleware"
	"github.com/lavkaplus/loyalty/internal/services"
	"github.com/lavkaplus/loyalty/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Config    config.Config
	Identity  services.IdentityService
	Reconcile services.ReconciliationService
	Storage   storage.Storage
	DB        *storage.Database
}

func NewRouter(config config.Config, store storage.Storage, db *storage.Database) *Router {
	agent := services.NewAgentService(config.Reconcile.AgentTimeout)
	return &Router{
		Config:    config,
		Identity:  services.NewIdentity(config.Server, store.Cashiers),
		Reconcile: services.NewReconciliation(store, agent, config.Reconcile),
		Storage:   store,
		DB:        db,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Identity.GetTokenAuth()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Route("/cashier", func(r chi.Router) {
			r.Post("/login", handlers.LoginHandler(router.Identity))
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(ja))
				r.Use(jwtauth.Authenticator(ja))
				r.Get("/check", handlers.GetCheckAmountHandler(router.Reconcile))
				r.Post("/purchases", handlers.PurchaseHandler(router.Reconcile))
				r.Post("/discounts", handlers.RequestDiscountHandler(router.Reconcile))
				r.Post("/discounts/{id}/force", handlers.ForceConfirmHandler(router.Reconcile))
			})
		})
		// терминалы 1С ходят с ключом магазина, без JWT
		r.Route("/terminal", func(r chi.Router) {
			r.Use(middleware.StoreAuth(router.Storage.Stores))
			r.Post("/check", handlers.RegisterCheckHandler(router.Reconcile))
			r.Post("/discounts/poll", handlers.PollDiscountsHandler(router.Reconcile))
			r.Post("/discounts/{id}/confirm", handlers.ConfirmDiscountHandler(router.Reconcile))
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))
			r.Get("/stores/{storeID}/discounts", handlers.StoreDiscountsHandler(router.Reconcile))
			r.Post("/stores/{storeID}/cashiers", handlers.RegisterCashierHandler(router.Identity))
		})
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/ping", handlers.PingHandler(router.DB))
	return r
}
