package app

import (
	"github.com/avc/points-ledger/internal/handlers"
	"github.com/avc/points-ledger/internal/utils/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, jwtManager *jwt.Manager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	setupMiddleware(r, logger)

	// Маршруты
	setupRoutes(r, deps, jwtManager, logger)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies, jwtManager *jwt.Manager, logger *zap.Logger) {
	// Health check эндпоинты
	r.Get("/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)

	// Публичные эндпоинты
	r.Post("/api/user/register", deps.handlers.auth.Register)
	r.Post("/api/user/login", deps.handlers.auth.Login)

	// Защищенные эндпоинты
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager))

		r.Route("/api/points", func(r chi.Router) {
			r.Get("/summary", deps.handlers.points.GetSummary)
			r.Get("/transactions", deps.handlers.points.ListTransactions)
			r.Get("/leaderboard", deps.handlers.points.Leaderboard)
			r.Post("/check", deps.handlers.points.CheckBalance)
			r.Post("/redeem", deps.handlers.points.Redeem)
			r.Get("/promotions", deps.handlers.points.ListPromotions)
			r.Post("/promotions/{code}/redeem", deps.handlers.points.RedeemPromotion)
		})

		r.Route("/api/admin/points", func(r chi.Router) {
			r.Use(handlers.AdminMiddleware(logger))
			r.Post("/earn", deps.handlers.admin.Earn)
			r.Post("/grant", deps.handlers.admin.Grant)
			r.Post("/{userID}/rebuild", deps.handlers.admin.Rebuild)
		})
	})
}
