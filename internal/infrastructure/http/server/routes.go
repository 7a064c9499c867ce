package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Skye-project/phantom-mask/internal/infrastructure/http/middleware"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", s.healthHandler.HandleHealth())

	r.Route("/pharmacies", func(r chi.Router) {
		r.Get("/open", s.pharmacyHandler.HandleOpenPharmacies)
		r.Get("/mask_count", s.pharmacyHandler.HandleMaskCount)
		r.Get("/{pharmacy_name}/masks", s.pharmacyHandler.HandleListMasks)
	})

	r.Get("/search", s.searchHandler.HandleSearch)
	r.Get("/users/top_users", s.userHandler.HandleTopUsers)
	r.Get("/transactions/summary", s.transactionHandler.HandleSummary)
	r.Post("/purchase", s.purchaseHandler.HandlePurchase)

	handler := middleware.NewRecoveryMiddleware(s.logger)(r)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = middleware.NewRequestIDMiddleware()(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Link")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 90*time.Second, "Request timeout")
}
