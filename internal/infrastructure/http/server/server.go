package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Skye-project/phantom-mask/internal/application/use_cases"
	"github.com/Skye-project/phantom-mask/internal/config"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/http/handlers"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/persistence/postgres"
	"github.com/Skye-project/phantom-mask/internal/pkg/clock"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type Server struct {
	server             *http.Server
	logger             *logger.Logger
	healthHandler      *handlers.HealthHandler
	pharmacyHandler    *handlers.PharmacyHandler
	searchHandler      *handlers.SearchHandler
	userHandler        *handlers.UserHandler
	transactionHandler *handlers.TransactionHandler
	purchaseHandler    *handlers.PurchaseHandler
}

func NewServer(cfg *config.Config, conn *postgres.Connection, log *logger.Logger) *Server {
	catalogRepo := postgres.NewCatalogRepository(conn)
	accountRepo := postgres.NewAccountRepository(conn)
	purchaseStore := postgres.NewPurchaseStore(conn)

	queryUseCase := use_cases.NewQueryUseCase(catalogRepo, accountRepo, log)
	purchaseUseCase := use_cases.NewPurchaseUseCase(purchaseStore, clock.NewRealClock(), log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:             server,
		logger:             log,
		healthHandler:      handlers.NewHealthHandler(conn.GetDB(), log),
		pharmacyHandler:    handlers.NewPharmacyHandler(queryUseCase, log),
		searchHandler:      handlers.NewSearchHandler(queryUseCase, log),
		userHandler:        handlers.NewUserHandler(queryUseCase, log),
		transactionHandler: handlers.NewTransactionHandler(queryUseCase, log),
		purchaseHandler:    handlers.NewPurchaseHandler(purchaseUseCase, log),
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
