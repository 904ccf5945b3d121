package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardroom/blackjack-go/internal/api/handler"
	"github.com/cardroom/blackjack-go/internal/api/middleware"
	"github.com/cardroom/blackjack-go/internal/services/auth"
	"github.com/cardroom/blackjack-go/internal/services/economy"
	"github.com/cardroom/blackjack-go/internal/services/table"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	TableController *table.Controller
	EconomyService  *economy.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	tableHandler := handler.NewTableHandler(cfg.TableController)
	economyHandler := handler.NewEconomyHandler(cfg.EconomyService)

	// Create middleware
	adminMiddleware := middleware.Admin(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Table routes
	api.HandleFunc("/tables", tableHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}", tableHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}", tableHandler.Abandon).Methods(http.MethodDelete)
	api.HandleFunc("/tables/{id}/prompt", tableHandler.Prompt).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/hit", tableHandler.Hit).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}/stand", tableHandler.Stand).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}/result", tableHandler.Result).Methods(http.MethodGet)

	// Economy routes
	api.HandleFunc("/players/{id}/balance", economyHandler.Balance).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}/claim", economyHandler.Claim).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", economyHandler.Leaderboard).Methods(http.MethodGet)

	// Administrative ledger overwrites
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/players/{id}/balance", economyHandler.SetBalance).Methods(http.MethodPut)
	admin.HandleFunc("/players/{id}/credits", economyHandler.SetCredits).Methods(http.MethodPut)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
