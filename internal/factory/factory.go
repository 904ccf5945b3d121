package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/cardroom/blackjack-go/internal/await"
	"github.com/cardroom/blackjack-go/internal/dependencies/clock"
	"github.com/cardroom/blackjack-go/internal/dependencies/random"
	"github.com/cardroom/blackjack-go/internal/services/auth"
	"github.com/cardroom/blackjack-go/internal/services/economy"
	"github.com/cardroom/blackjack-go/internal/services/scoring"
	"github.com/cardroom/blackjack-go/internal/services/table"
	"github.com/cardroom/blackjack-go/internal/storage"
	"github.com/cardroom/blackjack-go/internal/storage/memory"
	redisstorage "github.com/cardroom/blackjack-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoringService  *scoring.Service
	EconomyService  *economy.Service
	Coordinator     *await.Coordinator
	TableController *table.Controller
	AuthService     *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// EconomyConfig holds economy tuning (optional)
	// If zero value, defaults to economy.DefaultConfig()
	EconomyConfig economy.Config
	// AuthConfig holds the admin credential configuration (optional)
	AuthConfig auth.Config
	// DecisionTimeout bounds the wait for a hit/stand decision (optional)
	// If zero, defaults to await.DefaultTimeout
	DecisionTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default economy config if not provided
	economyCfg := cfg.EconomyConfig
	if economyCfg == (economy.Config{}) {
		economyCfg = economy.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, economyCfg, cfg.AuthConfig, cfg.DecisionTimeout, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Store,
	clk clock.Clock,
	rnd random.Random,
	economyCfg economy.Config,
	authCfg auth.Config,
	decisionTimeout time.Duration,
	logger *slog.Logger,
) *App {
	// Create services
	scoringService := scoring.New()
	economyService := economy.New(store, clk, economyCfg, logger)
	coordinator := await.New(clk, decisionTimeout)
	tableController := table.NewController(economyService, scoringService, coordinator, clk, rnd, logger)
	authService := auth.New(authCfg)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		ScoringService:  scoringService,
		EconomyService:  economyService,
		Coordinator:     coordinator,
		TableController: tableController,
		AuthService:     authService,
	}
}
