package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/fundwise/internal/allocation"
	"github.com/wonny/fundwise/internal/api/handlers"
	"github.com/wonny/fundwise/internal/audit"
	"github.com/wonny/fundwise/internal/brain"
	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/market"
	"github.com/wonny/fundwise/internal/portfolio"
	"github.com/wonny/fundwise/internal/s0_data"
	"github.com/wonny/fundwise/internal/s1_universe"
	"github.com/wonny/fundwise/internal/s2_scoring"
	"github.com/wonny/fundwise/internal/simulation"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/config"
	"github.com/wonny/fundwise/pkg/database"
	"github.com/wonny/fundwise/pkg/httputil"
	"github.com/wonny/fundwise/pkg/logger"
	"github.com/wonny/fundwise/pkg/redis"
)

const cachePrefix = "fundwise"

// runtime holds every dependency a command may need
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	strategy *strategyconfig.Config

	db    *database.DB
	redis *redis.Client
	cache *redis.Cache

	funds  handlers.FundLister
	market *market.CachedProvider
	engine *brain.Engine
	sim    *simulation.Simulator
}

// flagOverrides maps global CLI flags onto the process config
func flagOverrides() []config.Override {
	return []config.Override{
		func(cfg *config.Config) {
			if strategyPath != "" {
				cfg.Engine.StrategyPath = strategyPath
			}
			if featuresPath != "" {
				cfg.Engine.FeatureSource = config.SourceCSV
				cfg.Engine.FeatureCSVPath = featuresPath
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
		},
	}
}

// newRuntime loads config and builds the engine and its collaborators
// ⭐ SSOT: 의존성 조립은 여기서만
func newRuntime(ctx context.Context, overrides ...config.Override) (*runtime, error) {
	// 1. Load config
	cfg, err := config.Load(append(flagOverrides(), overrides...)...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load strategy
	strategy, err := strategyconfig.LoadOrDefault(cfg.Engine.StrategyPath)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log, strategy: strategy}

	// 4. Connect to database (Postgres-backed sources only)
	if cfg.NeedsDatabase() {
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		rt.db = db
		log.Debug("Connected to database")
	}

	// 5. Redis (disabled client is a no-op)
	redisClient, err := redis.New(cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	rt.redis = redisClient
	rt.cache = redis.NewCache(redisClient, cachePrefix)

	// 6. S0 feature store
	canon := s0_data.NewCanonicalizer(strategy)
	var features contracts.FeatureStore
	switch cfg.Engine.FeatureSource {
	case config.SourceCSV:
		store := s0_data.NewCSVStore(cfg.Engine.FeatureCSVPath, canon, log)
		features, rt.funds = store, store
	default:
		repo := s0_data.NewRepository(rt.db.Pool, canon, log)
		features, rt.funds = repo, repo
	}

	// 7. Market phase provider
	inner, err := rt.marketProvider()
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.market = market.NewCachedProvider(inner, rt.cache, cfg.Market.IndexSymbol, log)

	// 8. Engine
	components := brain.Components{
		Features: features,
		Market:   rt.market,
		Filter:   s1_universe.NewFilter(strategy, log),
		Scorer:   s2_scoring.NewScorer(strategy, log),
		Policy:   allocation.NewPolicy(strategy, log),
		Selector: portfolio.NewSelector(strategy, portfolio.NewConstraints(cfg.Engine.ExcludeFunds, cfg.Engine.MinFundScore), log),
		Cache:    rt.cache,
	}
	if rt.db != nil {
		components.Store = audit.NewRepository(rt.db.Pool, log)
	}

	engine, err := brain.NewEngine(strategy, components, log)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}
	rt.engine = engine
	rt.sim = simulation.NewSimulator(strategy, log)

	log.WithFields(map[string]interface{}{
		"feature_source": cfg.Engine.FeatureSource,
		"market_source":  cfg.Market.Source,
		"strategy_id":    strategy.Meta.StrategyID,
		"config_hash":    engine.ConfigHash(),
		"redis":          redisClient.Enabled(),
	}).Debug("Runtime initialized")

	return rt, nil
}

// marketProvider builds the uncached provider selected by MARKET_SOURCE
func (rt *runtime) marketProvider() (contracts.MarketPhaseProvider, error) {
	switch rt.cfg.Market.Source {
	case config.SourcePostgres:
		series := market.NewPostgresSeries(rt.db.Pool)
		return market.NewIndexProvider(series, rt.cfg.Market.IndexSymbol, rt.strategy, rt.log), nil
	case config.SourceHTTP:
		client := httputil.NewWithTimeout(rt.log, 10*time.Second).
			WithRateLimiter(redis.NewRateLimiter(rt.redis, cachePrefix), redis.MarketDataRateLimit)
		series := market.NewHTTPSeries(client, rt.cfg.Market.DataURL)
		return market.NewIndexProvider(series, rt.cfg.Market.IndexSymbol, rt.strategy, rt.log), nil
	default:
		phase, err := contracts.ParseMarketPhase(rt.cfg.Market.StaticPhase)
		if err != nil {
			return nil, fmt.Errorf("parse MARKET_PHASE: %w", err)
		}
		return market.NewStaticProvider(phase), nil
	}
}

// Close releases database and redis connections
func (rt *runtime) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
}
