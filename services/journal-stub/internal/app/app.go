package app

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripjournal/libs/redis"
	appconfig "tripjournal/services/journal-stub/internal/config"
	httpserver "tripjournal/services/journal-stub/internal/http"
	"tripjournal/services/journal-stub/internal/password"
	"tripjournal/services/journal-stub/internal/service"
)

// App wires dependencies for the journal stub.
type App struct {
	server *httpserver.Server
	redis  *goredis.Client
	logger *zap.Logger
}

// New builds application graph. Login throttling is enabled when a redis
// address is configured.
func New(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	var limiter service.LoginLimiter = service.NoopLimiter{}
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		if err != nil {
			return nil, err
		}
		a.redis = client
		limiter = service.NewRedisLimiter(client, cfg.Login.MaxFailures, cfg.Login.Window)
		logger.Info("login throttling enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	store := service.NewJournalService(password.NewBcryptHasher(0), logger)
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())

	router := httpserver.NewRouter(httpserver.Deps{
		Store:       store,
		Tokens:      tokens,
		Limiter:     limiter,
		Logger:      logger,
		CORSOrigins: cfg.CORS.Origins,
	})
	a.server = httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	logger.Info("journal stub configured",
		zap.String("addr", cfg.HTTPAddress()),
		zap.Duration("token_ttl", cfg.JWTExpiration()),
		zap.Strings("cors_origins", cfg.CORS.Origins),
		zap.Bool("login_throttling", a.redis != nil),
	)
	return a, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
