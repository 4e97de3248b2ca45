package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/common/config"
	"pizza-storefront/internal/common/database"
	apperrors "pizza-storefront/internal/common/errors"
	apihttp "pizza-storefront/internal/common/http"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/observability"
	"pizza-storefront/internal/dashboard"
	"pizza-storefront/internal/service"
	"pizza-storefront/internal/session"
)

// App is everything a command needs, built once per process.
type App struct {
	cfg      *config.Config
	zapLog   *zap.Logger
	log      logger.Logger
	obs      *observability.Observability
	redis    *database.RedisClient
	sessions session.Store
	svc      service.PizzaService
	errs     *apperrors.ErrorHandler
	cart     *cart.Cart
	commands *CommandRegistry

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	format string
}

type appOptions struct {
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	format     string
	registerer prometheus.Registerer
}

const (
	redisAttempts     = 5
	redisInitialDelay = 200 * time.Millisecond
)

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*App, error) {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	})

	obsOpts := []observability.Option{}
	if opts.registerer != nil {
		obsOpts = append(obsOpts, observability.WithRegisterer(opts.registerer))
	}
	if cfg.Tracing.JaegerEndpoint != "" {
		obsOpts = append(obsOpts, observability.WithJaegerEndpoint(cfg.Tracing.JaegerEndpoint))
	}

	a := &App{
		cfg:      cfg,
		zapLog:   zapLog,
		log:      log,
		obs:      observability.New(cfg.App.Name, obsOpts...),
		cart:     cart.New(log),
		commands: newRegistry(),
		in:       opts.in,
		out:      opts.out,
		errOut:   opts.errOut,
		format:   opts.format,
	}

	var rdb redis.Cmdable
	if cfg.Session.Backend == config.SessionBackendRedis {
		a.redis = database.NewRedis(cfg.Session.Redis)
		if err := a.redis.Connect(ctx, redisAttempts, redisInitialDelay); err != nil {
			a.Close()
			return nil, err
		}
		rdb = a.redis.Client
		zapLog.Debug("Redis connected", zap.String("address", cfg.Session.Redis.Address))
	}

	sessions, err := session.New(cfg.Session, rdb, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	a.sessions = sessions

	timeout := config.GetDuration(cfg.API.Timeout)
	api := apihttp.NewClient(cfg.API.BaseURL, timeout,
		apihttp.WithTokenSource(session.BearerToken(sessions)),
		apihttp.WithLogger(log),
	)

	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithObservability(a.obs),
	}
	if cfg.API.FactoryURL != "" {
		svcOpts = append(svcOpts, service.WithFactory(apihttp.NewClient(cfg.API.FactoryURL, timeout, apihttp.WithLogger(log))))
	}
	a.svc = service.NewHTTPService(api, sessions, svcOpts...)
	a.errs = apperrors.NewErrorHandler(log, sessions)

	return a, nil
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.zapLog.Warn("Error closing redis", zap.Error(err))
		}
	}
	a.obs.Shutdown()
	_ = a.zapLog.Sync()
}

func (a *App) render(v interface{}, text func(w io.Writer)) error {
	return render(a.out, a.format, v, text)
}

// report prints a failed command the way the storefront shows errors inline.
func (a *App) report(ctx context.Context, command string, err error) {
	res := a.errs.Resolve(ctx, command, err)
	fmt.Fprintln(a.errOut, dashboard.ErrorPrefix+res.Display())
	if res.SessionCleared {
		fmt.Fprintf(a.errOut, "Your session has expired. Log in again (%s).\n", res.RedirectTo)
	}
}
