package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/catalog"
	"github.com/DavideRizzari/movieverse/internal/domain"
	"github.com/DavideRizzari/movieverse/internal/provider/omdb"
	"github.com/DavideRizzari/movieverse/internal/provider/streamavail"
	"github.com/DavideRizzari/movieverse/internal/provider/tmdb"
	"github.com/DavideRizzari/movieverse/internal/provider/translate"
	appvalidator "github.com/DavideRizzari/movieverse/internal/validator"
	"github.com/DavideRizzari/movieverse/internal/vcs"
	"github.com/DavideRizzari/movieverse/migrations"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var (
	version = vcs.Version()
)

type application struct {
	config    config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	catalog   domain.MovieCatalog
}

type config struct {
	port int
	env  string
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleTime  time.Duration
		automigrate  bool
	}
	redis struct {
		url          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  time.Duration
	}
	tmdb struct {
		apiKey  string
		baseURL string
	}
	omdb struct {
		apiKey  string
		baseURL string
	}
	streaming struct {
		apiKey string
		host   string
	}
	translate struct {
		baseURL string
	}
	providerTimeout time.Duration
}

func Run() error {
	var cfg config

	flag.IntVar(&cfg.port, "port", 3000, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.BoolVar(&cfg.db.automigrate, "db-automigrate", true, "Run database migrations on startup")

	flag.StringVar(&cfg.redis.url, "redis-url", "", "Redis URL (optional hot cache tier)")
	flag.IntVar(&cfg.redis.maxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.redis.maxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.redis.maxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.tmdb.apiKey, "tmdb-api-key", "", "TMDB API key (optional; disables primary provider when empty)")
	flag.StringVar(&cfg.tmdb.baseURL, "tmdb-base-url", "", "TMDB base URL override")

	flag.StringVar(&cfg.omdb.apiKey, "omdb-api-key", "", "OMDb API key")
	flag.StringVar(&cfg.omdb.baseURL, "omdb-base-url", "", "OMDb base URL override")

	flag.StringVar(&cfg.streaming.apiKey, "streaming-api-key", "", "Streaming availability RapidAPI key")
	flag.StringVar(&cfg.streaming.host, "streaming-api-host", "", "Streaming availability RapidAPI host override")

	flag.StringVar(&cfg.translate.baseURL, "translate-base-url", "", "Translation service base URL override")

	flag.DurationVar(&cfg.providerTimeout, "provider-timeout", 5*time.Second, "HTTP timeout for upstream provider calls")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if cfg.omdb.apiKey == "" {
		return errors.New("omdb-api-key is required")
	}
	if cfg.streaming.apiKey == "" {
		return errors.New("streaming-api-key is required")
	}
	if cfg.tmdb.apiKey == "" {
		logger.Warn("tmdb-api-key not set, primary provider disabled; search falls back, trending is empty")
	}

	validator := appvalidator.NewValidator()

	db, err := newDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.db.automigrate {
		err = runMigrations(cfg.db.dsn)
		if err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	queryStore, streamStore, redisClient, err := newCacheStores(cfg, db, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	providerClient := &http.Client{Timeout: cfg.providerTimeout}

	catalogService := catalog.NewService(catalog.Config{
		Logger:      logger,
		QueryStore:  queryStore,
		StreamStore: streamStore,
		Primary: tmdb.NewClient(tmdb.Config{
			APIKey:  cfg.tmdb.apiKey,
			BaseURL: cfg.tmdb.baseURL,
			Client:  providerClient,
		}),
		Fallback: omdb.NewClient(omdb.Config{
			APIKey:  cfg.omdb.apiKey,
			BaseURL: cfg.omdb.baseURL,
			Client:  providerClient,
		}),
		Availability: streamavail.NewClient(streamavail.Config{
			APIKey: cfg.streaming.apiKey,
			Host:   cfg.streaming.host,
			Client: providerClient,
		}),
		Translator: translate.NewClient(translate.Config{
			BaseURL: cfg.translate.baseURL,
			Logger:  logger,
		}),
	})

	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: validator,
		catalog:   catalogService,
	}

	return app.run()
}

// newCacheStores builds the durable Postgres stores and, when a Redis URL is
// configured, layers a hot tier over each. Without Redis the durable stores
// serve directly.
func newCacheStores(cfg config, db *pgxpool.Pool, logger *slog.Logger) (cache.Store, cache.Store, redis.UniversalClient, error) {
	var queryStore cache.Store = cache.NewPostgresStore(db, "api_cache", logger)
	var streamStore cache.Store = cache.NewPostgresStore(db, "streaming_cache", logger)

	if cfg.redis.url == "" {
		return queryStore, streamStore, nil, nil
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	queryStore = cache.NewTieredStore(cache.NewRedisStore(redisClient, "api:", cache.SearchTTL, logger), queryStore)
	streamStore = cache.NewTieredStore(cache.NewRedisStore(redisClient, "stream:", cache.StreamingTTL, logger), streamStore)

	return queryStore, streamStore, redisClient, nil
}

func newRedisClient(cfg config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.redis.url,
		MaxIdleConns:    cfg.redis.maxIdleConns,
		MaxActiveConns:  cfg.redis.maxOpenConns,
		ConnMaxIdleTime: cfg.redis.maxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.db.maxIdleTime
	config.MaxConns = int32(cfg.db.maxOpenConns)

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func runMigrations(dsn string) error {
	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return err
	}

	// The migrate pgx/v5 driver registers the pgx5 scheme.
	migrateURL := dsn
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			migrateURL = "pgx5://" + strings.TrimPrefix(dsn, scheme)
			break
		}
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/search", app.SearchMovies)
		r.Get("/trending", app.GetTrendingMovies)
		r.Get("/{imdbID}", app.GetMovieDetails)
		r.Get("/{imdbID}/streaming", app.GetMovieStreaming)
	})

	return r
}
