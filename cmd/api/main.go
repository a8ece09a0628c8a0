package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"trustboard/internal/auth"
	"trustboard/internal/db"
	"trustboard/internal/discussion"
	"trustboard/internal/domain/storage"
	"trustboard/internal/domain/storage/memory"
	"trustboard/internal/metrics"
	"trustboard/internal/ratelimiter"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	// Default values
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder // This adds color to log levels (INFO, WARN, ERROR)

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func loadConfig() (config, error) {
	maxOpenConns := 30
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return config{}, fmt.Errorf("invalid value for DB_MAX_OPEN_CONNS: %w", err)
		}
		maxOpenConns = n
	}

	return config{
		addr: envOr("ADDR", ":8080"),
		env:  envOr("ENV", "development"),
		db: dbConfig{
			driver:         envOr("STORE_DRIVER", "postgres"),
			addr:           os.Getenv("DB_ADDR"),
			maxOpenConns:   int32(maxOpenConns),
			maxIdleTime:    envOr("DB_MAX_IDLE_TIME", "15m"),
			migrateOnStart: envBool("MIGRATE_ON_START", false),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				exp:    time.Hour * 24 * 3, // 3 days
				iss:    envOr("AUTH_TOKEN_ISS", "trustboard"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}, nil
}

var version = "0.3.0"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if cfg.auth.token.secret == "" {
		logger.Fatal("AUTH_TOKEN_SECRET must be set")
	}

	// Metrics collected at /v1/metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	var backend storage.Backend
	switch cfg.db.driver {
	case "memory":
		backend = memory.New()
		logger.Warnw("using in-memory store, data is lost on exit")
	case "postgres":
		pool, err := db.New(cfg.db.addr, cfg.db.maxOpenConns, cfg.db.maxIdleTime)
		if err != nil {
			logger.Fatal(err)
		}
		defer pool.Close()
		logger.Info("database connection pool established")

		if cfg.db.migrateOnStart {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			applied, err := db.Migrate(ctx, pool, logger)
			cancel()
			if err != nil {
				logger.Fatal(err)
			}
			logger.Infow("migrations complete", "applied", applied)
		}
		backend = storage.NewContainer(pool)
	default:
		logger.Fatalf("unknown STORE_DRIVER %q", cfg.db.driver)
	}

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)
	defer rateLimiter.Stop()

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		board:         discussion.NewBoard(backend, logger, m),
		inbox:         discussion.NewInbox(backend, logger),
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
		metrics:       m,
		registry:      reg,
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
