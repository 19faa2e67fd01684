package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-auth-service/internal/codes"
	"github.com/sbilibin2017/gw-auth-service/internal/database"
	"github.com/sbilibin2017/gw-auth-service/internal/facades"
	"github.com/sbilibin2017/gw-auth-service/internal/handlers"
	"github.com/sbilibin2017/gw-auth-service/internal/jwt"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/metrics"
	"github.com/sbilibin2017/gw-auth-service/internal/middlewares"
	"github.com/sbilibin2017/gw-auth-service/internal/repositories"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
	"github.com/sbilibin2017/gw-auth-service/internal/workers"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const (
	storePostgres = "postgres"
	storeRedis    = "redis"

	notifierSMTP  = "smtp"
	notifierKafka = "kafka"

	kafkaWriteTimeout = 10 * time.Second
)

// config holds everything read from the environment.
type config struct {
	AppHost     string
	AppPort     string
	LogLevel    string
	LogEncoding string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	VerificationStore string

	JWTSecretKey string
	JWTExpSecond int

	Notifier        string
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	SMTPFrom        string
	KafkaBrokers    []string
	KafkaEmailTopic string

	CleanupIntervalSecond int
	MigrationsEnabled     bool
}

func (c config) postgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PgUser, c.PgPassword, c.PgHost, c.PgPort, c.PgDB)
}

// @title gw-auth-service API
// @version 1.0.0
// @description Registration with emailed verification codes, login and password reset
// @host localhost:8080
// @BasePath /api/auth
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nDate: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application configuration. Variables already set in the environment win.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogEncoding = getEnv("APP_LOG_ENCODING", "json")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "database")
	if cfg.PgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	cfg.VerificationStore = getEnv("VERIFICATION_STORE", storePostgres)
	if cfg.VerificationStore != storePostgres && cfg.VerificationStore != storeRedis {
		err = fmt.Errorf("VERIFICATION_STORE: unknown store %q", cfg.VerificationStore)
		return
	}

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "21600"); err != nil {
		return
	}

	// Notifier config
	cfg.Notifier = getEnv("NOTIFIER", notifierSMTP)
	if cfg.Notifier != notifierSMTP && cfg.Notifier != notifierKafka {
		err = fmt.Errorf("NOTIFIER: unknown notifier %q", cfg.Notifier)
		return
	}
	cfg.SMTPHost = getEnv("SMTP_HOST", "localhost")
	if cfg.SMTPPort, err = getInt("SMTP_PORT", "587"); err != nil {
		return
	}
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	cfg.SMTPFrom = getEnv("SMTP_FROM", "no-reply@localhost")
	cfg.KafkaBrokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	cfg.KafkaEmailTopic = getEnv("KAFKA_EMAIL_TOPIC", "auth.emails")

	// Background jobs
	if cfg.CleanupIntervalSecond, err = getInt("CLEANUP_INTERVAL_SECOND", "300"); err != nil {
		return
	}
	if cfg.MigrationsEnabled, err = strconv.ParseBool(getEnv("MIGRATIONS_ENABLED", "true")); err != nil {
		err = fmt.Errorf("MIGRATIONS_ENABLED: %w", err)
		return
	}

	return
}

// run initializes the logger, database, code registry, notifier and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel, cfg.LogEncoding); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if cfg.MigrationsEnabled {
		if err := database.RunMigrations(cfg.postgresDSN()); err != nil {
			return err
		}
	}

	// Connect to PostgreSQL
	logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PgHost, "port", cfg.PgPort, "db", cfg.PgDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.postgresDSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PgMaxOpenConns)
	db.SetMaxIdleConns(cfg.PgMaxIdleConns)

	// Pending verification codes
	var registry services.VerificationRegistry
	switch cfg.VerificationStore {
	case storeRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		registry = repositories.NewVerificationCacheRepository(rdb)
	default:
		verificationRepo := repositories.NewVerificationRepository(db, middlewares.GetTxFromContext)
		registry = verificationRepo

		cleanup := workers.NewCleanupJob(verificationRepo, time.Duration(cfg.CleanupIntervalSecond)*time.Second)
		go cleanup.Start(ctx)
	}

	// Email delivery
	var notifier services.Notifier
	switch cfg.Notifier {
	case notifierKafka:
		kafkaFacade := facades.NewEmailKafkaFacade(newKafkaWriter(cfg))
		defer kafkaFacade.Close()
		notifier = kafkaFacade
	default:
		smtpFacade, err := facades.NewEmailSMTPFacade(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
		if err != nil {
			logger.Log.Errorw("failed to configure SMTP client", "error", err)
			return err
		}
		notifier = smtpFacade
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	jwtSvc := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)

	authService := services.NewAuthService(
		userReadRepo,
		userWriteRepo,
		registry,
		codes.New(),
		notifier,
		jwtSvc,
		collector,
	)

	r := newRouter(cfg, db, authService, jwtSvc, collector, reg)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newKafkaWriter waits for every in-sync replica so a returned Send means the
// email is durable on the broker.
func newKafkaWriter(cfg config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaEmailTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: kafkaWriteTimeout,
	}
}

// newRouter mounts the auth routes, metrics and swagger UI.
// Register and reset-password run in a request transaction so their
// writes commit together.
func newRouter(
	cfg config,
	db *sqlx.DB,
	authService *services.AuthService,
	tokener middlewares.Tokener,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.MetricsMiddleware(collector))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/forgot-password", handlers.NewForgotPasswordHandler(authService))
		r.Post("/verify-code", handlers.NewVerifyCodeHandler(authService))
		r.Post("/send-verification-code", handlers.NewSendVerificationCodeHandler(authService))
		r.Post("/login", handlers.NewLoginHandler(authService))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.TxMiddleware(db))
			r.Post("/register", handlers.NewRegisterHandler(authService))
			r.Post("/reset-password", handlers.NewResetPasswordHandler(authService))
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokener))
			r.Get("/me", handlers.NewMeHandler(authService))
		})
	})

	r.Handle("/metrics", metrics.Handler(gatherer))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	return r
}
