package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/studyspot/studyspot/internal/catalog"
	"github.com/studyspot/studyspot/internal/handlers"
	"github.com/studyspot/studyspot/internal/outbox"
	"github.com/studyspot/studyspot/internal/storage"
	"github.com/studyspot/studyspot/libs/auth"
	"github.com/studyspot/studyspot/libs/config"
	"github.com/studyspot/studyspot/libs/db"
	"github.com/studyspot/studyspot/libs/httpx"
	"github.com/studyspot/studyspot/libs/kafkax"
	otelx "github.com/studyspot/studyspot/libs/otel"
	"github.com/studyspot/studyspot/libs/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	service := config.String("SERVICE_NAME", "studyspot")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	loc, err := time.LoadLocation(config.String("TIMEZONE", "Asia/Manila"))
	if err != nil {
		logger.Error("invalid timezone, falling back to UTC", "err", err)
		loc = time.UTC
	}

	cat, err := catalog.Load(config.String("SPACES_FILE", ""))
	if err != nil {
		logger.Error("catalog load failed", "err", err)
		panic(err)
	}

	outboxRepo := outbox.NewRepository(pool)
	bookingRepo := storage.NewBookingRepository(pool, outboxRepo)
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	jwtSecret := config.String("JWT_SECRET", "dev-secret")
	demoHash, err := bcrypt.GenerateFromPassword([]byte(config.String("DEMO_PASSWORD", "123")), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	demo := handlers.DemoUser{
		ID:           config.String("DEMO_USER_ID", "demo-user"),
		Username:     config.String("DEMO_USERNAME", "user"),
		PasswordHash: demoHash,
	}
	tokenTTL := 24 * time.Hour
	if v, err := strconv.Atoi(config.String("TOKEN_TTL_HOURS", "24")); err == nil && v > 0 {
		tokenTTL = time.Duration(v) * time.Hour
	}

	authHandler := handlers.NewAuthHandler(logger, jwtSecret, tokenTTL, demo)
	spaceHandler := handlers.NewSpaceHandler(cat)
	bookingHandler := handlers.NewBookingHandler(bookingRepo, cat, logger, loc)

	readyChecks := []runtime.ReadyCheck{
		{Name: "db", Check: db.ReadyCheck(pool)},
	}
	if brokers := strings.TrimSpace(config.String("KAFKA_BROKERS", "")); brokers != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}

	limitPerMinute := 60
	if v, err := strconv.Atoi(config.String("RATE_LIMIT_PER_MINUTE", "60")); err == nil && v > 0 {
		limitPerMinute = v
	}
	var rateLimitMW httpx.Middleware
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		redisDB := 0
		if v, err := strconv.Atoi(config.String("REDIS_DB", "0")); err == nil && v >= 0 {
			redisDB = v
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       redisDB,
		})
		defer func() { _ = rdb.Close() }()

		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, isTruthy(config.String("RATE_LIMIT_FAIL_OPEN", "true")))
		readyChecks = append(readyChecks, runtime.ReadyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute, "redis_addr", addr)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	mux := runtime.NewBaseMuxWithReady(readyChecks...)
	mux.HandleFunc("/api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("/api/v1/spaces", spaceHandler.List)
	mux.HandleFunc("/api/v1/spaces/detail", spaceHandler.Get)
	mux.Handle("/api/v1/availability/slots", requireAuth(http.HandlerFunc(bookingHandler.Slots), jwtSecret))
	mux.Handle("/api/v1/availability/calendar", requireAuth(http.HandlerFunc(bookingHandler.Calendar), jwtSecret))
	mux.Handle("/api/v1/bookings", requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			bookingHandler.Create(w, r)
		case http.MethodGet:
			bookingHandler.List(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}), jwtSecret))
	mux.Handle("/api/v1/bookings/cancel", requireAuth(http.HandlerFunc(bookingHandler.Cancel), jwtSecret))

	bodyLimit := int64(1 << 20)
	if v, err := strconv.Atoi(config.String("REQUEST_BODY_LIMIT_BYTES", "1048576")); err == nil && v > 0 {
		bodyLimit = int64(v)
	}
	requestTimeout := 10 * time.Second
	if v, err := strconv.Atoi(config.String("REQUEST_TIMEOUT_SECONDS", "10")); err == nil && v > 0 {
		requestTimeout = time.Duration(v) * time.Second
	}

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods:   parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")),
			AllowedHeaders:   parseList(config.String("CORS_ALLOWED_HEADERS", "Authorization,Content-Type,X-Request-Id")),
			AllowCredentials: isTruthy(config.String("CORS_ALLOW_CREDENTIALS", "false")),
			MaxAge:           10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(bodyLimit),
		httpx.WithTimeout(requestTimeout),
		rateLimitMW,
	)
	handler = otelhttp.NewHandler(handler, "studyspot")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

// requireAuth verifies the bearer token and forwards identity via headers.
// Inbound identity headers are always stripped so clients cannot spoof them.
func requireAuth(next http.Handler, jwtSecret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || len(strings.TrimSpace(authHeader)) <= len("Bearer ") {
			http.Error(w, "missing or invalid Authorization header", http.StatusUnauthorized)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := auth.ParseAndVerifyHS256(token, jwtSecret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		r.Header.Del("X-User-Id")
		r.Header.Del("X-Username")
		r.Header.Set("X-User-Id", claims.Sub)
		r.Header.Set("X-Username", claims.Username)
		next.ServeHTTP(w, r)
	})
}

func isTruthy(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func parseList(raw string) []string {
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
