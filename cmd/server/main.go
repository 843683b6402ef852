package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"application-tracker-api/internal/config"
	gweb "application-tracker-api/internal/grpcweb"
	"application-tracker-api/internal/handler"
	"application-tracker-api/internal/logger"
	"application-tracker-api/internal/mail"
	"application-tracker-api/internal/middleware"
	"application-tracker-api/internal/reminder"
	"application-tracker-api/internal/store"
	pb "application-tracker-api/internal/trackerpb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// database
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("connected to postgres")

	st := store.New(pool)
	if err := st.Migrate(ctx, cfg.Database.Migrations); err != nil {
		log.Warn("migration skipped", zap.Error(err))
	} else {
		log.Info("migration applied", zap.String("path", cfg.Database.Migrations))
	}

	// reminders
	mailer, err := mail.New(ctx, cfg.Mail, log)
	if err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	ledger, closeLedger := newLedger(ctx, cfg, log)
	defer closeLedger()

	sched := reminder.New(st, reminder.NewNotifier(mailer, cfg.Mail.From, log), reminder.Options{
		Ledger:      ledger,
		SendTimeout: cfg.Reminder.SendTimeout,
		Logger:      log,
	})
	defer sched.Stop()

	// best-effort: a failed scan is logged and repaired by the next rescan
	_, _ = sched.Recover(ctx)
	if cfg.Reminder.RescanSpec != "" {
		stopRescan, err := sched.StartRescan(cfg.Reminder.RescanSpec)
		if err != nil {
			return err
		}
		defer stopRescan()
	}

	h := handler.New(st, cfg.Auth.JWTSecret, handler.Options{
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
		Reminders:  sched,
		Logger:     log,
	})

	// grpc server
	rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	defer rl.Stop()
	srv := grpc.NewServer(
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.RateLimit(rl),
			middleware.Auth(cfg.Auth.JWTSecret),
		),
	)
	pb.RegisterTrackerServiceServer(srv, h)

	// start grpc on TCP
	lis, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	go func() {
		log.Info("grpc listening", zap.String("port", cfg.Server.GRPCPort))
		if err := srv.Serve(lis); err != nil {
			log.Error("grpc serve", zap.Error(err))
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.Server.GRPCPort, gweb.Options{
		TrustedProxies: cfg.Server.TrustedProxies,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	defer bridge.Close()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	mux.Handle("/", bridge.Handler())

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Server.WebPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("grpc-web listening", zap.String("port", cfg.Server.WebPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	srv.GracefulStop()
	return nil
}

// newLedger uses Redis when configured and reachable so the sent ledger
// survives restarts; otherwise it keeps it in memory.
func newLedger(ctx context.Context, cfg *config.Config, log *zap.Logger) (reminder.Ledger, func()) {
	if cfg.Redis.Address == "" {
		return reminder.NewMemoryLedger(cfg.Reminder.LedgerTTL), func() {}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, using in-memory sent ledger", zap.Error(err))
		rdb.Close()
		return reminder.NewMemoryLedger(cfg.Reminder.LedgerTTL), func() {}
	}
	log.Info("sent ledger on redis", zap.String("address", cfg.Redis.Address))
	return reminder.NewRedisLedger(rdb, cfg.Reminder.LedgerTTL), func() { rdb.Close() }
}
