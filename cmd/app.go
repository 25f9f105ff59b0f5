package cmd

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/rueidis"
	"gorm.io/gorm"

	"pet-sitter.com/pet-sitter/internal/cache"
	config "pet-sitter.com/pet-sitter/internal/configs"
	"pet-sitter.com/pet-sitter/internal/events"
	"pet-sitter.com/pet-sitter/internal/logger"
	"pet-sitter.com/pet-sitter/internal/payment"
	"pet-sitter.com/pet-sitter/internal/queue"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
	"pet-sitter.com/pet-sitter/internal/services"
)

// app holds the process-wide clients shared by the serve and worker commands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	db     *gorm.DB
	redis  rueidis.Client
	cache  *cache.Ristretto
	store  *repository.Store
	jobs   *queue.RedisJobQueue
	orders *services.OrderService
	closer []func()
}

func loadConfig() config.Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}
	return config.Load()
}

func newApp(cfg config.Config) (*app, error) {
	lg := logger.New(cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(lg)

	db := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err := config.Migrate(db); err != nil {
		return nil, err
	}

	redisClient := config.NewRedisClient(cfg.RedisAddr)

	l1, err := cache.New(cfg.CacheMaxBytes)
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	natsConn := config.NewNatsConn(cfg.NatsURL)

	a := &app{
		cfg:    cfg,
		logger: lg,
		db:     db,
		redis:  redisClient,
		cache:  l1,
		store:  repository.NewStore(db),
		jobs:   queue.NewRedisJobQueue(redisClient, cfg.RedisJobKey, cfg.CompletionLease),
	}
	a.orders = services.NewOrderService(a.store, a.jobs, events.NewNatsPublisher(natsConn), cfg.CompletionDelay)

	a.closer = append(a.closer, redisClient.Close, l1.Close)
	if natsConn != nil {
		a.closer = append(a.closer, natsConn.Close)
	}
	return a, nil
}

func (a *app) paymentGateway() payment.Gateway {
	return payment.NewStripeGateway(a.cfg.StripeSecretKey)
}

// startCompletion runs the deferred-completion poller until Stop is called
// on the returned scheduler. Shut the pool down after stopping it.
func (a *app) startCompletion(ctx context.Context) (*services.SchedulerService, *services.CompletionPool, error) {
	pool := services.NewCompletionPool(a.jobs, a.orders, a.cfg.CompletionWorkers, a.cfg.CompletionQueueSize)

	scheduler := services.NewSchedulerService(time.UTC)
	if _, err := scheduler.ScheduleInterval(a.cfg.CompletionPollInterval, func() {
		if n := pool.PollOnce(ctx); n > 0 {
			slog.Info("completion jobs dispatched", "count", n)
		}
	}); err != nil {
		pool.Shutdown(ctx)
		return nil, nil, err
	}
	scheduler.Start()

	return scheduler, pool, nil
}

func (a *app) Close() {
	for i := len(a.closer) - 1; i >= 0; i-- {
		a.closer[i]()
	}
}
