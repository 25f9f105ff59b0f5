package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	config "pet-sitter.com/pet-sitter/internal/configs"
	httpapi "pet-sitter.com/pet-sitter/internal/http"
	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
	"pet-sitter.com/pet-sitter/internal/services"
	"pet-sitter.com/pet-sitter/internal/storage"
)

var withWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the pet-sitter HTTP API and, unless disabled, the deferred completion worker pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		images := storage.NewS3ImageStore(config.NewAWSConfig(ctx, cfg.S3Region), cfg.S3Bucket, cfg.S3PublicBaseURL)

		authService := services.NewAuthService(a.store, a.cache, cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost)
		handler := httpapi.NewHandler(httpapi.Services{
			Auth:     authService,
			Users:    services.NewUserService(a.store, a.cache),
			Sitters:  services.NewSitterService(a.store, a.cache),
			Pets:     services.NewPetService(a.store),
			Tasks:    services.NewTaskService(a.store),
			Orders:   a.orders,
			Reviews:  services.NewReviewService(a.store, a.cache),
			Comments: services.NewCommentService(a.store),
			Payments: services.NewPaymentService(a.store, a.paymentGateway(), a.orders, services.PaymentSettings{
				Currency:   cfg.PaymentCurrency,
				SuccessURL: cfg.PaymentSuccessURL,
				CancelURL:  cfg.PaymentCancelURL,
			}),
			Images: images,
		})

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.HTTPErrorHandler = httpapi.ErrorHandler(cfg.IsProduction())
		e.Use(echomw.RequestID())
		e.Use(middleware.RequestLogger(a.logger))
		e.Use(httpapi.Recover())
		e.Use(echomw.BodyLimit("6M"))
		httpapi.Register(e, handler, authService, cfg.RateLimit)

		var (
			scheduler *services.SchedulerService
			pool      *services.CompletionPool
		)
		if withWorker {
			scheduler, pool, err = a.startCompletion(ctx)
			if err != nil {
				return err
			}
		}

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			slog.Info("HTTP server listening", "addr", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		})

		err = g.Wait()

		if scheduler != nil {
			scheduler.Stop()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
			defer cancel()
			pool.Shutdown(shutdownCtx)
		}

		slog.Info("HTTP server and worker pool shut down gracefully")
		return err
	},
}

func init() {
	serveCmd.Flags().BoolVar(&withWorker, "with-worker", true, "run the deferred completion poller in this process")
	rootCmd.AddCommand(serveCmd)
}
