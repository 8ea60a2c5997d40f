package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"

	"github.com/iliyamo/circus-schedule/internal/config"
	"github.com/iliyamo/circus-schedule/internal/handler"
	"github.com/iliyamo/circus-schedule/internal/loader"
	"github.com/iliyamo/circus-schedule/internal/queue"
	"github.com/iliyamo/circus-schedule/internal/router"
	"github.com/iliyamo/circus-schedule/internal/scheduler"
	"github.com/iliyamo/circus-schedule/internal/service"
)

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	pflag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		log.Fatalf("env file %s: %v", *envFile, err)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ids, err := scheduler.NewIDGenerator(cfg.BookingIDs, cfg.BookingIDPrefix)
	if err != nil {
		log.Fatal(err)
	}
	sched := scheduler.New(nil, nil, scheduler.Options{IDs: ids})

	src, err := loader.FromConfig(ctx, cfg.Loader)
	if err != nil {
		log.Fatalf("loader: %v", err)
	}
	defer func() { _ = loader.Close(src) }()

	reload := func(ctx context.Context) error {
		if cfg.Loader.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Loader.Timeout)
			defer cancel()
		}
		_, err := loader.Into(ctx, src, sched)
		return err
	}
	if err := reload(ctx); err != nil {
		log.Fatalf("loader: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	if cfg.Queue.Enabled && cfg.Queue.ConsumerEnabled {
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.Queue.URL, cfg.Queue.LogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking-consumer: stopped: %v", err)
			}
		}()
	}

	h := handler.New(sched, service.NewPublisher(cfg.Queue))
	if cfg.AdminReload {
		h.Reload = reload
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("http: %s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	router.Register(e, h, router.Options{Redis: rdb, Cache: cfg.Cache, RateLimit: cfg.RateLimit})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, source=%s)", addr, cfg.Env, cfg.Loader.Source)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
