package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinicdesk/slot-booking-service/internal/adapters/in/http"
	inrabbitmq "github.com/clinicdesk/slot-booking-service/internal/adapters/in/rabbitmq"
	"github.com/clinicdesk/slot-booking-service/internal/adapters/out/cache"
	"github.com/clinicdesk/slot-booking-service/internal/adapters/out/logger"
	"github.com/clinicdesk/slot-booking-service/internal/adapters/out/memory"
	outrabbitmq "github.com/clinicdesk/slot-booking-service/internal/adapters/out/rabbitmq"
	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/admin_auth_service"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/booking_service"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/slot_generator_service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(logger.Options{
		Timezone: cfg.App.Timezone,
		Level:    cfg.App.LogLevel,
		Pretty:   cfg.IsLocal(),
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"matchMode":       cfg.Clinic.MatchMode,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	window, err := domain.ParseOperatingWindow(cfg.Clinic.OpenTime, cfg.Clinic.CloseTime)
	if err != nil {
		logger.Error("app.clinic.window_invalid", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	bookingStore := memory.NewBookingStore(mainLogger)

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err = cache.NewCacheAdapter(cfg, mainLogger)
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}

	var eventPublisher out.EventPublisherPort
	if cfg.RabbitMQ.Enabled {
		publisher, err := outrabbitmq.NewBookingPublisher(cfg, mainLogger)
		if err != nil {
			logger.Error("app.rabbitmq.publisher.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		eventPublisher = publisher

		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("app.rabbitmq.publisher.close_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	// Инициализация сервисов
	bookingService := booking_service.NewBookingService(
		slot_generator_service.NewGenerator(window, cfg.Clinic.MatchMode),
		bookingStore,
		cacheAdapter,
		eventPublisher,
		mainLogger,
		cfg.App.Location,
	)
	adminAuthService := admin_auth_service.NewAdminAuthService(cfg, mainLogger)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewBookingController(
		bookingService,
		adminAuthService,
		cfg,
		logger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := inrabbitmq.NewCacheListener(
			bookingService,
			cfg,
			logger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	server := &nethttp.Server{
		Addr:    cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler: router,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"clinic": map[string]string{
					"open":      cfg.Clinic.OpenTime,
					"close":     cfg.Clinic.CloseTime,
					"matchMode": string(cfg.Clinic.MatchMode),
				},
				"rabbitmq": map[string]interface{}{
					"enabled":  cfg.RabbitMQ.Enabled,
					"exchange": cfg.RabbitMQ.Exchange,
					"queue":    cfg.RabbitMQ.Queue,
				},
				"cache": map[string]interface{}{
					"enabled":    cfg.Cache.Enabled,
					"slots_size": cfg.Cache.SlotsSize,
				},
				"admins": len(cfg.Auth.Admins),
			},
		})
	}

	logger.Info("app.stopped", out.LogFields{})
}
