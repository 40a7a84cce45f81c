package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelOrderHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/cancel_order"
	createOrderHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/create_order"
	exportOrdersHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/export_orders"
	getOrderHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/get_order"
	listOrdersHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/list_orders"
	rescheduleOrderHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/reschedule_order"
	updateOrderHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/update_order"
	updateStatusHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/update_status"
	watchOrdersHandler "github.com/m04kA/SCM-OrderService/internal/api/handlers/watch_orders"
	"github.com/m04kA/SCM-OrderService/internal/api/middleware"
	"github.com/m04kA/SCM-OrderService/internal/config"
	"github.com/m04kA/SCM-OrderService/internal/infra/feed"
	orderRepo "github.com/m04kA/SCM-OrderService/internal/infra/storage/order"
	"github.com/m04kA/SCM-OrderService/internal/integrations/fonnte"
	notifierService "github.com/m04kA/SCM-OrderService/internal/service/notifier"
	ordersService "github.com/m04kA/SCM-OrderService/internal/service/orders"
	createOrderUC "github.com/m04kA/SCM-OrderService/internal/usecase/create_order"
	exportOrdersUC "github.com/m04kA/SCM-OrderService/internal/usecase/export_orders"
	rescheduleOrderUC "github.com/m04kA/SCM-OrderService/internal/usecase/reschedule_order"
	"github.com/m04kA/SCM-OrderService/pkg/dbmetrics"
	"github.com/m04kA/SCM-OrderService/pkg/logger"
	"github.com/m04kA/SCM-OrderService/pkg/metrics"
	"github.com/m04kA/SCM-OrderService/pkg/simpletxmanager"
	"github.com/m04kA/SCM-OrderService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SCM-OrderService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var (
		orderRepository *orderRepo.Repository
		txMgr           TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		orderRepository = orderRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		orderRepository = orderRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Лента изменений: LISTEN/NOTIFY из PostgreSQL наружу через SSE
	changeFeed, err := feed.New(cfg.Database.DSN(), log)
	if err != nil {
		log.Fatal("Failed to start change feed listener: %v", err)
	}
	defer changeFeed.Close()

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	go changeFeed.Run(feedCtx)
	log.Info("Change feed listener started")

	// Диспетчер WhatsApp уведомлений
	var sender notifierService.Sender = notifierService.NopSender{}
	if cfg.Fonnte.Enabled {
		sender = fonnte.NewClient(
			cfg.Fonnte.URL,
			cfg.Fonnte.Token,
			time.Duration(cfg.Fonnte.Timeout)*time.Second,
			log,
		)
		log.Info("Fonnte client initialized (url=%s, timeout=%ds)", cfg.Fonnte.URL, cfg.Fonnte.Timeout)
	} else {
		log.Info("WhatsApp notifications disabled")
	}

	var notifierMetrics notifierService.MetricsRecorder
	if cfg.Metrics.Enabled {
		notifierMetrics = metricsCollector
	}

	notifier := notifierService.New(sender, cfg.Fonnte.Target, log, notifierMetrics)
	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()
	notifier.Start(notifierCtx)
	defer notifier.Stop()

	// Инициализируем сервисы
	orderSvc := ordersService.NewService(orderRepository, notifier, log)

	// Инициализируем use cases
	createOrderUseCase := createOrderUC.NewUseCase(orderRepository, notifier, txMgr, log)
	rescheduleOrderUseCase := rescheduleOrderUC.NewUseCase(orderRepository, notifier, txMgr, log)
	exportOrdersUseCase := exportOrdersUC.NewUseCase(orderRepository, log)

	// Инициализируем handlers
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	listOrders := listOrdersHandler.NewHandler(orderSvc, log)
	updateOrder := updateOrderHandler.NewHandler(orderSvc, log)
	updateStatus := updateStatusHandler.NewHandler(orderSvc, log)
	cancelOrder := cancelOrderHandler.NewHandler(orderSvc, log)
	rescheduleOrder := rescheduleOrderHandler.NewHandler(rescheduleOrderUseCase, log)
	exportOrders := exportOrdersHandler.NewHandler(exportOrdersUseCase, log)
	watchOrders := watchOrdersHandler.NewHandler(changeFeed, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Заказы ---
	// Создание заказов (пачка: по одному на каждую выбранную технику)
	api.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)

	// Список заказов со сводкой по статусам
	api.HandleFunc("/orders", listOrders.Handle).Methods(http.MethodGet)

	// Выгрузка заказов в XLSX
	api.HandleFunc("/orders/export", exportOrders.Handle).Methods(http.MethodGet)

	// Поток изменений (Server-Sent Events)
	api.HandleFunc("/orders/events", watchOrders.Handle).Methods(http.MethodGet)

	// Получение заказа по ID
	api.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)

	// Редактирование заказа
	api.HandleFunc("/orders/{orderId}", updateOrder.Handle).Methods(http.MethodPut)

	// Смена статуса
	api.HandleFunc("/orders/{orderId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Отмена заказа
	api.HandleFunc("/orders/{orderId}/cancel", cancelOrder.Handle).Methods(http.MethodPatch)

	// Перенос отложенного заказа на новое рабочее окно
	api.HandleFunc("/orders/{orderId}/reschedule", rescheduleOrder.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
