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
	"github.com/robfig/cron/v3"

	cancelAppointmentHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/get_client_appointments"
	getDayAppointmentsHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/get_day_appointments"
	getSlotIntervalHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/get_slot_interval"
	getWorkingHoursHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/get_working_hours"
	regenerateSlotsHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/regenerate_slots"
	runSweepHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/run_sweep"
	updateSlotIntervalHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/update_slot_interval"
	updateWorkingHoursHandler "github.com/m04kA/BRB-AppointmentService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/BRB-AppointmentService/internal/api/middleware"
	"github.com/m04kA/BRB-AppointmentService/internal/config"
	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/slot"
	notifierClient "github.com/m04kA/BRB-AppointmentService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/BRB-AppointmentService/internal/service/appointments"
	scheduleService "github.com/m04kA/BRB-AppointmentService/internal/service/schedule"
	sweeperService "github.com/m04kA/BRB-AppointmentService/internal/service/sweeper"
	cancelAppointmentUC "github.com/m04kA/BRB-AppointmentService/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/m04kA/BRB-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/BRB-AppointmentService/internal/usecase/get_available_slots"
	regenerateSlotsUC "github.com/m04kA/BRB-AppointmentService/internal/usecase/regenerate_slots"
	"github.com/m04kA/BRB-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/BRB-AppointmentService/pkg/logger"
	"github.com/m04kA/BRB-AppointmentService/pkg/metrics"
	"github.com/m04kA/BRB-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/BRB-AppointmentService/pkg/txmanager"
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

	log.Info("Starting BRB-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		settingsRepository    *settingsRepo.Repository
		slotRepository        *slotRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Шина доменных событий и подписка нотификатора
	bus := events.NewBus()

	if cfg.Notifier.Enabled {
		notifier := notifierClient.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)

		notifyHandler := func(event events.AppointmentEvent) {
			// сетевой вызов не должен задерживать ответ клиенту
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(),
					time.Duration(cfg.Notifier.Timeout)*time.Second)
				defer cancel()

				appt := event.Appointment
				_ = notifier.SendWithGracefulDegradation(ctx, notifierClient.Notification{
					Event: event.Type,
					Appointment: notifierClient.Payload{
						ID:          appt.ID,
						ClientID:    appt.ClientID,
						ClientName:  appt.ClientName,
						ClientPhone: appt.ClientPhone,
						Date:        appt.Date.Format(domain.DateFormat),
						Time:        appt.Time.String(),
						Service:     appt.Service,
						Price:       appt.Price,
					},
				})
			}()
		}

		bus.Subscribe(events.TypeAppointmentCreated, notifyHandler)
		bus.Subscribe(events.TypeAppointmentCancelled, notifyHandler)
		log.Info("Notifier client initialized (URL=%s timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		settingsRepository,
		slotRepository,
		txMgr,
		log,
	)
	sweeperSvc := sweeperService.NewService(appointmentRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		settingsRepository,
		slotRepository,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		scheduleRepository,
		settingsRepository,
		bus,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		bus,
		log,
	)
	regenerateSlotsUseCase := regenerateSlotsUC.NewUseCase(
		scheduleRepository,
		settingsRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getDayAppointments := getDayAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	getSlotInterval := getSlotIntervalHandler.NewHandler(scheduleSvc, log)
	updateSlotInterval := updateSlotIntervalHandler.NewHandler(scheduleSvc, log)
	regenerateSlots := regenerateSlotsHandler.NewHandler(regenerateSlotsUseCase, log)
	runSweep := runSweepHandler.NewHandler(sweeperSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание недели
	api.HandleFunc("/schedule/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	// Текущая длительность слота
	api.HandleFunc("/schedule/slot-interval", getSlotInterval.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Ручное завершение записи (администратор)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Записи на день
	protected.HandleFunc("/admin/appointments", getDayAppointments.Handle).Methods(http.MethodGet)

	// Замена расписания недели
	protected.HandleFunc("/schedule/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

	// Смена длительности слота
	protected.HandleFunc("/schedule/slot-interval", updateSlotInterval.Handle).Methods(http.MethodPut)

	// Полная регенерация сетки слотов
	protected.HandleFunc("/admin/slots/regenerate", regenerateSlots.Handle).Methods(http.MethodPost)

	// Ручной запуск автозавершения
	protected.HandleFunc("/admin/sweep", runSweep.Handle).Methods(http.MethodPost)

	// Планировщик автозавершения прошедших записей
	var cronRunner *cron.Cron
	if cfg.Sweeper.Enabled {
		cronRunner = cron.New()
		_, err := cronRunner.AddFunc(cfg.Sweeper.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			completed, err := sweeperSvc.CompleteElapsed(ctx)
			if err != nil {
				log.Error("Sweeper run failed: %v", err)
				return
			}
			if completed > 0 {
				log.Info("Sweeper completed %d appointments", completed)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule sweeper: %v", err)
		}
		cronRunner.Start()
		log.Info("Sweeper scheduled with cron spec %q", cfg.Sweeper.Schedule)
	}

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

	// Останавливаем планировщик
	if cronRunner != nil {
		cronCtx := cronRunner.Stop()
		<-cronCtx.Done()
		log.Info("Sweeper stopped")
	}

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
