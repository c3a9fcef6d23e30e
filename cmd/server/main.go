package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/database"
	"github.com/edustack/campus-backend/internal/handler"
	"github.com/edustack/campus-backend/internal/logger"
	"github.com/edustack/campus-backend/internal/repository"
	"github.com/edustack/campus-backend/internal/router"
	"github.com/edustack/campus-backend/internal/service"
	"github.com/edustack/campus-backend/internal/validator"
	"github.com/edustack/campus-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Campus Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	actorRepo := repository.NewActorRepository(pool)
	schoolRepo := repository.NewSchoolRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	timetableRepo := repository.NewTimetableRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	feeRepo := repository.NewFeeRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	behaviorRepo := repository.NewBehaviorRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, actorRepo)
	contextService := service.NewContextService(cfg, rdb, profileRepo)
	actorService := service.NewActorService(actorRepo, authService, contextService, cfg.IncludeInactive)
	schoolService := service.NewSchoolService(schoolRepo, cfg.IncludeInactive)
	classService := service.NewClassService(classRepo, cfg.IncludeInactive)
	subjectService := service.NewSubjectService(subjectRepo, cfg.IncludeInactive)
	profileService := service.NewProfileService(profileRepo, actorRepo, classRepo, classService, contextService)
	examService := service.NewExamService(examRepo, classRepo, profileRepo)
	timetableService := service.NewTimetableService(timetableRepo, classRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, classRepo, profileRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, classRepo)
	feeService := service.NewFeeService(feeRepo, profileRepo)
	noticeService := service.NewNoticeService(noticeRepo, classRepo)
	resourceService := service.NewResourceService(resourceRepo, subjectRepo, classRepo)
	behaviorService := service.NewBehaviorService(behaviorRepo, profileRepo)
	messageService := service.NewMessageService(messageRepo, rdb)
	reportService := service.NewReportService(examRepo, assignmentRepo, assignmentService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, actorService),
		Actor:      handler.NewActorHandler(actorService),
		School:     handler.NewSchoolHandler(schoolService),
		Class:      handler.NewClassHandler(classService),
		Subject:    handler.NewSubjectHandler(subjectService),
		Profile:    handler.NewProfileHandler(profileService),
		Exam:       handler.NewExamHandler(examService),
		Timetable:  handler.NewTimetableHandler(timetableService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Assignment: handler.NewAssignmentHandler(assignmentService),
		Fee:        handler.NewFeeHandler(feeService),
		Notice:     handler.NewNoticeHandler(noticeService),
		Resource:   handler.NewResourceHandler(resourceService),
		Behavior:   handler.NewBehaviorHandler(behaviorService),
		Message:    handler.NewMessageHandler(messageService),
		Report:     handler.NewReportHandler(reportService),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	overdueWorker := worker.NewOverdueWorker(feeRepo, rdb, cfg.OverdueSweepInterval, log)
	go overdueWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, contextService, actorRepo, rdb, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()
	time.Sleep(2 * time.Second) // Allow the sweep loop to exit.

	log.Info().Msg("Shutdown complete")
}

