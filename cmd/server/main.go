package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codetrail/internal/api"
	"codetrail/internal/app/service"
	"codetrail/internal/app/worker"
	"codetrail/internal/common/security"
	"codetrail/internal/domain/repository"
	"codetrail/internal/platform/config"
	platformcurriculum "codetrail/internal/platform/curriculum"
	"codetrail/internal/platform/database"
	"codetrail/internal/platform/lock"
	"codetrail/internal/platform/queue"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	log.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()

	// 5. Load the curriculum catalog
	catalog, err := platformcurriculum.LoadDir(config.AppConfig.CurriculumDir, config.AppConfig.DemoTrack)
	if err != nil {
		log.Fatalf("Could not load curriculum: %v", err)
	}
	log.Printf("Curriculum loaded: %d tracks.", len(catalog.Tracks()))

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	teamRepo := repository.NewPgTeamRepository(database.DB)
	notificationRepo := repository.NewPgNotificationRepository(database.DB)
	transactor := repository.NewPgTransactor(database.DB)

	// 7. Initialize Services
	notifier := queue.NewRedisNotifier(queue.RDB, config.AppConfig.NotificationQueueName)
	locker := lock.NewRedisUserLocker(
		queue.RDB,
		config.AppConfig.SubmitLockKeyPrefix,
		time.Duration(config.AppConfig.SubmitLockTTLSeconds)*time.Second,
	)

	authService := service.NewAuthService(userRepo)
	progressService := service.NewProgressService(catalog, submissionRepo)
	notificationService := service.NewNotificationService(teamRepo, notifier)
	submissionService := service.NewSubmissionService(submissionRepo, userRepo, catalog, notificationService, locker, transactor)
	unsubmitService := service.NewUnsubmitService(submissionRepo, userRepo, transactor, config.AppConfig.UnsubmitWindow)
	teamService := service.NewTeamService(teamRepo, userRepo, transactor)
	reviewService := service.NewReviewService(submissionRepo, userRepo, catalog, transactor)

	// 8. Initialize Notification Worker (as a goroutine)
	notificationWorker := worker.NewNotificationWorker(queue.RDB, notificationRepo, config.AppConfig.NotificationQueueName)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go notificationWorker.Start(workerCtx)
	log.Println("Notification worker started.")

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(
		catalog,
		userRepo,
		authService,
		progressService,
		submissionService,
		unsubmitService,
		teamService,
		reviewService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal worker to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
