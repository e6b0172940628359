package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leavehq/leave-backend-go/internal/config"
	appHTTP "github.com/leavehq/leave-backend-go/internal/handler/http"
	"github.com/leavehq/leave-backend-go/internal/pkg/cron"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
	"github.com/leavehq/leave-backend-go/internal/pkg/email"
	"github.com/leavehq/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehq/leave-backend-go/internal/pkg/oauth"
	"github.com/leavehq/leave-backend-go/internal/pkg/storage"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
	authService "github.com/leavehq/leave-backend-go/internal/service/auth"
	clientService "github.com/leavehq/leave-backend-go/internal/service/client"
	employeeService "github.com/leavehq/leave-backend-go/internal/service/employee"
	"github.com/leavehq/leave-backend-go/internal/service/file"
	invitationService "github.com/leavehq/leave-backend-go/internal/service/invitation"
	leaveService "github.com/leavehq/leave-backend-go/internal/service/leave"
	levelService "github.com/leavehq/leave-backend-go/internal/service/level"
	notificationService "github.com/leavehq/leave-backend-go/internal/service/notification"
	reportService "github.com/leavehq/leave-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	levelRepo := postgresql.NewLevelRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileSvc := file.NewFileService(fileStorage)

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, employeeRepo, levelRepo, clientRepo, notificationSvc, emailSvc)
	invitationSvc := invitationService.NewInvitationService(db, cfg, invitationRepo, employeeRepo, userRepo, notificationSvc, emailSvc)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, levelRepo, invitationRepo, leaveSvc, invitationSvc)
	clientSvc := clientService.NewClientService(db, clientRepo, levelRepo, leaveTypeRepo)
	levelSvc := levelService.NewLevelService(levelRepo)
	authSvc := authService.NewAuthService(cfg, userRepo, jwtSvc, googleSvc, emailSvc)
	reportSvc := reportService.NewReportService(reportRepo)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(employeeRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtSvc, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, jwtSvc),
		Client:       appHTTP.NewClientHandler(clientSvc),
		Level:        appHTTP.NewLevelHandler(levelSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc, fileSvc),
		Invitation:   appHTTP.NewInvitationHandler(invitationSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc, fileSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}
