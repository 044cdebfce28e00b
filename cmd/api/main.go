package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/worktide-hr/absence-backend-go/internal/config"
	appHTTP "github.com/worktide-hr/absence-backend-go/internal/handler/http"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/calendar"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/database"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/email"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/jwt"
	"github.com/worktide-hr/absence-backend-go/internal/repository/postgresql"
	absenceService "github.com/worktide-hr/absence-backend-go/internal/service/absence"
	authService "github.com/worktide-hr/absence-backend-go/internal/service/auth"
	directoryService "github.com/worktide-hr/absence-backend-go/internal/service/directory"
	notificationService "github.com/worktide-hr/absence-backend-go/internal/service/notification"
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

	txManager := postgresql.NewTxManager(db)
	requestRepo := postgresql.NewRequestRepository(db)
	typeRepo := postgresql.NewTypeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	approverRepo := postgresql.NewApproverRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	emailService, err := email.NewService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	notifier := notificationService.NewNotificationService(
		emailService, userRepo, cfg.Notification.Workers, cfg.Notification.QueueSize)
	defer notifier.Stop()

	calendarSync := calendar.NewGoogleService(cfg.Calendar)

	workdays := absenceService.NewWorkdayCalculator(holidayRepo)
	absenceSvc := absenceService.NewAbsenceService(
		txManager,
		requestRepo,
		typeRepo,
		holidayRepo,
		userRepo,
		approverRepo,
		workdays,
		notifier,
		calendarSync,
	)
	authSvc := authService.NewAuthService(userRepo, jwtService)
	directorySvc := directoryService.NewDirectoryService(userRepo, approverRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	absenceHandler := appHTTP.NewAbsenceHandler(absenceSvc)
	adminHandler := appHTTP.NewAdminHandler(absenceSvc, directorySvc)

	router := appHTTP.NewRouter(cfg.App, jwtService, authHandler, absenceHandler, adminHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
