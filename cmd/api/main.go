package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/stafftrack/workforce-backend-go/internal/config"
	appHTTP "github.com/stafftrack/workforce-backend-go/internal/handler/http"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/cron"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jobs"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/workforce-backend-go/internal/repository/postgresql"
	advanceService "github.com/stafftrack/workforce-backend-go/internal/service/advance"
	attendanceService "github.com/stafftrack/workforce-backend-go/internal/service/attendance"
	leaveService "github.com/stafftrack/workforce-backend-go/internal/service/leave"
	salaryService "github.com/stafftrack/workforce-backend-go/internal/service/salary"
	settingsService "github.com/stafftrack/workforce-backend-go/internal/service/settings"
	workerService "github.com/stafftrack/workforce-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	jobStore := jobs.NewStore()

	attendanceSvc := attendanceService.NewService(db, attendanceRepo, workerRepo, departmentRepo, settingsRepo, location)
	workerSvc := workerService.NewService(db, workerRepo, departmentRepo)
	departmentSvc := workerService.NewDepartmentService(departmentRepo)
	advanceSvc := advanceService.NewService(db, advanceRepo, workerRepo)
	leaveSvc := leaveService.NewService(db, leaveRepo, workerRepo, settingsRepo)
	settingsSvc := settingsService.NewService(settingsRepo)
	salarySvc := salaryService.NewService(workerRepo, settingsRepo, advanceRepo, attendanceSvc, jobStore, location)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler(location)
		attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, settingsRepo, location, cfg.Cron.AutoCloseHour)
		attendanceJobs.Register(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(jwtService, cfg.App.Env, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Department: appHTTP.NewDepartmentHandler(departmentSvc),
		Advance:    appHTTP.NewAdvanceHandler(advanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc, jobStore),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server starting on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
