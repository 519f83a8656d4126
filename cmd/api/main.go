package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nimbus-hcm/hcm-backend-go/internal/config"
	appHTTP "github.com/nimbus-hcm/hcm-backend-go/internal/handler/http"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/jwt"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/shiftclock"
	"github.com/nimbus-hcm/hcm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/nimbus-hcm/hcm-backend-go/internal/service/attendance"
	correctionService "github.com/nimbus-hcm/hcm-backend-go/internal/service/correction"
	leaveService "github.com/nimbus-hcm/hcm-backend-go/internal/service/leave"
	payrollService "github.com/nimbus-hcm/hcm-backend-go/internal/service/payroll"
	remoteWorkService "github.com/nimbus-hcm/hcm-backend-go/internal/service/remotework"
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

	loc, err := time.LoadLocation(cfg.Shift.Timezone)
	if err != nil {
		fmt.Println("Error loading business timezone:", err)
		return
	}

	clock, err := shiftclock.New(cfg.Shift.Start, cfg.Shift.End, cfg.Shift.GraceMinutes, loc)
	if err != nil {
		fmt.Println("Error building shift clock:", err)
		return
	}

	txManager := postgresql.NewTxManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	remoteWorkRepo := postgresql.NewRemoteWorkRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		attendanceRepo,
		employeeRepo,
		remoteWorkRepo,
		correctionRepo,
		auditRepo,
		clock,
		cfg.Geofence,
	)
	correctionSvc := correctionService.NewCorrectionService(
		txManager,
		correctionRepo,
		attendanceRepo,
		employeeRepo,
		auditRepo,
		clock,
	)
	remoteWorkSvc := remoteWorkService.NewRemoteWorkService(txManager, remoteWorkRepo, employeeRepo, auditRepo)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveRepo, employeeRepo, auditRepo)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, employeeRepo, leaveRepo, auditRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)
	remoteWorkHandler := appHTTP.NewRemoteWorkHandler(remoteWorkSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		correctionHandler,
		remoteWorkHandler,
		leaveHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
