package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/edulite/school-api/api/swagger"
	"github.com/edulite/school-api/internal/handler"
	internalmiddleware "github.com/edulite/school-api/internal/middleware"
	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/repository"
	"github.com/edulite/school-api/internal/service"
	"github.com/edulite/school-api/pkg/cache"
	"github.com/edulite/school-api/pkg/config"
	"github.com/edulite/school-api/pkg/database"
	"github.com/edulite/school-api/pkg/logger"
	corsmiddleware "github.com/edulite/school-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edulite/school-api/pkg/middleware/requestid"
)

// @title EduLite School API
// @version 1.0.0
// @description Role-based school management backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Dashboards fall back to the database when Redis is down.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)
	classRepo := repository.NewClassRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	marksRepo := repository.NewMarksRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	// Services.
	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, studentRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	yearSvc := service.NewAcademicYearService(yearRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, validate, logr)
	promotionSvc := service.NewPromotionService(classRepo, yearRepo, enrollmentRepo, validate, logr, cfg.School.TerminalClassLevel)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, validate, logr)
	marksSvc := service.NewMarksService(marksRepo, subjectRepo, validate, logr)
	feeSvc := service.NewFeeService(feeRepo, enrollmentRepo, validate, logr)
	employeeSvc := service.NewEmployeeService(employeeRepo, userRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	statsSvc := service.NewStatsService(studentRepo, employeeRepo, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheRepo, metricsSvc, logr, cfg.School.DashboardCacheTTL)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	yearHandler := handler.NewAcademicYearHandler(yearSvc)
	classHandler := handler.NewClassHandler(classSvc, subjectSvc)
	studentAdminHandler := handler.NewStudentAdminHandler(authSvc, studentSvc, enrollmentSvc, promotionSvc, dashboardSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	userHandler := handler.NewUserHandler(userSvc)
	feeHandler := handler.NewFeeHandler(feeSvc)
	teacherHandler := handler.NewTeacherHandler(employeeSvc, subjectSvc, attendanceSvc, marksSvc, dashboardSvc)
	studentHandler := handler.NewStudentHandler(studentSvc, enrollmentSvc, attendanceSvc, marksSvc, feeSvc, dashboardSvc)
	accountantHandler := handler.NewAccountantHandler(employeeSvc)
	principalHandler := handler.NewPrincipalHandler(employeeSvc, dashboardSvc, marksSvc, feeSvc, statsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := buildRouter(cfg, logr, metricsSvc, authSvc, routerHandlers{
		auth:         authHandler,
		years:        yearHandler,
		classes:      classHandler,
		studentAdmin: studentAdminHandler,
		subjects:     subjectHandler,
		employees:    employeeHandler,
		users:        userHandler,
		fees:         feeHandler,
		teacher:      teacherHandler,
		student:      studentHandler,
		accountant:   accountantHandler,
		principal:    principalHandler,
		metrics:      metricsHandler,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

type routerHandlers struct {
	auth         *handler.AuthHandler
	years        *handler.AcademicYearHandler
	classes      *handler.ClassHandler
	studentAdmin *handler.StudentAdminHandler
	subjects     *handler.SubjectHandler
	employees    *handler.EmployeeHandler
	users        *handler.UserHandler
	fees         *handler.FeeHandler
	teacher      *handler.TeacherHandler
	student      *handler.StudentHandler
	accountant   *handler.AccountantHandler
	principal    *handler.PrincipalHandler
	metrics      *handler.MetricsHandler
}

func buildRouter(cfg *config.Config, logr *zap.Logger, metricsSvc *service.MetricsService, tokens internalmiddleware.TokenValidator, h routerHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", internalmiddleware.JWT(tokens), internalmiddleware.RequireRoles(models.RoleAdmin), h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/auth/signin", h.auth.SignIn)

	auth := r.Group("/auth", internalmiddleware.JWT(tokens))
	{
		auth.POST("/registration", internalmiddleware.RequireRoles(models.RoleAdmin), h.auth.RegisterStaff)
		auth.PUT("/change-password", h.auth.ChangePassword)
	}

	admin := r.Group("/admin", internalmiddleware.JWT(tokens), internalmiddleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/academic-years", h.years.Create)
		admin.GET("/academic-years", h.years.List)
		admin.GET("/academic-years/active", h.years.Active)
		admin.PUT("/academic-years/:id/activate", h.years.Activate)
		admin.PUT("/academic-years/:id/close", h.years.Close)

		admin.POST("/classes", h.classes.Create)
		admin.GET("/classes", h.classes.ListByYear)
		admin.GET("/classes/divisions", h.classes.DivisionCounts)
		admin.PUT("/classes/teacher", h.classes.AssignTeacher)
		admin.GET("/classes/:id", h.classes.Profile)
		admin.GET("/classes/:id/subjects", h.classes.Subjects)

		admin.GET("/dashboard", h.studentAdmin.Dashboard)

		admin.POST("/students", h.studentAdmin.Register)
		admin.GET("/students/:regNo", h.studentAdmin.FindByRegNo)

		admin.GET("/enrollments", h.studentAdmin.ListByYear)
		admin.GET("/enrollments/class/:classId", h.studentAdmin.ListByClass)
		admin.PUT("/enrollments/class", h.studentAdmin.ChangeClassRoll)
		admin.PUT("/enrollments/status", h.studentAdmin.ToggleStatus)
		admin.POST("/enrollments/promote", h.studentAdmin.Promote)

		admin.POST("/subjects", h.subjects.Create)
		admin.PUT("/subjects/teacher", h.subjects.ChangeTeacher)
		admin.GET("/subjects/:id", h.subjects.Info)

		admin.GET("/staff", h.employees.ListByRole)
		admin.PUT("/staff/salary", h.employees.UpdateSalary)
		admin.PUT("/staff/status", h.employees.ChangeStatus)

		admin.PUT("/fees/structures", h.fees.UpsertStructure)
		admin.GET("/fees/structures", h.fees.ListStructures)
		admin.POST("/fees/assign", h.fees.Assign)
		admin.POST("/fees/assign-class", h.fees.AssignClass)
		admin.POST("/fees/payments", h.fees.RecordPayment)
		admin.GET("/fees/status/:enrollmentId", h.fees.Status)
		admin.GET("/fees/payments/:enrollmentId", h.fees.Payments)
		admin.GET("/fees/class/:classId", h.fees.ClassReport)
		admin.GET("/fees/defaulters", h.fees.Defaulters)
		admin.GET("/fees/defaulters/export", h.fees.DefaultersCSV)
		admin.GET("/fees/summary", h.fees.Summary)

		admin.GET("/users", h.users.List)
		admin.GET("/users/search", h.users.Search)
		admin.GET("/users/counts", h.users.CountByRole)
		admin.GET("/users/:id", h.users.Get)
		admin.PUT("/users/:id/status", h.users.SetStatus)
		admin.PUT("/users/:id/reset-password", h.users.ResetPassword)
	}

	teacher := r.Group("/teacher", internalmiddleware.JWT(tokens), internalmiddleware.RequireRoles(models.RoleTeacher))
	{
		teacher.GET("/profile", h.teacher.Profile)
		teacher.PUT("/profile", h.teacher.UpdateProfile)
		teacher.GET("/dashboard", h.teacher.Dashboard)
		teacher.GET("/classes", h.teacher.Classes)
		teacher.GET("/classes/:classId/students", h.teacher.ClassStudents)
		teacher.GET("/subjects", h.teacher.Subjects)
		teacher.POST("/attendance", h.teacher.MarkAttendance)
		teacher.GET("/attendance/:classId", h.teacher.AttendanceRegister)
		teacher.POST("/marks", h.teacher.AddMarks)
		teacher.GET("/performance/:classId", h.teacher.ClassPerformance)
		teacher.GET("/top-students", h.teacher.TopStudents)
	}

	student := r.Group("/student", internalmiddleware.JWT(tokens), internalmiddleware.RequireRoles(models.RoleStudent))
	{
		student.GET("/profile", h.student.Profile)
		student.PUT("/profile", h.student.UpdateContact)
		student.GET("/dashboard", h.student.Dashboard)
		student.GET("/enrollment", h.student.Enrollment)
		student.GET("/enrollment/history", h.student.History)
		student.GET("/marks", h.student.Marks)
		student.GET("/progress", h.student.Progress)
		student.GET("/attendance", h.student.Attendance)
		student.GET("/fees", h.student.Fees)
	}

	accountant := r.Group("/accountant", internalmiddleware.JWT(tokens), internalmiddleware.RequireRoles(models.RoleAccountant))
	{
		accountant.GET("/profile", h.accountant.Profile)
		accountant.PUT("/profile", h.accountant.UpdateProfile)
		accountant.GET("/fees/structures", h.fees.ListStructures)
		accountant.POST("/fees/assign", h.fees.Assign)
		accountant.POST("/fees/assign-class", h.fees.AssignClass)
		accountant.POST("/fees/payments", h.fees.RecordPayment)
		accountant.GET("/fees/status/:enrollmentId", h.fees.Status)
		accountant.GET("/fees/payments/:enrollmentId", h.fees.Payments)
		accountant.GET("/fees/class/:classId", h.fees.ClassReport)
		accountant.GET("/fees/defaulters", h.fees.Defaulters)
		accountant.GET("/fees/defaulters/export", h.fees.DefaultersCSV)
		accountant.GET("/fees/summary", h.fees.Summary)
		accountant.GET("/fees/receipts/:receiptNo", h.fees.Receipt)
	}

	principal := r.Group("/principal", internalmiddleware.JWT(tokens), internalmiddleware.RequireRoles(models.RolePrincipal))
	{
		principal.GET("/profile", h.principal.Profile)
		principal.GET("/overview", h.principal.Overview)
		principal.GET("/staff", h.employees.ListByRole)
		principal.GET("/classes/:classId/students", h.principal.ClassRoster)
		principal.GET("/stats/gender", h.principal.GenderStats)
		principal.GET("/stats/workloads", h.principal.TeacherWorkloads)
		principal.GET("/stats/top-students", h.principal.TopStudents)
		principal.GET("/stats/fees", h.principal.FeeSummary)
	}

	return r
}
