package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brightops/clinic-scheduler/internal/audit"
	"github.com/brightops/clinic-scheduler/internal/config"
	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/handlers"
	infraRepo "github.com/brightops/clinic-scheduler/internal/infra/repository"
	"github.com/brightops/clinic-scheduler/internal/lock"
	"github.com/brightops/clinic-scheduler/internal/middleware"
	ucSchedule "github.com/brightops/clinic-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, locker lock.Locker) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	hours := domain.BusinessHours{
		Start:        cfg.BusinessStart,
		End:          cfg.BusinessEnd,
		SlotDuration: cfg.SlotDuration,
	}

	// ======================================================
	// USE CASES (SCHEDULE ENGINE)
	// ======================================================
	availableDatesUC := ucSchedule.NewAvailableDates(
		scheduleRepo,
		hours,
		cfg.HorizonDays,
	)

	bookUC := ucSchedule.NewBook(
		scheduleRepo,
		availableDatesUC,
		locker,
		auditDispatcher,
	)

	cancelUC := ucSchedule.NewCancel(
		scheduleRepo,
		auditDispatcher,
	)

	archiveUC := ucSchedule.NewArchive(
		scheduleRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(
		availableDatesUC,
		bookUC,
		cancelUC,
		scheduleRepo,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		archiveUC,
		cfg.ArchiveAfterDays,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// SCHEDULE ENGINE
			// ------------------------------
			secured.GET("/schedule/available-dates", scheduleHandler.AvailableDates)
			secured.POST("/schedule/bookings", scheduleHandler.Book)
			secured.GET("/schedule/bookings", scheduleHandler.ListMine)
			secured.DELETE("/schedule/bookings/:id", scheduleHandler.Cancel)

			// ------------------------------
			// STAFF ONLY
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireStaff())
			{
				staff.POST("/appointments", appointmentHandler.Create)
				staff.GET("/appointments", appointmentHandler.List)
				staff.GET("/appointments/archived", appointmentHandler.ListArchived)
				staff.GET("/appointments/:id", appointmentHandler.Get)
				staff.PATCH("/appointments/:id", appointmentHandler.Update)
				staff.DELETE("/appointments/:id", appointmentHandler.Delete)

				staff.POST("/admin/archive", appointmentHandler.Archive)

				staff.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
