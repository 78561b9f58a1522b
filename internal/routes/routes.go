package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinicdesk/booking-gateway/internal/audit"
	"github.com/clinicdesk/booking-gateway/internal/config"
	"github.com/clinicdesk/booking-gateway/internal/handlers"
	"github.com/clinicdesk/booking-gateway/internal/infra/clinicapi"
	"github.com/clinicdesk/booking-gateway/internal/middleware"
	"github.com/clinicdesk/booking-gateway/internal/session"
	ucAvailability "github.com/clinicdesk/booking-gateway/internal/usecase/availability"
	ucBooking "github.com/clinicdesk/booking-gateway/internal/usecase/booking"
	ucSelection "github.com/clinicdesk/booking-gateway/internal/usecase/selection"
)

func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	sessions session.Store,
	log *zap.Logger,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	upstream := clinicapi.New(cfg.UpstreamBaseURL, cfg.UpstreamToken, cfg.UpstreamTimeout, log)

	var sink audit.Sink = audit.NopSink{}
	if db != nil {
		sink = audit.NewGormSink(db)
	}
	auditDispatcher := audit.NewDispatcher(sink, log)

	// ======================================================
	// USE CASES
	// ======================================================
	fetchDayUC := ucAvailability.NewFetchDay(upstream, log)
	buildWeekUC := ucAvailability.NewBuildWeek(fetchDayUC, cfg.ClinicTimezone, log)

	selectionUC := ucSelection.New(
		sessions,
		buildWeekUC,
		fetchDayUC,
		auditDispatcher,
		cfg.DefaultBranchID,
		log,
	)

	submitUC := ucBooking.NewSubmit(
		sessions,
		upstream,
		fetchDayUC,
		auditDispatcher,
		log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	sessionHandler := handlers.NewSessionHandler(selectionUC)
	bookingHandler := handlers.NewBookingHandler(submitUC)
	branchHandler := handlers.NewBranchHandler(upstream)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/branches", branchHandler.List)

		api.POST("/sessions", sessionHandler.Create)
		api.GET("/sessions/:id/availability", sessionHandler.Availability)
		api.PUT("/sessions/:id/branch", sessionHandler.SelectBranch)
		api.PUT("/sessions/:id/date", sessionHandler.SelectDate)
		api.PUT("/sessions/:id/time", sessionHandler.SelectTime)
		api.POST("/sessions/:id/bookings", bookingHandler.Submit)
	}
}
