package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/config"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salongo/internal/infra/repository"
	"github.com/BruksfildServices01/salongo/internal/media"
	"github.com/BruksfildServices01/salongo/internal/metrics"
	"github.com/BruksfildServices01/salongo/internal/middleware"
	"github.com/BruksfildServices01/salongo/internal/otp"
	"github.com/BruksfildServices01/salongo/internal/session"
	ucAuth "github.com/BruksfildServices01/salongo/internal/usecase/auth"
	ucBooking "github.com/BruksfildServices01/salongo/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/salongo/internal/usecase/catalog"
	ucDashboard "github.com/BruksfildServices01/salongo/internal/usecase/dashboard"
	ucOwner "github.com/BruksfildServices01/salongo/internal/usecase/owner"
	ucWorker "github.com/BruksfildServices01/salongo/internal/usecase/worker"
)

// Deps are the process-wide singletons built by main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger

	Sessions  *session.Manager
	OTPStore  otp.Store
	OTPSender otp.Sender
	Metrics   *metrics.Metrics

	Audit       audit.Recorder
	AuditLogger *audit.Logger

	// nil when photo storage is not configured
	Uploader media.Uploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORS(cfg.CORSOrigins),
		d.Metrics.Middleware(),
	)

	// ======================================================
	// REPOSITORIES
	// ======================================================
	identityRepo := infraRepo.NewIdentityGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	requestOTPUC := ucAuth.NewRequestOTP(d.OTPStore, d.OTPSender, d.Metrics, cfg.OTPTTL, cfg.DemoMode())
	verifyOTPUC := ucAuth.NewVerifyOTP(identityRepo, d.OTPStore, d.Metrics)

	homeUC := ucCatalog.NewHome(catalogRepo)
	workerDashboardUC := ucWorker.NewDashboard(bookingRepo)
	ownerDashboardUC := ucOwner.NewDashboard(catalogRepo, bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucAuth.NewLogin(identityRepo),
		ucAuth.NewSignup(identityRepo, d.Audit),
		requestOTPUC,
		verifyOTPUC,
		d.Sessions,
	)

	meHandler := handlers.NewMeHandler(
		identityRepo,
		ucAuth.NewCompleteProfile(identityRepo, d.Audit),
		ucDashboard.NewRouter(homeUC, workerDashboardUC, ownerDashboardUC),
		d.Sessions,
	)

	publicHandler := handlers.NewPublicHandler(
		homeUC,
		ucCatalog.NewSalonDetails(catalogRepo),
		ucCatalog.NewCreateReview(catalogRepo, d.Audit, cfg.Timezone),
	)

	bookingHandler := handlers.NewBookingHandler(
		ucBooking.NewCreateBooking(bookingRepo, d.Audit, d.Metrics, cfg.Timezone),
		ucBooking.NewListCustomerBookings(bookingRepo),
		ucBooking.NewCancelBooking(bookingRepo, d.Audit, d.Metrics),
	)

	workerHandler := handlers.NewWorkerHandler(
		workerDashboardUC,
		ucBooking.NewToggleAvailability(bookingRepo, d.Audit),
		ucBooking.NewAcceptBooking(bookingRepo, d.Audit, d.Metrics),
		ucBooking.NewCompleteBooking(bookingRepo, d.Audit, d.Metrics),
		ucWorker.NewUpdateProfile(bookingRepo, catalogRepo),
		ucWorker.NewUploadPhoto(bookingRepo, catalogRepo, d.Uploader),
	)

	ownerHandler := handlers.NewOwnerHandler(
		ucOwner.NewRegisterSalon(catalogRepo, d.Uploader, d.Audit),
		ucOwner.NewUpdateSalon(catalogRepo, d.Uploader, d.Audit),
		ucOwner.NewAddService(catalogRepo, d.Audit),
		ucOwner.NewAddWorker(catalogRepo, d.Audit),
		ucOwner.NewGenerateSignupCode(catalogRepo, d.Audit),
		ownerDashboardUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(
		ucOwner.NewListAuditLogs(catalogRepo, d.AuditLogger),
	)

	otpLimiter := middleware.NewIPRateLimiter(cfg.OTPRatePerMinute)
	verifyLimiter := middleware.NewIPRateLimiter(cfg.OTPRatePerMinute)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", d.Metrics.Handler())

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/salons", publicHandler.ListSalons)
		api.GET("/salons/:id", publicHandler.GetSalon)

		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/login", authHandler.Login)
			authAPI.POST("/signup", authHandler.Signup)
			authAPI.POST("/logout", authHandler.Logout)

			authAPI.POST("/otp/request", otpLimiter.Middleware(), authHandler.RequestOTP)
			authAPI.POST("/otp/resend", otpLimiter.Middleware(), authHandler.ResendOTP)
			authAPI.POST("/otp/verify", verifyLimiter.Middleware(), authHandler.VerifyOTP)
		}

		// ------------------------------
		// SESSION
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.Auth(d.Sessions))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/profile", meHandler.CompleteProfile)
		}

		complete := secured.Group("/")
		complete.Use(middleware.RequireCompleteProfile())
		{
			complete.GET("/dashboard", meHandler.Dashboard)
		}

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		customer := complete.Group("/")
		customer.Use(middleware.RequireRole(role.Customer))
		{
			customer.POST("/bookings", bookingHandler.Create)
			customer.GET("/bookings", bookingHandler.List)
			customer.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			customer.POST("/salons/:id/reviews", publicHandler.CreateReview)
		}

		// ------------------------------
		// WORKER
		// ------------------------------
		worker := complete.Group("/worker")
		worker.Use(middleware.RequireRole(role.Worker))
		{
			worker.GET("/dashboard", workerHandler.Dashboard)
			worker.PATCH("/availability", workerHandler.ToggleAvailability)
			worker.PATCH("/profile", workerHandler.UpdateProfile)
			worker.POST("/photo", workerHandler.UploadPhoto)
			worker.PATCH("/bookings/:id/accept", workerHandler.Accept)
			worker.PATCH("/bookings/:id/complete", workerHandler.Complete)
		}

		// ------------------------------
		// OWNER
		// ------------------------------
		owner := complete.Group("/owner")
		owner.Use(middleware.RequireRole(role.Owner))
		{
			owner.POST("/salon", ownerHandler.RegisterSalon)
			owner.PATCH("/salon", ownerHandler.UpdateSalon)
			owner.GET("/dashboard", ownerHandler.Dashboard)
			owner.POST("/services", ownerHandler.AddService)
			owner.POST("/workers", ownerHandler.AddWorker)
			owner.POST("/signup-codes", ownerHandler.GenerateSignupCode)
			owner.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
