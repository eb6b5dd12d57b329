package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/configs"
	applicationController "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/controller"
	paymentController "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/controller"
	paymentService "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/finance/payments/service"
	notificationController "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/notifications/controller"
	onboardingController "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/onboarding/controller"
	programController "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/programs/controller"
	userController "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/controller"
	authmw "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/middlewares/auth"
)

// SetupRoutes mounts every feature behind three groups:
//
//	/api/public: no auth (program catalog, provider webhooks)
//	/api/u:      signed-in trainees
//	/api/a:      admins
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.Config, settle *paymentService.SettlementService) {
	authCtl := userController.NewAuthController(db, cfg.JWTSecret, cfg.CookieSecure)
	profileCtl := userController.NewProfileController(db)
	programCtl := programController.NewProgramController(db)
	applicationCtl := applicationController.NewApplicationController(db)
	onboardingCtl := onboardingController.NewOnboardingController(db)
	paymentCtl := paymentController.NewPaymentController(db, settle, cfg.AppBaseURL)
	notificationCtl := notificationController.NewNotificationController(db)

	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up auth routes...")
	app.Post("/api/auth/register", authCtl.Register)
	app.Post("/api/auth/login", authCtl.Login)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	programCtl.RegisterPublicRoutes(public)
	paymentCtl.RegisterPublicRoutes(public)

	// ===================== PRIVATE (TRAINEE) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              cfg.JWTSecret,
			AllowCookieFallback: true,
		}),
	)
	onboardingCtl.RegisterRoutes(private)
	private.Get("/profile", profileCtl.GetMe)
	private.Patch("/profile", profileCtl.UpdateMe)
	applicationCtl.RegisterTraineeRoutes(private)
	paymentCtl.RegisterTraineeRoutes(private)
	notificationCtl.RegisterRoutes(private)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              cfg.JWTSecret,
			AllowCookieFallback: true,
		}),
		authmw.RequireAdmin(),
	)
	programCtl.RegisterAdminRoutes(admin)
	applicationCtl.RegisterAdminRoutes(admin)
}
