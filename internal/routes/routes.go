// Package routes wires repositories, services and handlers into the API.
package routes

import (
	"dentalbooks/internal/config"
	"dentalbooks/internal/handlers"
	"dentalbooks/internal/middleware"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"
	"dentalbooks/internal/repositories/cache"
	"dentalbooks/internal/services/auth"
	"dentalbooks/internal/services/clinic"
	"dentalbooks/internal/services/expense"
	"dentalbooks/internal/services/form"
	"dentalbooks/internal/services/income"
	"dentalbooks/internal/services/merchantfee"
	"dentalbooks/internal/services/report"
	"dentalbooks/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes. cacheService may be nil.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheService *cache.CacheService) {
	userRepo := repositories.NewUserRepository(db, cacheService)
	clinicRepo := repositories.NewClinicRepository(db)
	formRepo := repositories.NewFormRepository(db, cacheService)
	incomeRepo := repositories.NewIncomeRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)

	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, clinicRepo)
	clinicService := clinic.NewService(clinicRepo)
	formService := form.NewService(formRepo, clinicService)
	incomeService := income.NewService(incomeRepo, formRepo, clinicService,
		merchantfee.NewSource(config.GetEnv("STRIPE_SECRET_KEY", "")))
	expenseService := expense.NewService(expenseRepo, clinicService)
	reportService := report.NewService(incomeRepo, expenseRepo, clinicService)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(db, cacheService)
	calculatorHandler := handlers.NewCalculatorHandler(incomeService, expenseService)

	api := app.Group("/api")

	// Public endpoints
	api.Get("/health", healthHandler.HealthCheck)
	api.Post("/register", authHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Dentalbooks API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Group("", authMiddleware.Handler)

	protected.Post("/logout", authHandler.LogoutUser)
	protected.Post("/change-password", authHandler.ChangePassword)

	me := protected.Group("/me")
	me.Get("/", userHandler.GetProfile)
	me.Put("/", middleware.HasPermission(models.PermissionUserWrite), userHandler.UpdateProfile)
	me.Delete("/", middleware.HasPermission(models.PermissionUserWrite), userHandler.DeleteAccount)

	protected.Post("/calculate", calculatorHandler.Calculate)
	protected.Post("/expenses/classify", calculatorHandler.Classify)

	setupClinicRoutes(protected, clinicService, formService, incomeService, expenseService, reportService)
	setupAdminRoutes(protected, userHandler, healthHandler)
}

func setupClinicRoutes(router fiber.Router, clinicService clinic.Service, formService form.Service,
	incomeService income.Service, expenseService expense.Service, reportService report.Service) {
	clinicHandler := handlers.NewClinicHandler(clinicService)
	formHandler := handlers.NewFormHandler(formService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	reportHandler := handlers.NewReportHandler(reportService)

	read := middleware.HasPermission(models.PermissionClinicRead)
	write := middleware.HasPermission(models.PermissionClinicWrite)

	clinics := router.Group("/clinics")
	clinics.Post("/", write, clinicHandler.Create)
	clinics.Get("/", read, clinicHandler.List)
	clinics.Get("/:clinicID", read, clinicHandler.Get)
	clinics.Put("/:clinicID", write, clinicHandler.Update)
	clinics.Delete("/:clinicID", write, clinicHandler.Delete)

	forms := clinics.Group("/:clinicID/forms")
	forms.Post("/", write, formHandler.Create)
	forms.Get("/", read, formHandler.List)
	forms.Get("/:formID", read, formHandler.Get)
	forms.Put("/:formID", write, formHandler.Update)
	forms.Delete("/:formID", write, formHandler.Delete)

	incomeGroup := clinics.Group("/:clinicID/income")
	incomeGroup.Post("/", write, incomeHandler.Create)
	incomeGroup.Get("/", read, incomeHandler.List)
	incomeGroup.Get("/by-ref/:reference", read, incomeHandler.GetByReference)
	incomeGroup.Get("/:entryID", read, incomeHandler.Get)
	incomeGroup.Put("/:entryID", write, incomeHandler.Update)
	incomeGroup.Delete("/:entryID", write, incomeHandler.Delete)

	heads := clinics.Group("/:clinicID/expense-heads")
	heads.Post("/", write, expenseHandler.CreateHead)
	heads.Get("/", read, expenseHandler.ListHeads)
	heads.Get("/:headID", read, expenseHandler.GetHead)
	heads.Put("/:headID", write, expenseHandler.UpdateHead)
	heads.Delete("/:headID", write, expenseHandler.DeleteHead)

	expenses := clinics.Group("/:clinicID/expenses")
	expenses.Post("/", write, expenseHandler.CreateEntry)
	expenses.Get("/", read, expenseHandler.ListEntries)
	expenses.Get("/:entryID", read, expenseHandler.GetEntry)
	expenses.Put("/:entryID", write, expenseHandler.UpdateEntry)
	expenses.Delete("/:entryID", write, expenseHandler.DeleteEntry)

	clinics.Get("/:clinicID/reports/bas", read, reportHandler.BAS)
}

func setupAdminRoutes(router fiber.Router, userHandler *handlers.UserHandler, healthHandler *handlers.HealthHandler) {
	admin := router.Group("/admin", middleware.AdminAuthMiddleware)

	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), userHandler.ListUsers)
	admin.Get("/cache-stats", middleware.HasPermission(models.PermissionReadAdmin), healthHandler.CacheStats)
}
