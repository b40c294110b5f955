package routes

import (
	"net/http"

	"github.com/jobbuddy/api/internal/app"
	"github.com/jobbuddy/api/internal/handler"
	"github.com/jobbuddy/api/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	profile := handler.NewProfileHandler(app.UserService)
	company := handler.NewCompanyHandler(app.CompanyService)
	contact := handler.NewContactHandler(app.ContactService)
	application := handler.NewApplicationHandler(app.ApplicationService, app.Cfg.MaxUploadMB)
	outreach := handler.NewOutreachHandler(app.OutreachService)
	goal := handler.NewGoalHandler(app.GoalService, app.StreakService)
	notification := handler.NewNotificationHandler(app.NotificationService)
	cv := handler.NewCVHandler(app.CVAnalysisService, app.Cfg.MaxUploadMB)
	onboarding := handler.NewOnboardingHandler(app.OnboardingService)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /api/v1/health", health.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.TrustProxyHeaders)
	mux.HandleFunc("POST /api/v1/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/v1/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/v1/auth/password-recovery", rateLimiter(auth.RecoverPassword))
	mux.HandleFunc("POST /api/v1/auth/logout", middleware.RequireAuth(auth.Logout))

	// Profile
	mux.HandleFunc("GET /api/v1/profile", middleware.RequireAuth(profile.Get))
	mux.HandleFunc("PUT /api/v1/profile", middleware.RequireAuth(profile.Update))
	mux.HandleFunc("PUT /api/v1/profile/password", middleware.RequireAuth(profile.ChangePassword))
	mux.HandleFunc("DELETE /api/v1/profile", middleware.RequireAuth(profile.DeleteAccount))

	// Companies
	mux.HandleFunc("POST /api/v1/companies", middleware.RequireAuth(company.Create))
	mux.HandleFunc("GET /api/v1/companies", middleware.RequireAuth(company.List))
	mux.HandleFunc("GET /api/v1/companies/{id}", middleware.RequireAuth(company.Get))
	mux.HandleFunc("PUT /api/v1/companies/{id}", middleware.RequireAuth(company.Update))
	mux.HandleFunc("DELETE /api/v1/companies/{id}", middleware.RequireAuth(company.Delete))

	// Contacts
	mux.HandleFunc("POST /api/v1/contacts", middleware.RequireAuth(contact.Create))
	mux.HandleFunc("POST /api/v1/contacts/discover", middleware.RequireAuth(contact.Discover))
	mux.HandleFunc("GET /api/v1/contacts", middleware.RequireAuth(contact.List))
	mux.HandleFunc("GET /api/v1/contacts/{id}", middleware.RequireAuth(contact.Get))
	mux.HandleFunc("PUT /api/v1/contacts/{id}", middleware.RequireAuth(contact.Update))
	mux.HandleFunc("DELETE /api/v1/contacts/{id}", middleware.RequireAuth(contact.Delete))

	// Applications
	mux.HandleFunc("POST /api/v1/applications", middleware.RequireAuth(application.Create))
	mux.HandleFunc("GET /api/v1/applications", middleware.RequireAuth(application.List))
	mux.HandleFunc("GET /api/v1/applications/{id}", middleware.RequireAuth(application.Get))
	mux.HandleFunc("PUT /api/v1/applications/{id}", middleware.RequireAuth(application.Update))
	mux.HandleFunc("DELETE /api/v1/applications/{id}", middleware.RequireAuth(application.Delete))
	mux.HandleFunc("POST /api/v1/applications/bulk-upload", middleware.RequireAuth(application.BulkImport))

	// Outreach
	mux.HandleFunc("POST /api/v1/outreach", middleware.RequireAuth(outreach.Create))
	mux.HandleFunc("GET /api/v1/outreach", middleware.RequireAuth(outreach.List))
	mux.HandleFunc("GET /api/v1/outreach/{id}", middleware.RequireAuth(outreach.Get))
	mux.HandleFunc("PUT /api/v1/outreach/{id}", middleware.RequireAuth(outreach.Update))
	mux.HandleFunc("DELETE /api/v1/outreach/{id}", middleware.RequireAuth(outreach.Delete))

	// Goals, streak, quests
	mux.HandleFunc("GET /api/v1/goals/current", middleware.RequireAuth(goal.Current))
	mux.HandleFunc("POST /api/v1/goals", middleware.RequireAuth(goal.SetTargets))
	mux.HandleFunc("GET /api/v1/goals/streak", middleware.RequireAuth(goal.Streak))
	mux.HandleFunc("GET /api/v1/goals/micro-quests", middleware.RequireAuth(goal.Quests))
	mux.HandleFunc("POST /api/v1/goals/micro-quests/{id}/complete", middleware.RequireAuth(goal.CompleteQuest))

	// Notifications
	mux.HandleFunc("GET /api/v1/notifications", middleware.RequireAuth(notification.List))
	mux.HandleFunc("PUT /api/v1/notifications/read-all", middleware.RequireAuth(notification.MarkAllRead))
	mux.HandleFunc("PUT /api/v1/notifications/{id}/read", middleware.RequireAuth(notification.MarkRead))
	mux.HandleFunc("DELETE /api/v1/notifications/{id}", middleware.RequireAuth(notification.Delete))

	// CV analysis
	mux.HandleFunc("POST /api/v1/cv/analyze", middleware.RequireAuth(cv.Analyze))
	mux.HandleFunc("GET /api/v1/cv/analyses", middleware.RequireAuth(cv.List))
	mux.HandleFunc("GET /api/v1/cv/analyses/{id}", middleware.RequireAuth(cv.Get))
	mux.HandleFunc("DELETE /api/v1/cv/analyses/{id}", middleware.RequireAuth(cv.Delete))

	// Onboarding
	mux.HandleFunc("POST /api/v1/onboarding", middleware.RequireAuth(onboarding.Submit))
	mux.HandleFunc("GET /api/v1/onboarding", middleware.RequireAuth(onboarding.Get))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
