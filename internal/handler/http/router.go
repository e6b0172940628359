package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/leavehq/leave-backend-go/internal/config"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Client       ClientHandler
	Level        LevelHandler
	Employee     EmployeeHandler
	Invitation   InvitationHandler
	Leave        LeaveHandler
	Notification NotificationHandler
	Report       ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// Public invitation acceptance
		r.Route("/invitations", func(r chi.Router) {
			r.Get("/", h.Invitation.GetByToken)
			r.Post("/accept", h.Invitation.Accept)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Super admin, cross-tenant
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)

				r.Route("/clients", func(r chi.Router) {
					r.Post("/", h.Client.Create)
					r.Get("/", h.Client.List)
					r.Get("/{id}", h.Client.Get)
					r.Put("/{id}", h.Client.Update)
				})
				r.Route("/admin/leaves", func(r chi.Router) {
					r.Get("/", h.Leave.ListAllRequests)
					r.Post("/{id}/decision", h.Leave.Decide)
				})
			})

			// Tenant-scoped
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireTenant)

				r.Get("/clients/my", h.Client.GetMine)

				r.Route("/levels", func(r chi.Router) {
					r.Get("/", h.Level.List)
					r.Get("/{id}", h.Level.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Level.Create)
						r.Put("/{id}", h.Level.Update)
						r.Delete("/{id}", h.Level.Delete)
					})
				})

				r.Route("/leave-types", func(r chi.Router) {
					r.Get("/", h.Leave.ListTypes)
					r.Get("/{id}", h.Leave.GetType)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Leave.CreateType)
						r.Put("/{id}", h.Leave.UpdateType)
						r.Delete("/{id}", h.Leave.DeleteType)
					})
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/me", h.Employee.GetMe)
					r.Post("/me/avatar", h.Employee.UploadAvatar)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Employee.Create)
						r.Get("/", h.Employee.List)
						r.Get("/{id}", h.Employee.Get)
						r.Put("/{id}", h.Employee.Update)
						r.Delete("/{id}", h.Employee.Delete)

						r.Get("/{employeeID}/balances", h.Leave.GetEmployeeBalances)
						r.Post("/{employeeID}/invitations/resend", h.Invitation.Resend)
						r.Post("/{employeeID}/invitations/revoke", h.Invitation.Revoke)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.Get("/my", h.Leave.GetMyBalances)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Get("/{id}", h.Leave.GetBalance)
						r.Put("/{id}", h.Leave.UpdateBalance)
					})
				})

				r.Route("/leaves", func(r chi.Router) {
					r.Post("/", h.Leave.CreateRequest)
					r.Get("/my", h.Leave.GetMyRequests)
					r.Get("/managed", h.Leave.GetManagedRequests)
					r.Get("/{id}", h.Leave.GetRequest)
					r.With(middleware.RequirePermission(user.PermissionDecideLeave)).
						Post("/{id}/decision", h.Leave.Decide)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Get("/", h.Leave.ListRequests)
						r.Delete("/{id}", h.Leave.DeleteRequest)
					})
				})

				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", h.Notification.List)
					r.Post("/read", h.Notification.MarkAsRead)
					r.Post("/read-all", h.Notification.MarkAllAsRead)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewReports))
					r.Get("/leave-analytics", h.Report.LeaveAnalytics)
					r.Get("/balance-utilization", h.Report.BalanceUtilization)
				})
			})
		})
	})
	return r
}
