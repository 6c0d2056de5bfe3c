package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"assetdesk/internal/config"
	"assetdesk/internal/events"
	"assetdesk/internal/handlers"
	"assetdesk/internal/middleware"
	"assetdesk/internal/notify"
	"assetdesk/internal/repository/postgres"
	"assetdesk/internal/service"
	"assetdesk/internal/ws"
)

func New(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config, hub *ws.Hub, mail notify.Mailer, bus *events.Publisher) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	// Health
	r.Get("/healthz", handlers.Health())

	// Repos
	userRepo := postgres.NewUserRepo(db)
	employeeRepo := postgres.NewEmployeeRepo(db)
	assetRepo := postgres.NewAssetRepo(db)
	ticketRepo := postgres.NewTicketRepo(db)
	maintRepo := postgres.NewMaintenanceRepo(db)
	upgradeRepo := postgres.NewUpgradeRepo(db)
	notifRepo := postgres.NewNotificationRepo(db)

	// Notification routing: repo-backed directory, delivery fan-out over
	// store + websocket + mail + bus.
	delivery := notify.NewDelivery(notifRepo, userRepo, hub, mail, bus, log)
	notifier := notify.New(notify.NewDirectory(employeeRepo, assetRepo), delivery, log)

	// Handlers
	authSvc := service.NewAuthService(userRepo, cfg.SessionSecret)
	ah := handlers.NewAuthHTTP(authSvc, userRepo)
	uh := handlers.NewUserHTTP(userRepo)
	eh := handlers.NewEmployeeHTTP(employeeRepo, notifier)
	sh := handlers.NewAssetHTTP(assetRepo, userRepo, notifier)
	th := handlers.NewTicketHTTP(ticketRepo, userRepo, notifier)
	mh := handlers.NewMaintenanceHTTP(maintRepo, assetRepo, notifier)
	gh := handlers.NewUpgradeHTTP(upgradeRepo, assetRepo, notifier)
	nh := handlers.NewNotificationHTTP(notifRepo)
	ch := handlers.NewCSVHTTP(employeeRepo, assetRepo, notifier)
	rh := handlers.NewReportsHTTP(ticketRepo)

	// Auth
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login(cfg.SessionSecret))
		r.Post("/logout", ah.Logout())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
	})

	// Everything below requires a session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/ws", hub.Serve())

		r.Route("/api/employees", func(r chi.Router) {
			r.Get("/", eh.List())
			r.With(middleware.RequireRoles("admin", "manager")).Post("/", eh.Create())
			r.With(middleware.RequireRoles("admin", "manager")).Get("/export", ch.ExportEmployees())
			r.With(middleware.RequireRoles("admin", "manager")).Post("/import", ch.ImportEmployees())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eh.Get())
				r.With(middleware.RequireRoles("admin", "manager")).Patch("/", eh.Update())
				r.With(middleware.RequireRoles("admin", "manager")).Post("/offboard", eh.Offboard())
				r.With(middleware.RequireRoles("admin")).Delete("/", eh.Delete())
			})
		})

		r.Route("/api/assets", func(r chi.Router) {
			r.Get("/", sh.List())
			r.With(middleware.RequireRoles("admin", "manager")).Post("/", sh.Create())
			r.With(middleware.RequireRoles("admin", "manager")).Get("/export", ch.ExportAssets())
			r.With(middleware.RequireRoles("admin", "manager")).Post("/import", ch.ImportAssets())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sh.Get())
				r.With(middleware.RequireRoles("admin", "manager")).Patch("/", sh.Update())
				r.With(middleware.RequireRoles("admin", "manager")).Post("/checkout", sh.CheckOut())
				r.With(middleware.RequireRoles("admin", "manager")).Post("/checkin", sh.CheckIn())
				r.With(middleware.RequireRoles("admin")).Delete("/", sh.Delete())
			})
		})

		r.Route("/api/tickets", func(r chi.Router) {
			r.Get("/", th.List())
			r.Post("/", th.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", th.Get())
				r.With(middleware.RequireRoles("admin", "manager")).Patch("/", th.Update())
				r.Post("/comments", th.AddComment())
			})
		})

		r.Route("/api/maintenance", func(r chi.Router) {
			r.Get("/", mh.List())
			r.With(middleware.RequireRoles("admin", "manager")).Post("/", mh.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", mh.Get())
				r.With(middleware.RequireRoles("admin", "manager")).Post("/complete", mh.Complete())
			})
		})

		r.Route("/api/upgrades", func(r chi.Router) {
			r.Get("/", gh.List())
			r.Post("/", gh.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", gh.Get())
				r.With(middleware.RequireRoles("admin", "manager")).Post("/decision", gh.Decide())
			})
		})

		r.Route("/api/notifications", func(r chi.Router) {
			r.Get("/", nh.List())
			r.Post("/read-all", nh.MarkAllRead())
			r.Post("/{id}/read", nh.MarkRead())
		})

		r.With(middleware.RequireRoles("admin", "manager")).Get("/api/reports/summary", rh.Summary())

		r.Route("/api/users", func(r chi.Router) {
			r.With(middleware.RequireRoles("admin")).Get("/", uh.List())
			r.Route("/{id}", func(r chi.Router) {
				r.With(middleware.RequireRoles("admin")).Patch("/role", uh.UpdateRole())
				r.With(middleware.RequireRoles("admin")).Patch("/active", uh.SetActive())
				r.With(middleware.RequireSelfOrRoles("admin")).Patch("/basic", uh.UpdateBasic())
				r.With(middleware.RequireSelfOrRoles("admin")).Patch("/password", uh.UpdatePassword())
			})
		})
	})

	return r
}
