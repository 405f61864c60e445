package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sharifahmad/medimart-backend/api/controllers"
	"github.com/sharifahmad/medimart-backend/api/middleware"
	cartsvc "github.com/sharifahmad/medimart-backend/internal/cart"
	categorysvc "github.com/sharifahmad/medimart-backend/internal/categories"
	medicinesvc "github.com/sharifahmad/medimart-backend/internal/medicines"
	paymentsvc "github.com/sharifahmad/medimart-backend/internal/payments"
	promotionsvc "github.com/sharifahmad/medimart-backend/internal/promotions"
	usersvc "github.com/sharifahmad/medimart-backend/internal/users"
	"github.com/sharifahmad/medimart-backend/pkg/config"
	"github.com/sharifahmad/medimart-backend/pkg/db"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
	"github.com/sharifahmad/medimart-backend/pkg/metrics"
	"github.com/sharifahmad/medimart-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers and guards.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	MetricsHTTP http.Handler

	Users      usersvc.Service
	Categories categorysvc.Service
	Medicines  medicinesvc.Service
	Cart       cartsvc.Service
	Payments   paymentsvc.Service
	Promotions promotionsvc.Service
}

// NewRouter assembles the full route tree. Every privileged subtree runs
// the bearer-token gate followed by a per-request role lookup.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	tokenPolicy := middleware.NewTokenRateLimitPolicy(
		"token",
		cfg.TokenLimit.Window,
		cfg.TokenLimit.IPLimit,
		cfg.TokenLimit.EmailLimit,
	)

	authGate := middleware.Auth(cfg.JWT, logg)
	requireBuyer := middleware.RequireRole(enums.RoleBuyer, deps.Users, logg)
	requireSeller := middleware.RequireRole(enums.RoleSeller, deps.Users, logg)
	requireAdmin := middleware.RequireRole(enums.RoleAdmin, deps.Users, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.MetricsHTTP != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHTTP)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface: token issuance, identity upsert, catalog reads.
		r.With(middleware.TokenRateLimit(tokenPolicy, deps.Redis, logg)).
			Post("/token", controllers.IssueToken(cfg.JWT, logg))
		r.Put("/user", controllers.UpsertUser(deps.Users, logg))
		r.Get("/categories", controllers.ListCategories(deps.Categories, logg))
		r.Get("/medicines", controllers.ListMedicines(deps.Medicines, logg))
		r.Get("/banner", controllers.Banner(deps.Promotions, logg))

		// Authenticated, role-free reads.
		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Get("/user/{email}", controllers.GetUser(deps.Users, logg))
		})

		// Buyer surface.
		r.Group(func(r chi.Router) {
			r.Use(authGate, requireBuyer)
			r.Post("/cart", controllers.AddCartEntry(deps.Cart, logg))
			r.Get("/cart/{email}", controllers.GetCart(deps.Cart, logg))
			r.Delete("/cart/{id}", controllers.RemoveCartEntry(deps.Cart, logg))
			r.Post("/payment-intent", controllers.CreatePaymentIntent(deps.Payments, logg))
			r.Post("/payment", controllers.CreatePayment(deps.Payments, logg))
		})

		// Seller surface.
		r.Group(func(r chi.Router) {
			r.Use(authGate, requireSeller)
			r.Post("/medicine", controllers.CreateMedicine(deps.Medicines, logg))
			r.Delete("/medicine/{id}", controllers.DeleteMedicine(deps.Medicines, logg))
			r.Get("/dashboard/seller/{email}", controllers.SellerDashboard(deps.Payments, logg))
			r.Put("/promotion-request", controllers.RequestPromotion(deps.Promotions, logg))
		})

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(authGate, requireAdmin)
			r.Get("/users", controllers.ListUsers(deps.Users, logg))
			r.Patch("/user/{id}", controllers.AssignRole(deps.Users, logg))
			r.Post("/category", controllers.CreateCategory(deps.Categories, logg))
			r.Delete("/category/{id}", controllers.DeleteCategory(deps.Categories, logg))
			r.Patch("/payment/{id}", controllers.MarkPaymentPaid(deps.Payments, logg))
			r.Get("/dashboard/admin", controllers.AdminDashboard(deps.Payments, logg))
			r.Patch("/promotion/{id}", controllers.DecidePromotion(deps.Promotions, logg))
			r.Get("/promotions", controllers.ListPromotions(deps.Promotions, logg))
		})
	})

	return r
}
