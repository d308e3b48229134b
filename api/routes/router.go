package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablemaps/tablemaps-backend/api/controllers"
	"github.com/tablemaps/tablemaps-backend/api/middleware"
	"github.com/tablemaps/tablemaps-backend/api/responses"
	authsvc "github.com/tablemaps/tablemaps-backend/internal/auth"
	"github.com/tablemaps/tablemaps-backend/internal/cron"
	dishsvc "github.com/tablemaps/tablemaps-backend/internal/dishes"
	restaurantsvc "github.com/tablemaps/tablemaps-backend/internal/restaurants"
	usersvc "github.com/tablemaps/tablemaps-backend/internal/users"
	"github.com/tablemaps/tablemaps-backend/pkg/config"
	"github.com/tablemaps/tablemaps-backend/pkg/db"
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
	"github.com/tablemaps/tablemaps-backend/pkg/logger"
	"github.com/tablemaps/tablemaps-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     db.Pinger
	RedisPinger  redis.Pinger
	AuthService  authsvc.Service
	UserService  usersvc.Service
	Restaurants  restaurantsvc.Service
	Dishes       dishsvc.Service
	DishResetJob *cron.DishResetJob
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	protect := middleware.Protect(cfg.JWT, logg)
	ownerOrAdmin := middleware.Authorize(logg, string(enums.UserRoleOwner), string(enums.UserRoleAdmin))
	adminOnly := middleware.Authorize(logg, string(enums.UserRoleAdmin))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Route non trouvée"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DBPinger, params.RedisPinger))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(params.AuthService, cfg, logg))
		r.Post("/login", controllers.Login(params.AuthService, cfg, logg))
		r.Post("/logout", controllers.Logout(cfg))

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Get("/me", controllers.Me(params.AuthService, logg))
			r.Put("/updatedetails", controllers.UpdateDetails(params.AuthService, logg))
			r.Put("/updatepassword", controllers.UpdatePassword(params.AuthService, cfg, logg))
		})
	})

	r.Route("/api/restaurants", func(r chi.Router) {
		r.Get("/", controllers.ListRestaurants(params.Restaurants, logg))
		r.Get("/radius/{coordinates}/{distance}", controllers.NearbyRestaurants(params.Restaurants, logg))
		r.Get("/{id}", controllers.GetRestaurant(params.Restaurants, logg))

		r.Group(func(r chi.Router) {
			r.Use(protect, ownerOrAdmin)
			r.Post("/", controllers.CreateRestaurant(params.Restaurants, logg))
			r.Put("/{id}", controllers.UpdateRestaurant(params.Restaurants, logg))
			r.Delete("/{id}", controllers.DeleteRestaurant(params.Restaurants, logg))
		})
	})

	r.Route("/api/dishes", func(r chi.Router) {
		r.Get("/", controllers.ListDishes(params.Dishes, logg))
		r.Get("/available", controllers.AvailableDishes(params.Dishes, logg))
		r.Get("/available/day/{dayOfWeek}", controllers.DishesByDayOfWeek(params.Dishes, logg))
		r.Get("/restaurant/{restaurantId}", controllers.DishesByRestaurant(params.Dishes, logg))
		r.Get("/{id}", controllers.GetDish(params.Dishes, logg))
		r.Get("/{id}/schedule", controllers.GetDishSchedule(params.Dishes, logg))

		r.Group(func(r chi.Router) {
			r.Use(protect, ownerOrAdmin)
			r.Post("/", controllers.CreateDish(params.Dishes, logg))
			r.Put("/{id}", controllers.UpdateDish(params.Dishes, logg))
			r.Delete("/{id}", controllers.DeleteDish(params.Dishes, logg))
			r.Post("/{id}/schedule", controllers.ScheduleDish(params.Dishes, logg))
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(protect, adminOnly)
		r.Get("/", controllers.ListUsers(params.UserService, logg))
		r.Post("/", controllers.CreateUser(params.UserService, logg))
		r.Get("/{id}", controllers.GetUser(params.UserService, logg))
		r.Put("/{id}", controllers.UpdateUser(params.UserService, logg))
		r.Delete("/{id}", controllers.DeleteUser(params.UserService, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(protect, adminOnly)
		r.Post("/reset-dishes", controllers.ResetDishes(params.DishResetJob, logg))
	})

	return r
}
