package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/tablemaps/tablemaps-backend/internal/auth"
	"github.com/tablemaps/tablemaps-backend/internal/cron"
	dishsvc "github.com/tablemaps/tablemaps-backend/internal/dishes"
	restaurantsvc "github.com/tablemaps/tablemaps-backend/internal/restaurants"
	usersvc "github.com/tablemaps/tablemaps-backend/internal/users"
	pkgAuth "github.com/tablemaps/tablemaps-backend/pkg/auth"
	"github.com/tablemaps/tablemaps-backend/pkg/config"
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
	"github.com/tablemaps/tablemaps-backend/pkg/logger"
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
	return &authsvc.AuthResponse{Token: "t"}, nil
}

func (stubAuthService) Login(context.Context, authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
	return &authsvc.AuthResponse{Token: "t"}, nil
}

func (stubAuthService) Me(context.Context, uuid.UUID) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{Name: "Jean"}, nil
}

func (stubAuthService) UpdateDetails(context.Context, uuid.UUID, authsvc.UpdateDetailsRequest) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{}, nil
}

func (stubAuthService) UpdatePassword(context.Context, uuid.UUID, authsvc.UpdatePasswordRequest) (*authsvc.AuthResponse, error) {
	return &authsvc.AuthResponse{Token: "t"}, nil
}

type stubUserService struct{}

func (stubUserService) List(context.Context, url.Values) (*usersvc.ListResult, error) {
	return &usersvc.ListResult{Items: []usersvc.UserDTO{}}, nil
}

func (stubUserService) Get(context.Context, uuid.UUID) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{}, nil
}

func (stubUserService) Create(context.Context, usersvc.CreateUserInput) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{}, nil
}

func (stubUserService) Update(context.Context, uuid.UUID, usersvc.UpdateUserInput) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{}, nil
}

func (stubUserService) Delete(context.Context, uuid.UUID) error { return nil }

type stubRestaurantService struct{}

func (stubRestaurantService) List(context.Context, url.Values) (*restaurantsvc.ListResult, error) {
	return &restaurantsvc.ListResult{Items: []restaurantsvc.RestaurantDTO{}}, nil
}

func (stubRestaurantService) Get(context.Context, uuid.UUID) (*restaurantsvc.RestaurantDTO, error) {
	return &restaurantsvc.RestaurantDTO{}, nil
}

func (stubRestaurantService) Create(context.Context, restaurantsvc.Actor, restaurantsvc.CreateRestaurantInput) (*restaurantsvc.RestaurantDTO, error) {
	return &restaurantsvc.RestaurantDTO{}, nil
}

func (stubRestaurantService) Update(context.Context, restaurantsvc.Actor, uuid.UUID, restaurantsvc.UpdateRestaurantInput) (*restaurantsvc.RestaurantDTO, error) {
	return &restaurantsvc.RestaurantDTO{}, nil
}

func (stubRestaurantService) Delete(context.Context, restaurantsvc.Actor, uuid.UUID) error {
	return nil
}

func (stubRestaurantService) Nearby(context.Context, string, string) ([]restaurantsvc.RestaurantDTO, error) {
	return nil, nil
}

type stubDishService struct{}

func (stubDishService) List(context.Context, url.Values) (*dishsvc.ListResult, error) {
	return &dishsvc.ListResult{Items: []dishsvc.DishDTO{}}, nil
}

func (stubDishService) Get(context.Context, uuid.UUID) (*dishsvc.DishDTO, error) {
	return &dishsvc.DishDTO{}, nil
}

func (stubDishService) Create(context.Context, dishsvc.Actor, dishsvc.CreateDishInput) (*dishsvc.DishDTO, error) {
	return &dishsvc.DishDTO{}, nil
}

func (stubDishService) Update(context.Context, dishsvc.Actor, uuid.UUID, dishsvc.UpdateDishInput) (*dishsvc.DishDTO, error) {
	return &dishsvc.DishDTO{}, nil
}

func (stubDishService) Delete(context.Context, dishsvc.Actor, uuid.UUID) error { return nil }

func (stubDishService) ByRestaurant(context.Context, uuid.UUID) ([]dishsvc.DishDTO, error) {
	return nil, nil
}

func (stubDishService) AvailableToday(context.Context) ([]dishsvc.DishDTO, error) { return nil, nil }

func (stubDishService) AvailableByWeekday(context.Context, string) ([]dishsvc.DishDTO, error) {
	return nil, nil
}

func (stubDishService) Schedule(context.Context, uuid.UUID) (*dishsvc.DishScheduleDTO, error) {
	return &dishsvc.DishScheduleDTO{}, nil
}

func (stubDishService) ReplaceSchedule(context.Context, dishsvc.Actor, uuid.UUID, []dishsvc.ScheduleEntryInput) (*dishsvc.DishScheduleDTO, error) {
	return &dishsvc.DishScheduleDTO{}, nil
}

type stubResetRepo struct{}

func (stubResetRepo) MarkUnavailableBetween(context.Context, time.Time, time.Time) (int64, error) {
	return 3, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "tablemaps-test"
	cfg.JWT.ExpirationMinutes = 60
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	return cfg
}

func newTestServer(t *testing.T) (*httptest.Server, *config.Config) {
	t.Helper()
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "router-test"})

	job, err := cron.NewDishResetJob(cron.DishResetJobParams{
		Logger:     logg,
		Repository: stubResetRepo{},
	})
	if err != nil {
		t.Fatalf("NewDishResetJob: %v", err)
	}

	handler := NewRouter(RouterParams{
		Config:       cfg,
		Logger:       logg,
		AuthService:  stubAuthService{},
		UserService:  stubUserService{},
		Restaurants:  stubRestaurantService{},
		Dishes:       stubDishService{},
		DishResetJob: job,
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, cfg
}

func mintToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func decodeError(t *testing.T, body io.Reader) types.ErrorEnvelope {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope
}

func TestUnknownRouteReturnsFrenchNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/nothing-here")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	envelope := decodeError(t, resp.Body)
	if envelope.Success || envelope.Error != "Route non trouvée" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	server, _ := newTestServer(t)

	for _, path := range []string{"/api/restaurants", "/api/dishes", "/api/dishes/available", "/health/live"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/users")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	envelope := decodeError(t, resp.Body)
	if envelope.Error != "Non autorisé à accéder à cette route" {
		t.Fatalf("unexpected message: %q", envelope.Error)
	}
}

func TestAdminRoutesRejectNonAdminRole(t *testing.T) {
	server, cfg := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleUser))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	envelope := decodeError(t, resp.Body)
	if !strings.Contains(envelope.Error, "user") {
		t.Fatalf("message should name the role: %q", envelope.Error)
	}
}

func TestAdminRoutesAcceptAdminToken(t *testing.T) {
	server, cfg := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/admin/reset-dishes", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleAdmin))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestManualResetRespondsWithFlatBody(t *testing.T) {
	server, cfg := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/admin/reset-dishes", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleAdmin))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body["success"])
	}
	if body["message"] != "Réinitialisation quotidienne effectuée avec succès" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if body["modifiedCount"] != float64(3) {
		t.Fatalf("expected modifiedCount 3, got %v", body["modifiedCount"])
	}
	if _, ok := body["data"]; ok {
		t.Fatalf("reset response should not nest fields under data: %v", body["data"])
	}
}

func TestCookieTokenIsAccepted(t *testing.T) {
	server, cfg := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: mintToken(t, cfg, enums.UserRoleUser)})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
