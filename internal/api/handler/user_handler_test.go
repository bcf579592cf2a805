package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/user-api/internal/api/middleware"
	"github.com/identitylab/user-api/internal/core/domain"
	"github.com/identitylab/user-api/internal/core/ports"
)

type stubUserService struct {
	createAdminFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	getFn         func(ctx context.Context, id string) (*domain.User, error)
	updateFn      func(ctx context.Context, actor *domain.User, id string, update ports.UserUpdate) (*domain.User, error)
	deleteFn      func(ctx context.Context, id string) error
	listFn        func(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error)
}

func (s *stubUserService) CreateAdmin(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.createAdminFn(ctx, in)
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateUser(ctx context.Context, actor *domain.User, id string, update ports.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, update)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.listFn(ctx, filter)
}

func authedContext(e *echo.Echo, method, path, body string, actor *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.UserContextKey, actor)
	}
	return c, rec
}

func TestUserHandler_CreateAdmin_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createAdminFn: func(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
			return &domain.User{ID: "u9", Email: in.Email, Name: in.Name, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := authedContext(e, http.MethodPost, "/users",
		`{"email":"root@x.com","name":"Root","password":"secret1","password_confirmation":"secret1"}`,
		&domain.User{ID: "admin", Role: domain.RoleAdmin})

	if err := h.CreateAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user := resp["user"].(map[string]any)
	if user["role"] != "admin" {
		t.Fatalf("expected admin role, got %v", user["role"])
	}
}

func TestUserHandler_Get_NotFoundPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := authedContext(e, http.MethodGet, "/users/missing", "", &domain.User{ID: "admin", Role: domain.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Update_PassesActorAndTarget(t *testing.T) {
	e := newTestEcho()
	actor := &domain.User{ID: "u1", Role: domain.RoleUser}
	stub := &stubUserService{
		updateFn: func(ctx context.Context, gotActor *domain.User, id string, update ports.UserUpdate) (*domain.User, error) {
			if gotActor.ID != "u1" {
				t.Fatalf("expected actor u1, got %s", gotActor.ID)
			}
			if id != "u1" {
				t.Fatalf("expected target u1, got %s", id)
			}
			if update.Name == nil || *update.Name != "New Name" {
				t.Fatalf("unexpected update: %+v", update)
			}
			return &domain.User{ID: id, Name: *update.Name, Role: domain.RoleUser}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := authedContext(e, http.MethodPatch, "/users/u1", `{"name":"New Name"}`, actor)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_ForbiddenPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, actor *domain.User, id string, update ports.UserUpdate) (*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewUserHandler(stub)

	c, _ := authedContext(e, http.MethodPatch, "/users/u2", `{"name":"X"}`, &domain.User{ID: "u1", Role: domain.RoleUser})
	c.SetParamNames("id")
	c.SetParamValues("u2")

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_Update_MissingIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, actor *domain.User, id string, update ports.UserUpdate) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := authedContext(e, http.MethodPatch, "/users/u1", `{"name":"X"}`, nil)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := authedContext(e, http.MethodDelete, "/users/u1", "", &domain.User{ID: "admin", Role: domain.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "u1" {
		t.Fatalf("expected delete of u1, got %q", deleted)
	}
}

func TestUserHandler_List_FilterAndEmptyResult(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
			if filter.Role != "admin" || filter.Limit != 10 {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := authedContext(e, http.MethodGet, "/users?role=admin&limit=10", "", &domain.User{ID: "admin", Role: domain.RoleAdmin})

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := strings.TrimSpace(rec.Body.String())
	if strings.Contains(body, `"users":null`) {
		t.Fatalf("empty result must marshal as [], got %s", body)
	}
}

func TestUserHandler_List_RejectsUnknownRoleFilter(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := authedContext(e, http.MethodGet, "/users?role=superuser", "", &domain.User{ID: "admin", Role: domain.RoleAdmin})

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}
