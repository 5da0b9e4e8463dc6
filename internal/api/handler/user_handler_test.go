package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/classpoint/horarios-api/internal/core/domain"
	"github.com/classpoint/horarios-api/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, caller domain.Identity, id string, input ports.UserUpdateInput) (*domain.User, error)
	deleteFn func(ctx context.Context, caller domain.Identity, id string) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, caller domain.Identity, id string, input ports.UserUpdateInput) (*domain.User, error) {
	return s.updateFn(ctx, caller, id, input)
}

func (s *stubUserService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func TestUserHandler_List_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "u1", Email: "a@example.com", Role: "admin"},
				{ID: "u2", Email: "b@example.com", Role: "user"},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1", "admin")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
	if _, leaked := resp[0]["password_hash"]; leaked {
		t.Fatalf("password hash leaked: %+v", resp[0])
	}
}

func TestUserHandler_Update_RoleChangeForbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, caller domain.Identity, id string, input ports.UserUpdateInput) (*domain.User, error) {
			return nil, domain.ErrInsufficientRole
		},
	}
	handler := NewUserHandler(stub)

	req := jsonRequest(http.MethodPut, "/v1/users/u1", `{"role":"admin"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1", "user")
	c.SetParamNames("id")
	c.SetParamValues("u1")

	_ = handler.Update(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUserHandler_Update_InvalidRoleRejected(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, caller domain.Identity, id string, input ports.UserUpdateInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	req := jsonRequest(http.MethodPut, "/v1/users/u1", `{"role":"superuser"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1", "admin")
	c.SetParamNames("id")
	c.SetParamValues("u1")

	_ = handler.Update(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Update_SelfProfile(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, caller domain.Identity, id string, input ports.UserUpdateInput) (*domain.User, error) {
			if caller.UserID != "u1" || id != "u1" {
				t.Fatalf("unexpected caller/id: %+v %s", caller, id)
			}
			if input.Email == nil || *input.Email != "new@example.com" {
				t.Fatalf("expected email change, got %+v", input)
			}
			return &domain.User{ID: "u1", Email: *input.Email, Role: "user"}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := jsonRequest(http.MethodPut, "/v1/users/u1", `{"email":"new@example.com"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1", "user")
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, caller domain.Identity, id string) error {
			return domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/ghost", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1", "admin")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	_ = handler.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
