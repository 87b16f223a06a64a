package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sorawitt/account-svc/internal/domain"
	"github.com/Sorawitt/account-svc/internal/dto"
	"github.com/Sorawitt/account-svc/internal/helper"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	listOut  []dto.AccountResponse
	loginOut *domain.Account
	msg      string
	err      error
}

func (s *stubService) List() ([]dto.AccountResponse, error)         { return s.listOut, s.err }
func (s *stubService) Register(dto.RegisterRequest) (string, error) { return s.msg, s.err }
func (s *stubService) Verify(dto.VerifyRequest) error               { return s.err }
func (s *stubService) Login(dto.LoginRequest) (*domain.Account, error) {
	return s.loginOut, s.err
}
func (s *stubService) Update(dto.UpdateRequest) (string, error) { return s.msg, s.err }
func (s *stubService) Delete(dto.DeleteRequest) (string, error) { return s.msg, s.err }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(svc *stubService) (*fiber.App, helper.Auth) {
	auth := helper.SetupAuth("test-secret", time.Hour)
	app := fiber.New()
	NewAccountHandler(svc, auth).SetupRoutes(app)
	return app, auth
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp, env
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubService
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "success",
			svc:        &stubService{msg: "OTP sent to a@x.com"},
			wantStatus: http.StatusOK,
			wantMsg:    "OTP sent to a@x.com",
		},
		{
			name:       "missing fields",
			svc:        &stubService{err: domain.ErrMissingFields},
			wantStatus: http.StatusForbidden,
			wantMsg:    "All fields are required",
		},
		{
			name:       "already registered",
			svc:        &stubService{err: domain.ErrAlreadyRegistered},
			wantStatus: http.StatusConflict,
			wantMsg:    "Account is already registered",
		},
		{
			name:       "invalid role",
			svc:        &stubService{err: domain.ErrInvalidRole},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid role",
		},
		{
			name:       "company path",
			svc:        &stubService{err: domain.ErrNotImplemented},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Coming soon..",
		},
		{
			name:       "store fault is masked",
			svc:        &stubService{err: assert.AnError},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(tt.svc)

			resp, env := doJSON(t, app, http.MethodPost, "/api/accounts/",
				dto.RegisterRequest{Role: "user", Email: "a@x.com", Password: "pw"}, "")

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantStatus == http.StatusOK, env.Success)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	acc := &domain.Account{
		ID:     uuid.New(),
		Email:  "a@x.com",
		Role:   domain.RoleUser,
		Status: domain.StatusActive,
		// never serialized outward
		PasswordHash: "$2a$10$secretsecretsecretsecret",
	}

	t.Run("success returns token and redacted account", func(t *testing.T) {
		app, auth := newTestApp(&stubService{loginOut: acc})

		resp, env := doJSON(t, app, http.MethodPost, "/api/accounts/login",
			dto.LoginRequest{Email: "a@x.com", Password: "pw"}, "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, env.Success)
		assert.Equal(t, "Login successful", env.Message)

		var out dto.LoginResponse
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, acc.ID.String(), out.Account.ID)
		assert.Equal(t, "a@x.com", out.Account.Email)
		assert.NotContains(t, string(env.Data), "secretsecret")

		claims, err := auth.VerifyToken(out.Token)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, claims.AccountID)
		assert.Equal(t, string(domain.RoleUser), claims.Role)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		app, _ := newTestApp(&stubService{err: domain.ErrInvalidCredentials})

		resp, env := doJSON(t, app, http.MethodPost, "/api/accounts/login",
			dto.LoginRequest{Email: "a@x.com", Password: "bad"}, "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Incorrect email or password", env.Message)
	})

	t.Run("not verified", func(t *testing.T) {
		app, _ := newTestApp(&stubService{err: domain.ErrNotVerified})

		resp, env := doJSON(t, app, http.MethodPost, "/api/accounts/login",
			dto.LoginRequest{Email: "a@x.com", Password: "pw"}, "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Account not verified", env.Message)
	})
}

func TestVerifyHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app, _ := newTestApp(&stubService{})

		resp, env := doJSON(t, app, http.MethodPost, "/api/accounts/verify",
			dto.VerifyRequest{Email: "a@x.com", OTP: "123456"}, "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Account verified successfully", env.Message)
	})

	t.Run("bad code", func(t *testing.T) {
		app, _ := newTestApp(&stubService{err: domain.ErrInvalidOTP})

		resp, env := doJSON(t, app, http.MethodPost, "/api/accounts/verify",
			dto.VerifyRequest{Email: "a@x.com", OTP: "000000"}, "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid or expired OTP", env.Message)
	})

	t.Run("already verified", func(t *testing.T) {
		app, _ := newTestApp(&stubService{err: domain.ErrAlreadyVerified})

		resp, _ := doJSON(t, app, http.MethodPost, "/api/accounts/verify",
			dto.VerifyRequest{Email: "a@x.com", OTP: "123456"}, "")

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestListHandler(t *testing.T) {
	accounts := []dto.AccountResponse{
		{ID: uuid.NewString(), Email: "a@x.com", Role: "user", Status: "active"},
		{ID: uuid.NewString(), Email: "b@x.com", Role: "user", Status: "pending"},
	}

	t.Run("requires auth", func(t *testing.T) {
		app, _ := newTestApp(&stubService{listOut: accounts})

		req := httptest.NewRequest(http.MethodGet, "/api/accounts/", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("returns accounts", func(t *testing.T) {
		app, auth := newTestApp(&stubService{listOut: accounts})
		token, err := auth.GenerateToken(uuid.New(), domain.RoleUser)
		require.NoError(t, err)

		resp, env := doJSON(t, app, http.MethodGet, "/api/accounts/", nil, token)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out []dto.AccountResponse
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Len(t, out, 2)
	})
}

func TestUpdateHandler(t *testing.T) {
	app, auth := newTestApp(&stubService{msg: "new@x.com updated"})
	token, err := auth.GenerateToken(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	resp, env := doJSON(t, app, http.MethodPatch, "/api/accounts/",
		dto.UpdateRequest{Role: "user", ID: uuid.NewString(), Email: "new@x.com"}, token)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "new@x.com updated", env.Message)

	t.Run("status mapping", func(t *testing.T) {
		tests := []struct {
			err        error
			wantStatus int
		}{
			{domain.ErrNotImplemented, http.StatusForbidden},
			{domain.ErrInvalidRole, http.StatusForbidden},
			{domain.ErrMissingFields, http.StatusForbidden},
			{domain.ErrNotVerified, http.StatusForbidden},
			{domain.ErrNotFound, http.StatusBadRequest},
			{domain.ErrDuplicateEmail, http.StatusConflict},
		}
		for _, tt := range tests {
			app, auth := newTestApp(&stubService{err: tt.err})
			token, err := auth.GenerateToken(uuid.New(), domain.RoleUser)
			require.NoError(t, err)

			resp, env := doJSON(t, app, http.MethodPatch, "/api/accounts/",
				dto.UpdateRequest{Role: "user", ID: uuid.NewString(), Email: "x@x.com"}, token)

			assert.Equal(t, tt.wantStatus, resp.StatusCode, tt.err.Error())
			assert.Equal(t, tt.err.Error(), env.Message)
		}
	})
}

func TestDeleteHandler(t *testing.T) {
	id := uuid.NewString()
	app, auth := newTestApp(&stubService{msg: "Account a@x.com with Id " + id + " deleted"})
	token, err := auth.GenerateToken(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	resp, env := doJSON(t, app, http.MethodDelete, "/api/accounts/",
		dto.DeleteRequest{ID: id}, token)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, env.Message, "deleted")

	t.Run("missing id", func(t *testing.T) {
		app, auth := newTestApp(&stubService{err: domain.ErrMissingID})
		token, err := auth.GenerateToken(uuid.New(), domain.RoleUser)
		require.NoError(t, err)

		resp, env := doJSON(t, app, http.MethodDelete, "/api/accounts/", dto.DeleteRequest{}, token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Account Id required", env.Message)
	})

	t.Run("not found", func(t *testing.T) {
		app, auth := newTestApp(&stubService{err: domain.ErrNotFound})
		token, err := auth.GenerateToken(uuid.New(), domain.RoleUser)
		require.NoError(t, err)

		resp, _ := doJSON(t, app, http.MethodDelete, "/api/accounts/", dto.DeleteRequest{ID: uuid.NewString()}, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
