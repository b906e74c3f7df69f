package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
	authService "github.com/globalhospital/portal-api/internal/service/auth"
	"github.com/globalhospital/portal-api/pkg/auth"
	"github.com/globalhospital/portal-api/pkg/logger"
	"github.com/globalhospital/portal-api/pkg/security"
)

type memoryUserRepo struct {
	byEmail map[string]*model.User
	byID    map[uuid.UUID]*model.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byEmail: make(map[string]*model.User),
		byID:    make(map[uuid.UUID]*model.User),
	}
}

func (r *memoryUserRepo) Create(_ context.Context, user *model.User) error {
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *memoryUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

type memoryTokenRepo struct {
	revoked map[string]bool
}

func (r *memoryTokenRepo) Invalidate(_ context.Context, token string, _ time.Duration) error {
	r.revoked[token] = true
	return nil
}

func (r *memoryTokenRepo) IsInvalidated(_ context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

type noopEmailService struct{}

func (noopEmailService) SendWelcome(context.Context, string, string) error { return nil }
func (noopEmailService) SendCustom(context.Context, string, string, string) error { return nil }

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService(auth.Config{Secret: "secret", RefreshSecret: "refresh"})
	svc := authService.NewService(
		newMemoryUserRepo(),
		&memoryTokenRepo{revoked: make(map[string]bool)},
		jwtSvc,
		security.NewBcryptHasher(4),
		noopEmailService{},
		logger.NewLogger(nil),
	)
	h := NewHandler(svc)

	engine := gin.New()
	h.RegisterRoutes(engine.Group(""))
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	engine.ServeHTTP(w, req)
	return w
}

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"email":     "pat@example.com",
		"password":  "password123",
		"full_name": "Pat Patient",
		"role":      "patient",
	}
}

func TestRegisterCreatesAccount(t *testing.T) {
	engine := setupTest(t)

	w := postJSON(t, engine, "/auth/register", registerPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data model.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.RolePatient, resp.Data.Role)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	engine := setupTest(t)

	require.Equal(t, http.StatusCreated, postJSON(t, engine, "/auth/register", registerPayload()).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, engine, "/auth/register", registerPayload()).Code)
}

func TestRegisterRejectsBadRole(t *testing.T) {
	engine := setupTest(t)

	payload := registerPayload()
	payload["role"] = "superuser"
	assert.Equal(t, http.StatusBadRequest, postJSON(t, engine, "/auth/register", payload).Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	engine := setupTest(t)

	payload := registerPayload()
	payload["password"] = "short"
	assert.Equal(t, http.StatusBadRequest, postJSON(t, engine, "/auth/register", payload).Code)
}

func TestLoginReturnsTokens(t *testing.T) {
	engine := setupTest(t)
	require.Equal(t, http.StatusCreated, postJSON(t, engine, "/auth/register", registerPayload()).Code)

	w := postJSON(t, engine, "/auth/login", map[string]interface{}{
		"email":    "pat@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.NotEmpty(t, resp.Data.RefreshToken)
	assert.Equal(t, "pat@example.com", resp.Data.Profile.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	engine := setupTest(t)
	require.Equal(t, http.StatusCreated, postJSON(t, engine, "/auth/register", registerPayload()).Code)

	w := postJSON(t, engine, "/auth/login", map[string]interface{}{
		"email":    "pat@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotatesTokens(t *testing.T) {
	engine := setupTest(t)
	require.Equal(t, http.StatusCreated, postJSON(t, engine, "/auth/register", registerPayload()).Code)

	login := postJSON(t, engine, "/auth/login", map[string]interface{}{
		"email":    "pat@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, login.Code)

	var resp struct {
		Data model.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &resp))

	w := postJSON(t, engine, "/auth/refresh", map[string]interface{}{
		"refresh_token": resp.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	engine := setupTest(t)

	w := postJSON(t, engine, "/auth/refresh", map[string]interface{}{
		"refresh_token": "garbage",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
