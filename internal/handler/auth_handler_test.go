package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedblog/internal/apperr"
	"feedblog/internal/config"
	"feedblog/internal/middleware"
	"feedblog/internal/models"
	"feedblog/internal/service"
)

func newTestHandlers() (*Handlers, *MockAuthService, *MockFeedService) {
	auth := new(MockAuthService)
	feed := new(MockFeedService)
	h := &Handlers{
		Auth: auth,
		Feed: feed,
		Cfg:  &config.Config{MaxUploadSize: 10 << 20},
	}
	return h, auth, feed
}

func authenticated(r *http.Request, userID string) *http.Request {
	ctx := middleware.WithIdentity(r.Context(), &service.Identity{UserID: userID})
	return r.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestSignup(t *testing.T) {
	h, auth, _ := newTestHandlers()

	auth.On("Signup", mock.Anything, mock.Anything).
		Return(&models.User{UserID: "user-123", Email: "ann@example.com"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/auth/signup",
		strings.NewReader(`{"email":"ann@example.com","password":"secret","name":"Ann"}`))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp SignupResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "User created.", resp.Message)
	assert.Equal(t, "user-123", resp.UserID)
}

func TestSignup_ValidationError(t *testing.T) {
	h, auth, _ := newTestHandlers()

	auth.On("Signup", mock.Anything, mock.Anything).
		Return(nil, apperr.Validation("Email, password or name is invalid.", []apperr.FieldError{
			{Field: "email", Message: "Please enter a valid email."},
			{Field: "password", Message: "Password must be at least 5 characters long."},
		}))

	req := httptest.NewRequest(http.MethodPut, "/auth/signup",
		strings.NewReader(`{"email":"bad","password":"x","name":"Ann"}`))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "email", resp.Errors[0].Field)
	assert.Equal(t, "password", resp.Errors[1].Field)
}

func TestSignup_MalformedBody(t *testing.T) {
	h, auth, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodPut, "/auth/signup", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	auth.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	h, auth, _ := newTestHandlers()

	auth.On("Login", mock.Anything, mock.Anything).Return("signed.jwt.token", "user-123", nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ann@example.com","password":"secret"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "user-123", resp.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, auth, _ := newTestHandlers()

	auth.On("Login", mock.Anything, mock.Anything).
		Return("", "", apperr.New(apperr.Unauthenticated, "wrong email or password"))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ann@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "wrong email or password", resp.Message)
}

func TestGetStatus(t *testing.T) {
	h, auth, _ := newTestHandlers()

	auth.On("GetStatus", mock.Anything, "user-123").Return("I am new!", nil)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/auth/status", nil), "user-123")
	rec := httptest.NewRecorder()

	h.GetStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "I am new!", resp.Status)
}

func TestGetStatus_Unauthenticated(t *testing.T) {
	h, auth, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	rec := httptest.NewRecorder()

	h.GetStatus(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	auth.AssertNotCalled(t, "GetStatus", mock.Anything, mock.Anything)
}

func TestUpdateStatus(t *testing.T) {
	h, auth, _ := newTestHandlers()

	auth.On("UpdateStatus", mock.Anything, "user-123", mock.Anything).Return("Shipping it", nil)

	req := authenticated(httptest.NewRequest(http.MethodPatch, "/auth/status",
		strings.NewReader(`{"status":"Shipping it"}`)), "user-123")
	rec := httptest.NewRecorder()

	h.UpdateStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Status updated.", resp.Message)
	assert.Equal(t, "Shipping it", resp.Status)
}
