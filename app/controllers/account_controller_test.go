package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/middleware"
)

func newAccountController(t *testing.T) (*AccountController, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	svc := services.NewAccountService(repositories.NewUserRepository(db))
	return NewAccountController(svc), db
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const registerBody = `{
	"name": "Casey Customer",
	"email": "casey@example.com",
	"phone": "+4798765432",
	"password": "correct-horse-battery"
}`

func TestRegisterEndpoint(t *testing.T) {
	ctrl, _ := newAccountController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(registerBody))
	rec := httptest.NewRecorder()
	ctrl.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "casey@example.com", data["email"])
	assert.Equal(t, "customer", data["role"])
	// The bcrypt hash must never leak.
	_, leaked := data["password"]
	assert.False(t, leaked)
}

func TestRegisterEndpointValidation(t *testing.T) {
	ctrl, _ := newAccountController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"name": "C", "email": "not-an-email", "password": "short"}`))
	rec := httptest.NewRecorder()
	ctrl.Register(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	ctrl, _ := newAccountController(t)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(registerBody))
		rec := httptest.NewRecorder()
		ctrl.Register(rec, req)
		require.Equal(t, want, rec.Code, "attempt %d", i+1)
	}
}

func TestLoginEndpointSetsCookie(t *testing.T) {
	ctrl, _ := newAccountController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(registerBody))
	ctrl.Register(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email": "casey@example.com", "password": "correct-horse-battery"}`))
	rec := httptest.NewRecorder()
	ctrl.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var tokenCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AuthCookie {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie)
	assert.NotEmpty(t, tokenCookie.Value)
	assert.True(t, tokenCookie.HttpOnly)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	ctrl, _ := newAccountController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email": "ghost@example.com", "password": "nope"}`))
	rec := httptest.NewRecorder()
	ctrl.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpointExpiresCookie(t *testing.T) {
	ctrl, _ := newAccountController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	ctrl.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AuthCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestMeEndpoint(t *testing.T) {
	ctrl, db := newAccountController(t)

	user := models.User{Name: "Casey", Email: "casey@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&user).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = middleware.WithUser(req, user.ID, string(user.Role))
	rec := httptest.NewRecorder()
	ctrl.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "casey@example.com", data["email"])

	// No identity in context reads as unauthenticated.
	rec = httptest.NewRecorder()
	ctrl.Me(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
