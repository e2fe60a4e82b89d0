package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"guidehub/internal/models"
	"guidehub/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error
	loginToken  string
	loginErr    error
	parseIdent  service.Identity
	parseErr    error

	lastRegisterName     string
	lastRegisterPassword string
	lastLoginName        string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, name, password string) (int, error) {
	m.lastRegisterName = name
	m.lastRegisterPassword = password
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, name, password string) (string, error) {
	m.lastLoginName = name
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.lastParseToken = token
	return m.parseIdent, m.parseErr
}

type mockGuides struct {
	listResp     []models.Guide
	listErr      error
	getNameResp  *models.Guide
	getNameErr   error
	getIDResp    *models.Guide
	getIDErr     error
	createID     string
	createErr    error
	updateErr    error
	deleteErr    error

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
	lastFilter  service.GuideFilter
	lastCreated models.Guide
	lastUpdated models.Guide
	lastDeleted string
}

func (m *mockGuides) List(_ context.Context, f service.GuideFilter) ([]models.Guide, error) {
	m.listCalls++
	m.lastFilter = f
	return m.listResp, m.listErr
}

func (m *mockGuides) GetByName(_ context.Context, name string) (*models.Guide, error) {
	return m.getNameResp, m.getNameErr
}

func (m *mockGuides) GetByID(_ context.Context, id string) (*models.Guide, error) {
	return m.getIDResp, m.getIDErr
}

func (m *mockGuides) Create(_ context.Context, g models.Guide) (string, error) {
	m.createCalls++
	m.lastCreated = g
	return m.createID, m.createErr
}

func (m *mockGuides) Update(_ context.Context, g models.Guide) error {
	m.updateCalls++
	m.lastUpdated = g
	return m.updateErr
}

func (m *mockGuides) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	m.lastDeleted = id
	return m.deleteErr
}

type mockCategories struct {
	listResp  []models.Category
	listErr   error
	createID  string
	createErr error
	deleteErr error

	createCalls int
	deleteCalls int
	lastCreated models.Category
	lastDeleted string
}

func (m *mockCategories) List(_ context.Context) ([]models.Category, error) {
	return m.listResp, m.listErr
}

func (m *mockCategories) Create(_ context.Context, c models.Category) (string, error) {
	m.createCalls++
	m.lastCreated = c
	return m.createID, m.createErr
}

func (m *mockCategories) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	m.lastDeleted = id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// postForm performs a form POST, optionally carrying the token cookie.
func postForm(r *gin.Engine, path string, form url.Values, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: token})
	}
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: token})
	}
	r.ServeHTTP(w, req)
	return w
}
