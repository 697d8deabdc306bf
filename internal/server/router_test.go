package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"compliance-hub/internal/config"
	"compliance-hub/internal/handlers"
	"compliance-hub/internal/metrics"
	"compliance-hub/internal/models"
	"compliance-hub/internal/rbac"
	"compliance-hub/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := testutil.Config()
	for _, m := range mutate {
		m(cfg)
	}
	db := testutil.NewDB(t)
	enf, err := rbac.NewEnforcer()
	require.NoError(t, err)

	app := handlers.NewApp(db, enf, metrics.New(), testutil.Logger())
	r, err := NewRouter(cfg, app)
	require.NoError(t, err)

	return &testServer{t: t, db: db, router: r}
}

func (s *testServer) do(method, path string, body []byte, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	req.RemoteAddr = "198.51.100.7:5555"
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return s.do(http.MethodGet, path, nil, "", cookie)
}

func (s *testServer) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, path, []byte(form.Encode()), "application/x-www-form-urlencoded", cookie)
}

func (s *testServer) postJSON(path string, payload any, cookie *http.Cookie) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(s.t, err)
	return s.do(http.MethodPost, path, body, "application/json", cookie)
}

func (s *testServer) login(username, password string) *http.Cookie {
	s.t.Helper()
	w := s.postForm("/login", url.Values{"username": {username}, "password": {password}}, nil)
	require.Equal(s.t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(s.t, "/dashboard", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName {
			return c
		}
	}
	s.t.Fatal("login did not set a session cookie")
	return nil
}

// assessorWithOrg creates an assessor owning an organization and logs them in.
func (s *testServer) assessorWithOrg(username string) (models.User, *http.Cookie) {
	s.t.Helper()
	u := testutil.CreateUser(s.t, s.db, username, "secret1", models.RoleAssessor)
	testutil.CreateOrganization(s.t, s.db, u.ID, username+" Ltd")
	return u, s.login(username, "secret1")
}

func (s *testServer) controlID(framework, code string) uint {
	return testutil.Control(s.t, s.db, framework, code).ID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type created struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Results int    `json:"results"`
}

type reportBody struct {
	StatusCounts        map[string]int `json:"status_counts"`
	RiskCounts          map[string]int `json:"risk_counts"`
	FrameworkCompliance struct {
		ISO27001 float64 `json:"iso27001"`
		PCIDSS   float64 `json:"pcidss"`
	} `json:"framework_compliance"`
	OverallCompliance float64 `json:"overall_compliance"`
	DetailedResults   []struct {
		ControlID      string `json:"control_id"`
		Framework      string `json:"framework"`
		Status         string `json:"status"`
		RiskLevel      string `json:"risk_level"`
		ActionRequired string `json:"action_required"`
	} `json:"detailed_results"`
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "66.67%", percent(200.0/3))
	assert.Equal(t, "0.00%", percent(0))
}

func TestHealthAndPublicPages(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	for _, path := range []string{"/", "/login", "/register"} {
		w := s.get(path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "Compliance Hub", path)
	}

	w = s.get("/static/app.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/dashboard", "/controls", "/assessments", "/assessments/1", "/audit"} {
		w := s.get(path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestAPIRejectsAnonymousWithJSON(t *testing.T) {
	s := newTestServer(t)

	for _, w := range []*httptest.ResponseRecorder{
		s.get("/api/assessments/1", nil),
		s.get("/api/mappings", nil),
		s.postJSON("/api/assessments", map[string]any{"entries": []any{}}, nil),
	} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
		assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
	}
}

func TestRegisterLoginAndOrganization(t *testing.T) {
	s := newTestServer(t)

	w := s.postForm("/register", url.Values{"username": {"alice"}, "password": {"wonderland"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	var alice models.User
	require.NoError(t, s.db.Where("username = ?", "alice").First(&alice).Error)
	assert.Equal(t, models.RoleAssessor, alice.Role)

	w = s.postForm("/register", url.Values{"username": {"alice"}, "password": {"wonderland"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")

	w = s.postForm("/register", url.Values{"username": {"mallory"}, "password": {"password1"}, "role": {"admin"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong-password"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	cookie := s.login("alice", "wonderland")

	w = s.get("/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You do not have an organization yet")

	w = s.postForm("/organization", url.Values{"name": {"Wonder Corp"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	w = s.postForm("/organization", url.Values{"name": {"Second Corp"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var orgs int64
	require.NoError(t, s.db.Model(&models.Organization{}).Where("owner_id = ?", alice.ID).Count(&orgs).Error)
	assert.EqualValues(t, 1, orgs)

	w = s.get("/dashboard", cookie)
	assert.Contains(t, w.Body.String(), "Wonder Corp")

	w = s.get("/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSubmitJSONAndReport(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.assessorWithOrg("bob")

	w := s.postJSON("/api/assessments", map[string]any{
		"title": "Payments baseline",
		"entries": []map[string]any{
			{"control_id": s.controlID(models.FrameworkISO27001, "A.5.1"), "status": "compliant", "risk_level": "low"},
			{"control_id": s.controlID(models.FrameworkISO27001, "A.8.5"), "status": "non_compliant", "risk_level": "high", "action_required": "Enforce MFA"},
			{"control_id": s.controlID(models.FrameworkPCIDSS, "12.1.1"), "status": "compliant"},
		},
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c := decode[created](t, w)
	assert.Equal(t, "Payments baseline", c.Title)
	assert.Equal(t, 3, c.Results)

	w = s.get(fmt.Sprintf("/api/assessments/%d", c.ID), cookie)
	require.Equal(t, http.StatusOK, w.Code)
	rep := decode[reportBody](t, w)

	assert.Equal(t, map[string]int{"compliant": 2, "partially_compliant": 0, "non_compliant": 1}, rep.StatusCounts)
	assert.Equal(t, map[string]int{"high": 1, "medium": 1, "low": 1}, rep.RiskCounts)
	assert.Equal(t, 50.0, rep.FrameworkCompliance.ISO27001)
	assert.Equal(t, 100.0, rep.FrameworkCompliance.PCIDSS)
	assert.InDelta(t, 66.67, rep.OverallCompliance, 0.01)
	require.Len(t, rep.DetailedResults, 3)
	assert.Equal(t, "A.8.5", rep.DetailedResults[1].ControlID)
	assert.Equal(t, "Enforce MFA", rep.DetailedResults[1].ActionRequired)

	w = s.get(fmt.Sprintf("/assessments/%d", c.ID), cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payments baseline")
	assert.Contains(t, w.Body.String(), "66.67%")

	w = s.get(fmt.Sprintf("/assessments/%d/report.pdf", c.ID), cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), fmt.Sprintf("assessment-%d.pdf", c.ID))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = s.get("/assessments", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payments baseline")
}

func TestSubmitJSONValidation(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.assessorWithOrg("carol")
	ctrl := s.controlID(models.FrameworkISO27001, "A.5.1")

	tests := []struct {
		name    string
		payload map[string]any
		wantErr string
	}{
		{"no entries", map[string]any{"entries": []any{}}, "Assess at least one control"},
		{"bad status", map[string]any{"entries": []map[string]any{{"control_id": ctrl, "status": "done"}}}, "Unknown compliance status"},
		{"bad risk", map[string]any{"entries": []map[string]any{{"control_id": ctrl, "status": "compliant", "risk_level": "extreme"}}}, "Unknown risk level"},
		{"unknown control", map[string]any{"entries": []map[string]any{{"control_id": 424242, "status": "compliant"}}}, "Unknown control"},
		{"duplicate", map[string]any{"entries": []map[string]any{
			{"control_id": ctrl, "status": "compliant"},
			{"control_id": ctrl, "status": "non_compliant"},
		}}, "more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.postJSON("/api/assessments", tt.payload, cookie)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantErr)
		})
	}

	w := s.do(http.MethodPost, "/api/assessments", []byte("{not json"), "application/json", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, s.db.Model(&models.Assessment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitWithoutOrganization(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "dave", "secret1", models.RoleAssessor)
	cookie := s.login("dave", "secret1")

	w := s.postJSON("/api/assessments", map[string]any{
		"entries": []map[string]any{{"control_id": s.controlID(models.FrameworkPCIDSS, "8.3.1"), "status": "compliant"}},
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Create your organization")

	w = s.get("/assessments/new", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitForm(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.assessorWithOrg("erin")

	iso := s.controlID(models.FrameworkISO27001, "A.8.15")
	pci := s.controlID(models.FrameworkPCIDSS, "10.2.1")
	skipped := s.controlID(models.FrameworkPCIDSS, "1.2.1")

	w := s.get("/assessments/new", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`name="control_%d"`, iso))

	form := url.Values{
		"title":                             {"Logging review"},
		fmt.Sprintf("control_%d", iso):     {"partially_compliant"},
		fmt.Sprintf("risk_%d", iso):        {"high"},
		fmt.Sprintf("control_%d", pci):     {"compliant"},
		fmt.Sprintf("control_%d", skipped): {""},
	}
	w = s.postForm("/assessments", form, cookie)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/assessments/"))

	w = s.get("/api"+location, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	rep := decode[reportBody](t, w)
	require.Len(t, rep.DetailedResults, 2)
	assert.Equal(t, 0.0, rep.FrameworkCompliance.ISO27001)
	assert.Equal(t, 100.0, rep.FrameworkCompliance.PCIDSS)
	assert.Equal(t, 50.0, rep.OverallCompliance)
	assert.Equal(t, 1, rep.RiskCounts["high"])
	assert.Equal(t, 1, rep.RiskCounts["medium"])

	w = s.postForm("/assessments", url.Values{"title": {"Nothing"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Assess at least one control")
}

func TestRejectedFormKeepsAnswers(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.assessorWithOrg("judy")

	good := s.controlID(models.FrameworkISO27001, "A.5.15")
	bad := s.controlID(models.FrameworkPCIDSS, "3.5.1")

	form := url.Values{
		"title":                          {"Access review"},
		fmt.Sprintf("control_%d", good):  {"partially_compliant"},
		fmt.Sprintf("risk_%d", good):     {"low"},
		fmt.Sprintf("evidence_%d", good): {"IAM export"},
		fmt.Sprintf("control_%d", bad):   {"compliant"},
		fmt.Sprintf("risk_%d", bad):      {"extreme"},
		fmt.Sprintf("action_%d", bad):    {"Rotate keys"},
	}
	w := s.postForm("/assessments", form, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "Unknown risk level")
	assert.Contains(t, body, `value="Access review"`)
	assert.Contains(t, body, `<option value="partially_compliant" selected>`)
	assert.Contains(t, body, `<option value="compliant" selected>`)
	assert.Contains(t, body, `<option value="low" selected>`)
	assert.Contains(t, body, "IAM export</textarea>")
	assert.Contains(t, body, "Rotate keys</textarea>")

	var count int64
	require.NoError(t, s.db.Model(&models.Assessment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReportAccessControl(t *testing.T) {
	s := newTestServer(t)
	_, owner := s.assessorWithOrg("frank")
	_, other := s.assessorWithOrg("grace")

	w := s.postJSON("/api/assessments", map[string]any{
		"entries": []map[string]any{{"control_id": s.controlID(models.FrameworkISO27001, "A.5.1"), "status": "compliant"}},
	}, owner)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[created](t, w).ID
	path := fmt.Sprintf("/api/assessments/%d", id)

	assert.Equal(t, http.StatusOK, s.get(path, owner).Code)
	assert.Equal(t, http.StatusNotFound, s.get(path, other).Code)
	assert.Equal(t, http.StatusNotFound, s.get(fmt.Sprintf("/assessments/%d/report.pdf", id), other).Code)

	admin := s.login(testutil.AdminUsername, testutil.AdminPassword)
	assert.Equal(t, http.StatusOK, s.get(path, admin).Code)

	assert.Equal(t, http.StatusNotFound, s.get("/api/assessments/999999", owner).Code)
	assert.Equal(t, http.StatusBadRequest, s.get("/api/assessments/abc", owner).Code)
}

func TestViewerPermissions(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "victor", "secret1", models.RoleViewer)
	cookie := s.login("victor", "secret1")

	assert.Equal(t, http.StatusOK, s.get("/controls", cookie).Code)
	assert.Equal(t, http.StatusOK, s.get("/dashboard", cookie).Code)
	assert.Equal(t, http.StatusForbidden, s.get("/assessments/new", cookie).Code)
	assert.Equal(t, http.StatusForbidden, s.postJSON("/api/assessments", map[string]any{}, cookie).Code)
	assert.Equal(t, http.StatusForbidden, s.postForm("/organization", url.Values{"name": {"Viewer Co"}}, cookie).Code)
	assert.Equal(t, http.StatusForbidden, s.get("/audit", cookie).Code)
	assert.Equal(t, http.StatusForbidden, s.get("/mappings/new", cookie).Code)
}

func TestControlsAndMappings(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.assessorWithOrg("heidi")

	w := s.get("/controls", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A.8.5")
	assert.Contains(t, w.Body.String(), "8.4.2 &middot; partial")

	w = s.get("/api/mappings", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	mappings := decode[map[string][]struct {
		ControlID    string `json:"control_id"`
		Relationship string `json:"relationship_type"`
	}](t, w)

	auth := fmt.Sprint(s.controlID(models.FrameworkISO27001, "A.8.5"))
	require.Len(t, mappings[auth], 2)
	assert.Equal(t, "8.3.1", mappings[auth][0].ControlID)
	assert.Equal(t, "partial", mappings[auth][1].Relationship)
}

func TestAdminCreatesMapping(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(testutil.AdminUsername, testutil.AdminPassword)

	primary := s.controlID(models.FrameworkISO27001, "A.5.30")
	secondary := s.controlID(models.FrameworkPCIDSS, "12.10.1")

	assert.Equal(t, http.StatusOK, s.get("/mappings/new", admin).Code)

	form := url.Values{
		"primary_control_id":   {fmt.Sprint(primary)},
		"secondary_control_id": {fmt.Sprint(secondary)},
		"relationship":         {"related"},
	}
	w := s.postForm("/mappings/new", form, admin)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/controls", w.Header().Get("Location"))

	w = s.postForm("/mappings/new", form, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "This mapping already exists")

	w = s.get("/audit", admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("Mapped control %d to %d", primary, secondary))
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.LoginRatePerMinute = 1
		cfg.LoginBurst = 2
	})

	form := url.Values{"username": {"nobody"}, "password": {"nothing"}}
	assert.Equal(t, http.StatusBadRequest, s.postForm("/login", form, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.postForm("/login", form, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.postForm("/login", form, nil).Code)
}

func (s *testServer) loginFrom(forwardedFor string) int {
	form := url.Values{"username": {"nobody"}, "password": {"nothing"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.RemoteAddr = "198.51.100.7:5555"
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w.Code
}

func TestLoginRateLimitIgnoresUntrustedForwardedFor(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.LoginRatePerMinute = 1
		cfg.LoginBurst = 2
	})

	codes := make([]int, 0, 5)
	for i := 1; i <= 5; i++ {
		codes = append(codes, s.loginFrom(fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, []int{
		http.StatusBadRequest,
		http.StatusBadRequest,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestLoginRateLimitHonoursTrustedProxy(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.LoginRatePerMinute = 1
		cfg.LoginBurst = 2
		cfg.TrustedProxies = []string{"198.51.100.0/24"}
	})

	for i := 1; i <= 3; i++ {
		assert.Equal(t, http.StatusBadRequest, s.loginFrom(fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, http.StatusBadRequest, s.loginFrom("10.0.0.9"))
	assert.Equal(t, http.StatusBadRequest, s.loginFrom("10.0.0.9"))
	assert.Equal(t, http.StatusTooManyRequests, s.loginFrom("10.0.0.9"))
}

func TestInvalidTrustedProxyFailsRouter(t *testing.T) {
	cfg := testutil.Config()
	cfg.TrustedProxies = []string{"not-an-ip"}
	enf, err := rbac.NewEnforcer()
	require.NoError(t, err)

	_, err = NewRouter(cfg, handlers.NewApp(testutil.NewDB(t), enf, metrics.New(), testutil.Logger()))
	assert.Error(t, err)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.assessorWithOrg("ivan")

	w := s.postJSON("/api/assessments", map[string]any{
		"entries": []map[string]any{{"control_id": s.controlID(models.FrameworkPCIDSS, "5.2.1"), "status": "compliant"}},
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[created](t, w).ID

	require.Equal(t, http.StatusOK, s.get("/dashboard", cookie).Code)
	require.Equal(t, http.StatusOK, s.get(fmt.Sprintf("/api/assessments/%d", id), cookie).Code)

	w = s.get("/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "compliance_hub_assessments_submitted_total 1")
	assert.Contains(t, body, "compliance_hub_aggregation_duration_seconds_count 1", "only single-assessment reports are timed")
	assert.Contains(t, body, `compliance_hub_login_attempts_total{result="success"} 1`)

	disabled := newTestServer(t, func(cfg *config.Config) { cfg.MetricsEnabled = false })
	assert.Equal(t, http.StatusNotFound, disabled.get("/metrics", nil).Code)
}
