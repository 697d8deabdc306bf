package server

import (
	"fmt"
	"html/template"
	"net/http"

	"compliance-hub/internal/config"
	"compliance-hub/internal/handlers"
	"compliance-hub/internal/middleware"
	"compliance-hub/internal/rbac"
	"compliance-hub/web"

	"github.com/Masterminds/sprig/v3"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "compliance_session"

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func templateFuncs() template.FuncMap {
	funcs := sprig.FuncMap()
	funcs["percent"] = percent
	return funcs
}

func NewRouter(cfg *config.Config, app *handlers.App) (*gin.Engine, error) {
	r := gin.New()
	// ClientIP keys the login limiter; forwarding headers count only from these peers
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(app.Log))

	tmpl, err := web.Templates(templateFuncs())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   12 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.Use(middleware.InjectUser(app.DB))

	limiter := middleware.NewLoginLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)
	enf := app.Enforcer
	can := func(obj, act string) gin.HandlerFunc {
		return middleware.RequirePermission(enf, obj, act)
	}

	// public
	r.GET("/", handlers.IndexPage)
	r.GET("/register", handlers.ShowRegister)
	r.POST("/register", app.Register)
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", limiter.Middleware(), app.Login)
	r.GET("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/dashboard", can(rbac.ResourceReports, rbac.ActionRead), app.Dashboard)

	// organization
	auth.GET("/organization", app.ShowOrganization)
	auth.POST("/organization", can(rbac.ResourceOrganization, rbac.ActionWrite), app.CreateOrganization)

	// catalog
	auth.GET("/controls", can(rbac.ResourceControls, rbac.ActionRead), app.ListControls)
	auth.GET("/mappings/new", can(rbac.ResourceMappings, rbac.ActionWrite), app.ShowNewMapping)
	auth.POST("/mappings/new", can(rbac.ResourceMappings, rbac.ActionWrite), app.CreateMapping)

	// assessments
	auth.GET("/assessments", can(rbac.ResourceReports, rbac.ActionRead), app.ListAssessments)
	auth.GET("/assessments/new", can(rbac.ResourceAssessments, rbac.ActionWrite), app.ShowNewAssessment)
	auth.POST("/assessments", can(rbac.ResourceAssessments, rbac.ActionWrite), app.CreateAssessment)
	auth.GET("/assessments/:id", can(rbac.ResourceReports, rbac.ActionRead), app.ShowAssessmentReport)
	auth.GET("/assessments/:id/report.pdf", can(rbac.ResourceReports, rbac.ActionRead), app.AssessmentReportPDF)

	// audit
	auth.GET("/audit", can(rbac.ResourceAudit, rbac.ActionRead), app.ListAuditLogs)

	// JSON
	api := r.Group("/api")
	api.Use(middleware.RequireAPIAuth())
	api.GET("/assessments/:id", can(rbac.ResourceReports, rbac.ActionRead), app.AssessmentReportJSON)
	api.POST("/assessments", can(rbac.ResourceAssessments, rbac.ActionWrite), app.CreateAssessmentJSON)
	api.GET("/mappings", can(rbac.ResourceControls, rbac.ActionRead), app.MappingsJSON)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	}

	return r, nil
}
