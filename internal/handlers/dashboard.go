package handlers

import (
	"errors"
	"net/http"

	"compliance-hub/internal/compliance"
	"compliance-hub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Dashboard shows the latest assessment of the user's organization.
func (a *App) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	ctx := c.Request.Context()

	org, err := a.Compliance.OrganizationFor(ctx, user.ID)
	if errors.Is(err, compliance.ErrNoOrganization) {
		render(c, http.StatusOK, "dashboard.html", gin.H{"organization": nil})
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load organization")
		return
	}

	summaries, err := a.Compliance.ListAssessments(ctx, org.ID)
	if err != nil {
		a.Log.Error("dashboard: list assessments", "err", err, "organization_id", org.ID)
		c.String(http.StatusInternalServerError, "Could not load assessments")
		return
	}

	data := gin.H{
		"organization":    org,
		"assessmentCount": len(summaries),
	}
	if len(summaries) > 0 {
		data["latest"] = summaries[0]
	}
	render(c, http.StatusOK, "dashboard.html", data)
}
