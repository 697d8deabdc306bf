package handlers

import (
	"errors"
	"net/http"
	"strings"

	"compliance-hub/internal/compliance"
	"compliance-hub/internal/database"
	"compliance-hub/internal/middleware"
	"compliance-hub/internal/models"

	"github.com/gin-gonic/gin"
)

func (a *App) ShowOrganization(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	org, err := a.Compliance.OrganizationFor(c.Request.Context(), user.ID)
	if err != nil && !errors.Is(err, compliance.ErrNoOrganization) {
		c.String(http.StatusInternalServerError, "Could not load organization")
		return
	}

	render(c, http.StatusOK, "organization.html", gin.H{
		"organization": org,
		"error":        "",
	})
}

func (a *App) CreateOrganization(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctx := c.Request.Context()
	name := strings.TrimSpace(c.PostForm("name"))
	if len(name) < 2 {
		render(c, http.StatusBadRequest, "organization.html", gin.H{
			"error": "Organization name must be at least 2 characters",
		})
		return
	}

	existing, err := a.Compliance.OrganizationFor(ctx, user.ID)
	switch {
	case err == nil:
		render(c, http.StatusBadRequest, "organization.html", gin.H{
			"organization": existing,
			"error":        "You already own an organization",
		})
		return
	case !errors.Is(err, compliance.ErrNoOrganization):
		c.String(http.StatusInternalServerError, "Could not load organization")
		return
	}

	org := models.Organization{Name: name, OwnerID: user.ID}
	if err := a.DB.WithContext(ctx).Create(&org).Error; err != nil {
		render(c, http.StatusInternalServerError, "organization.html", gin.H{
			"error": "Could not save organization",
		})
		return
	}

	database.CreateAuditLog(a.DB.WithContext(ctx), user.ID, "organization", org.ID, "create", "Created organization "+org.Name)
	c.Redirect(http.StatusFound, "/dashboard")
}
