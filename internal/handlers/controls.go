package handlers

import (
	"net/http"
	"strconv"

	"compliance-hub/internal/compliance"
	"compliance-hub/internal/database"
	"compliance-hub/internal/middleware"
	"compliance-hub/internal/models"

	"github.com/gin-gonic/gin"
)

// ListControls renders every framework with related-control badges.
func (a *App) ListControls(c *gin.Context) {
	ctx := c.Request.Context()

	frameworks, err := a.Compliance.Frameworks(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load frameworks")
		return
	}
	mappings, err := a.Compliance.ResolveMappings(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load control mappings")
		return
	}

	render(c, http.StatusOK, "controls.html", gin.H{
		"frameworks": frameworks,
		"mappings":   mappings,
	})
}

func (a *App) MappingsJSON(c *gin.Context) {
	mappings, err := a.Compliance.ResolveMappings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load control mappings"})
		return
	}
	c.JSON(http.StatusOK, mappings)
}

func (a *App) ShowNewMapping(c *gin.Context) {
	a.renderMappingForm(c, http.StatusOK, "")
}

func (a *App) CreateMapping(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	primaryID, err1 := strconv.ParseUint(c.PostForm("primary_control_id"), 10, 64)
	secondaryID, err2 := strconv.ParseUint(c.PostForm("secondary_control_id"), 10, 64)
	if err1 != nil || err2 != nil || primaryID == 0 || secondaryID == 0 {
		a.renderMappingForm(c, http.StatusBadRequest, "Select both controls")
		return
	}
	rel := models.MappingRelationship(c.PostForm("relationship"))

	m, err := a.Compliance.CreateMapping(c.Request.Context(), uint(primaryID), uint(secondaryID), rel)
	if err != nil {
		if compliance.IsValidation(err) {
			a.renderMappingForm(c, http.StatusBadRequest, validationMessage(err))
			return
		}
		a.Log.Error("create mapping", "err", err)
		a.renderMappingForm(c, http.StatusInternalServerError, "Could not save mapping")
		return
	}

	database.CreateAuditLog(a.DB.WithContext(c.Request.Context()), user.ID, "mapping", m.ID, "create",
		"Mapped control "+strconv.FormatUint(primaryID, 10)+" to "+strconv.FormatUint(secondaryID, 10))
	c.Redirect(http.StatusFound, "/controls")
}

func (a *App) renderMappingForm(c *gin.Context, status int, msg string) {
	frameworks, err := a.Compliance.Frameworks(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load frameworks")
		return
	}
	render(c, status, "mappings_new.html", gin.H{
		"frameworks": frameworks,
		"relationships": []models.MappingRelationship{
			models.RelationshipEquivalent,
			models.RelationshipRelated,
			models.RelationshipPartial,
		},
		"error": msg,
	})
}
