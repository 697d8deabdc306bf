package handlers

import (
	"net/http"

	"compliance-hub/internal/models"

	"github.com/gin-gonic/gin"
)

func (a *App) ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	if err := a.DB.WithContext(c.Request.Context()).
		Preload("User").
		Order("created_at desc, id desc").
		Limit(200).
		Find(&logs).Error; err != nil {
		c.String(http.StatusInternalServerError, "Could not load audit log")
		return
	}

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs": logs,
	})
}
