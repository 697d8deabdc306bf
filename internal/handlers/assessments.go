package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"compliance-hub/internal/compliance"
	"compliance-hub/internal/database"
	"compliance-hub/internal/middleware"
	"compliance-hub/internal/models"
	"compliance-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

//
// SUBMISSION
//

func (a *App) ShowNewAssessment(c *gin.Context) {
	a.renderAssessmentForm(c, http.StatusOK, "", nil)
}

func (a *App) CreateAssessment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		a.renderAssessmentForm(c, http.StatusBadRequest, "Invalid form data", nil)
		return
	}
	sub, err := parseSubmissionForm(c.Request.PostForm)
	if err != nil {
		a.Metrics.SubmissionsRejected.WithLabelValues(rejectReason(err)).Inc()
		a.renderAssessmentForm(c, http.StatusBadRequest, validationMessage(err), c.Request.PostForm)
		return
	}

	assessment, err := a.submit(c, user, sub)
	if err != nil {
		if compliance.IsValidation(err) {
			a.renderAssessmentForm(c, http.StatusBadRequest, validationMessage(err), c.Request.PostForm)
			return
		}
		a.renderAssessmentForm(c, http.StatusInternalServerError, "Could not save assessment", c.Request.PostForm)
		return
	}

	c.Redirect(http.StatusFound, "/assessments/"+strconv.FormatUint(uint64(assessment.ID), 10))
}

// CreateAssessmentJSON accepts {"title": ..., "entries": [...]}.
func (a *App) CreateAssessmentJSON(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var sub compliance.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	assessment, err := a.submit(c, user, sub)
	if err != nil {
		if compliance.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save assessment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      assessment.ID,
		"title":   assessment.Title,
		"results": len(assessment.Results),
	})
}

func (a *App) submit(c *gin.Context, user models.User, sub compliance.Submission) (*models.Assessment, error) {
	ctx := c.Request.Context()

	assessment, err := a.Compliance.Submit(ctx, user.ID, sub)
	if err != nil {
		if compliance.IsValidation(err) {
			a.Metrics.SubmissionsRejected.WithLabelValues(rejectReason(err)).Inc()
		} else {
			a.Log.Error("submit assessment", "err", err, "user_id", user.ID)
		}
		return nil, err
	}

	a.Metrics.AssessmentsSubmitted.Inc()
	database.CreateAuditLog(a.DB.WithContext(ctx), user.ID, "assessment", assessment.ID, "create",
		fmt.Sprintf("Submitted %q with %d results", assessment.Title, len(assessment.Results)))
	return assessment, nil
}

// renderAssessmentForm shows the form, refilled from submitted when a previous post was rejected.
func (a *App) renderAssessmentForm(c *gin.Context, status int, msg string, submitted url.Values) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	ctx := c.Request.Context()

	_, err := a.Compliance.OrganizationFor(ctx, user.ID)
	if err != nil && !errors.Is(err, compliance.ErrNoOrganization) {
		c.String(http.StatusInternalServerError, "Could not load organization")
		return
	}
	frameworks, ferr := a.Compliance.Frameworks(ctx)
	if ferr != nil {
		c.String(http.StatusInternalServerError, "Could not load frameworks")
		return
	}

	render(c, status, "assessment_new.html", gin.H{
		"frameworks":        frameworks,
		"statuses":          models.ComplianceStatuses,
		"risks":             models.RiskLevels,
		"needsOrganization": errors.Is(err, compliance.ErrNoOrganization),
		"submitted":         formValues(submitted),
		"error":             msg,
	})
}

// formValues flattens a posted form to its first values; the template indexes it by field name.
func formValues(form url.Values) map[string]string {
	out := make(map[string]string, len(form))
	for k, v := range form {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, compliance.ErrNoOrganization):
		return "no_organization"
	case errors.Is(err, compliance.ErrNoEntries):
		return "no_entries"
	case errors.Is(err, compliance.ErrDuplicateControl):
		return "duplicate_control"
	case errors.Is(err, compliance.ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, compliance.ErrInvalidRiskLevel):
		return "invalid_risk_level"
	case errors.Is(err, compliance.ErrUnknownControl):
		return "unknown_control"
	}
	return "other"
}

//
// REPORTS
//

func (a *App) ListAssessments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	ctx := c.Request.Context()

	org, err := a.Compliance.OrganizationFor(ctx, user.ID)
	if errors.Is(err, compliance.ErrNoOrganization) {
		render(c, http.StatusOK, "assessments_list.html", gin.H{"organization": nil})
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load organization")
		return
	}

	summaries, err := a.Compliance.ListAssessments(ctx, org.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load assessments")
		return
	}

	render(c, http.StatusOK, "assessments_list.html", gin.H{
		"organization": org,
		"assessments":  summaries,
	})
}

func (a *App) ShowAssessmentReport(c *gin.Context) {
	assessment, report, status := a.assessmentReport(c, "html")
	if status != http.StatusOK {
		c.String(status, http.StatusText(status))
		return
	}

	render(c, http.StatusOK, "assessment_report.html", gin.H{
		"assessment": assessment,
		"report":     report,
	})
}

// AssessmentReportJSON serves the ComplianceReport for one assessment.
func (a *App) AssessmentReportJSON(c *gin.Context) {
	_, report, status := a.assessmentReport(c, "json")
	if status != http.StatusOK {
		c.JSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (a *App) AssessmentReportPDF(c *gin.Context) {
	assessment, report, status := a.assessmentReport(c, "pdf")
	if status != http.StatusOK {
		c.String(status, http.StatusText(status))
		return
	}

	var buf bytes.Buffer
	if err := compliance.WritePDF(&buf, assessment.Title, time.Now(), report); err != nil {
		a.Log.Error("render pdf", "err", err, "assessment_id", assessment.ID)
		c.String(http.StatusInternalServerError, "Could not render PDF")
		return
	}

	filename := fmt.Sprintf("assessment-%d.pdf", assessment.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// assessmentReport loads the assessment named by :id and aggregates it. Assessments
// outside the user's organization are reported as missing unless the role may read any report.
func (a *App) assessmentReport(c *gin.Context, format string) (*models.Assessment, compliance.Report, int) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, compliance.Report{}, http.StatusUnauthorized
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, compliance.Report{}, http.StatusBadRequest
	}

	ctx := c.Request.Context()
	assessment, err := a.Compliance.Assessment(ctx, uint(id))
	if errors.Is(err, compliance.ErrAssessmentNotFound) {
		return nil, compliance.Report{}, http.StatusNotFound
	}
	if err != nil {
		a.Log.Error("load assessment", "err", err, "assessment_id", id)
		return nil, compliance.Report{}, http.StatusInternalServerError
	}

	if assessment.Organization.OwnerID != user.ID &&
		!a.Enforcer.Allowed(user.Role, rbac.ResourceReports, rbac.ActionReadAny) {
		return nil, compliance.Report{}, http.StatusNotFound
	}

	start := time.Now()
	report, err := a.Compliance.Aggregate(ctx, assessment.ID)
	a.Metrics.ObserveAggregation(start)
	if err != nil {
		a.Log.Error("aggregate assessment", "err", err, "assessment_id", id)
		return nil, compliance.Report{}, http.StatusInternalServerError
	}

	a.Metrics.ReportsRendered.WithLabelValues(format).Inc()
	return assessment, report, http.StatusOK
}
