package handlers

import (
	"net/http"
	"strings"

	"compliance-hub/internal/database"
	"compliance-hub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": ""})
}

type registerForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

func (a *App) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Invalid form data"})
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	if len(form.Username) < 3 || len(form.Password) < 6 {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Username or password is too short"})
		return
	}

	role := models.UserRole(form.Role)
	if role == "" {
		role = models.RoleAssessor
	}

	// self-registration never grants admin
	switch role {
	case models.RoleAssessor, models.RoleViewer:
	default:
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Invalid role"})
		return
	}

	db := a.DB.WithContext(c.Request.Context())

	var existing int64
	if err := db.Model(&models.User{}).Where("username = ?", form.Username).Count(&existing).Error; err != nil {
		render(c, http.StatusInternalServerError, "register.html", gin.H{"error": "Could not check username"})
		return
	}
	if existing > 0 {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "User already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		render(c, http.StatusInternalServerError, "register.html", gin.H{"error": "Could not save user"})
		return
	}
	user := models.User{
		Username:     form.Username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		render(c, http.StatusInternalServerError, "register.html", gin.H{"error": "Could not save user"})
		return
	}

	database.CreateAuditLog(db, user.ID, "user", user.ID, "create", "Registered user "+user.Username)
	a.Log.Info("user registered", "user_id", user.ID, "role", user.Role)

	c.Redirect(http.StatusFound, "/login")
}

func ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (a *App) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data"})
		return
	}

	db := a.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("username = ?", strings.TrimSpace(form.Username)).First(&user).Error; err != nil {
		a.Metrics.LoginAttempts.WithLabelValues("failure").Inc()
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		a.Metrics.LoginAttempts.WithLabelValues("failure").Inc()
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid username or password"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	if err := sess.Save(); err != nil {
		a.Log.Error("session save failed", "err", err)
		render(c, http.StatusInternalServerError, "login.html", gin.H{"error": "Could not start session"})
		return
	}

	a.Metrics.LoginAttempts.WithLabelValues("success").Inc()
	database.CreateAuditLog(db, user.ID, "user", user.ID, "login", "")

	c.Redirect(http.StatusFound, "/dashboard")
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}
