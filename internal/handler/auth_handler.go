package handler

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserID  = "user_id"
	sessionRole    = "user_role"
	currentUserKey = "currentUser"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if user, err := a.sessionUser(c); err == nil && user != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{})
}

// Login 校验凭据并写入会话。表单提交跳转后台，JSON 请求返回当前用户。
func (a *API) Login(c *gin.Context) {
	wantsJSON := isJSONRequest(c)

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		if wantsJSON {
			respondError(c, http.StatusBadRequest, "Solicitud inválida")
			return
		}
		a.renderHTML(c, http.StatusBadRequest, "login.html", gin.H{"error": "Solicitud inválida"})
		return
	}

	user, err := a.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			handleServiceError(c, err)
			return
		}
		if wantsJSON {
			respondError(c, http.StatusUnauthorized, "Email o contraseña incorrectos")
			return
		}
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"error": "Email o contraseña incorrectos",
			"email": req.Email,
		})
		return
	}

	// 不清空整个会话，访客的购物车也存在这里
	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionRole, user.Role)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	if wantsJSON {
		c.JSON(http.StatusOK, gin.H{"user": user})
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(sessionUserID)
	session.Delete(sessionRole)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
	if isJSONRequest(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// AuthRequired rejects requests without a valid session: 401 for the API,
// a redirect to the login page for HTML.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.sessionUser(c)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
			return
		}
		if user == nil {
			if isAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireRole allows only users holding one of roles. It must run after
// AuthRequired.
func (a *API) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !slices.Contains(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No tenés permisos para esta acción"})
			return
		}
		c.Next()
	}
}

// Me returns the signed-in user.
func (a *API) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	stats, err := a.dashboard.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "error.html", gin.H{})
		return
	}
	a.renderHTML(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"user":  currentUser(c),
		"stats": stats,
	})
}

// sessionUser loads the account referenced by the session. A session naming
// a deleted account is cleared and treated as anonymous.
func (a *API) sessionUser(c *gin.Context) (*db.User, error) {
	session := sessions.Default(c)
	id, ok := session.Get(sessionUserID).(uint)
	if !ok || id == 0 {
		return nil, nil
	}

	user, err := a.users.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		session.Delete(sessionUserID)
		session.Delete(sessionRole)
		_ = session.Save()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func currentUser(c *gin.Context) *db.User {
	if value, ok := c.Get(currentUserKey); ok {
		if user, ok := value.(*db.User); ok {
			return user
		}
	}
	return nil
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") || isJSONRequest(c)
}

func isJSONRequest(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Content-Type"), "application/json") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
