package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/session"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// UserLookup resolves the user a session points at.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Session resolves the caller's session, if any, into the gin context.
// Anonymous requests pass through untouched. With users set, the role comes
// from the stored user, and a session whose user no longer exists is
// destroyed and the request continues as anonymous.
func Session(mgr *session.Manager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok, err := mgr.Current(c)
		if err != nil {
			httperr.AbortWith(c, httperr.Persistence(err))
			return
		}
		if !ok {
			c.Next()
			return
		}

		if users != nil {
			user, err := users.FindByID(c.Request.Context(), data.UserID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := mgr.Destroy(c); err != nil {
					httperr.AbortWith(c, httperr.Persistence(err))
					return
				}
				c.Next()
				return
			}
			if err != nil {
				httperr.AbortWith(c, httperr.Persistence(err))
				return
			}
			data.Role = user.Role
		}

		c.Set(ContextUserID, data.UserID)
		c.Set(ContextUserRole, data.Role)
		c.Next()
	}
}

// RequireSession rejects anonymous callers.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			httperr.AbortWith(c, httperr.Auth("login_required"))
			return
		}
		c.Next()
	}
}

// RequireRole only lets sessions holding one of roles through; everybody
// else is sent to login.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			httperr.AbortWith(c, httperr.Auth("login_required"))
			return
		}

		role := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		httperr.AbortWith(c, httperr.Auth("role_required"))
	}
}

// RequireAdmin guards the seller management surface.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			httperr.AbortWith(c, httperr.Auth("login_required"))
			return
		}

		if Role(c) != models.RoleAdmin {
			httperr.AbortWith(c, httperr.Protected("admin_only", "Acesso restrito ao administrador."))
			return
		}

		c.Next()
	}
}

func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func Role(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}
