package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const LoginPath = "/login"

type HTTPError struct {
	Code     string `json:"error_code"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
	Form     any    `json:"form,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps err to a response. Business errors keep their code and
// message; anything else becomes a bare 500.
func Respond(c *gin.Context, err error) {
	RespondWithForm(c, err, nil)
}

// RespondWithForm is Respond for form submissions: validation, conflict and
// persistence failures echo the submitted values so nothing is lost.
func RespondWithForm(c *gin.Context, err error, form any) {
	var be BusinessError
	if !errors.As(err, &be) {
		_ = c.Error(err)
		Internal(c, "internal_error", "Erro inesperado.")
		return
	}

	body := HTTPError{Code: be.Code, Message: be.Message, Field: be.Field}

	switch be.Kind {
	case KindValidation:
		body.Form = form
		c.JSON(http.StatusBadRequest, body)
	case KindConflict:
		body.Form = form
		c.JSON(http.StatusConflict, body)
	case KindAuth:
		if wantsHTML(c) {
			c.Redirect(http.StatusSeeOther, LoginPath)
			// a redirect answering a POST has no body to flush the status
			c.Writer.WriteHeaderNow()
			return
		}
		body.Redirect = LoginPath
		c.JSON(http.StatusUnauthorized, body)
	case KindNotFound:
		c.JSON(http.StatusNotFound, body)
	case KindProtected:
		c.JSON(http.StatusForbidden, body)
	case KindPersistence:
		_ = c.Error(be.Err)
		body.Form = form
		c.JSON(http.StatusInternalServerError, body)
	case KindUnavailable:
		c.JSON(http.StatusServiceUnavailable, body)
	default:
		c.JSON(http.StatusBadRequest, body)
	}
}

// AbortWith is Respond for middleware.
func AbortWith(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
