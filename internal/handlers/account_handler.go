package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace/internal/dto"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/httpresp"
	"github.com/BruksfildServices01/marketplace/internal/session"
	ucAccount "github.com/BruksfildServices01/marketplace/internal/usecase/account"
)

type AccountHandler struct {
	register *ucAccount.Register
	login    *ucAccount.Login
	getUser  *ucAccount.GetUser
	sessions *session.Manager
}

func NewAccountHandler(
	register *ucAccount.Register,
	login *ucAccount.Login,
	getUser *ucAccount.GetUser,
	sessions *session.Manager,
) *AccountHandler {
	return &AccountHandler{
		register: register,
		login:    login,
		getUser:  getUser,
		sessions: sessions,
	}
}

// --------- Requests ---------

// Fields are checked by the use case so that each gets its own message.
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// --------- Handlers ---------

func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	user, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		// never echo the password back
		httperr.RespondWithForm(c, err, gin.H{
			"name":  req.Name,
			"email": req.Email,
			"role":  req.Role,
		})
		return
	}

	httpresp.Redirect(c, http.StatusCreated, "/login", "Cadastro realizado. Faça login para continuar.", dto.NewUserDTO(user))
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	user, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.RespondWithForm(c, err, gin.H{"email": req.Email})
		return
	}

	if err := h.sessions.Start(c, session.Data{UserID: user.ID, Role: user.Role}); err != nil {
		httperr.Respond(c, httperr.Persistence(err))
		return
	}

	httpresp.Redirect(c, http.StatusOK, "/", "Bem-vindo, "+user.Name+"!", dto.NewUserDTO(user))
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		httperr.Respond(c, httperr.Persistence(err))
		return
	}
	httpresp.Redirect(c, http.StatusOK, "/login", "Sessão encerrada.", nil)
}

func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.getUser.Execute(c.Request.Context(), sessionUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewUserDTO(user))
}
