package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/httpresp"
	ucSeller "github.com/BruksfildServices01/marketplace/internal/usecase/seller"
)

const sellersPath = "/admin/sellers"

type SellerHandler struct {
	list   *ucSeller.ListSellers
	create *ucSeller.CreateSeller
	delete *ucSeller.DeleteSeller
}

func NewSellerHandler(
	list *ucSeller.ListSellers,
	create *ucSeller.CreateSeller,
	remove *ucSeller.DeleteSeller,
) *SellerHandler {
	return &SellerHandler{list: list, create: create, delete: remove}
}

type CreateSellerRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

func (h *SellerHandler) List(c *gin.Context) {
	sellers, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, sellers)
}

func (h *SellerHandler) Create(c *gin.Context) {
	var req CreateSellerRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.create.Execute(c.Request.Context(), sessionUserID(c), req.Name, req.Email)
	if err != nil {
		httperr.RespondWithForm(c, err, req)
		return
	}

	httpresp.Redirect(c, http.StatusCreated, sellersPath,
		"Vendedor cadastrado. Anote a senha gerada, ela não será exibida novamente.", created)
}

func (h *SellerHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), sessionUserID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Redirect(c, http.StatusOK, sellersPath, "Vendedor excluído.", nil)
}
