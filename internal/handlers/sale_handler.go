package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace/internal/dto"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/httpresp"
	ucSale "github.com/BruksfildServices01/marketplace/internal/usecase/sale"
)

type SaleHandler struct {
	get       *ucSale.GetSale
	history   *ucSale.ListSellerSales
	purchases *ucSale.ListPurchases
	claim     *ucSale.ClaimSale
}

func NewSaleHandler(
	get *ucSale.GetSale,
	history *ucSale.ListSellerSales,
	purchases *ucSale.ListPurchases,
	claim *ucSale.ClaimSale,
) *SaleHandler {
	return &SaleHandler{
		get:       get,
		history:   history,
		purchases: purchases,
		claim:     claim,
	}
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sale, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewSaleDTO(*sale))
}

func (h *SaleHandler) History(c *gin.Context) {
	sales, err := h.history.Execute(c.Request.Context(), sessionUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewSaleList(sales))
}

func (h *SaleHandler) Purchases(c *gin.Context) {
	sales, err := h.purchases.Execute(c.Request.Context(), sessionUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewSaleList(sales))
}

func (h *SaleHandler) Claim(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sale, err := h.claim.Execute(c.Request.Context(), id, sessionUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Redirect(c, http.StatusOK, "/me/purchases", "Compra confirmada.", dto.NewSaleDTO(*sale))
}
