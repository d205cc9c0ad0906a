package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace/internal/dto"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/httpresp"
	ucProduct "github.com/BruksfildServices01/marketplace/internal/usecase/product"
)

// ======================================================
// HANDLER
// ======================================================

type ProductHandler struct {
	list           *ucProduct.ListProducts
	search         *ucProduct.SearchProducts
	create         *ucProduct.CreateProduct
	delete         *ucProduct.DeleteProduct
	markSold       *ucProduct.MarkSold
	sellerProducts *ucProduct.ListSellerProducts
	checkout       *ucProduct.StartCheckout

	maxUploadBytes int64
}

func NewProductHandler(
	list *ucProduct.ListProducts,
	search *ucProduct.SearchProducts,
	create *ucProduct.CreateProduct,
	remove *ucProduct.DeleteProduct,
	markSold *ucProduct.MarkSold,
	sellerProducts *ucProduct.ListSellerProducts,
	checkout *ucProduct.StartCheckout,
	maxUploadBytes int64,
) *ProductHandler {
	return &ProductHandler{
		list:           list,
		search:         search,
		create:         create,
		delete:         remove,
		markSold:       markSold,
		sellerProducts: sellerProducts,
		checkout:       checkout,
		maxUploadBytes: maxUploadBytes,
	}
}

// ======================================================
// CATALOG
// ======================================================

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.list.Execute(c.Request.Context(), c.Query("sort"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewProductList(products))
}

func (h *ProductHandler) Search(c *gin.Context) {
	in := ucProduct.SearchInput{
		Term:     c.Query("term"),
		Category: c.Query("category"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
	}

	products, err := h.search.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.RespondWithForm(c, err, in)
		return
	}
	httpresp.List(c, dto.NewProductList(products))
}

// ======================================================
// SELLER
// ======================================================

func (h *ProductHandler) Mine(c *gin.Context) {
	products, err := h.sellerProducts.Execute(c.Request.Context(), sessionUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewProductList(products))
}

// Create takes a multipart form with the product fields and an "image" file.
func (h *ProductHandler) Create(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	in := ucProduct.CreateInput{SellerID: sessionUserID(c)}

	// FormFile parses the whole body, so it goes before PostForm
	file, err := c.FormFile("image")
	switch {
	case err == nil:
		if file.Size > 0 {
			f, err := file.Open()
			if err != nil {
				httperr.Respond(c, httperr.Persistence(err))
				return
			}
			defer f.Close()
			in.Image = f
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Respond(c, httperr.Validation("image", "image_too_large",
				fmt.Sprintf("A imagem deve ter no máximo %d MB.", h.maxUploadBytes>>20)))
			return
		}
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in.Name = c.PostForm("name")
	in.Description = c.PostForm("description")
	in.Category = c.PostForm("category")
	in.Price = c.PostForm("price")

	product, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.RespondWithForm(c, err, gin.H{
			"name":        in.Name,
			"description": in.Description,
			"category":    in.Category,
			"price":       in.Price,
		})
		return
	}

	httpresp.Redirect(c, http.StatusCreated, "/", "Produto cadastrado com sucesso.", dto.NewProductDTO(*product))
}

// Delete answers the same way whether or not anything was removed.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.delete.Execute(c.Request.Context(), id, sessionUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	msg := ""
	if deleted {
		msg = "Produto excluído."
	}
	httpresp.Redirect(c, http.StatusOK, "/", msg, nil)
}

func (h *ProductHandler) MarkSold(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sale, err := h.markSold.Execute(c.Request.Context(), id, sessionUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Redirect(c, http.StatusCreated, fmt.Sprintf("/sales/%d", sale.ID), "Produto marcado como vendido.", dto.NewSaleDTO(*sale))
}

// ======================================================
// BUYER
// ======================================================

func (h *ProductHandler) Checkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	url, err := h.checkout.Execute(c.Request.Context(), id, sessionUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Redirect(c, http.StatusOK, url, "", gin.H{"init_point": url})
}
