package product

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	domain "github.com/BruksfildServices01/marketplace/internal/domain/product"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/infra/blob"
	"github.com/BruksfildServices01/marketplace/internal/infra/imaging"
	"github.com/BruksfildServices01/marketplace/internal/metrics"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

// ImageProcessor prepares an upload for storage.
type ImageProcessor interface {
	Normalize(r io.Reader) ([]byte, error)
}

type CreateInput struct {
	SellerID    uint
	Name        string
	Description string
	Category    string
	Price       string

	// Image is nil when no file was sent.
	Image io.Reader
}

type CreateProduct struct {
	repo     domain.Repository
	images   ImageProcessor
	uploader blob.Uploader
	audit    *audit.Dispatcher
}

func NewCreateProduct(
	repo domain.Repository,
	images ImageProcessor,
	uploader blob.Uploader,
	audit *audit.Dispatcher,
) *CreateProduct {
	return &CreateProduct{
		repo:     repo,
		images:   images,
		uploader: uploader,
		audit:    audit,
	}
}

func (uc *CreateProduct) Execute(ctx context.Context, in CreateInput) (*models.Product, error) {
	if in.Image == nil {
		return nil, httperr.Validation("image", "image_required", "Envie uma imagem do produto.")
	}

	p, err := validateFields(in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Image: normalized before it ever reaches storage
	// --------------------------------------------------
	data, err := uc.images.Normalize(in.Image)
	if err != nil {
		if errors.Is(err, imaging.ErrNotImage) {
			return nil, httperr.Validation("image", "image_invalid", "O arquivo enviado não é uma imagem válida.")
		}
		if errors.Is(err, imaging.ErrTooLarge) {
			return nil, httperr.Validation("image", "image_too_large", "A imagem tem dimensões grandes demais.")
		}
		return nil, httperr.Persistence(err)
	}
	if len(data) == 0 {
		return nil, httperr.Validation("image", "image_required", "Envie uma imagem do produto.")
	}

	url, err := uc.uploader.Upload(ctx, blob.NewName(imaging.Ext), imaging.ContentType, bytes.NewReader(data))
	if err != nil {
		return nil, httperr.Persistence(err)
	}

	p.ImageURL = url
	p.SellerID = in.SellerID

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, httperr.Persistence(err)
	}

	metrics.ProductCreated()
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ID(in.SellerID),
		Action:   audit.ActionProductCreated,
		Entity:   "product",
		EntityID: audit.ID(p.ID),
		Metadata: map[string]any{"name": p.Name, "price": p.Price.StringFixed(2)},
	})

	return p, nil
}

func validateFields(in CreateInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	rawPrice := strings.TrimSpace(in.Price)

	if name == "" {
		return nil, httperr.Validation("name", "name_required", "O nome é obrigatório.")
	}
	if description == "" {
		return nil, httperr.Validation("description", "description_required", "A descrição é obrigatória.")
	}
	if category == "" {
		return nil, httperr.Validation("category", "category_required", "A categoria é obrigatória.")
	}
	if rawPrice == "" {
		return nil, httperr.Validation("price", "price_required", "O preço é obrigatório.")
	}

	price, err := decimal.NewFromString(strings.Replace(rawPrice, ",", ".", 1))
	if err != nil || !domain.ValidPrice(price) {
		return nil, httperr.Validation("price", "invalid_price", "Informe um preço válido, com até duas casas decimais.")
	}

	return &models.Product{
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
	}, nil
}
