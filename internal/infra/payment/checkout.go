// Package payment hands buyers over to an external checkout.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

var ErrUnavailable = errors.New("checkout not configured")

type Item struct {
	ProductID   uint
	Title       string
	Description string
	Category    string
	PictureURL  string
	Price       decimal.Decimal
}

type Checkout interface {
	// Start creates a checkout for one unit of item and returns the URL the
	// buyer must be sent to.
	Start(ctx context.Context, item Item) (string, error)
}

type MercadoPago struct {
	client  preference.Client
	backURL string
}

func NewMercadoPago(accessToken, backURL string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, ErrUnavailable
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		client:  preference.NewClient(cfg),
		backURL: backURL,
	}, nil
}

func (m *MercadoPago) Start(ctx context.Context, item Item) (string, error) {
	ref := strconv.FormatUint(uint64(item.ProductID), 10)

	req := preference.Request{
		ExternalReference: ref,
		Items: []preference.ItemRequest{
			{
				ID:          ref,
				Title:       item.Title,
				Description: item.Description,
				CategoryID:  item.Category,
				PictureURL:  item.PictureURL,
				CurrencyID:  "BRL",
				Quantity:    1,
				UnitPrice:   item.Price.InexactFloat64(),
			},
		},
	}

	if m.backURL != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: m.backURL,
			Pending: m.backURL,
			Failure: m.backURL,
		}
	}

	res, err := m.client.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}

	return res.InitPoint, nil
}
