package product

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/product"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/infra/imaging"
	"github.com/BruksfildServices01/marketplace/internal/infra/payment"
	"github.com/BruksfildServices01/marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace/internal/logging"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/testutil"
	"github.com/BruksfildServices01/marketplace/internal/timezone"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeImages struct {
	err error
}

func (f fakeImages) Normalize(r io.Reader) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.ReadAll(r)
}

type fakeUploader struct {
	names []string
	data  [][]byte
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, name, contentType string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.names = append(f.names, name)
	f.data = append(f.data, b)
	return "https://cdn.test/" + name, nil
}

type fakeCheckout struct {
	item payment.Item
	err  error
}

func (f *fakeCheckout) Start(_ context.Context, item payment.Item) (string, error) {
	f.item = item
	if f.err != nil {
		return "", f.err
	}
	return "https://pay.test/init", nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func TestCreateProduct(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductGormRepository(db)
	seller := testutil.CreateUser(t, db, "Ana", "ana@example.com", models.RoleSeller)

	valid := func() CreateInput {
		return CreateInput{
			SellerID:    seller.ID,
			Name:        "  Lamp ",
			Description: "Desk lamp",
			Category:    "Home",
			Price:       "49,90",
			Image:       bytes.NewReader([]byte("pixels")),
		}
	}

	t.Run("stores the image and stamps seller and url", func(t *testing.T) {
		up := &fakeUploader{}
		uc := NewCreateProduct(repo, fakeImages{}, up, nil)

		p, err := uc.Execute(context.Background(), valid())
		require.NoError(t, err)

		require.Len(t, up.names, 1)
		assert.True(t, strings.HasSuffix(up.names[0], imaging.Ext))
		assert.Equal(t, "pixels", string(up.data[0]))

		assert.NotZero(t, p.ID)
		assert.Equal(t, "Lamp", p.Name)
		assert.Equal(t, seller.ID, p.SellerID)
		assert.Equal(t, "https://cdn.test/"+up.names[0], p.ImageURL)
		assert.Equal(t, "49.90", p.Price.StringFixed(2))
		assert.False(t, p.Sold)
	})

	cases := []struct {
		name  string
		edit  func(in *CreateInput)
		field string
		code  string
	}{
		{"missing image", func(in *CreateInput) { in.Image = nil }, "image", "image_required"},
		{"blank name", func(in *CreateInput) { in.Name = " " }, "name", "name_required"},
		{"blank description", func(in *CreateInput) { in.Description = "" }, "description", "description_required"},
		{"blank category", func(in *CreateInput) { in.Category = "" }, "category", "category_required"},
		{"blank price", func(in *CreateInput) { in.Price = "" }, "price", "price_required"},
		{"price not a number", func(in *CreateInput) { in.Price = "cheap" }, "price", "invalid_price"},
		{"negative price", func(in *CreateInput) { in.Price = "-1" }, "price", "invalid_price"},
		{"three decimals", func(in *CreateInput) { in.Price = "1.999" }, "price", "invalid_price"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			up := &fakeUploader{}
			uc := NewCreateProduct(repo, fakeImages{}, up, nil)

			in := valid()
			tc.edit(&in)

			_, err := uc.Execute(context.Background(), in)

			var be httperr.BusinessError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, httperr.KindValidation, be.Kind)
			assert.Equal(t, tc.field, be.Field)
			assert.Equal(t, tc.code, be.Code)
			assert.Empty(t, up.names, "nothing is uploaded for a rejected form")
		})
	}

	t.Run("undecodable image", func(t *testing.T) {
		up := &fakeUploader{}
		uc := NewCreateProduct(repo, fakeImages{err: imaging.ErrNotImage}, up, nil)

		_, err := uc.Execute(context.Background(), valid())
		assert.True(t, httperr.IsBusiness(err, "image_invalid"))
		assert.Empty(t, up.names)
	})

	t.Run("oversized canvas", func(t *testing.T) {
		up := &fakeUploader{}
		uc := NewCreateProduct(repo, fakeImages{err: imaging.ErrTooLarge}, up, nil)

		_, err := uc.Execute(context.Background(), valid())
		assert.True(t, httperr.IsBusiness(err, "image_too_large"))
		assert.Empty(t, up.names)
	})

	t.Run("upload failure is a persistence error", func(t *testing.T) {
		uc := NewCreateProduct(repo, fakeImages{}, &fakeUploader{err: errors.New("bucket gone")}, nil)

		_, err := uc.Execute(context.Background(), valid())
		assert.Equal(t, httperr.KindPersistence, httperr.KindOf(err))
	})
}

// --------------------------------------------------
// Search
// --------------------------------------------------

func TestSearchProductsPriceParsing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductGormRepository(db)
	seller := testutil.CreateUser(t, db, "Ana", "ana@example.com", models.RoleSeller)
	testutil.CreateProduct(t, db, seller.ID, "Face Cream", "Moisturizer", "Beauty", "12.00")
	testutil.CreateProduct(t, db, seller.ID, "Hand Cream", "Shea", "Beauty", "25.00")

	uc := NewSearchProducts(repo)

	products, err := uc.Execute(context.Background(), SearchInput{Term: "cream", MinPrice: "5", MaxPrice: "20,00"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Face Cream", products[0].Name)

	_, err = uc.Execute(context.Background(), SearchInput{MinPrice: "five"})
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "min_price", be.Field)

	_, err = uc.Execute(context.Background(), SearchInput{MaxPrice: "1..2"})
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "max_price", be.Field)
}

// --------------------------------------------------
// Delete / mark sold
// --------------------------------------------------

func TestDeleteProductIsSilentForOthers(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductGormRepository(db)
	ana := testutil.CreateUser(t, db, "Ana", "ana@example.com", models.RoleSeller)
	bia := testutil.CreateUser(t, db, "Bia", "bia@example.com", models.RoleSeller)
	p := testutil.CreateProduct(t, db, ana.ID, "Lamp", "Desk lamp", "Home", "49.90")

	uc := NewDeleteProduct(repo, nil, logging.Discard())

	deleted, err := uc.Execute(context.Background(), p.ID, bia.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = uc.Execute(context.Background(), p.ID, ana.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestMarkSoldUsesClock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductGormRepository(db)
	seller := testutil.CreateUser(t, db, "Ana", "ana@example.com", models.RoleSeller)
	p := testutil.CreateProduct(t, db, seller.ID, "Lamp", "Desk lamp", "Home", "49.90")

	at := time.Date(2026, 5, 1, 9, 30, 0, 0, timezone.Location("America/Sao_Paulo"))
	uc := NewMarkSold(repo, nil, timezone.Fixed(at))

	sale, err := uc.Execute(context.Background(), p.ID, seller.ID)
	require.NoError(t, err)
	assert.True(t, at.Equal(sale.SoldAt))

	_, err = uc.Execute(context.Background(), p.ID, seller.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadySold)
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------

func TestStartCheckout(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductGormRepository(db)
	seller := testutil.CreateUser(t, db, "Ana", "ana@example.com", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "Caio", "caio@example.com", models.RoleBuyer)
	p := testutil.CreateProduct(t, db, seller.ID, "Lamp", "Desk lamp", "Home", "49.90")
	sold := testutil.CreateProduct(t, db, seller.ID, "Rug", "Wool rug", "Home", "300.00")

	_, err := repo.MarkSold(context.Background(), sold.ID, seller.ID, time.Now())
	require.NoError(t, err)

	t.Run("not configured", func(t *testing.T) {
		_, err := NewStartCheckout(repo, nil).Execute(context.Background(), p.ID, buyer.ID)
		assert.ErrorIs(t, err, ErrCheckoutUnavailable)
	})

	t.Run("hands the product over", func(t *testing.T) {
		co := &fakeCheckout{}
		url, err := NewStartCheckout(repo, co).Execute(context.Background(), p.ID, buyer.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://pay.test/init", url)
		assert.Equal(t, p.ID, co.item.ProductID)
		assert.Equal(t, "49.90", co.item.Price.StringFixed(2))

		_, err = NewStartCheckout(repo, co).Execute(context.Background(), p.ID, buyer.ID)
		require.NoError(t, err)

		var intents []models.CheckoutIntent
		require.NoError(t, db.Find(&intents).Error)
		require.Len(t, intents, 1, "a repeated checkout is recorded once")
		assert.Equal(t, p.ID, intents[0].ProductID)
		assert.Equal(t, buyer.ID, intents[0].BuyerID)
	})

	t.Run("sold product", func(t *testing.T) {
		_, err := NewStartCheckout(repo, &fakeCheckout{}).Execute(context.Background(), sold.ID, buyer.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadySold)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := NewStartCheckout(repo, &fakeCheckout{}).Execute(context.Background(), 9999, buyer.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("provider says unavailable", func(t *testing.T) {
		_, err := NewStartCheckout(repo, &fakeCheckout{err: payment.ErrUnavailable}).Execute(context.Background(), p.ID, buyer.ID)
		assert.ErrorIs(t, err, ErrCheckoutUnavailable)
	})
}
