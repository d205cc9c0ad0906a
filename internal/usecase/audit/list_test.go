package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/audit"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/testutil"
)

func ptr(v uint) *uint { return &v }

func TestListAuditLogsFilters(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewListAuditLogs(repository.NewAuditGormRepository(db), time.UTC)
	ctx := context.Background()

	day := func(d, h int) time.Time { return time.Date(2026, 4, d, h, 0, 0, 0, time.UTC) }
	rows := []models.AuditLog{
		{ActorID: ptr(1), Action: "product_created", Entity: "product", CreatedAt: day(1, 9)},
		{ActorID: ptr(1), Action: "product_sold", Entity: "sale", CreatedAt: day(2, 10)},
		{ActorID: ptr(2), Action: "product_created", Entity: "product", CreatedAt: day(2, 23)},
		{ActorID: ptr(3), Action: "seller_deleted", Entity: "user", CreatedAt: day(3, 8)},
	}
	require.NoError(t, db.Create(&rows).Error)

	actions := func(res *ListResult) []string {
		out := []string{}
		for _, l := range res.Logs {
			out = append(out, l.Action)
		}
		return out
	}

	t.Run("newest first without filters", func(t *testing.T) {
		res, err := uc.Execute(ctx, ListInput{})
		require.NoError(t, err)
		assert.EqualValues(t, 4, res.Total)
		assert.Equal(t, []string{"seller_deleted", "product_created", "product_sold", "product_created"}, actions(res))
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 50, res.Limit)
	})

	t.Run("action and entity", func(t *testing.T) {
		res, err := uc.Execute(ctx, ListInput{Action: "product_created", Entity: "product"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, res.Total)
	})

	t.Run("actor", func(t *testing.T) {
		res, err := uc.Execute(ctx, ListInput{ActorID: "1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"product_sold", "product_created"}, actions(res))
	})

	t.Run("date range includes the whole last day", func(t *testing.T) {
		res, err := uc.Execute(ctx, ListInput{From: "2026-04-02", To: "2026-04-02"})
		require.NoError(t, err)
		assert.Equal(t, []string{"product_created", "product_sold"}, actions(res))
	})

	t.Run("pagination keeps the total", func(t *testing.T) {
		res, err := uc.Execute(ctx, ListInput{Page: "2", Limit: "3"})
		require.NoError(t, err)
		assert.EqualValues(t, 4, res.Total)
		assert.Equal(t, []string{"product_created"}, actions(res))
	})

	t.Run("limit is capped", func(t *testing.T) {
		res, err := uc.Execute(ctx, ListInput{Limit: "5000"})
		require.NoError(t, err)
		assert.Equal(t, 200, res.Limit)
	})
}

func TestListAuditLogsRejectsMalformedFilters(t *testing.T) {
	uc := NewListAuditLogs(failingRepo{}, nil)

	cases := []struct {
		name  string
		in    ListInput
		field string
		code  string
	}{
		{"actor not a number", ListInput{ActorID: "ana"}, "actor_id", "invalid_actor_id"},
		{"actor zero", ListInput{ActorID: "0"}, "actor_id", "invalid_actor_id"},
		{"bad from", ListInput{From: "02/04/2026"}, "from", "invalid_date"},
		{"bad to", ListInput{To: "yesterday"}, "to", "invalid_date"},
		{"inverted range", ListInput{From: "2026-04-03", To: "2026-04-01"}, "to", "invalid_range"},
		{"bad page", ListInput{Page: "-1"}, "page", "invalid_page"},
		{"bad limit", ListInput{Limit: "many"}, "limit", "invalid_limit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)

			var be httperr.BusinessError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, httperr.KindValidation, be.Kind)
			assert.Equal(t, tc.field, be.Field)
			assert.Equal(t, tc.code, be.Code)
		})
	}
}

type failingRepo struct{}

func (failingRepo) List(context.Context, domain.Filter) ([]models.AuditLog, int64, error) {
	return nil, 0, errors.New("connection reset")
}

func TestListAuditLogsStoreFailure(t *testing.T) {
	_, err := NewListAuditLogs(failingRepo{}, nil).Execute(context.Background(), ListInput{})
	assert.Equal(t, httperr.KindPersistence, httperr.KindOf(err))
}
