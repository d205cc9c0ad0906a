package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/marketplace/internal/models"
)

// Filter narrows the audit listing. Zero values do not filter.
type Filter struct {
	Action  string
	Entity  string
	ActorID uint
	From    time.Time // inclusive
	To      time.Time // exclusive

	Limit  int
	Offset int
}

type Repository interface {
	// List returns one page of logs, newest first, and the total matching
	// the filter.
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}
