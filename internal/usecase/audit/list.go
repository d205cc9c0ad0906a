package audit

import (
	"context"
	"strconv"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/audit"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

const (
	dateLayout   = "2006-01-02"
	defaultLimit = 50
	maxLimit     = 200
)

// ListInput holds the raw query string values.
type ListInput struct {
	Action  string
	Entity  string
	ActorID string
	From    string // YYYY-MM-DD, inclusive
	To      string // YYYY-MM-DD, inclusive day
	Page    string
	Limit   string
}

type ListResult struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

type ListAuditLogs struct {
	repo domain.Repository
	loc  *time.Location
}

// NewListAuditLogs reads from/to dates in loc (UTC when nil).
func NewListAuditLogs(repo domain.Repository, loc *time.Location) *ListAuditLogs {
	if loc == nil {
		loc = time.UTC
	}
	return &ListAuditLogs{repo: repo, loc: loc}
}

func (uc *ListAuditLogs) Execute(ctx context.Context, in ListInput) (*ListResult, error) {
	f := domain.Filter{
		Action: strings.TrimSpace(in.Action),
		Entity: strings.TrimSpace(in.Entity),
	}

	// --------------------------------------------------
	// Filters: malformed values are rejected, never ignored
	// --------------------------------------------------
	if s := strings.TrimSpace(in.ActorID); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			return nil, httperr.Validation("actor_id", "invalid_actor_id", "Informe um usuário válido.")
		}
		f.ActorID = uint(id)
	}

	if s := strings.TrimSpace(in.From); s != "" {
		from, err := time.ParseInLocation(dateLayout, s, uc.loc)
		if err != nil {
			return nil, httperr.Validation("from", "invalid_date", "Use o formato AAAA-MM-DD.")
		}
		f.From = from
	}

	if s := strings.TrimSpace(in.To); s != "" {
		to, err := time.ParseInLocation(dateLayout, s, uc.loc)
		if err != nil {
			return nil, httperr.Validation("to", "invalid_date", "Use o formato AAAA-MM-DD.")
		}
		f.To = to.AddDate(0, 0, 1)
	}

	if !f.From.IsZero() && !f.To.IsZero() && !f.From.Before(f.To) {
		return nil, httperr.Validation("to", "invalid_range", "A data final deve ser posterior à inicial.")
	}

	// --------------------------------------------------
	// Pagination
	// --------------------------------------------------
	page, err := parsePositive(in.Page, 1)
	if err != nil {
		return nil, httperr.Validation("page", "invalid_page", "Página inválida.")
	}

	limit, err := parsePositive(in.Limit, defaultLimit)
	if err != nil {
		return nil, httperr.Validation("limit", "invalid_limit", "Limite inválido.")
	}
	limit = min(limit, maxLimit)

	f.Limit = limit
	f.Offset = (page - 1) * limit

	logs, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	return &ListResult{Page: page, Limit: limit, Total: total, Logs: logs}, nil
}

func parsePositive(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
