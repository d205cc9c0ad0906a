package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/httpresp"
	ucAudit "github.com/BruksfildServices01/marketplace/internal/usecase/audit"
)

type AuditLogsHandler struct {
	list *ucAudit.ListAuditLogs
}

func NewAuditLogsHandler(list *ucAudit.ListAuditLogs) *AuditLogsHandler {
	return &AuditLogsHandler{list: list}
}

// List answers GET /api/admin/audit-logs?action=&entity=&actor_id=&from=&to=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	in := ucAudit.ListInput{
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		ActorID: c.Query("actor_id"),
		From:    c.Query("from"),
		To:      c.Query("to"),
		Page:    c.Query("page"),
		Limit:   c.Query("limit"),
	}

	result, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, result)
}
