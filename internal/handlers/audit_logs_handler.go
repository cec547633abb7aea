package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/httpresp"
	"github.com/BruksfildServices01/salongo/internal/middleware"
	"github.com/BruksfildServices01/salongo/internal/timezone"
	ucOwner "github.com/BruksfildServices01/salongo/internal/usecase/owner"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	list *ucOwner.ListAuditLogs
}

func NewAuditLogsHandler(list *ucOwner.ListAuditLogs) *AuditLogsHandler {
	return &AuditLogsHandler{list: list}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional day range; bad dates are ignored
	// --------------------------------------------------

	if v := c.Query("from"); v != "" {
		if from, err := time.Parse(timezone.DateLayout, v); err == nil {
			f.From = &from
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse(timezone.DateLayout, v); err == nil {
			f.To = &to
		}
	}

	out, err := h.list.Execute(c.Request.Context(), middleware.Identity(c).UserID, f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}
