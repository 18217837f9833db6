package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
)

// AuditHandler exposes the audit trail, newest entries first.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List returns the most recent audit entries.
//
// @Summary      List audit log entries
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AuditEntry
// @Failure      401  {object}  map[string]string
// @Router       /logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	entries, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
