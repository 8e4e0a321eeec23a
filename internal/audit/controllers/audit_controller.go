package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidancare/bidan-backend/internal/audit/models"
	"github.com/bidancare/bidan-backend/internal/audit/services"
	"github.com/bidancare/bidan-backend/internal/common/responses"
)

type AuditController struct {
	Service *services.AuditService
}

func NewAuditController(service *services.AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListAudit mengembalikan audit log terbaru dengan filter opsional
// aksi, kategori, username, dan rentang tanggal.
func (ac *AuditController) ListAudit(c echo.Context) error {
	dari, sampai, err := services.ParseRentang(c.QueryParam("dari"), c.QueryParam("sampai"))
	if err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Format tanggal tidak valid. Gunakan format YYYY-MM-DD")
	}
	f := models.AuditFilter{
		Aksi:     c.QueryParam("aksi"),
		Kategori: c.QueryParam("kategori"),
		Username: c.QueryParam("username"),
		Dari:     dari,
		Sampai:   sampai,
	}
	result, err := ac.Service.Query(c.Request().Context(), f)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Audit log berhasil diambil", result)
}

func (ac *AuditController) ListAkses(c echo.Context) error {
	result, err := ac.Service.QueryAkses(c.Request().Context())
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Log akses berhasil diambil", result)
}
