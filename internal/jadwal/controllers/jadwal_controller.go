package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidancare/bidan-backend/internal/common/middlewares"
	"github.com/bidancare/bidan-backend/internal/common/responses"
	"github.com/bidancare/bidan-backend/internal/jadwal/models"
	"github.com/bidancare/bidan-backend/internal/jadwal/services"
	"github.com/bidancare/bidan-backend/ws"
)

type JadwalController struct {
	Service *services.JadwalService
	Hub     *ws.Hub
}

func NewJadwalController(service *services.JadwalService, hub *ws.Hub) *JadwalController {
	return &JadwalController{Service: service, Hub: hub}
}

func idUserDari(c echo.Context) string {
	if claims := middlewares.ClaimsFrom(c); claims != nil {
		return claims.IDUser
	}
	return ""
}

func (jc *JadwalController) Create(c echo.Context) error {
	var in models.JadwalInput
	if err := c.Bind(&in); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	id, err := jc.Service.Create(c.Request().Context(), idUserDari(c), in)
	if err != nil {
		return responses.Error(c, err)
	}
	jc.Hub.BroadcastEvent("jadwal_baru", map[string]interface{}{
		"id":      id,
		"tanggal": in.Tanggal,
		"jam":     in.Jam,
	})
	return responses.Created(c, "Jadwal berhasil dibuat", map[string]interface{}{
		"id": id,
	})
}

func (jc *JadwalController) List(c echo.Context) error {
	result, err := jc.Service.List(c.Request().Context())
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Daftar jadwal berhasil diambil", result)
}

func (jc *JadwalController) ListHari(c echo.Context) error {
	result, err := jc.Service.ListByTanggal(c.Request().Context(), c.QueryParam("tanggal"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Jadwal hari ini berhasil diambil", result)
}

func (jc *JadwalController) Get(c echo.Context) error {
	j, err := jc.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Data jadwal berhasil diambil", j)
}

func (jc *JadwalController) Update(c echo.Context) error {
	var in models.JadwalInput
	if err := c.Bind(&in); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	if err := jc.Service.Update(c.Request().Context(), idUserDari(c), c.Param("id"), in); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Jadwal berhasil diperbarui", nil)
}

func (jc *JadwalController) SoftDelete(c echo.Context) error {
	if err := jc.Service.SoftDelete(c.Request().Context(), idUserDari(c), c.Param("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Jadwal berhasil dihapus", nil)
}
