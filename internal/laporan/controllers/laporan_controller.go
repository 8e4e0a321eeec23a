package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bidancare/bidan-backend/internal/common/middlewares"
	"github.com/bidancare/bidan-backend/internal/common/responses"
	"github.com/bidancare/bidan-backend/internal/laporan/services"
)

type LaporanController struct {
	Service *services.LaporanService
}

func NewLaporanController(service *services.LaporanService) *LaporanController {
	return &LaporanController{Service: service}
}

func periodeDari(c echo.Context) (int, int) {
	bulan, _ := strconv.Atoi(c.QueryParam("bulan"))
	tahun, _ := strconv.Atoi(c.QueryParam("tahun"))
	return bulan, tahun
}

func (lc *LaporanController) Ringkasan(c echo.Context) error {
	bulan, tahun := periodeDari(c)
	r, err := lc.Service.Ringkasan(c.Request().Context(), bulan, tahun)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Ringkasan laporan berhasil diambil", r)
}

func (lc *LaporanController) Simpan(c echo.Context) error {
	var req struct {
		Bulan int `json:"bulan"`
		Tahun int `json:"tahun"`
	}
	if err := c.Bind(&req); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	idUser := ""
	if claims := middlewares.ClaimsFrom(c); claims != nil {
		idUser = claims.IDUser
	}
	r, err := lc.Service.Simpan(c.Request().Context(), idUser, req.Bulan, req.Tahun)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.Created(c, "Laporan bulanan berhasil disimpan", r)
}

func (lc *LaporanController) List(c echo.Context) error {
	result, err := lc.Service.List(c.Request().Context())
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Daftar laporan berhasil diambil", result)
}
