package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidancare/bidan-backend/internal/common/middlewares"
	"github.com/bidancare/bidan-backend/internal/common/responses"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/layanan"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/services"
	"github.com/bidancare/bidan-backend/ws"
)

// LayananController adalah controller generik yang diinstansiasi sekali
// per layanan.Definition. Handler-nya identik untuk kelima layanan.
type LayananController struct {
	Service *services.RegistrasiService
	Def     *layanan.Definition
	Hub     *ws.Hub
}

func NewLayananController(service *services.RegistrasiService, def *layanan.Definition, hub *ws.Hub) *LayananController {
	return &LayananController{Service: service, Def: def, Hub: hub}
}

func idUserDari(c echo.Context) string {
	if claims := middlewares.ClaimsFrom(c); claims != nil {
		return claims.IDUser
	}
	return ""
}

func (lc *LayananController) Create(c echo.Context) error {
	payload := lc.Def.NewPayload()
	if err := c.Bind(payload); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	result, err := lc.Service.Register(c.Request().Context(), lc.Def, idUserDari(c), payload)
	if err != nil {
		return responses.Error(c, err)
	}
	lc.Hub.BroadcastEvent(fmt.Sprintf("%s_baru", lc.Def.Path), result)
	return responses.Created(c, fmt.Sprintf("Registrasi %s berhasil", lc.Def.Path), result)
}

func (lc *LayananController) List(c echo.Context) error {
	result, err := lc.Service.List(c.Request().Context(), lc.Def, c.QueryParam("search"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fmt.Sprintf("Daftar %s berhasil diambil", lc.Def.Path), result)
}

func (lc *LayananController) Get(c echo.Context) error {
	result, err := lc.Service.Get(c.Request().Context(), lc.Def, c.Param("id"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fmt.Sprintf("Data %s berhasil diambil", lc.Def.Path), result)
}

func (lc *LayananController) Update(c echo.Context) error {
	payload := lc.Def.NewPayload()
	if err := c.Bind(payload); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	if err := lc.Service.Update(c.Request().Context(), lc.Def, idUserDari(c), c.Param("id"), payload); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fmt.Sprintf("Data %s berhasil diperbarui", lc.Def.Path), nil)
}

func (lc *LayananController) SoftDelete(c echo.Context) error {
	if err := lc.Service.SoftDelete(c.Request().Context(), lc.Def, idUserDari(c), c.Param("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fmt.Sprintf("Data %s berhasil dihapus", lc.Def.Path), nil)
}

func (lc *LayananController) ListDeleted(c echo.Context) error {
	result, err := lc.Service.ListDeleted(c.Request().Context(), lc.Def)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fmt.Sprintf("Daftar %s terhapus berhasil diambil", lc.Def.Path), result)
}

func (lc *LayananController) Restore(c echo.Context) error {
	if err := lc.Service.Restore(c.Request().Context(), lc.Def, idUserDari(c), c.Param("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fmt.Sprintf("Data %s berhasil dipulihkan", lc.Def.Path), nil)
}

func (lc *LayananController) Purge(c echo.Context) error {
	if err := lc.Service.Purge(c.Request().Context(), lc.Def, idUserDari(c), c.Param("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fmt.Sprintf("Data %s dihapus permanen", lc.Def.Path), nil)
}
