package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidancare/bidan-backend/internal/common/middlewares"
	"github.com/bidancare/bidan-backend/internal/common/responses"
	"github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/internal/pasien/services"
)

type PasienController struct {
	Service *services.PasienService
}

func NewPasienController(service *services.PasienService) *PasienController {
	return &PasienController{Service: service}
}

func idUserDari(c echo.Context) string {
	if claims := middlewares.ClaimsFrom(c); claims != nil {
		return claims.IDUser
	}
	return ""
}

func (pc *PasienController) Create(c echo.Context) error {
	var in models.PasienInput
	if err := c.Bind(&in); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	id, err := pc.Service.Create(c.Request().Context(), idUserDari(c), in)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.Created(c, "Pasien berhasil didaftarkan", map[string]interface{}{
		"id": id,
	})
}

func (pc *PasienController) List(c echo.Context) error {
	result, err := pc.Service.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Daftar pasien berhasil diambil", result)
}

func (pc *PasienController) Get(c echo.Context) error {
	p, err := pc.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Data pasien berhasil diambil", p)
}

func (pc *PasienController) Update(c echo.Context) error {
	var in models.PasienInput
	if err := c.Bind(&in); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	if err := pc.Service.Update(c.Request().Context(), idUserDari(c), c.Param("id"), in); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Data pasien berhasil diperbarui", nil)
}

func (pc *PasienController) SoftDelete(c echo.Context) error {
	if err := pc.Service.SoftDelete(c.Request().Context(), idUserDari(c), c.Param("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Pasien berhasil dihapus", nil)
}

func (pc *PasienController) ListDeleted(c echo.Context) error {
	result, err := pc.Service.ListDeleted(c.Request().Context())
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Daftar pasien terhapus berhasil diambil", result)
}

func (pc *PasienController) Restore(c echo.Context) error {
	if err := pc.Service.Restore(c.Request().Context(), idUserDari(c), c.Param("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Pasien berhasil dipulihkan", nil)
}

func (pc *PasienController) Purge(c echo.Context) error {
	if err := pc.Service.Purge(c.Request().Context(), idUserDari(c), c.Param("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Pasien dihapus permanen", nil)
}
