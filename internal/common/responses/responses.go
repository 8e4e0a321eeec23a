package responses

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidancare/bidan-backend/config"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
)

// Amplop respons konsisten: { success, message, data?, errors? }.

func OK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Error memetakan error service ke status HTTP. Detail error tak dikenal
// disembunyikan di luar mode development.
func Error(c echo.Context, err error) error {
	code := apperr.StatusCode(err)
	body := map[string]interface{}{
		"success": false,
		"message": err.Error(),
		"data":    nil,
	}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		body["errors"] = ve.Fields
	}
	if code == http.StatusInternalServerError && config.LoadConfig().AppEnv != "development" {
		body["message"] = "terjadi kesalahan pada server"
	}
	return c.JSON(code, body)
}

// Fail dipakai untuk kegagalan yang status dan pesannya sudah diketahui
// di controller (mis. payload tidak bisa di-bind).
func Fail(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]interface{}{
		"success": false,
		"message": message,
		"data":    nil,
	})
}
