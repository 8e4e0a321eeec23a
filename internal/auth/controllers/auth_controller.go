package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidancare/bidan-backend/internal/auth/models"
	"github.com/bidancare/bidan-backend/internal/auth/services"
	"github.com/bidancare/bidan-backend/internal/common/responses"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	email, err := ac.Service.Login(c.Request().Context(), req, c.RealIP())
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Kode OTP telah dikirim", map[string]interface{}{
		"email": email,
	})
}

func (ac *AuthController) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	token, user, err := ac.Service.VerifyOTP(c.Request().Context(), req)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Login berhasil", map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id_user":  user.ID,
			"username": user.Username,
			"email":    user.Email,
			"nama":     user.Nama,
		},
	})
}

func (ac *AuthController) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	if err := ac.Service.ForgotPassword(c.Request().Context(), req); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Jika email terdaftar, tautan reset telah dikirim", nil)
}

func (ac *AuthController) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return responses.Fail(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	}
	token := c.Request().Header.Get("X-Reset-Token")
	if err := ac.Service.ResetPassword(c.Request().Context(), token, req); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Password berhasil diperbarui", nil)
}
