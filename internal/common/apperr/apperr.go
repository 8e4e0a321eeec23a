package apperr

import (
	"errors"
	"net/http"
)

// Taksonomi error bersama seluruh modul layanan. Controller memetakan
// sentinel ini ke status HTTP; error lain menjadi 500.
var (
	ErrNotFound           = errors.New("data tidak ditemukan")
	ErrConflict           = errors.New("data sudah terdaftar")
	ErrInvalidCredentials = errors.New("username atau password salah")
	ErrInvalidOTP         = errors.New("kode OTP tidak valid")
	ErrExpiredOTP         = errors.New("kode OTP sudah kedaluwarsa")
	ErrUnauthorized       = errors.New("tidak terautentikasi")
	ErrForbidden          = errors.New("anda tidak memiliki hak akses")
)

// ValidationError membawa daftar pesan per field untuk respons 400.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validasi gagal"
}

func NewValidation(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// StatusCode memetakan error ke status HTTP sesuai kontrak API.
func StatusCode(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidOTP),
		errors.Is(err, ErrExpiredOTP):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
