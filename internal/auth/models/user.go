package models

import "time"

type User struct {
	ID        string    `json:"id_user"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Nama      string    `json:"nama"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OTP adalah kode verifikasi login. Satu user hanya punya satu kode
// outstanding; kode baru menimpa yang lama.
type OTP struct {
	ID        string
	IDUser    string
	Kode      string
	ExpiredAt time.Time
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type VerifyOTPRequest struct {
	Username string `json:"username"`
	Kode     string `json:"kode_otp"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	IDUser       string `json:"id_user"`
	PasswordBaru string `json:"password_baru"`
}
