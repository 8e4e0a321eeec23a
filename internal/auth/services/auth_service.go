package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bidancare/bidan-backend/config"
	auditmodels "github.com/bidancare/bidan-backend/internal/audit/models"
	auditservices "github.com/bidancare/bidan-backend/internal/audit/services"
	"github.com/bidancare/bidan-backend/internal/auth/models"
	"github.com/bidancare/bidan-backend/internal/auth/repositories"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/pkg/mail"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
	"github.com/bidancare/bidan-backend/pkg/utils"
)

const kategoriUser = "users"

// AuthService memakai alur dua tahap: login password menghasilkan OTP
// yang dikirim ke email user, verifikasi OTP menghasilkan access token.
type AuthService struct {
	Cfg    *config.Config
	Store  mariadb.Store
	Users  repositories.UserRepository
	OTP    repositories.OTPRepository
	Mailer mail.Mailer
	Audit  *auditservices.AuditService
	Log    zerolog.Logger
}

func NewAuthService(cfg *config.Config, store mariadb.Store, users repositories.UserRepository,
	otp repositories.OTPRepository, mailer mail.Mailer, audit *auditservices.AuditService,
	log zerolog.Logger) *AuthService {
	return &AuthService{
		Cfg:    cfg,
		Store:  store,
		Users:  users,
		OTP:    otp,
		Mailer: mailer,
		Audit:  audit,
		Log:    log,
	}
}

// Login memverifikasi kredensial lalu mengirim OTP ke email user.
// Username dan password salah menghasilkan error yang sama agar tidak
// membocorkan keberadaan akun. Setiap percobaan dicatat di log akses.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, ip string) (string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return "", apperr.NewValidation("username dan password harus diisi")
	}

	user, err := s.Users.FindByUsername(ctx, s.Store, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.Audit.RecordAkses(username, false, ip)
			return "", apperr.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.Audit.RecordAkses(username, false, ip)
		return "", apperr.ErrInvalidCredentials
	}

	kode, err := utils.GenerateOTP()
	if err != nil {
		return "", err
	}
	berlaku := time.Duration(s.Cfg.OTPExpiryMinutes) * time.Minute
	if err := s.OTP.Upsert(ctx, s.Store, user.ID, kode, time.Now().Add(berlaku)); err != nil {
		return "", err
	}
	if err := s.Mailer.SendOTP(user.Email, kode, berlaku); err != nil {
		s.Log.Error().Err(err).Str("username", username).Msg("gagal mengirim email OTP")
		return "", err
	}

	s.Audit.RecordAkses(username, true, ip)
	return maskEmail(user.Email), nil
}

// VerifyOTP menukar OTP yang valid dengan access token. Kode yang
// terpakai langsung dihapus, kadaluarsa atau salah ditolak.
func (s *AuthService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (string, *models.User, error) {
	username := strings.TrimSpace(req.Username)
	kode := strings.TrimSpace(req.Kode)
	if username == "" || kode == "" {
		return "", nil, apperr.NewValidation("username dan kode_otp harus diisi")
	}

	user, err := s.Users.FindByUsername(ctx, s.Store, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, apperr.ErrInvalidOTP
		}
		return "", nil, err
	}

	otp, err := s.OTP.Find(ctx, s.Store, user.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, apperr.ErrInvalidOTP
		}
		return "", nil, err
	}
	if otp.Kode != kode {
		return "", nil, apperr.ErrInvalidOTP
	}
	if time.Now().After(otp.ExpiredAt) {
		return "", nil, apperr.ErrExpiredOTP
	}
	if err := s.OTP.Delete(ctx, s.Store, user.ID); err != nil {
		return "", nil, err
	}

	exp := time.Now().Add(time.Duration(s.Cfg.JWTExpiryMinutes) * time.Minute)
	token, err := utils.GenerateToken(s.Cfg.JWTSecret, user.ID, user.Username, user.Email, exp)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ForgotPassword mengirim token reset berumur pendek ke email terdaftar.
// Email tidak terdaftar tetap dijawab sukses agar tidak bisa dipakai
// menebak akun.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return apperr.NewValidation("email harus diisi")
	}

	user, err := s.Users.FindByEmail(ctx, s.Store, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.Log.Info().Str("email", email).Msg("forgot password untuk email tak terdaftar")
			return nil
		}
		return err
	}

	exp := time.Now().Add(time.Duration(s.Cfg.OTPExpiryMinutes) * time.Minute)
	token, err := utils.GenerateResetToken(s.Cfg.JWTSecret, user.ID, exp)
	if err != nil {
		return err
	}
	if err := s.Mailer.SendResetLink(user.Email, token); err != nil {
		s.Log.Error().Err(err).Str("email", email).Msg("gagal mengirim email reset")
		return err
	}
	return nil
}

// ResetPassword memvalidasi reset token dari header lalu mengganti
// password user yang dirujuk token tersebut. id_user pada body wajib
// sama dengan subjek token; token orang lain tidak bisa dipakai.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken string, req models.ResetPasswordRequest) error {
	if strings.TrimSpace(resetToken) == "" {
		return apperr.ErrUnauthorized
	}
	var fields []string
	if strings.TrimSpace(req.IDUser) == "" {
		fields = append(fields, "id_user harus diisi")
	}
	if len(req.PasswordBaru) < 8 {
		fields = append(fields, "password_baru minimal 8 karakter")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}

	claims, err := utils.ValidateToken(s.Cfg.JWTSecret, resetToken)
	if err != nil {
		return apperr.ErrUnauthorized
	}
	if !claims.IsReset {
		return apperr.ErrForbidden
	}
	if req.IDUser != claims.IDUser {
		return apperr.ErrForbidden
	}

	user, err := s.Users.FindByID(ctx, s.Store, claims.IDUser)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PasswordBaru), s.Cfg.BcryptCost)
	if err != nil {
		return err
	}
	affected, err := s.Users.UpdatePassword(ctx, s.Store, user.ID, string(hash))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}

	s.Audit.Record(&claims.IDUser, auditmodels.AksiUpdate, kategoriUser, claims.IDUser)
	return nil
}

// maskEmail menyamarkan alamat untuk ditampilkan di respons login.
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 2 {
		return email
	}
	return email[:2] + strings.Repeat("*", at-2) + email[at:]
}
