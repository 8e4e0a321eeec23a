package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/bidancare/bidan-backend/internal/auth/models"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

type OTPRepository interface {
	Upsert(ctx context.Context, q mariadb.Queryer, idUser, kode string, expiredAt time.Time) error
	Find(ctx context.Context, q mariadb.Queryer, idUser string) (*models.OTP, error)
	Delete(ctx context.Context, q mariadb.Queryer, idUser string) error
}

type otpMariaDB struct{}

func NewOTPRepository() OTPRepository {
	return &otpMariaDB{}
}

// Upsert menimpa kode lama user yang sama; unique index pada id_user
// menjamin hanya ada satu kode outstanding per user.
func (r *otpMariaDB) Upsert(ctx context.Context, q mariadb.Queryer, idUser, kode string, expiredAt time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO otp_codes (id, id_user, kode, expired_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE kode = VALUES(kode), expired_at = VALUES(expired_at)`,
		uuid.NewString(), idUser, kode, expiredAt)
	return err
}

func (r *otpMariaDB) Find(ctx context.Context, q mariadb.Queryer, idUser string) (*models.OTP, error) {
	var o models.OTP
	err := q.QueryRowContext(ctx,
		"SELECT id, id_user, kode, expired_at FROM otp_codes WHERE id_user = ?", idUser).
		Scan(&o.ID, &o.IDUser, &o.Kode, &o.ExpiredAt)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *otpMariaDB) Delete(ctx context.Context, q mariadb.Queryer, idUser string) error {
	_, err := q.ExecContext(ctx, "DELETE FROM otp_codes WHERE id_user = ?", idUser)
	return err
}
