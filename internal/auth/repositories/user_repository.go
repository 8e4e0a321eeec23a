package repositories

import (
	"context"
	"database/sql"

	"github.com/bidancare/bidan-backend/internal/auth/models"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, q mariadb.Queryer, username string) (*models.User, error)
	FindByEmail(ctx context.Context, q mariadb.Queryer, email string) (*models.User, error)
	FindByID(ctx context.Context, q mariadb.Queryer, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, q mariadb.Queryer, id, hash string) (int64, error)
}

type userMariaDB struct{}

func NewUserRepository() UserRepository {
	return &userMariaDB{}
}

const userCols = "id, username, email, password, nama, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Nama,
		&u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userMariaDB) FindByUsername(ctx context.Context, q mariadb.Queryer, username string) (*models.User, error) {
	return scanUser(q.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username = ?", username))
}

func (r *userMariaDB) FindByEmail(ctx context.Context, q mariadb.Queryer, email string) (*models.User, error) {
	return scanUser(q.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email = ?", email))
}

func (r *userMariaDB) FindByID(ctx context.Context, q mariadb.Queryer, id string) (*models.User, error) {
	return scanUser(q.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id = ?", id))
}

func (r *userMariaDB) UpdatePassword(ctx context.Context, q mariadb.Queryer, id, hash string) (int64, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE users SET password = ?, updated_at = NOW() WHERE id = ?", hash, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
