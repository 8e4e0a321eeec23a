package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

// PasienRepository menerima Queryer per pemanggilan supaya seluruh
// statement satu operasi logis berjalan pada transaksi yang sama.
type PasienRepository interface {
	FindIDByNIK(ctx context.Context, q mariadb.Queryer, nik string) (string, error)
	Insert(ctx context.Context, q mariadb.Queryer, in models.PasienInput) (string, error)
	UpdateDemografi(ctx context.Context, q mariadb.Queryer, id string, in models.PasienInput) (int64, error)
	GetByID(ctx context.Context, q mariadb.Queryer, id string) (*models.Pasien, error)
	List(ctx context.Context, q mariadb.Queryer, search string) ([]models.Pasien, error)
	ListDeleted(ctx context.Context, q mariadb.Queryer) ([]models.Pasien, error)
	SoftDelete(ctx context.Context, q mariadb.Queryer, id string) (int64, error)
	Restore(ctx context.Context, q mariadb.Queryer, id string) (int64, error)
	Purge(ctx context.Context, q mariadb.Queryer, id string) (int64, error)
}

type pasienMariaDB struct{}

func NewPasienRepository() PasienRepository {
	return &pasienMariaDB{}
}

const pasienCols = "id, nama, nik, umur, alamat, no_telp, deleted_at, is_purged, created_at, updated_at"

func scanPasien(row interface {
	Scan(dest ...interface{}) error
}) (*models.Pasien, error) {
	var p models.Pasien
	err := row.Scan(&p.ID, &p.Nama, &p.NIK, &p.Umur, &p.Alamat, &p.NoTelp,
		&p.DeletedAt, &p.IsPurged, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindIDByNIK mencari pasien non-purged berdasarkan NIK persis,
// tanpa memandang status soft-delete (lihat catatan di DESIGN.md).
func (r *pasienMariaDB) FindIDByNIK(ctx context.Context, q mariadb.Queryer, nik string) (string, error) {
	var id string
	err := q.QueryRowContext(ctx,
		"SELECT id FROM pasien WHERE nik = ? AND is_purged = 0", nik).Scan(&id)
	if err == sql.ErrNoRows {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *pasienMariaDB) Insert(ctx context.Context, q mariadb.Queryer, in models.PasienInput) (string, error) {
	id := uuid.NewString()
	var nik interface{}
	if s := strings.TrimSpace(in.NIK); s != "" {
		nik = s
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO pasien (id, nama, nik, umur, alamat, no_telp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		id, in.Nama, nik, in.Umur, in.Alamat, in.NoTelp)
	if err != nil {
		if mariadb.IsDuplicate(err) {
			return "", apperr.ErrConflict
		}
		return "", err
	}
	return id, nil
}

// UpdateDemografi menimpa field demografi; NIK tidak pernah diubah
// lewat jalur ini.
func (r *pasienMariaDB) UpdateDemografi(ctx context.Context, q mariadb.Queryer, id string, in models.PasienInput) (int64, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE pasien SET nama = ?, umur = ?, alamat = ?, no_telp = ?, updated_at = NOW()
		WHERE id = ? AND is_purged = 0`,
		in.Nama, in.Umur, in.Alamat, in.NoTelp, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *pasienMariaDB) GetByID(ctx context.Context, q mariadb.Queryer, id string) (*models.Pasien, error) {
	row := q.QueryRowContext(ctx,
		"SELECT "+pasienCols+" FROM pasien WHERE id = ? AND deleted_at IS NULL AND is_purged = 0", id)
	p, err := scanPasien(row)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pasienMariaDB) List(ctx context.Context, q mariadb.Queryer, search string) ([]models.Pasien, error) {
	query := "SELECT " + pasienCols + " FROM pasien WHERE deleted_at IS NULL AND is_purged = 0"
	var args []interface{}
	if search != "" {
		query += " AND (nama LIKE ? OR nik LIKE ?)"
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	query += " ORDER BY created_at DESC"
	return r.queryPasien(ctx, q, query, args...)
}

func (r *pasienMariaDB) ListDeleted(ctx context.Context, q mariadb.Queryer) ([]models.Pasien, error) {
	return r.queryPasien(ctx, q,
		"SELECT "+pasienCols+" FROM pasien WHERE deleted_at IS NOT NULL AND is_purged = 0 ORDER BY deleted_at DESC")
}

func (r *pasienMariaDB) queryPasien(ctx context.Context, q mariadb.Queryer, query string, args ...interface{}) ([]models.Pasien, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Pasien
	for rows.Next() {
		p, err := scanPasien(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *pasienMariaDB) SoftDelete(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE pasien SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL AND is_purged = 0", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *pasienMariaDB) Restore(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE pasien SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL AND is_purged = 0", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Purge bersifat permanen: baris ditandai is_purged dan NIK dilepas
// agar dapat dipakai pasien baru. Hanya sah dari status terhapus.
func (r *pasienMariaDB) Purge(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE pasien SET is_purged = 1, nik = NULL WHERE id = ? AND deleted_at IS NOT NULL AND is_purged = 0", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
