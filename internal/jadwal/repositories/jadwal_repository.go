package repositories

import (
	"context"
	"database/sql"

	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/jadwal/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

type JadwalRepository interface {
	Insert(ctx context.Context, q mariadb.Queryer, j *models.Jadwal) error
	Update(ctx context.Context, q mariadb.Queryer, id string, in models.JadwalInput) (int64, error)
	GetByID(ctx context.Context, q mariadb.Queryer, id string) (*models.Jadwal, error)
	List(ctx context.Context, q mariadb.Queryer) ([]models.Jadwal, error)
	ListByTanggal(ctx context.Context, q mariadb.Queryer, tanggal string) ([]models.Jadwal, error)
	SoftDelete(ctx context.Context, q mariadb.Queryer, id string) (int64, error)
}

type jadwalMariaDB struct{}

func NewJadwalRepository() JadwalRepository {
	return &jadwalMariaDB{}
}

const jadwalCols = `
	j.id, j.id_pasien, ps.nama, j.id_user, DATE_FORMAT(j.tanggal, '%Y-%m-%d'),
	j.jam, j.keterangan, j.status, j.deleted_at, j.created_at, j.updated_at`

func scanJadwal(row interface {
	Scan(dest ...interface{}) error
}) (*models.Jadwal, error) {
	var j models.Jadwal
	err := row.Scan(&j.ID, &j.IDPasien, &j.NamaPasien, &j.IDUser, &j.Tanggal,
		&j.Jam, &j.Keterangan, &j.Status, &j.DeletedAt, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jadwalMariaDB) Insert(ctx context.Context, q mariadb.Queryer, j *models.Jadwal) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO jadwal (id, id_pasien, id_user, tanggal, jam, keterangan, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		j.ID, j.IDPasien, j.IDUser, j.Tanggal, j.Jam, j.Keterangan, j.Status)
	return err
}

func (r *jadwalMariaDB) Update(ctx context.Context, q mariadb.Queryer, id string, in models.JadwalInput) (int64, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE jadwal SET tanggal = ?, jam = ?, keterangan = ?, status = ?, updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`,
		in.Tanggal, in.Jam, in.Keterangan, in.Status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *jadwalMariaDB) GetByID(ctx context.Context, q mariadb.Queryer, id string) (*models.Jadwal, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+jadwalCols+`
		FROM jadwal j JOIN pasien ps ON j.id_pasien = ps.id
		WHERE j.id = ? AND j.deleted_at IS NULL`, id)
	j, err := scanJadwal(row)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *jadwalMariaDB) List(ctx context.Context, q mariadb.Queryer) ([]models.Jadwal, error) {
	return r.queryJadwal(ctx, q, `
		SELECT `+jadwalCols+`
		FROM jadwal j JOIN pasien ps ON j.id_pasien = ps.id
		WHERE j.deleted_at IS NULL
		ORDER BY j.tanggal DESC, j.jam ASC`)
}

func (r *jadwalMariaDB) ListByTanggal(ctx context.Context, q mariadb.Queryer, tanggal string) ([]models.Jadwal, error) {
	return r.queryJadwal(ctx, q, `
		SELECT `+jadwalCols+`
		FROM jadwal j JOIN pasien ps ON j.id_pasien = ps.id
		WHERE j.tanggal = ? AND j.deleted_at IS NULL
		ORDER BY j.jam ASC`, tanggal)
}

func (r *jadwalMariaDB) queryJadwal(ctx context.Context, q mariadb.Queryer, query string, args ...interface{}) ([]models.Jadwal, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Jadwal
	for rows.Next() {
		j, err := scanJadwal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *j)
	}
	return result, rows.Err()
}

func (r *jadwalMariaDB) SoftDelete(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE jadwal SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
