package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

type PemeriksaanRepository interface {
	Insert(ctx context.Context, q mariadb.Queryer, p *models.Pemeriksaan) error
	UpdateSOAP(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan, soap models.SOAP, tanggal time.Time) (int64, error)
	GetActive(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (map[string]interface{}, error)
	List(ctx context.Context, q mariadb.Queryer, jenis models.JenisLayanan, search string) ([]map[string]interface{}, error)
	ListDeleted(ctx context.Context, q mariadb.Queryer, jenis models.JenisLayanan) ([]map[string]interface{}, error)
	SoftDelete(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error)
	Restore(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error)
	Purge(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error)
}

type pemeriksaanMariaDB struct{}

func NewPemeriksaanRepository() PemeriksaanRepository {
	return &pemeriksaanMariaDB{}
}

func (r *pemeriksaanMariaDB) Insert(ctx context.Context, q mariadb.Queryer, p *models.Pemeriksaan) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO pemeriksaan
			(id, id_pasien, jenis_layanan, subjektif, objektif, analisa, penatalaksanaan,
			 tanggal_pemeriksaan, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		p.ID, p.IDPasien, p.Jenis,
		p.Subjektif, p.Objektif, p.Analisa, p.Penatalaksanaan, p.Tanggal)
	return err
}

// UpdateSOAP hanya mengenai baris aktif; baris terhapus atau purged
// dianggap tidak ada.
func (r *pemeriksaanMariaDB) UpdateSOAP(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan, soap models.SOAP, tanggal time.Time) (int64, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE pemeriksaan SET
			subjektif = ?, objektif = ?, analisa = ?, penatalaksanaan = ?,
			tanggal_pemeriksaan = ?, updated_at = NOW()
		WHERE id = ? AND jenis_layanan = ? AND deleted_at IS NULL AND is_purged = 0`,
		soap.Subjektif, soap.Objektif, soap.Analisa, soap.Penatalaksanaan,
		tanggal, id, jenis)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const ringkasanCols = `
	pm.id, pm.id_pasien, ps.nama, ps.nik, ps.umur,
	pm.subjektif, pm.objektif, pm.analisa, pm.penatalaksanaan,
	pm.tanggal_pemeriksaan, pm.deleted_at`

func scanRingkasan(rows interface {
	Scan(dest ...interface{}) error
}) (map[string]interface{}, error) {
	var (
		id, idPasien, nama          string
		nik                         sql.NullString
		umur                        int
		subj, obj, analisa, plan    string
		tanggal                     time.Time
		deletedAt                   sql.NullTime
	)
	if err := rows.Scan(&id, &idPasien, &nama, &nik, &umur,
		&subj, &obj, &analisa, &plan, &tanggal, &deletedAt); err != nil {
		return nil, err
	}
	row := map[string]interface{}{
		"id":                  id,
		"id_pasien":           idPasien,
		"nama":                nama,
		"nik":                 nil,
		"umur":                umur,
		"subjektif":           subj,
		"objektif":            obj,
		"analisa":             analisa,
		"penatalaksanaan":     plan,
		"tanggal_pemeriksaan": tanggal.Format("2006-01-02"),
	}
	if nik.Valid {
		row["nik"] = nik.String
	}
	if deletedAt.Valid {
		row["deleted_at"] = deletedAt.Time
	}
	return row, nil
}

// GetActive mengembalikan satu pemeriksaan aktif beserta demografi
// pasiennya. Pemeriksaan milik pasien yang terhapus ikut tersembunyi.
func (r *pemeriksaanMariaDB) GetActive(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (map[string]interface{}, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+ringkasanCols+`
		FROM pemeriksaan pm
		JOIN pasien ps ON pm.id_pasien = ps.id
		WHERE pm.id = ? AND pm.jenis_layanan = ?
		  AND pm.deleted_at IS NULL AND pm.is_purged = 0
		  AND ps.deleted_at IS NULL AND ps.is_purged = 0`, id, jenis)
	result, err := scanRingkasan(row)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *pemeriksaanMariaDB) List(ctx context.Context, q mariadb.Queryer, jenis models.JenisLayanan, search string) ([]map[string]interface{}, error) {
	query := `
		SELECT ` + ringkasanCols + `
		FROM pemeriksaan pm
		JOIN pasien ps ON pm.id_pasien = ps.id
		WHERE pm.jenis_layanan = ?
		  AND pm.deleted_at IS NULL AND pm.is_purged = 0
		  AND ps.deleted_at IS NULL AND ps.is_purged = 0`
	args := []interface{}{jenis}
	if search != "" {
		query += " AND (ps.nama LIKE ? OR ps.nik LIKE ?)"
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	query += " ORDER BY pm.tanggal_pemeriksaan DESC, pm.created_at DESC"
	return r.queryRingkasan(ctx, q, query, args...)
}

// ListDeleted menampilkan pemeriksaan soft-deleted yang belum purged,
// tanpa filter status pasien supaya riwayat tetap bisa dipulihkan.
func (r *pemeriksaanMariaDB) ListDeleted(ctx context.Context, q mariadb.Queryer, jenis models.JenisLayanan) ([]map[string]interface{}, error) {
	return r.queryRingkasan(ctx, q, `
		SELECT `+ringkasanCols+`
		FROM pemeriksaan pm
		JOIN pasien ps ON pm.id_pasien = ps.id
		WHERE pm.jenis_layanan = ?
		  AND pm.deleted_at IS NOT NULL AND pm.is_purged = 0
		ORDER BY pm.deleted_at DESC`, jenis)
}

func (r *pemeriksaanMariaDB) queryRingkasan(ctx context.Context, q mariadb.Queryer, query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		row, err := scanRingkasan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *pemeriksaanMariaDB) SoftDelete(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE pemeriksaan SET deleted_at = NOW()
		WHERE id = ? AND jenis_layanan = ? AND deleted_at IS NULL AND is_purged = 0`,
		id, jenis)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *pemeriksaanMariaDB) Restore(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE pemeriksaan SET deleted_at = NULL
		WHERE id = ? AND jenis_layanan = ? AND deleted_at IS NOT NULL AND is_purged = 0`,
		id, jenis)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Purge menandai permanen; hanya sah dari status terhapus. Baris detail
// dibiarkan utuh dan mengikuti status induknya secara logis.
func (r *pemeriksaanMariaDB) Purge(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE pemeriksaan SET is_purged = 1
		WHERE id = ? AND jenis_layanan = ? AND deleted_at IS NOT NULL AND is_purged = 0`,
		id, jenis)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
