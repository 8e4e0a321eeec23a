package repositories

import (
	"context"

	"github.com/bidancare/bidan-backend/internal/laporan/models"
	pemeriksaanmodels "github.com/bidancare/bidan-backend/internal/pemeriksaan/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

type LaporanRepository interface {
	CountPemeriksaan(ctx context.Context, q mariadb.Queryer, jenis pemeriksaanmodels.JenisLayanan, bulan, tahun int) (int, error)
	CountPasienBaru(ctx context.Context, q mariadb.Queryer, bulan, tahun int) (int, error)
	Save(ctx context.Context, q mariadb.Queryer, id string, r models.Ringkasan) (string, error)
	List(ctx context.Context, q mariadb.Queryer) ([]models.Laporan, error)
}

type laporanMariaDB struct{}

func NewLaporanRepository() LaporanRepository {
	return &laporanMariaDB{}
}

// CountPemeriksaan menghitung pemeriksaan aktif satu jenis pada bulan
// tertentu; baris terhapus dan purged tidak masuk hitungan.
func (r *laporanMariaDB) CountPemeriksaan(ctx context.Context, q mariadb.Queryer, jenis pemeriksaanmodels.JenisLayanan, bulan, tahun int) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pemeriksaan
		WHERE jenis_layanan = ? AND MONTH(tanggal_pemeriksaan) = ? AND YEAR(tanggal_pemeriksaan) = ?
		  AND deleted_at IS NULL AND is_purged = 0`,
		jenis, bulan, tahun).Scan(&n)
	return n, err
}

func (r *laporanMariaDB) CountPasienBaru(ctx context.Context, q mariadb.Queryer, bulan, tahun int) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pasien
		WHERE MONTH(created_at) = ? AND YEAR(created_at) = ?
		  AND deleted_at IS NULL AND is_purged = 0`,
		bulan, tahun).Scan(&n)
	return n, err
}

// Save menimpa laporan bulan yang sama; unique index pada (bulan,
// tahun). Pada upsert baris lama mempertahankan id-nya, karena itu id
// yang benar-benar tersimpan dibaca ulang dan dikembalikan.
func (r *laporanMariaDB) Save(ctx context.Context, q mariadb.Queryer, id string, rk models.Ringkasan) (string, error) {
	_, err := q.ExecContext(ctx, `
		INSERT INTO laporan
			(id, bulan, tahun, jumlah_anc, jumlah_kb, jumlah_imunisasi,
			 jumlah_persalinan, jumlah_kunjungan, pasien_baru, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			jumlah_anc = VALUES(jumlah_anc), jumlah_kb = VALUES(jumlah_kb),
			jumlah_imunisasi = VALUES(jumlah_imunisasi),
			jumlah_persalinan = VALUES(jumlah_persalinan),
			jumlah_kunjungan = VALUES(jumlah_kunjungan),
			pasien_baru = VALUES(pasien_baru), created_at = NOW()`,
		id, rk.Bulan, rk.Tahun, rk.JumlahANC, rk.JumlahKB, rk.JumlahImunisasi,
		rk.JumlahPersalinan, rk.JumlahKunjungan, rk.PasienBaru)
	if err != nil {
		return "", err
	}

	var persisted string
	err = q.QueryRowContext(ctx,
		"SELECT id FROM laporan WHERE bulan = ? AND tahun = ?",
		rk.Bulan, rk.Tahun).Scan(&persisted)
	if err != nil {
		return "", err
	}
	return persisted, nil
}

func (r *laporanMariaDB) List(ctx context.Context, q mariadb.Queryer) ([]models.Laporan, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, bulan, tahun, jumlah_anc, jumlah_kb, jumlah_imunisasi,
		       jumlah_persalinan, jumlah_kunjungan, pasien_baru, created_at
		FROM laporan ORDER BY tahun DESC, bulan DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Laporan
	for rows.Next() {
		var l models.Laporan
		if err := rows.Scan(&l.ID, &l.Bulan, &l.Tahun, &l.JumlahANC, &l.JumlahKB,
			&l.JumlahImunisasi, &l.JumlahPersalinan, &l.JumlahKunjungan,
			&l.PasienBaru, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
