package layanan

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/models"
	pasienmodels "github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

// Imunisasi adalah payload imunisasi bayi/balita. Sub-field pasien
// berisi data ibu sebagai identitas penanggung jawab.
type Imunisasi struct {
	Pasien          pasienmodels.PasienInput `json:"pasien"`
	Tanggal         string                   `json:"tanggal_pemeriksaan"`
	JenisImunisasi  string                   `json:"jenis_imunisasi"`
	BeratBadan      string                   `json:"berat_badan"`
	TinggiBadan     string                   `json:"tinggi_badan"`
	JadwalLanjutan  string                   `json:"jadwal_imunisasi_lanjutan"`
}

var ImunisasiDefinition = &Definition{
	Jenis:        models.LayananImunisasi,
	Path:         "imunisasi",
	Table:        "detail_imunisasi",
	NewPayload:   func() Payload { return &Imunisasi{} },
	SelectDetail: selectDetailImunisasi,
}

func (i *Imunisasi) Jenis() models.JenisLayanan           { return models.LayananImunisasi }
func (i *Imunisasi) DataPasien() pasienmodels.PasienInput { return i.Pasien }
func (i *Imunisasi) TanggalPemeriksaan() string           { return i.Tanggal }

func (i *Imunisasi) Validate() error {
	var fields []string
	if strings.TrimSpace(i.Pasien.Nama) == "" {
		fields = append(fields, "pasien.nama harus diisi")
	}
	if strings.TrimSpace(i.JenisImunisasi) == "" {
		fields = append(fields, "jenis_imunisasi harus diisi")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}

func (i *Imunisasi) SOAP() models.SOAP {
	return models.SOAP{
		Subjektif: fmt.Sprintf("Imunisasi %s", orDash(i.JenisImunisasi)),
		Objektif: fmt.Sprintf("BB: %s kg, TB: %s cm",
			orDash(i.BeratBadan), orDash(i.TinggiBadan)),
		Analisa:         "Bayi/balita sehat, layak imunisasi",
		Penatalaksanaan: fmt.Sprintf("Imunisasi lanjutan: %s", orDash(i.JadwalLanjutan)),
	}
}

func (i *Imunisasi) InsertDetail(ctx context.Context, q mariadb.Queryer, idDetail, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO detail_imunisasi
			(id, id_pemeriksaan, jenis_imunisasi, berat_badan, tinggi_badan, jadwal_imunisasi_lanjutan)
		VALUES (?, ?, ?, ?, ?, ?)`,
		idDetail, idPemeriksaan,
		i.JenisImunisasi, nullable(i.BeratBadan), nullable(i.TinggiBadan), nullable(i.JadwalLanjutan))
	return err
}

func (i *Imunisasi) UpdateDetail(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE detail_imunisasi SET
			jenis_imunisasi = ?, berat_badan = ?, tinggi_badan = ?, jadwal_imunisasi_lanjutan = ?
		WHERE id_pemeriksaan = ?`,
		i.JenisImunisasi, nullable(i.BeratBadan), nullable(i.TinggiBadan), nullable(i.JadwalLanjutan),
		idPemeriksaan)
	return err
}

func selectDetailImunisasi(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) (map[string]interface{}, error) {
	var (
		id, jenis        string
		bb, tb, lanjutan sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, jenis_imunisasi, berat_badan, tinggi_badan, jadwal_imunisasi_lanjutan
		FROM detail_imunisasi WHERE id_pemeriksaan = ?`, idPemeriksaan).
		Scan(&id, &jenis, &bb, &tb, &lanjutan)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":                        id,
		"jenis_imunisasi":           jenis,
		"berat_badan":               nullString(bb),
		"tinggi_badan":              nullString(tb),
		"jadwal_imunisasi_lanjutan": nullString(lanjutan),
	}, nil
}
