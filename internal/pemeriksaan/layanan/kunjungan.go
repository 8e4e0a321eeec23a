package layanan

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/models"
	pasienmodels "github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

// Kunjungan adalah payload kunjungan umum.
type Kunjungan struct {
	Pasien   pasienmodels.PasienInput `json:"pasien"`
	Tanggal  string                   `json:"tanggal_pemeriksaan"`
	Keluhan  string                   `json:"keluhan"`
	Diagnosa string                   `json:"diagnosa"`
	Terapi   string                   `json:"terapi"`
	JamMulai string                   `json:"jam_mulai"`
}

var KunjunganDefinition = &Definition{
	Jenis:        models.LayananKunjungan,
	Path:         "kunjungan",
	Table:        "detail_kunjungan",
	NewPayload:   func() Payload { return &Kunjungan{} },
	SelectDetail: selectDetailKunjungan,
}

func (k *Kunjungan) Jenis() models.JenisLayanan           { return models.LayananKunjungan }
func (k *Kunjungan) DataPasien() pasienmodels.PasienInput { return k.Pasien }
func (k *Kunjungan) TanggalPemeriksaan() string           { return k.Tanggal }

func (k *Kunjungan) Validate() error {
	var fields []string
	if strings.TrimSpace(k.Pasien.Nama) == "" {
		fields = append(fields, "pasien.nama harus diisi")
	}
	if strings.TrimSpace(k.Keluhan) == "" {
		fields = append(fields, "keluhan harus diisi")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}

func (k *Kunjungan) SOAP() models.SOAP {
	return models.SOAP{
		Subjektif:       orDash(k.Keluhan),
		Objektif:        "-",
		Analisa:         orDash(k.Diagnosa),
		Penatalaksanaan: orDash(k.Terapi),
	}
}

func (k *Kunjungan) InsertDetail(ctx context.Context, q mariadb.Queryer, idDetail, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO detail_kunjungan (id, id_pemeriksaan, keluhan, diagnosa, terapi, jam_mulai)
		VALUES (?, ?, ?, ?, ?, ?)`,
		idDetail, idPemeriksaan,
		k.Keluhan, nullable(k.Diagnosa), nullable(k.Terapi), jamAtauDefault(k.JamMulai))
	return err
}

func (k *Kunjungan) UpdateDetail(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE detail_kunjungan SET keluhan = ?, diagnosa = ?, terapi = ?, jam_mulai = ?
		WHERE id_pemeriksaan = ?`,
		k.Keluhan, nullable(k.Diagnosa), nullable(k.Terapi), jamAtauDefault(k.JamMulai),
		idPemeriksaan)
	return err
}

func selectDetailKunjungan(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) (map[string]interface{}, error) {
	var (
		id, keluhan, jam string
		diagnosa, terapi sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, keluhan, diagnosa, terapi, jam_mulai
		FROM detail_kunjungan WHERE id_pemeriksaan = ?`, idPemeriksaan).
		Scan(&id, &keluhan, &diagnosa, &terapi, &jam)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":        id,
		"keluhan":   keluhan,
		"diagnosa":  nullString(diagnosa),
		"terapi":    nullString(terapi),
		"jam_mulai": jam,
	}, nil
}
