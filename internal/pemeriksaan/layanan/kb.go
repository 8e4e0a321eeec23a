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

// KB adalah payload pelayanan keluarga berencana.
type KB struct {
	Pasien         pasienmodels.PasienInput `json:"pasien"`
	Tanggal        string                   `json:"tanggal_pemeriksaan"`
	JenisKB        string                   `json:"jenis_kb"`
	Keluhan        string                   `json:"keluhan"`
	Tindakan       string                   `json:"tindakan"`
	TanggalKontrol string                   `json:"tanggal_kontrol"`
}

var KBDefinition = &Definition{
	Jenis:        models.LayananKB,
	Path:         "kb",
	Table:        "detail_kb",
	NewPayload:   func() Payload { return &KB{} },
	SelectDetail: selectDetailKB,
}

func (k *KB) Jenis() models.JenisLayanan           { return models.LayananKB }
func (k *KB) DataPasien() pasienmodels.PasienInput { return k.Pasien }
func (k *KB) TanggalPemeriksaan() string           { return k.Tanggal }

func (k *KB) Validate() error {
	var fields []string
	if strings.TrimSpace(k.Pasien.Nama) == "" {
		fields = append(fields, "pasien.nama harus diisi")
	}
	if strings.TrimSpace(k.JenisKB) == "" {
		fields = append(fields, "jenis_kb harus diisi")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}

func (k *KB) SOAP() models.SOAP {
	return models.SOAP{
		Subjektif: fmt.Sprintf("Pelayanan KB %s. Keluhan: %s", orDash(k.JenisKB), orDash(k.Keluhan)),
		Objektif:  "-",
		Analisa:   fmt.Sprintf("Akseptor KB %s", orDash(k.JenisKB)),
		Penatalaksanaan: fmt.Sprintf("Tindakan: %s. Kontrol: %s",
			orDash(k.Tindakan), orDash(k.TanggalKontrol)),
	}
}

func (k *KB) InsertDetail(ctx context.Context, q mariadb.Queryer, idDetail, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO detail_kb (id, id_pemeriksaan, jenis_kb, keluhan, tindakan, tanggal_kontrol)
		VALUES (?, ?, ?, ?, ?, ?)`,
		idDetail, idPemeriksaan,
		k.JenisKB, nullable(k.Keluhan), nullable(k.Tindakan), nullable(k.TanggalKontrol))
	return err
}

func (k *KB) UpdateDetail(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE detail_kb SET jenis_kb = ?, keluhan = ?, tindakan = ?, tanggal_kontrol = ?
		WHERE id_pemeriksaan = ?`,
		k.JenisKB, nullable(k.Keluhan), nullable(k.Tindakan), nullable(k.TanggalKontrol),
		idPemeriksaan)
	return err
}

func selectDetailKB(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) (map[string]interface{}, error) {
	var (
		id, jenis                  string
		keluhan, tindakan, kontrol sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, jenis_kb, keluhan, tindakan, tanggal_kontrol
		FROM detail_kb WHERE id_pemeriksaan = ?`, idPemeriksaan).
		Scan(&id, &jenis, &keluhan, &tindakan, &kontrol)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":              id,
		"jenis_kb":        jenis,
		"keluhan":         nullString(keluhan),
		"tindakan":        nullString(tindakan),
		"tanggal_kontrol": nullString(kontrol),
	}, nil
}
