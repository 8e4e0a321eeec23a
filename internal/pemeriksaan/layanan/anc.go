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

// ANC adalah payload kunjungan antenatal care.
type ANC struct {
	Pasien             pasienmodels.PasienInput `json:"pasien"`
	Tanggal            string                   `json:"tanggal_pemeriksaan"`
	HPHT               string                   `json:"hpht"`
	TaksiranPersalinan string                   `json:"taksiran_persalinan"`
	UsiaKehamilan      string                   `json:"usia_kehamilan"`
	NamaSuami          string                   `json:"nama_suami"`
	Keluhan            string                   `json:"keluhan"`
	HasilPemeriksaan   string                   `json:"hasil_pemeriksaan"`
}

var ANCDefinition = &Definition{
	Jenis:        models.LayananANC,
	Path:         "anc",
	Table:        "detail_anc",
	NewPayload:   func() Payload { return &ANC{} },
	SelectDetail: selectDetailANC,
}

func (a *ANC) Jenis() models.JenisLayanan           { return models.LayananANC }
func (a *ANC) DataPasien() pasienmodels.PasienInput { return a.Pasien }
func (a *ANC) TanggalPemeriksaan() string           { return a.Tanggal }

func (a *ANC) Validate() error {
	var fields []string
	if strings.TrimSpace(a.Pasien.Nama) == "" {
		fields = append(fields, "pasien.nama harus diisi")
	}
	if strings.TrimSpace(a.HPHT) == "" {
		fields = append(fields, "hpht harus diisi")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}

func (a *ANC) SOAP() models.SOAP {
	return models.SOAP{
		Subjektif: fmt.Sprintf("Kunjungan ANC. Keluhan: %s", orDash(a.Keluhan)),
		Objektif: fmt.Sprintf("HPHT: %s, TP: %s, usia kehamilan: %s",
			orDash(a.HPHT), orDash(a.TaksiranPersalinan), orDash(a.UsiaKehamilan)),
		Analisa:         orDash(a.HasilPemeriksaan),
		Penatalaksanaan: "Kontrol ANC berikutnya",
	}
}

func (a *ANC) InsertDetail(ctx context.Context, q mariadb.Queryer, idDetail, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO detail_anc
			(id, id_pemeriksaan, hpht, taksiran_persalinan, usia_kehamilan, nama_suami, keluhan, hasil_pemeriksaan)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		idDetail, idPemeriksaan,
		nullable(a.HPHT), nullable(a.TaksiranPersalinan), nullable(a.UsiaKehamilan),
		nullable(a.NamaSuami), nullable(a.Keluhan), nullable(a.HasilPemeriksaan))
	return err
}

func (a *ANC) UpdateDetail(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE detail_anc SET
			hpht = ?, taksiran_persalinan = ?, usia_kehamilan = ?,
			nama_suami = ?, keluhan = ?, hasil_pemeriksaan = ?
		WHERE id_pemeriksaan = ?`,
		nullable(a.HPHT), nullable(a.TaksiranPersalinan), nullable(a.UsiaKehamilan),
		nullable(a.NamaSuami), nullable(a.Keluhan), nullable(a.HasilPemeriksaan),
		idPemeriksaan)
	return err
}

func selectDetailANC(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) (map[string]interface{}, error) {
	var (
		id                                   string
		hpht, tp, usia, suami, keluhan, hasil sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, hpht, taksiran_persalinan, usia_kehamilan, nama_suami, keluhan, hasil_pemeriksaan
		FROM detail_anc WHERE id_pemeriksaan = ?`, idPemeriksaan).
		Scan(&id, &hpht, &tp, &usia, &suami, &keluhan, &hasil)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":                  id,
		"hpht":                nullString(hpht),
		"taksiran_persalinan": nullString(tp),
		"usia_kehamilan":      nullString(usia),
		"nama_suami":          nullString(suami),
		"keluhan":             nullString(keluhan),
		"hasil_pemeriksaan":   nullString(hasil),
	}, nil
}
