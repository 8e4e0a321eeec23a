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

// Persalinan adalah payload pertolongan persalinan. Jam persalinan
// opsional; bila kosong disimpan sebagai jam default.
type Persalinan struct {
	Pasien           pasienmodels.PasienInput `json:"pasien"`
	Tanggal          string                   `json:"tanggal_pemeriksaan"`
	JenisPersalinan  string                   `json:"jenis_persalinan"`
	Penolong         string                   `json:"penolong"`
	JamPersalinan    string                   `json:"jam_persalinan"`
	JenisKelaminBayi string                   `json:"jenis_kelamin_bayi"`
	BeratBayi        string                   `json:"berat_bayi"`
	PanjangBayi      string                   `json:"panjang_bayi"`
}

var PersalinanDefinition = &Definition{
	Jenis:        models.LayananPersalinan,
	Path:         "persalinan",
	Table:        "detail_persalinan",
	NewPayload:   func() Payload { return &Persalinan{} },
	SelectDetail: selectDetailPersalinan,
}

func (p *Persalinan) Jenis() models.JenisLayanan           { return models.LayananPersalinan }
func (p *Persalinan) DataPasien() pasienmodels.PasienInput { return p.Pasien }
func (p *Persalinan) TanggalPemeriksaan() string           { return p.Tanggal }

func (p *Persalinan) Validate() error {
	var fields []string
	if strings.TrimSpace(p.Pasien.Nama) == "" {
		fields = append(fields, "pasien.nama harus diisi")
	}
	if strings.TrimSpace(p.JenisPersalinan) == "" {
		fields = append(fields, "jenis_persalinan harus diisi")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}

func (p *Persalinan) SOAP() models.SOAP {
	return models.SOAP{
		Subjektif: fmt.Sprintf("Persalinan %s", orDash(p.JenisPersalinan)),
		Objektif: fmt.Sprintf("Bayi %s, BB %s gram, PB %s cm",
			orDash(p.JenisKelaminBayi), orDash(p.BeratBayi), orDash(p.PanjangBayi)),
		Analisa: fmt.Sprintf("Persalinan %s ditolong %s",
			orDash(p.JenisPersalinan), orDash(p.Penolong)),
		Penatalaksanaan: "Observasi nifas",
	}
}

func (p *Persalinan) InsertDetail(ctx context.Context, q mariadb.Queryer, idDetail, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO detail_persalinan
			(id, id_pemeriksaan, jenis_persalinan, penolong, jam_persalinan,
			 jenis_kelamin_bayi, berat_bayi, panjang_bayi)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		idDetail, idPemeriksaan,
		p.JenisPersalinan, nullable(p.Penolong), jamAtauDefault(p.JamPersalinan),
		nullable(p.JenisKelaminBayi), nullable(p.BeratBayi), nullable(p.PanjangBayi))
	return err
}

func (p *Persalinan) UpdateDetail(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE detail_persalinan SET
			jenis_persalinan = ?, penolong = ?, jam_persalinan = ?,
			jenis_kelamin_bayi = ?, berat_bayi = ?, panjang_bayi = ?
		WHERE id_pemeriksaan = ?`,
		p.JenisPersalinan, nullable(p.Penolong), jamAtauDefault(p.JamPersalinan),
		nullable(p.JenisKelaminBayi), nullable(p.BeratBayi), nullable(p.PanjangBayi),
		idPemeriksaan)
	return err
}

func selectDetailPersalinan(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) (map[string]interface{}, error) {
	var (
		id, jenis, jam       string
		penolong, jk, bb, pb sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, jenis_persalinan, penolong, jam_persalinan, jenis_kelamin_bayi, berat_bayi, panjang_bayi
		FROM detail_persalinan WHERE id_pemeriksaan = ?`, idPemeriksaan).
		Scan(&id, &jenis, &penolong, &jam, &jk, &bb, &pb)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":                 id,
		"jenis_persalinan":   jenis,
		"penolong":           nullString(penolong),
		"jam_persalinan":     jam,
		"jenis_kelamin_bayi": nullString(jk),
		"berat_bayi":         nullString(bb),
		"panjang_bayi":       nullString(pb),
	}, nil
}
