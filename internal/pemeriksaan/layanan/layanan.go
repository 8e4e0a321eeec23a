// Package layanan berisi tabel strategi untuk kelima jenis layanan:
// bentuk payload, validasi, template SOAP, dan SQL tabel detail.
// Protokol registrasi di package services bersifat generik dan hanya
// bergantung pada kontrak di file ini.
package layanan

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bidancare/bidan-backend/internal/pemeriksaan/models"
	pasienmodels "github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

// Payload adalah permintaan registrasi/update satu jenis layanan.
type Payload interface {
	Jenis() models.JenisLayanan
	Validate() error
	DataPasien() pasienmodels.PasienInput
	TanggalPemeriksaan() string
	SOAP() models.SOAP
	InsertDetail(ctx context.Context, q mariadb.Queryer, idDetail, idPemeriksaan string) error
	UpdateDetail(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) error
}

// Definition mendeskripsikan satu jenis layanan bagi protokol generik.
type Definition struct {
	Jenis        models.JenisLayanan
	Path         string
	Table        string
	NewPayload   func() Payload
	SelectDetail func(ctx context.Context, q mariadb.Queryer, idPemeriksaan string) (map[string]interface{}, error)
}

// Definitions mengembalikan kelima layanan dalam urutan route.
func Definitions() []*Definition {
	return []*Definition{
		ANCDefinition,
		KBDefinition,
		ImunisasiDefinition,
		PersalinanDefinition,
		KunjunganDefinition,
	}
}

// DefaultJam dipakai untuk field jam opsional yang tidak diisi.
const DefaultJam = "08:00:00"

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}

// nullable mengubah string kosong menjadi NULL di database.
func nullable(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.TrimSpace(s)
}

func nullString(s sql.NullString) interface{} {
	if !s.Valid {
		return nil
	}
	return s.String
}

func jamAtauDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return DefaultJam
	}
	return strings.TrimSpace(s)
}
