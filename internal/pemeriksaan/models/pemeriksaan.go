package models

import "time"

// JenisLayanan adalah diskriminator jenis layanan pada satu pemeriksaan.
type JenisLayanan string

const (
	LayananANC        JenisLayanan = "ANC"
	LayananKB         JenisLayanan = "KB"
	LayananImunisasi  JenisLayanan = "Imunisasi"
	LayananPersalinan JenisLayanan = "Persalinan"
	LayananKunjungan  JenisLayanan = "Kunjungan"
)

// SOAP adalah empat field catatan klinis bebas pada setiap pemeriksaan.
type SOAP struct {
	Subjektif       string `json:"subjektif"`
	Objektif        string `json:"objektif"`
	Analisa         string `json:"analisa"`
	Penatalaksanaan string `json:"penatalaksanaan"`
}

// Pemeriksaan adalah satu encounter klinis. Baris detail per layanan
// selalu 1:1 dan mengikuti status soft-delete baris ini.
type Pemeriksaan struct {
	ID        string       `json:"id"`
	IDPasien  string       `json:"id_pasien"`
	Jenis     JenisLayanan `json:"jenis_layanan"`
	SOAP
	Tanggal   time.Time  `json:"tanggal_pemeriksaan"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	IsPurged  bool       `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
