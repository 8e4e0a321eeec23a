package models

import "time"

// Ringkasan adalah agregat satu bulan berjalan; Laporan adalah baris
// ringkasan yang sudah disimpan.
type Ringkasan struct {
	Bulan            int `json:"bulan"`
	Tahun            int `json:"tahun"`
	JumlahANC        int `json:"jumlah_anc"`
	JumlahKB         int `json:"jumlah_kb"`
	JumlahImunisasi  int `json:"jumlah_imunisasi"`
	JumlahPersalinan int `json:"jumlah_persalinan"`
	JumlahKunjungan  int `json:"jumlah_kunjungan"`
	PasienBaru       int `json:"pasien_baru"`
}

type Laporan struct {
	ID string `json:"id"`
	Ringkasan
	CreatedAt time.Time `json:"created_at"`
}
