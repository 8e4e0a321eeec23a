package models

import "time"

// Pasien adalah entitas identitas. NIK unik selama non-NULL dan pasien
// belum dipurge (saat purge NIK dikosongkan agar unique index tetap
// hanya mengikat pasien non-purged).
type Pasien struct {
	ID        string     `json:"id"`
	Nama      string     `json:"nama"`
	NIK       *string    `json:"nik"`
	Umur      int        `json:"umur"`
	Alamat    string     `json:"alamat"`
	NoTelp    string     `json:"no_telp"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	IsPurged  bool       `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PasienInput adalah payload demografi, dipakai baik oleh endpoint
// pasien maupun sub-field "pasien" pada registrasi layanan.
type PasienInput struct {
	Nama   string `json:"nama"`
	NIK    string `json:"nik"`
	Umur   int    `json:"umur"`
	Alamat string `json:"alamat"`
	NoTelp string `json:"no_telp"`
}
