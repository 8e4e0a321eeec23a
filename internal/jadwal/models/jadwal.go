package models

import "time"

const (
	StatusTerjadwal = "terjadwal"
	StatusSelesai   = "selesai"
	StatusBatal     = "batal"
)

type Jadwal struct {
	ID         string     `json:"id"`
	IDPasien   string     `json:"id_pasien"`
	NamaPasien string     `json:"nama_pasien,omitempty"`
	IDUser     string     `json:"id_user"`
	Tanggal    string     `json:"tanggal"`
	Jam        string     `json:"jam"`
	Keterangan string     `json:"keterangan"`
	Status     string     `json:"status"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type JadwalInput struct {
	IDPasien   string `json:"id_pasien"`
	Tanggal    string `json:"tanggal"`
	Jam        string `json:"jam"`
	Keterangan string `json:"keterangan"`
	Status     string `json:"status"`
}
