package models

import "time"

// Aksi yang dicatat pada audit trail.
const (
	AksiCreate  = "CREATE"
	AksiUpdate  = "UPDATE"
	AksiDelete  = "DELETE"
	AksiRestore = "RESTORE"
)

// AuditLog adalah fakta append-only; tidak pernah diubah atau dihapus.
type AuditLog struct {
	ID        string     `json:"id"`
	IDUser    *string    `json:"id_user"`
	Username  string     `json:"username,omitempty"`
	Aksi      string     `json:"aksi"`
	Kategori  string     `json:"kategori"`
	IDEntitas string     `json:"id_entitas"`
	CreatedAt time.Time  `json:"created_at"`
}

// AksesLog mencatat setiap percobaan login.
type AksesLog struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Sukses    bool      `json:"sukses"`
	IPAddr    string    `json:"ip_addr"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter query audit log. Semua field opsional.
type AuditFilter struct {
	Aksi     string
	Kategori string
	Username string
	Dari     *time.Time
	Sampai   *time.Time
}
