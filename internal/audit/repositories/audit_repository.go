package repositories

import (
	"context"
	"strings"

	"github.com/bidancare/bidan-backend/internal/audit/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

type AuditRepository interface {
	Insert(ctx context.Context, q mariadb.Queryer, entry *models.AuditLog) error
	InsertAkses(ctx context.Context, q mariadb.Queryer, entry *models.AksesLog) error
	Query(ctx context.Context, q mariadb.Queryer, f models.AuditFilter, limit int) ([]models.AuditLog, error)
	QueryAkses(ctx context.Context, q mariadb.Queryer, limit int) ([]models.AksesLog, error)
}

type auditMariaDB struct{}

func NewAuditRepository() AuditRepository {
	return &auditMariaDB{}
}

func (r *auditMariaDB) Insert(ctx context.Context, q mariadb.Queryer, e *models.AuditLog) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO audit_logs (id, id_user, aksi, kategori, id_entitas, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		e.ID, e.IDUser, e.Aksi, e.Kategori, e.IDEntitas)
	return err
}

func (r *auditMariaDB) InsertAkses(ctx context.Context, q mariadb.Queryer, e *models.AksesLog) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO audit_log_akses (id, username, sukses, ip_addr, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		e.ID, e.Username, e.Sukses, e.IPAddr)
	return err
}

// Query mengembalikan audit log terbaru lebih dulu, dibatasi limit.
func (r *auditMariaDB) Query(ctx context.Context, q mariadb.Queryer, f models.AuditFilter, limit int) ([]models.AuditLog, error) {
	var (
		conds []string
		args  []interface{}
	)
	if f.Aksi != "" {
		conds = append(conds, "a.aksi = ?")
		args = append(args, f.Aksi)
	}
	if f.Kategori != "" {
		conds = append(conds, "a.kategori LIKE ?")
		args = append(args, "%"+f.Kategori+"%")
	}
	if f.Username != "" {
		conds = append(conds, "u.username LIKE ?")
		args = append(args, "%"+f.Username+"%")
	}
	if f.Dari != nil {
		conds = append(conds, "a.created_at >= ?")
		args = append(args, *f.Dari)
	}
	if f.Sampai != nil {
		conds = append(conds, "a.created_at <= ?")
		args = append(args, *f.Sampai)
	}

	query := `
		SELECT a.id, a.id_user, COALESCE(u.username, ''), a.aksi, a.kategori, a.id_entitas, a.created_at
		FROM audit_logs a
		LEFT JOIN users u ON a.id_user = u.id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.IDUser, &e.Username, &e.Aksi, &e.Kategori, &e.IDEntitas, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *auditMariaDB) QueryAkses(ctx context.Context, q mariadb.Queryer, limit int) ([]models.AksesLog, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, username, sukses, ip_addr, created_at
		FROM audit_log_akses
		ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.AksesLog
	for rows.Next() {
		var e models.AksesLog
		if err := rows.Scan(&e.ID, &e.Username, &e.Sukses, &e.IPAddr, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
