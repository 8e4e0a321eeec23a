package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/bidancare/bidan-backend/config"
)

// Queryer disatukan untuk *sql.DB dan *sql.Tx sehingga repository
// dapat dipakai di dalam maupun di luar transaksi.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store adalah handle penyimpanan yang diberikan ke setiap service.
// Semua statement dalam satu operasi tulis wajib memakai Queryer yang
// sama dari RunTx; mencampur koneksi di tengah transaksi adalah bug.
type Store interface {
	Queryer
	RunTx(ctx context.Context, fn func(tx Queryer) error) error
}

type sqlStore struct {
	*sql.DB
}

// Connect membuka koneksi pool ke database MariaDB.
// Kredensial diambil dari config; pool dikembalikan ke pemanggil
// (tidak ada state global) dan disuntikkan ke setiap service.
func Connect(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Asia%%2FJakarta",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("gagal membuka koneksi ke database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBConnLimit)
	db.SetMaxIdleConns(cfg.DBConnLimit)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("gagal melakukan ping ke database: %w", err)
	}
	return db, nil
}

func NewStore(db *sql.DB) Store {
	return &sqlStore{db}
}

// RunTx menjalankan fn dalam satu transaksi. Rollback dijamin pada
// setiap jalur keluar selain commit yang berhasil.
func (s *sqlStore) RunTx(ctx context.Context, fn func(tx Queryer) error) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// IsDuplicate mengenali pelanggaran unique constraint (MySQL error 1062).
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
