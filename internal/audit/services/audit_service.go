package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bidancare/bidan-backend/internal/audit/models"
	"github.com/bidancare/bidan-backend/internal/audit/repositories"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

// MaxRows membatasi hasil query audit agar ukuran respons terjaga.
const MaxRows = 1000

type AuditService struct {
	Store mariadb.Store
	Repo  repositories.AuditRepository
	Log   zerolog.Logger
}

func NewAuditService(store mariadb.Store, repo repositories.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{Store: store, Repo: repo, Log: log}
}

// Record menulis satu entri audit setelah operasi bisnis ter-commit.
// Best-effort: kegagalan hanya dicatat sebagai warning, tidak pernah
// membatalkan operasi pemanggil.
func (s *AuditService) Record(idUser *string, aksi, kategori, idEntitas string) {
	entry := &models.AuditLog{
		ID:        uuid.NewString(),
		IDUser:    idUser,
		Aksi:      aksi,
		Kategori:  kategori,
		IDEntitas: idEntitas,
	}
	if err := s.Repo.Insert(context.Background(), s.Store, entry); err != nil {
		s.Log.Warn().Err(err).
			Str("aksi", aksi).
			Str("kategori", kategori).
			Str("id_entitas", idEntitas).
			Msg("gagal menulis audit log")
	}
}

// RecordAkses mencatat percobaan login, juga best-effort.
func (s *AuditService) RecordAkses(username string, sukses bool, ip string) {
	entry := &models.AksesLog{
		ID:       uuid.NewString(),
		Username: username,
		Sukses:   sukses,
		IPAddr:   ip,
	}
	if err := s.Repo.InsertAkses(context.Background(), s.Store, entry); err != nil {
		s.Log.Warn().Err(err).Str("username", username).Msg("gagal menulis log akses")
	}
}

func (s *AuditService) Query(ctx context.Context, f models.AuditFilter) ([]models.AuditLog, error) {
	return s.Repo.Query(ctx, s.Store, f, MaxRows)
}

func (s *AuditService) QueryAkses(ctx context.Context) ([]models.AksesLog, error) {
	return s.Repo.QueryAkses(ctx, s.Store, MaxRows)
}

// ParseRentang menerjemahkan parameter tanggal "YYYY-MM-DD" menjadi
// batas rentang inklusif satu hari penuh.
func ParseRentang(dari, sampai string) (*time.Time, *time.Time, error) {
	var batasAwal, batasAkhir *time.Time
	if dari != "" {
		t, err := time.Parse("2006-01-02", dari)
		if err != nil {
			return nil, nil, err
		}
		batasAwal = &t
	}
	if sampai != "" {
		t, err := time.Parse("2006-01-02", sampai)
		if err != nil {
			return nil, nil, err
		}
		akhir := t.Add(24*time.Hour - time.Second)
		batasAkhir = &akhir
	}
	return batasAwal, batasAkhir, nil
}
