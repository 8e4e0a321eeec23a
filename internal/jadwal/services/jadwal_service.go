package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	auditmodels "github.com/bidancare/bidan-backend/internal/audit/models"
	auditservices "github.com/bidancare/bidan-backend/internal/audit/services"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/jadwal/models"
	"github.com/bidancare/bidan-backend/internal/jadwal/repositories"
	pasienrepo "github.com/bidancare/bidan-backend/internal/pasien/repositories"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

const kategoriJadwal = "jadwal"

type JadwalService struct {
	Store  mariadb.Store
	Repo   repositories.JadwalRepository
	Pasien pasienrepo.PasienRepository
	Audit  *auditservices.AuditService
}

func NewJadwalService(store mariadb.Store, repo repositories.JadwalRepository,
	pasien pasienrepo.PasienRepository, audit *auditservices.AuditService) *JadwalService {
	return &JadwalService{Store: store, Repo: repo, Pasien: pasien, Audit: audit}
}

func validasiJadwal(in models.JadwalInput, wajibPasien bool) error {
	var fields []string
	if wajibPasien && strings.TrimSpace(in.IDPasien) == "" {
		fields = append(fields, "id_pasien harus diisi")
	}
	if _, err := time.Parse("2006-01-02", in.Tanggal); err != nil {
		fields = append(fields, "tanggal harus berformat YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", in.Jam); err != nil {
		if _, err := time.Parse("15:04:05", in.Jam); err != nil {
			fields = append(fields, "jam harus berformat HH:MM")
		}
	}
	switch in.Status {
	case "", models.StatusTerjadwal, models.StatusSelesai, models.StatusBatal:
	default:
		fields = append(fields, "status tidak dikenal")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}

// Create memastikan pasien rujukan masih aktif sebelum jadwal dibuat.
// Jadwal tidak terikat transaksi registrasi manapun.
func (s *JadwalService) Create(ctx context.Context, idUser string, in models.JadwalInput) (string, error) {
	if err := validasiJadwal(in, true); err != nil {
		return "", err
	}
	if _, err := s.Pasien.GetByID(ctx, s.Store, in.IDPasien); err != nil {
		return "", err
	}

	status := in.Status
	if status == "" {
		status = models.StatusTerjadwal
	}
	j := &models.Jadwal{
		ID:         uuid.NewString(),
		IDPasien:   in.IDPasien,
		IDUser:     idUser,
		Tanggal:    in.Tanggal,
		Jam:        in.Jam,
		Keterangan: in.Keterangan,
		Status:     status,
	}
	if err := s.Repo.Insert(ctx, s.Store, j); err != nil {
		return "", err
	}
	s.Audit.Record(&idUser, auditmodels.AksiCreate, kategoriJadwal, j.ID)
	return j.ID, nil
}

func (s *JadwalService) Update(ctx context.Context, idUser, id string, in models.JadwalInput) error {
	if err := validasiJadwal(in, false); err != nil {
		return err
	}
	if in.Status == "" {
		in.Status = models.StatusTerjadwal
	}
	affected, err := s.Repo.Update(ctx, s.Store, id, in)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	s.Audit.Record(&idUser, auditmodels.AksiUpdate, kategoriJadwal, id)
	return nil
}

func (s *JadwalService) Get(ctx context.Context, id string) (*models.Jadwal, error) {
	return s.Repo.GetByID(ctx, s.Store, id)
}

func (s *JadwalService) List(ctx context.Context) ([]models.Jadwal, error) {
	return s.Repo.List(ctx, s.Store)
}

func (s *JadwalService) ListByTanggal(ctx context.Context, tanggal string) ([]models.Jadwal, error) {
	if _, err := time.Parse("2006-01-02", tanggal); err != nil {
		return nil, apperr.NewValidation("tanggal harus berformat YYYY-MM-DD")
	}
	return s.Repo.ListByTanggal(ctx, s.Store, tanggal)
}

func (s *JadwalService) SoftDelete(ctx context.Context, idUser, id string) error {
	affected, err := s.Repo.SoftDelete(ctx, s.Store, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	s.Audit.Record(&idUser, auditmodels.AksiDelete, kategoriJadwal, id)
	return nil
}
