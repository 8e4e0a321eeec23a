package services

import (
	"context"
	"strings"

	auditmodels "github.com/bidancare/bidan-backend/internal/audit/models"
	auditservices "github.com/bidancare/bidan-backend/internal/audit/services"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/internal/pasien/repositories"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

const kategoriPasien = "pasien"

type PasienService struct {
	Store mariadb.Store
	Repo  repositories.PasienRepository
	Audit *auditservices.AuditService
}

func NewPasienService(store mariadb.Store, repo repositories.PasienRepository, audit *auditservices.AuditService) *PasienService {
	return &PasienService{Store: store, Repo: repo, Audit: audit}
}

func validasiPasien(in models.PasienInput) error {
	var fields []string
	if strings.TrimSpace(in.Nama) == "" {
		fields = append(fields, "nama harus diisi")
	}
	if in.Umur < 0 {
		fields = append(fields, "umur tidak boleh negatif")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}

func (s *PasienService) Create(ctx context.Context, idUser string, in models.PasienInput) (string, error) {
	if err := validasiPasien(in); err != nil {
		return "", err
	}
	var id string
	err := s.Store.RunTx(ctx, func(tx mariadb.Queryer) error {
		// Cek NIK lebih dulu supaya pesan konflik konsisten; unique
		// index tetap menjadi penjaga terakhir terhadap race.
		if nik := strings.TrimSpace(in.NIK); nik != "" {
			if _, err := s.Repo.FindIDByNIK(ctx, tx, nik); err == nil {
				return apperr.ErrConflict
			} else if err != apperr.ErrNotFound {
				return err
			}
		}
		var err error
		id, err = s.Repo.Insert(ctx, tx, in)
		return err
	})
	if err != nil {
		return "", err
	}
	s.Audit.Record(&idUser, auditmodels.AksiCreate, kategoriPasien, id)
	return id, nil
}

// Update adalah satu-satunya jalur edit demografi pasien; jalur update
// layanan tidak pernah menyentuh baris pasien.
func (s *PasienService) Update(ctx context.Context, idUser, id string, in models.PasienInput) error {
	if err := validasiPasien(in); err != nil {
		return err
	}
	err := s.Store.RunTx(ctx, func(tx mariadb.Queryer) error {
		affected, err := s.Repo.UpdateDemografi(ctx, tx, id, in)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Audit.Record(&idUser, auditmodels.AksiUpdate, kategoriPasien, id)
	return nil
}

func (s *PasienService) Get(ctx context.Context, id string) (*models.Pasien, error) {
	return s.Repo.GetByID(ctx, s.Store, id)
}

func (s *PasienService) List(ctx context.Context, search string) ([]models.Pasien, error) {
	return s.Repo.List(ctx, s.Store, search)
}

func (s *PasienService) ListDeleted(ctx context.Context) ([]models.Pasien, error) {
	return s.Repo.ListDeleted(ctx, s.Store)
}

func (s *PasienService) SoftDelete(ctx context.Context, idUser, id string) error {
	affected, err := s.Repo.SoftDelete(ctx, s.Store, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	s.Audit.Record(&idUser, auditmodels.AksiDelete, kategoriPasien, id)
	return nil
}

func (s *PasienService) Restore(ctx context.Context, idUser, id string) error {
	affected, err := s.Repo.Restore(ctx, s.Store, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	s.Audit.Record(&idUser, auditmodels.AksiRestore, kategoriPasien, id)
	return nil
}

// Purge hanya sah dari status terhapus; transisi Active → Purged ditolak.
func (s *PasienService) Purge(ctx context.Context, idUser, id string) error {
	affected, err := s.Repo.Purge(ctx, s.Store, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	s.Audit.Record(&idUser, auditmodels.AksiDelete, kategoriPasien, id)
	return nil
}
