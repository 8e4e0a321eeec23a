package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	auditmodels "github.com/bidancare/bidan-backend/internal/audit/models"
	auditservices "github.com/bidancare/bidan-backend/internal/audit/services"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	pasienmodels "github.com/bidancare/bidan-backend/internal/pasien/models"
	pasienrepo "github.com/bidancare/bidan-backend/internal/pasien/repositories"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/layanan"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/models"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/repositories"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

// RegistrasiService menjalankan protokol registrasi yang sama untuk
// kelima jenis layanan. Perbedaan antar layanan sepenuhnya dibawa oleh
// layanan.Definition dan payload-nya.
type RegistrasiService struct {
	Store       mariadb.Store
	Pasien      pasienrepo.PasienRepository
	Pemeriksaan repositories.PemeriksaanRepository
	Audit       *auditservices.AuditService
}

func NewRegistrasiService(store mariadb.Store, pasien pasienrepo.PasienRepository,
	pemeriksaan repositories.PemeriksaanRepository, audit *auditservices.AuditService) *RegistrasiService {
	return &RegistrasiService{
		Store:       store,
		Pasien:      pasien,
		Pemeriksaan: pemeriksaan,
		Audit:       audit,
	}
}

// RegistrasiResult berisi id entitas yang terbentuk dalam satu registrasi.
type RegistrasiResult struct {
	IDPasien      string `json:"id_pasien"`
	IDPemeriksaan string `json:"id_pemeriksaan"`
	IDDetail      string `json:"id_detail"`
}

// Register menjalankan protokol: rekonsiliasi pasien berdasarkan NIK,
// insert pemeriksaan dengan SOAP hasil template, lalu insert baris
// detail, semuanya dalam satu transaksi. Audit ditulis setelah commit.
func (s *RegistrasiService) Register(ctx context.Context, def *layanan.Definition, idUser string, p layanan.Payload) (*RegistrasiResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	tanggal, err := parseTanggal(p.TanggalPemeriksaan())
	if err != nil {
		return nil, err
	}

	result := &RegistrasiResult{
		IDPemeriksaan: uuid.NewString(),
		IDDetail:      uuid.NewString(),
	}
	err = s.Store.RunTx(ctx, func(tx mariadb.Queryer) error {
		idPasien, err := s.reconcilePasien(ctx, tx, p.DataPasien())
		if err != nil {
			return err
		}
		result.IDPasien = idPasien

		soap := p.SOAP()
		if err := s.Pemeriksaan.Insert(ctx, tx, &models.Pemeriksaan{
			ID:       result.IDPemeriksaan,
			IDPasien: idPasien,
			Jenis:    def.Jenis,
			SOAP:     soap,
			Tanggal:  tanggal,
		}); err != nil {
			return err
		}
		return p.InsertDetail(ctx, tx, result.IDDetail, result.IDPemeriksaan)
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(&idUser, auditmodels.AksiCreate, def.Table, result.IDDetail)
	return result, nil
}

// reconcilePasien mencari pasien berdasarkan NIK; bila ada, demografi
// disegarkan dari payload, bila tidak ada (atau NIK kosong) pasien baru
// dibuat. NIK yang sudah ada tidak pernah diubah lewat jalur ini.
func (s *RegistrasiService) reconcilePasien(ctx context.Context, tx mariadb.Queryer, in pasienmodels.PasienInput) (string, error) {
	nik := strings.TrimSpace(in.NIK)
	if nik != "" {
		id, err := s.Pasien.FindIDByNIK(ctx, tx, nik)
		if err == nil {
			if _, err := s.Pasien.UpdateDemografi(ctx, tx, id, in); err != nil {
				return "", err
			}
			return id, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return "", err
		}
	}
	return s.Pasien.Insert(ctx, tx, in)
}

// Update menimpa SOAP (hasil template ulang) dan baris detail dalam
// satu transaksi. Data pasien pada payload diabaikan: update layanan
// tidak pernah menyentuh demografi pasien.
func (s *RegistrasiService) Update(ctx context.Context, def *layanan.Definition, idUser string, id string, p layanan.Payload) error {
	if err := p.Validate(); err != nil {
		return err
	}
	tanggal, err := parseTanggal(p.TanggalPemeriksaan())
	if err != nil {
		return err
	}

	err = s.Store.RunTx(ctx, func(tx mariadb.Queryer) error {
		affected, err := s.Pemeriksaan.UpdateSOAP(ctx, tx, id, def.Jenis, p.SOAP(), tanggal)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.ErrNotFound
		}
		return p.UpdateDetail(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.Audit.Record(&idUser, auditmodels.AksiUpdate, def.Table, id)
	return nil
}

// Get menggabungkan ringkasan pemeriksaan+pasien dengan baris detailnya.
func (s *RegistrasiService) Get(ctx context.Context, def *layanan.Definition, id string) (map[string]interface{}, error) {
	row, err := s.Pemeriksaan.GetActive(ctx, s.Store, id, def.Jenis)
	if err != nil {
		return nil, err
	}
	detail, err := def.SelectDetail(ctx, s.Store, id)
	if err != nil {
		return nil, err
	}
	row["detail"] = detail
	return row, nil
}

func (s *RegistrasiService) List(ctx context.Context, def *layanan.Definition, search string) ([]map[string]interface{}, error) {
	return s.Pemeriksaan.List(ctx, s.Store, def.Jenis, search)
}

func (s *RegistrasiService) ListDeleted(ctx context.Context, def *layanan.Definition) ([]map[string]interface{}, error) {
	return s.Pemeriksaan.ListDeleted(ctx, s.Store, def.Jenis)
}

func (s *RegistrasiService) SoftDelete(ctx context.Context, def *layanan.Definition, idUser string, id string) error {
	affected, err := s.Pemeriksaan.SoftDelete(ctx, s.Store, id, def.Jenis)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	s.Audit.Record(&idUser, auditmodels.AksiDelete, def.Table, id)
	return nil
}

func (s *RegistrasiService) Restore(ctx context.Context, def *layanan.Definition, idUser string, id string) error {
	affected, err := s.Pemeriksaan.Restore(ctx, s.Store, id, def.Jenis)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	s.Audit.Record(&idUser, auditmodels.AksiRestore, def.Table, id)
	return nil
}

func (s *RegistrasiService) Purge(ctx context.Context, def *layanan.Definition, idUser string, id string) error {
	affected, err := s.Pemeriksaan.Purge(ctx, s.Store, id, def.Jenis)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	s.Audit.Record(&idUser, auditmodels.AksiDelete, def.Table, id)
	return nil
}

// parseTanggal menerima "YYYY-MM-DD"; kosong berarti hari ini.
func parseTanggal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperr.NewValidation("tanggal_pemeriksaan harus berformat YYYY-MM-DD")
	}
	return t, nil
}
