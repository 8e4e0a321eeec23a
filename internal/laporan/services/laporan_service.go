package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditmodels "github.com/bidancare/bidan-backend/internal/audit/models"
	auditservices "github.com/bidancare/bidan-backend/internal/audit/services"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/laporan/models"
	"github.com/bidancare/bidan-backend/internal/laporan/repositories"
	pemeriksaanmodels "github.com/bidancare/bidan-backend/internal/pemeriksaan/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

const kategoriLaporan = "laporan"

type LaporanService struct {
	Store mariadb.Store
	Repo  repositories.LaporanRepository
	Audit *auditservices.AuditService
}

func NewLaporanService(store mariadb.Store, repo repositories.LaporanRepository, audit *auditservices.AuditService) *LaporanService {
	return &LaporanService{Store: store, Repo: repo, Audit: audit}
}

func validasiPeriode(bulan, tahun int) error {
	var fields []string
	if bulan < 1 || bulan > 12 {
		fields = append(fields, "bulan harus 1-12")
	}
	if tahun < 2000 || tahun > 2100 {
		fields = append(fields, "tahun tidak valid")
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}

// Ringkasan menghitung agregat bulan berjalan langsung dari tabel
// operasional; bulan/tahun 0 berarti bulan berjalan.
func (s *LaporanService) Ringkasan(ctx context.Context, bulan, tahun int) (*models.Ringkasan, error) {
	now := time.Now()
	if bulan == 0 {
		bulan = int(now.Month())
	}
	if tahun == 0 {
		tahun = now.Year()
	}
	if err := validasiPeriode(bulan, tahun); err != nil {
		return nil, err
	}

	r := &models.Ringkasan{Bulan: bulan, Tahun: tahun}
	counts := []struct {
		jenis pemeriksaanmodels.JenisLayanan
		ke    *int
	}{
		{pemeriksaanmodels.LayananANC, &r.JumlahANC},
		{pemeriksaanmodels.LayananKB, &r.JumlahKB},
		{pemeriksaanmodels.LayananImunisasi, &r.JumlahImunisasi},
		{pemeriksaanmodels.LayananPersalinan, &r.JumlahPersalinan},
		{pemeriksaanmodels.LayananKunjungan, &r.JumlahKunjungan},
	}
	for _, c := range counts {
		n, err := s.Repo.CountPemeriksaan(ctx, s.Store, c.jenis, bulan, tahun)
		if err != nil {
			return nil, err
		}
		*c.ke = n
	}

	baru, err := s.Repo.CountPasienBaru(ctx, s.Store, bulan, tahun)
	if err != nil {
		return nil, err
	}
	r.PasienBaru = baru
	return r, nil
}

// Simpan menghitung ulang ringkasan lalu menyimpannya sebagai baris
// laporan; laporan bulan yang sama ditimpa dan mempertahankan id-nya,
// dan id itulah yang masuk ke audit log.
func (s *LaporanService) Simpan(ctx context.Context, idUser string, bulan, tahun int) (*models.Ringkasan, error) {
	r, err := s.Ringkasan(ctx, bulan, tahun)
	if err != nil {
		return nil, err
	}
	var id string
	err = s.Store.RunTx(ctx, func(tx mariadb.Queryer) error {
		var err error
		id, err = s.Repo.Save(ctx, tx, uuid.NewString(), *r)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Audit.Record(&idUser, auditmodels.AksiCreate, kategoriLaporan, id)
	return r, nil
}

func (s *LaporanService) List(ctx context.Context) ([]models.Laporan, error) {
	return s.Repo.List(ctx, s.Store)
}
