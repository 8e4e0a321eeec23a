package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	auditmodels "github.com/bidancare/bidan-backend/internal/audit/models"
	auditservices "github.com/bidancare/bidan-backend/internal/audit/services"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	"github.com/bidancare/bidan-backend/internal/jadwal/models"
	pasienmodels "github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

type fakeStore struct{}

func (fakeStore) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errors.New("tidak dipakai")
}
func (fakeStore) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("tidak dipakai")
}
func (fakeStore) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}
func (s fakeStore) RunTx(ctx context.Context, fn func(tx mariadb.Queryer) error) error {
	return fn(s)
}

type fakeJadwalRepo struct {
	rows map[string]*models.Jadwal
}

func (r *fakeJadwalRepo) Insert(ctx context.Context, q mariadb.Queryer, j *models.Jadwal) error {
	salinan := *j
	r.rows[j.ID] = &salinan
	return nil
}

func (r *fakeJadwalRepo) Update(ctx context.Context, q mariadb.Queryer, id string, in models.JadwalInput) (int64, error) {
	j, ok := r.rows[id]
	if !ok || j.DeletedAt != nil {
		return 0, nil
	}
	j.Tanggal, j.Jam, j.Keterangan, j.Status = in.Tanggal, in.Jam, in.Keterangan, in.Status
	return 1, nil
}

func (r *fakeJadwalRepo) GetByID(ctx context.Context, q mariadb.Queryer, id string) (*models.Jadwal, error) {
	j, ok := r.rows[id]
	if !ok || j.DeletedAt != nil {
		return nil, apperr.ErrNotFound
	}
	return j, nil
}

func (r *fakeJadwalRepo) List(ctx context.Context, q mariadb.Queryer) ([]models.Jadwal, error) {
	var result []models.Jadwal
	for _, j := range r.rows {
		if j.DeletedAt == nil {
			result = append(result, *j)
		}
	}
	return result, nil
}

func (r *fakeJadwalRepo) ListByTanggal(ctx context.Context, q mariadb.Queryer, tanggal string) ([]models.Jadwal, error) {
	var result []models.Jadwal
	for _, j := range r.rows {
		if j.DeletedAt == nil && j.Tanggal == tanggal {
			result = append(result, *j)
		}
	}
	return result, nil
}

func (r *fakeJadwalRepo) SoftDelete(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	j, ok := r.rows[id]
	if !ok || j.DeletedAt != nil {
		return 0, nil
	}
	now := time.Now()
	j.DeletedAt = &now
	return 1, nil
}

type fakePasienRepo struct {
	aktif map[string]bool
}

func (r *fakePasienRepo) FindIDByNIK(ctx context.Context, q mariadb.Queryer, nik string) (string, error) {
	return "", apperr.ErrNotFound
}
func (r *fakePasienRepo) Insert(ctx context.Context, q mariadb.Queryer, in pasienmodels.PasienInput) (string, error) {
	return "", errors.New("tidak dipakai")
}
func (r *fakePasienRepo) UpdateDemografi(ctx context.Context, q mariadb.Queryer, id string, in pasienmodels.PasienInput) (int64, error) {
	return 0, nil
}
func (r *fakePasienRepo) GetByID(ctx context.Context, q mariadb.Queryer, id string) (*pasienmodels.Pasien, error) {
	if r.aktif[id] {
		return &pasienmodels.Pasien{ID: id, Nama: "Siti"}, nil
	}
	return nil, apperr.ErrNotFound
}
func (r *fakePasienRepo) List(ctx context.Context, q mariadb.Queryer, search string) ([]pasienmodels.Pasien, error) {
	return nil, nil
}
func (r *fakePasienRepo) ListDeleted(ctx context.Context, q mariadb.Queryer) ([]pasienmodels.Pasien, error) {
	return nil, nil
}
func (r *fakePasienRepo) SoftDelete(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	return 0, nil
}
func (r *fakePasienRepo) Restore(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	return 0, nil
}
func (r *fakePasienRepo) Purge(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	return 0, nil
}

type nopAuditRepo struct{}

func (nopAuditRepo) Insert(ctx context.Context, q mariadb.Queryer, e *auditmodels.AuditLog) error {
	return nil
}
func (nopAuditRepo) InsertAkses(ctx context.Context, q mariadb.Queryer, e *auditmodels.AksesLog) error {
	return nil
}
func (nopAuditRepo) Query(ctx context.Context, q mariadb.Queryer, f auditmodels.AuditFilter, limit int) ([]auditmodels.AuditLog, error) {
	return nil, nil
}
func (nopAuditRepo) QueryAkses(ctx context.Context, q mariadb.Queryer, limit int) ([]auditmodels.AksesLog, error) {
	return nil, nil
}

func newTestJadwalService() (*JadwalService, *fakeJadwalRepo, *fakePasienRepo) {
	repo := &fakeJadwalRepo{rows: map[string]*models.Jadwal{}}
	pasien := &fakePasienRepo{aktif: map[string]bool{"pasien-1": true}}
	audit := auditservices.NewAuditService(fakeStore{}, nopAuditRepo{}, zerolog.Nop())
	return NewJadwalService(fakeStore{}, repo, pasien, audit), repo, pasien
}

func TestCreateJadwal(t *testing.T) {
	svc, repo, _ := newTestJadwalService()
	id, err := svc.Create(context.Background(), "user-1", models.JadwalInput{
		IDPasien: "pasien-1", Tanggal: "2026-09-01", Jam: "09:00",
		Keterangan: "kontrol ANC",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	j := repo.rows[id]
	if j == nil {
		t.Fatal("jadwal tidak tersimpan")
	}
	if j.Status != models.StatusTerjadwal {
		t.Errorf("status default = %q, ingin %q", j.Status, models.StatusTerjadwal)
	}
	if j.IDUser != "user-1" {
		t.Errorf("id_user = %q", j.IDUser)
	}
}

func TestCreateJadwalPasienTidakAktif(t *testing.T) {
	svc, _, _ := newTestJadwalService()
	_, err := svc.Create(context.Background(), "user-1", models.JadwalInput{
		IDPasien: "pasien-hilang", Tanggal: "2026-09-01", Jam: "09:00",
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("pasien tidak aktif ingin ErrNotFound, dapat %v", err)
	}
}

func TestCreateJadwalValidasi(t *testing.T) {
	svc, _, _ := newTestJadwalService()
	_, err := svc.Create(context.Background(), "user-1", models.JadwalInput{
		IDPasien: "pasien-1", Tanggal: "01-09-2026", Jam: "9 pagi", Status: "ngawur",
	})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ingin ValidationError, dapat %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Errorf("jumlah pesan validasi = %d, ingin 3: %v", len(ve.Fields), ve.Fields)
	}
}

func TestListByTanggal(t *testing.T) {
	svc, _, _ := newTestJadwalService()
	ctx := context.Background()

	for _, tgl := range []string{"2026-09-01", "2026-09-01", "2026-09-02"} {
		if _, err := svc.Create(ctx, "user-1", models.JadwalInput{
			IDPasien: "pasien-1", Tanggal: tgl, Jam: "09:00",
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	hari, err := svc.ListByTanggal(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("ListByTanggal: %v", err)
	}
	if len(hari) != 2 {
		t.Errorf("jadwal 2026-09-01 = %d, ingin 2", len(hari))
	}

	if _, err := svc.ListByTanggal(ctx, "besok"); err == nil {
		t.Error("tanggal salah format harus ditolak")
	}
}

func TestSoftDeleteJadwal(t *testing.T) {
	svc, _, _ := newTestJadwalService()
	ctx := context.Background()

	id, err := svc.Create(ctx, "user-1", models.JadwalInput{
		IDPasien: "pasien-1", Tanggal: "2026-09-01", Jam: "09:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.SoftDelete(ctx, "user-1", id); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("jadwal terhapus ingin ErrNotFound, dapat %v", err)
	}
	if err := svc.SoftDelete(ctx, "user-1", id); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("hapus dua kali ingin ErrNotFound, dapat %v", err)
	}
}
