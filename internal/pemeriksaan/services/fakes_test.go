package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	auditmodels "github.com/bidancare/bidan-backend/internal/audit/models"
	auditrepo "github.com/bidancare/bidan-backend/internal/audit/repositories"
	auditservices "github.com/bidancare/bidan-backend/internal/audit/services"
	"github.com/bidancare/bidan-backend/internal/common/apperr"
	pasienmodels "github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/models"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
)

// Fake di file ini meniru kontrak repository di atas memory, mengikuti
// gaya fake repo pada test service lain. Statement SQL detail layanan
// tetap dieksekusi lewat fakeTx yang mencatat querynya.

type fakeResult struct{}

func (fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (fakeResult) RowsAffected() (int64, error) { return 1, nil }

type fakeTx struct {
	execs []string
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	t.execs = append(t.execs, strings.Join(strings.Fields(query), " "))
	return fakeResult{}, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("query tidak didukung fakeTx")
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

// fakeStore menjalankan fn transaksi terhadap fakeTx. Saat fn gagal,
// execs dikembalikan ke keadaan semula (meniru rollback).
type fakeStore struct {
	fakeTx
	txErr error
}

func (s *fakeStore) RunTx(ctx context.Context, fn func(tx mariadb.Queryer) error) error {
	if s.txErr != nil {
		return s.txErr
	}
	sebelum := len(s.execs)
	if err := fn(&s.fakeTx); err != nil {
		s.execs = s.execs[:sebelum]
		return err
	}
	return nil
}

func (s *fakeStore) countExec(substr string) int {
	n := 0
	for _, q := range s.execs {
		if strings.Contains(q, substr) {
			n++
		}
	}
	return n
}

type fakePasienRepo struct {
	rows map[string]*pasienmodels.Pasien
}

func newFakePasienRepo() *fakePasienRepo {
	return &fakePasienRepo{rows: map[string]*pasienmodels.Pasien{}}
}

func (r *fakePasienRepo) FindIDByNIK(ctx context.Context, q mariadb.Queryer, nik string) (string, error) {
	for id, p := range r.rows {
		if p.IsPurged || p.NIK == nil {
			continue
		}
		if *p.NIK == nik {
			return id, nil
		}
	}
	return "", apperr.ErrNotFound
}

func (r *fakePasienRepo) Insert(ctx context.Context, q mariadb.Queryer, in pasienmodels.PasienInput) (string, error) {
	if nik := strings.TrimSpace(in.NIK); nik != "" {
		if _, err := r.FindIDByNIK(ctx, q, nik); err == nil {
			return "", apperr.ErrConflict
		}
	}
	id := uuid.NewString()
	p := &pasienmodels.Pasien{
		ID: id, Nama: in.Nama, Umur: in.Umur, Alamat: in.Alamat, NoTelp: in.NoTelp,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	if nik := strings.TrimSpace(in.NIK); nik != "" {
		p.NIK = &nik
	}
	r.rows[id] = p
	return id, nil
}

func (r *fakePasienRepo) UpdateDemografi(ctx context.Context, q mariadb.Queryer, id string, in pasienmodels.PasienInput) (int64, error) {
	p, ok := r.rows[id]
	if !ok || p.IsPurged {
		return 0, nil
	}
	p.Nama, p.Umur, p.Alamat, p.NoTelp = in.Nama, in.Umur, in.Alamat, in.NoTelp
	p.UpdatedAt = time.Now()
	return 1, nil
}

func (r *fakePasienRepo) GetByID(ctx context.Context, q mariadb.Queryer, id string) (*pasienmodels.Pasien, error) {
	p, ok := r.rows[id]
	if !ok || p.DeletedAt != nil || p.IsPurged {
		return nil, apperr.ErrNotFound
	}
	salinan := *p
	return &salinan, nil
}

func (r *fakePasienRepo) List(ctx context.Context, q mariadb.Queryer, search string) ([]pasienmodels.Pasien, error) {
	var result []pasienmodels.Pasien
	for _, p := range r.rows {
		if p.DeletedAt != nil || p.IsPurged {
			continue
		}
		if search != "" && !strings.Contains(p.Nama, search) &&
			(p.NIK == nil || !strings.Contains(*p.NIK, search)) {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePasienRepo) ListDeleted(ctx context.Context, q mariadb.Queryer) ([]pasienmodels.Pasien, error) {
	var result []pasienmodels.Pasien
	for _, p := range r.rows {
		if p.DeletedAt != nil && !p.IsPurged {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakePasienRepo) SoftDelete(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	p, ok := r.rows[id]
	if !ok || p.DeletedAt != nil || p.IsPurged {
		return 0, nil
	}
	now := time.Now()
	p.DeletedAt = &now
	return 1, nil
}

func (r *fakePasienRepo) Restore(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	p, ok := r.rows[id]
	if !ok || p.DeletedAt == nil || p.IsPurged {
		return 0, nil
	}
	p.DeletedAt = nil
	return 1, nil
}

func (r *fakePasienRepo) Purge(ctx context.Context, q mariadb.Queryer, id string) (int64, error) {
	p, ok := r.rows[id]
	if !ok || p.DeletedAt == nil || p.IsPurged {
		return 0, nil
	}
	p.IsPurged = true
	p.NIK = nil
	return 1, nil
}

type fakePemeriksaanRepo struct {
	rows      map[string]*models.Pemeriksaan
	pasien    *fakePasienRepo
	insertErr error
}

func newFakePemeriksaanRepo(pasien *fakePasienRepo) *fakePemeriksaanRepo {
	return &fakePemeriksaanRepo{rows: map[string]*models.Pemeriksaan{}, pasien: pasien}
}

func (r *fakePemeriksaanRepo) Insert(ctx context.Context, q mariadb.Queryer, p *models.Pemeriksaan) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	salinan := *p
	salinan.CreatedAt = time.Now()
	r.rows[p.ID] = &salinan
	return nil
}

func (r *fakePemeriksaanRepo) UpdateSOAP(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan, soap models.SOAP, tanggal time.Time) (int64, error) {
	p, ok := r.rows[id]
	if !ok || p.Jenis != jenis || p.DeletedAt != nil || p.IsPurged {
		return 0, nil
	}
	p.SOAP = soap
	p.Tanggal = tanggal
	return 1, nil
}

func (r *fakePemeriksaanRepo) ringkasan(p *models.Pemeriksaan) map[string]interface{} {
	row := map[string]interface{}{
		"id":                  p.ID,
		"id_pasien":           p.IDPasien,
		"subjektif":           p.Subjektif,
		"objektif":            p.Objektif,
		"analisa":             p.Analisa,
		"penatalaksanaan":     p.Penatalaksanaan,
		"tanggal_pemeriksaan": p.Tanggal.Format("2006-01-02"),
		"nama":                "",
		"nik":                 nil,
	}
	if ps, ok := r.pasien.rows[p.IDPasien]; ok {
		row["nama"] = ps.Nama
		if ps.NIK != nil {
			row["nik"] = *ps.NIK
		}
	}
	return row
}

func (r *fakePemeriksaanRepo) pasienAktif(idPasien string) bool {
	ps, ok := r.pasien.rows[idPasien]
	return ok && ps.DeletedAt == nil && !ps.IsPurged
}

func (r *fakePemeriksaanRepo) GetActive(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (map[string]interface{}, error) {
	p, ok := r.rows[id]
	if !ok || p.Jenis != jenis || p.DeletedAt != nil || p.IsPurged || !r.pasienAktif(p.IDPasien) {
		return nil, apperr.ErrNotFound
	}
	return r.ringkasan(p), nil
}

func (r *fakePemeriksaanRepo) List(ctx context.Context, q mariadb.Queryer, jenis models.JenisLayanan, search string) ([]map[string]interface{}, error) {
	var result []map[string]interface{}
	for _, p := range r.rows {
		if p.Jenis != jenis || p.DeletedAt != nil || p.IsPurged || !r.pasienAktif(p.IDPasien) {
			continue
		}
		row := r.ringkasan(p)
		if search != "" {
			nama, _ := row["nama"].(string)
			nik, _ := row["nik"].(string)
			if !strings.Contains(nama, search) && !strings.Contains(nik, search) {
				continue
			}
		}
		result = append(result, row)
	}
	return result, nil
}

func (r *fakePemeriksaanRepo) ListDeleted(ctx context.Context, q mariadb.Queryer, jenis models.JenisLayanan) ([]map[string]interface{}, error) {
	var result []map[string]interface{}
	for _, p := range r.rows {
		if p.Jenis == jenis && p.DeletedAt != nil && !p.IsPurged {
			result = append(result, r.ringkasan(p))
		}
	}
	return result, nil
}

func (r *fakePemeriksaanRepo) SoftDelete(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error) {
	p, ok := r.rows[id]
	if !ok || p.Jenis != jenis || p.DeletedAt != nil || p.IsPurged {
		return 0, nil
	}
	now := time.Now()
	p.DeletedAt = &now
	return 1, nil
}

func (r *fakePemeriksaanRepo) Restore(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error) {
	p, ok := r.rows[id]
	if !ok || p.Jenis != jenis || p.DeletedAt == nil || p.IsPurged {
		return 0, nil
	}
	p.DeletedAt = nil
	return 1, nil
}

func (r *fakePemeriksaanRepo) Purge(ctx context.Context, q mariadb.Queryer, id string, jenis models.JenisLayanan) (int64, error) {
	p, ok := r.rows[id]
	if !ok || p.Jenis != jenis || p.DeletedAt == nil || p.IsPurged {
		return 0, nil
	}
	p.IsPurged = true
	return 1, nil
}

type fakeAuditRepo struct {
	entries []auditmodels.AuditLog
	akses   []auditmodels.AksesLog
	failkan bool
}

func (r *fakeAuditRepo) Insert(ctx context.Context, q mariadb.Queryer, e *auditmodels.AuditLog) error {
	if r.failkan {
		return errors.New("audit insert gagal")
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeAuditRepo) InsertAkses(ctx context.Context, q mariadb.Queryer, e *auditmodels.AksesLog) error {
	if r.failkan {
		return errors.New("akses insert gagal")
	}
	r.akses = append(r.akses, *e)
	return nil
}

func (r *fakeAuditRepo) Query(ctx context.Context, q mariadb.Queryer, f auditmodels.AuditFilter, limit int) ([]auditmodels.AuditLog, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

func (r *fakeAuditRepo) QueryAkses(ctx context.Context, q mariadb.Queryer, limit int) ([]auditmodels.AksesLog, error) {
	if limit > len(r.akses) {
		limit = len(r.akses)
	}
	return r.akses[:limit], nil
}

var _ auditrepo.AuditRepository = (*fakeAuditRepo)(nil)

func newTestService() (*RegistrasiService, *fakeStore, *fakePasienRepo, *fakePemeriksaanRepo, *fakeAuditRepo) {
	store := &fakeStore{}
	pasien := newFakePasienRepo()
	pemeriksaan := newFakePemeriksaanRepo(pasien)
	auditRepo := &fakeAuditRepo{}
	audit := auditservices.NewAuditService(store, auditRepo, zerolog.Nop())
	svc := NewRegistrasiService(store, pasien, pemeriksaan, audit)
	return svc, store, pasien, pemeriksaan, auditRepo
}
