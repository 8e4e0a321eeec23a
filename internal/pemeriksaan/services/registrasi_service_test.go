package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bidancare/bidan-backend/internal/common/apperr"
	pasienmodels "github.com/bidancare/bidan-backend/internal/pasien/models"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/layanan"
)

func payloadANC(nama, nik string) *layanan.ANC {
	return &layanan.ANC{
		Pasien: pasienmodels.PasienInput{Nama: nama, NIK: nik, Umur: 27, Alamat: "Desa Sukamaju"},
		HPHT:   "2026-01-10",
	}
}

func TestRegisterNIKBaruMembuatSemuaEntitas(t *testing.T) {
	svc, store, pasien, pemeriksaan, audit := newTestService()

	result, err := svc.Register(context.Background(), layanan.ANCDefinition, "user-1", payloadANC("Siti", "3201010101010001"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if len(pasien.rows) != 1 {
		t.Errorf("jumlah pasien = %d, ingin 1", len(pasien.rows))
	}
	if len(pemeriksaan.rows) != 1 {
		t.Errorf("jumlah pemeriksaan = %d, ingin 1", len(pemeriksaan.rows))
	}
	if n := store.countExec("INSERT INTO detail_anc"); n != 1 {
		t.Errorf("insert detail_anc = %d, ingin 1", n)
	}
	if result.IDPasien == "" || result.IDPemeriksaan == "" || result.IDDetail == "" {
		t.Errorf("id hasil registrasi kosong: %+v", result)
	}

	p := pemeriksaan.rows[result.IDPemeriksaan]
	if p == nil {
		t.Fatal("pemeriksaan tidak tersimpan dengan id hasil")
	}
	if p.IDPasien != result.IDPasien {
		t.Errorf("pemeriksaan merujuk pasien %s, ingin %s", p.IDPasien, result.IDPasien)
	}
	if p.Subjektif != "Kunjungan ANC. Keluhan: -" {
		t.Errorf("SOAP subjektif = %q", p.Subjektif)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("jumlah audit = %d, ingin 1", len(audit.entries))
	}
	e := audit.entries[0]
	if e.Aksi != "CREATE" || e.Kategori != "detail_anc" || e.IDEntitas != result.IDDetail {
		t.Errorf("audit entry salah: %+v", e)
	}
}

func TestRegisterNIKSamaMemakaiPasienLama(t *testing.T) {
	svc, _, pasien, _, _ := newTestService()
	ctx := context.Background()

	r1, err := svc.Register(ctx, layanan.ANCDefinition, "user-1", payloadANC("Siti", "3201010101010001"))
	if err != nil {
		t.Fatalf("registrasi pertama: %v", err)
	}

	// NIK sama, demografi baru: pasien lama dipakai dan disegarkan.
	p2 := payloadANC("Siti Aminah", "3201010101010001")
	p2.Pasien.Umur = 28
	r2, err := svc.Register(ctx, layanan.ANCDefinition, "user-1", p2)
	if err != nil {
		t.Fatalf("registrasi kedua: %v", err)
	}

	if len(pasien.rows) != 1 {
		t.Errorf("jumlah pasien = %d, ingin 1", len(pasien.rows))
	}
	if r1.IDPasien != r2.IDPasien {
		t.Errorf("id pasien berbeda antar registrasi: %s vs %s", r1.IDPasien, r2.IDPasien)
	}
	ps := pasien.rows[r1.IDPasien]
	if ps.Nama != "Siti Aminah" || ps.Umur != 28 {
		t.Errorf("demografi tidak disegarkan: %+v", ps)
	}
}

func TestRegisterDuaLayananSatuPasien(t *testing.T) {
	svc, _, pasien, pemeriksaan, _ := newTestService()
	ctx := context.Background()

	r1, err := svc.Register(ctx, layanan.ANCDefinition, "user-1", payloadANC("Siti", "3201010101010001"))
	if err != nil {
		t.Fatalf("registrasi ANC: %v", err)
	}
	kb := &layanan.KB{
		Pasien:  pasienmodels.PasienInput{Nama: "Siti", NIK: "3201010101010001", Umur: 27},
		JenisKB: "IUD",
	}
	r2, err := svc.Register(ctx, layanan.KBDefinition, "user-1", kb)
	if err != nil {
		t.Fatalf("registrasi KB: %v", err)
	}

	if len(pasien.rows) != 1 {
		t.Errorf("jumlah pasien = %d, ingin 1", len(pasien.rows))
	}
	if r1.IDPasien != r2.IDPasien {
		t.Error("ANC dan KB harus berbagi satu pasien")
	}
	if len(pemeriksaan.rows) != 2 {
		t.Errorf("jumlah pemeriksaan = %d, ingin 2", len(pemeriksaan.rows))
	}
}

func TestRegisterNIKKosongSelaluPasienBaru(t *testing.T) {
	svc, _, pasien, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Register(ctx, layanan.ANCDefinition, "user-1", payloadANC("Tanpa NIK", "")); err != nil {
			t.Fatalf("registrasi ke-%d: %v", i+1, err)
		}
	}
	if len(pasien.rows) != 2 {
		t.Errorf("jumlah pasien = %d, ingin 2 (NIK kosong tidak pernah dedup)", len(pasien.rows))
	}
}

func TestRegisterValidasiGagalTanpaTulisan(t *testing.T) {
	svc, store, pasien, pemeriksaan, audit := newTestService()

	// Skenario: imunisasi tanpa jenis_imunisasi.
	payload := &layanan.Imunisasi{
		Pasien: pasienmodels.PasienInput{Nama: "Bu Rina", NIK: "3201010101010009"},
	}
	_, err := svc.Register(context.Background(), layanan.ImunisasiDefinition, "user-1", payload)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ingin ValidationError, dapat %v", err)
	}

	if len(pasien.rows) != 0 || len(pemeriksaan.rows) != 0 || len(store.execs) != 0 || len(audit.entries) != 0 {
		t.Error("registrasi tidak valid tidak boleh menulis apa pun")
	}
}

func TestRegisterRollbackTanpaAudit(t *testing.T) {
	svc, store, _, pemeriksaan, audit := newTestService()
	pemeriksaan.insertErr = errors.New("insert pemeriksaan gagal")

	_, err := svc.Register(context.Background(), layanan.ANCDefinition, "user-1", payloadANC("Siti", "3201010101010001"))
	if err == nil {
		t.Fatal("registrasi harus gagal")
	}
	if len(audit.entries) != 0 {
		t.Error("audit tidak boleh ditulis saat transaksi gagal")
	}
	if n := store.countExec("INSERT INTO detail_anc"); n != 0 {
		t.Error("insert detail tidak boleh tersisa setelah rollback")
	}
}

func TestUpdateMenimpaSOAPTanpaSentuhPasien(t *testing.T) {
	svc, store, pasien, pemeriksaan, audit := newTestService()
	ctx := context.Background()

	r, err := svc.Register(ctx, layanan.ANCDefinition, "user-1", payloadANC("Siti", "3201010101010001"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	namaSebelum := pasien.rows[r.IDPasien].Nama

	upd := payloadANC("Nama Diabaikan", "3201010101010001")
	upd.Keluhan = "pusing"
	if err := svc.Update(ctx, layanan.ANCDefinition, "user-1", r.IDPemeriksaan, upd); err != nil {
		t.Fatalf("Update: %v", err)
	}

	p := pemeriksaan.rows[r.IDPemeriksaan]
	if p.Subjektif != "Kunjungan ANC. Keluhan: pusing" {
		t.Errorf("SOAP tidak ditimpa: %q", p.Subjektif)
	}
	if pasien.rows[r.IDPasien].Nama != namaSebelum {
		t.Error("update layanan tidak boleh mengubah demografi pasien")
	}
	if n := store.countExec("UPDATE detail_anc"); n != 1 {
		t.Errorf("update detail_anc = %d, ingin 1", n)
	}
	if len(audit.entries) != 2 || audit.entries[1].Aksi != "UPDATE" {
		t.Errorf("audit UPDATE tidak tercatat: %+v", audit.entries)
	}
}

func TestUpdateIDTidakAda(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	err := svc.Update(context.Background(), layanan.ANCDefinition, "user-1", "tidak-ada", payloadANC("Siti", ""))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("ingin ErrNotFound, dapat %v", err)
	}
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	svc, _, _, _, audit := newTestService()
	ctx := context.Background()

	r, err := svc.Register(ctx, layanan.KBDefinition, "user-1", &layanan.KB{
		Pasien:  pasienmodels.PasienInput{Nama: "Siti", NIK: "3201010101010001"},
		JenisKB: "IUD",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.SoftDelete(ctx, layanan.KBDefinition, "user-1", r.IDPemeriksaan); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	aktif, _ := svc.List(ctx, layanan.KBDefinition, "")
	if len(aktif) != 0 {
		t.Error("pemeriksaan terhapus masih muncul di daftar aktif")
	}
	terhapus, _ := svc.ListDeleted(ctx, layanan.KBDefinition)
	if len(terhapus) != 1 {
		t.Errorf("daftar terhapus = %d, ingin 1", len(terhapus))
	}

	// Soft delete kedua pada baris yang sama adalah no-op error.
	if err := svc.SoftDelete(ctx, layanan.KBDefinition, "user-1", r.IDPemeriksaan); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("soft delete dua kali ingin ErrNotFound, dapat %v", err)
	}

	if err := svc.Restore(ctx, layanan.KBDefinition, "user-1", r.IDPemeriksaan); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	aktif, _ = svc.List(ctx, layanan.KBDefinition, "")
	if len(aktif) != 1 {
		t.Error("pemeriksaan hasil restore harus kembali ke daftar aktif")
	}

	// Restore saat sudah aktif juga no-op error.
	if err := svc.Restore(ctx, layanan.KBDefinition, "user-1", r.IDPemeriksaan); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("restore dua kali ingin ErrNotFound, dapat %v", err)
	}

	var aksi []string
	for _, e := range audit.entries {
		aksi = append(aksi, e.Aksi)
	}
	ingin := []string{"CREATE", "DELETE", "RESTORE"}
	if len(aksi) != len(ingin) {
		t.Fatalf("urutan audit = %v, ingin %v", aksi, ingin)
	}
	for i := range ingin {
		if aksi[i] != ingin[i] {
			t.Fatalf("urutan audit = %v, ingin %v", aksi, ingin)
		}
	}
}

func TestPurgeHanyaDariTerhapus(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	r, err := svc.Register(ctx, layanan.KunjunganDefinition, "user-1", &layanan.Kunjungan{
		Pasien:  pasienmodels.PasienInput{Nama: "Siti"},
		Keluhan: "demam",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Purge langsung dari Active ditolak.
	if err := svc.Purge(ctx, layanan.KunjunganDefinition, "user-1", r.IDPemeriksaan); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("purge dari aktif ingin ErrNotFound, dapat %v", err)
	}

	if err := svc.SoftDelete(ctx, layanan.KunjunganDefinition, "user-1", r.IDPemeriksaan); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if err := svc.Purge(ctx, layanan.KunjunganDefinition, "user-1", r.IDPemeriksaan); err != nil {
		t.Fatalf("Purge: %v", err)
	}

	// Purged hilang dari kedua daftar; restore tidak berlaku lagi.
	aktif, _ := svc.List(ctx, layanan.KunjunganDefinition, "")
	terhapus, _ := svc.ListDeleted(ctx, layanan.KunjunganDefinition)
	if len(aktif) != 0 || len(terhapus) != 0 {
		t.Error("baris purged tidak boleh muncul di daftar mana pun")
	}
	if err := svc.Restore(ctx, layanan.KunjunganDefinition, "user-1", r.IDPemeriksaan); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("restore setelah purge ingin ErrNotFound, dapat %v", err)
	}
}

func TestPasienTerhapusMenyembunyikanPemeriksaan(t *testing.T) {
	svc, _, pasien, _, _ := newTestService()
	ctx := context.Background()

	r, err := svc.Register(ctx, layanan.ANCDefinition, "user-1", payloadANC("Siti", "3201010101010001"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := pasien.SoftDelete(ctx, nil, r.IDPasien); err != nil {
		t.Fatalf("SoftDelete pasien: %v", err)
	}

	aktif, _ := svc.List(ctx, layanan.ANCDefinition, "")
	if len(aktif) != 0 {
		t.Error("pemeriksaan milik pasien terhapus harus tersembunyi dari daftar")
	}
	if _, err := svc.Get(ctx, layanan.ANCDefinition, r.IDPemeriksaan); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get pemeriksaan milik pasien terhapus ingin ErrNotFound, dapat %v", err)
	}
}

func TestListSearchNamaAtauNIK(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, layanan.ANCDefinition, "user-1", payloadANC("Siti Aminah", "3201010101010001")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, layanan.ANCDefinition, "user-1", payloadANC("Dewi Lestari", "3201010101010002")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	byNama, _ := svc.List(ctx, layanan.ANCDefinition, "Siti")
	if len(byNama) != 1 {
		t.Errorf("cari nama: %d hasil, ingin 1", len(byNama))
	}
	byNIK, _ := svc.List(ctx, layanan.ANCDefinition, "3201010101010002")
	if len(byNIK) != 1 {
		t.Errorf("cari NIK: %d hasil, ingin 1", len(byNIK))
	}
	semua, _ := svc.List(ctx, layanan.ANCDefinition, "")
	if len(semua) != 2 {
		t.Errorf("tanpa filter: %d hasil, ingin 2", len(semua))
	}
}

func TestRegisterTanggalTidakValid(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	p := payloadANC("Siti", "")
	p.Tanggal = "10-01-2026"
	_, err := svc.Register(context.Background(), layanan.ANCDefinition, "user-1", p)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("tanggal salah format ingin ValidationError, dapat %v", err)
	}
}
