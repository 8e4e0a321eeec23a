package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bidancare/bidan-backend/config"
	auditControllers "github.com/bidancare/bidan-backend/internal/audit/controllers"
	auditRepositories "github.com/bidancare/bidan-backend/internal/audit/repositories"
	auditServices "github.com/bidancare/bidan-backend/internal/audit/services"
	authControllers "github.com/bidancare/bidan-backend/internal/auth/controllers"
	authRepositories "github.com/bidancare/bidan-backend/internal/auth/repositories"
	authServices "github.com/bidancare/bidan-backend/internal/auth/services"
	"github.com/bidancare/bidan-backend/internal/common/middlewares"
	jadwalControllers "github.com/bidancare/bidan-backend/internal/jadwal/controllers"
	jadwalRepositories "github.com/bidancare/bidan-backend/internal/jadwal/repositories"
	jadwalServices "github.com/bidancare/bidan-backend/internal/jadwal/services"
	laporanControllers "github.com/bidancare/bidan-backend/internal/laporan/controllers"
	laporanRepositories "github.com/bidancare/bidan-backend/internal/laporan/repositories"
	laporanServices "github.com/bidancare/bidan-backend/internal/laporan/services"
	pasienControllers "github.com/bidancare/bidan-backend/internal/pasien/controllers"
	pasienRepositories "github.com/bidancare/bidan-backend/internal/pasien/repositories"
	pasienServices "github.com/bidancare/bidan-backend/internal/pasien/services"
	pemeriksaanControllers "github.com/bidancare/bidan-backend/internal/pemeriksaan/controllers"
	"github.com/bidancare/bidan-backend/internal/pemeriksaan/layanan"
	pemeriksaanRepositories "github.com/bidancare/bidan-backend/internal/pemeriksaan/repositories"
	pemeriksaanServices "github.com/bidancare/bidan-backend/internal/pemeriksaan/services"
	"github.com/bidancare/bidan-backend/pkg/mail"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
	"github.com/bidancare/bidan-backend/ws"
)

// Init merangkai seluruh repository, service, dan controller lalu
// mendaftarkan route pada Echo. Semua dependensi diinjeksikan dari sini;
// tidak ada state global.
func Init(e *echo.Echo, db *sql.DB, cfg *config.Config, logger zerolog.Logger, hub *ws.Hub) {
	store := mariadb.NewStore(db)

	auditRepo := auditRepositories.NewAuditRepository()
	auditService := auditServices.NewAuditService(store, auditRepo, logger)

	pasienRepo := pasienRepositories.NewPasienRepository()
	pasienService := pasienServices.NewPasienService(store, pasienRepo, auditService)
	pasienController := pasienControllers.NewPasienController(pasienService)

	pemeriksaanRepo := pemeriksaanRepositories.NewPemeriksaanRepository()
	registrasiService := pemeriksaanServices.NewRegistrasiService(store, pasienRepo, pemeriksaanRepo, auditService)

	userRepo := authRepositories.NewUserRepository()
	otpRepo := authRepositories.NewOTPRepository()
	mailer := mail.NewSMTPMailer(cfg)
	authService := authServices.NewAuthService(cfg, store, userRepo, otpRepo, mailer, auditService, logger)
	authController := authControllers.NewAuthController(authService)

	jadwalRepo := jadwalRepositories.NewJadwalRepository()
	jadwalService := jadwalServices.NewJadwalService(store, jadwalRepo, pasienRepo, auditService)
	jadwalController := jadwalControllers.NewJadwalController(jadwalService, hub)

	laporanRepo := laporanRepositories.NewLaporanRepository()
	laporanService := laporanServices.NewLaporanService(store, laporanRepo, auditService)
	laporanController := laporanControllers.NewLaporanController(laporanService)

	auditController := auditControllers.NewAuditController(auditService)

	// Route publik
	auth := e.Group("/api/auth")
	auth.POST("/login", authController.Login)
	auth.POST("/verify-otp", authController.VerifyOTP)
	auth.POST("/forgot-password", authController.ForgotPassword)
	auth.POST("/reset-password", authController.ResetPassword)

	e.GET("/ws", ws.ServeWS(hub))

	// Route terlindungi JWT
	api := e.Group("/api", middlewares.JWTMiddleware(cfg.JWTSecret))

	pasien := api.Group("/pasien")
	pasien.GET("", pasienController.List)
	pasien.POST("", pasienController.Create)
	pasien.GET("/deleted", pasienController.ListDeleted)
	pasien.GET("/:id", pasienController.Get)
	pasien.PUT("/:id", pasienController.Update)
	pasien.DELETE("/:id", pasienController.SoftDelete)
	pasien.PUT("/restore/:id", pasienController.Restore)
	pasien.DELETE("/permanent/:id", pasienController.Purge)

	// Kelima layanan memakai controller generik yang sama; hanya
	// Definition-nya yang berbeda.
	for _, def := range layanan.Definitions() {
		lc := pemeriksaanControllers.NewLayananController(registrasiService, def, hub)
		g := api.Group("/" + def.Path)
		g.GET("", lc.List)
		g.POST("", lc.Create)
		g.GET("/deleted", lc.ListDeleted)
		g.GET("/:id", lc.Get)
		g.PUT("/:id", lc.Update)
		g.DELETE("/:id", lc.SoftDelete)
		g.PUT("/restore/:id", lc.Restore)
		g.DELETE("/permanent/:id", lc.Purge)
	}

	jadwal := api.Group("/jadwal")
	jadwal.GET("", jadwalController.List)
	jadwal.POST("", jadwalController.Create)
	jadwal.GET("/hari", jadwalController.ListHari)
	jadwal.GET("/:id", jadwalController.Get)
	jadwal.PUT("/:id", jadwalController.Update)
	jadwal.DELETE("/:id", jadwalController.SoftDelete)

	laporan := api.Group("/laporan")
	laporan.GET("", laporanController.List)
	laporan.POST("", laporanController.Simpan)
	laporan.GET("/ringkasan", laporanController.Ringkasan)

	audit := api.Group("/audit")
	audit.GET("", auditController.ListAudit)
	audit.GET("/akses", auditController.ListAkses)
}
