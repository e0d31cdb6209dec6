package router

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	mem "vetclinic-admin/internal/adapters/storage/memory"
	pg "vetclinic-admin/internal/adapters/storage/postgres"
	"vetclinic-admin/internal/config"
	"vetclinic-admin/internal/domain/agenda"
	"vetclinic-admin/internal/domain/appointments"
	"vetclinic-admin/internal/domain/authn"
	"vetclinic-admin/internal/domain/clinicservices"
	"vetclinic-admin/internal/domain/consents"
	"vetclinic-admin/internal/domain/dashboard"
	"vetclinic-admin/internal/domain/inventory"
	"vetclinic-admin/internal/domain/medicalrecords"
	"vetclinic-admin/internal/domain/owners"
	"vetclinic-admin/internal/domain/ownerportal"
	"vetclinic-admin/internal/domain/patients"
	"vetclinic-admin/internal/domain/prescriptions"
	"vetclinic-admin/internal/domain/reports"
	"vetclinic-admin/internal/domain/users"
	"vetclinic-admin/internal/middleware"
	"vetclinic-admin/internal/ports/auth"
	"vetclinic-admin/internal/platform/token"
)

type Options struct {
	// AuthVerifier nil habilita el modo dev con X-Debug-User-ID.
	AuthVerifier auth.AuthVerifier

	// DB opcional: si viene (o hay DB_DSN), usa Postgres; si no,
	// in-memory.
	DB *sql.DB

	Tokens *token.Manager
	Auth   config.AuthConfig
	Logger zerolog.Logger
}

// ownerExists adapta owners.Service al OwnerChecker de patients.
type ownerExists struct{ svc *owners.Service }

func (a ownerExists) Exists(ctx context.Context, ownerID string) bool {
	_, err := a.svc.GetByID(ctx, ownerID)
	return err == nil
}

// patientExists adapta patients.Service a los checkers de citas,
// historias y consentimientos.
type patientExists struct{ svc *patients.Service }

func (a patientExists) Exists(ctx context.Context, patientID string) bool {
	_, err := a.svc.GetByID(ctx, patientID)
	return err == nil
}

// medicationInfo adapta inventory.Service al checker de prescripciones.
type medicationInfo struct{ svc *inventory.Service }

func (a medicationInfo) MedicationInfo(ctx context.Context, medicationID string) (string, int, bool) {
	item, err := a.svc.GetByID(ctx, medicationID)
	if err != nil {
		return "", 0, false
	}
	return item.Name, item.Quantity, true
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		ownersRepo         owners.Repository
		patientsRepo       patients.Repository
		appointmentsRepo   appointments.Repository
		recordsRepo        medicalrecords.Repository
		inventoryRepo      inventory.Repository
		prescriptionsRepo  prescriptions.Repository
		consentsRepo       consents.Repository
		clinicServicesRepo clinicservices.Repository
		usersRepo          users.Repository
		sessionsRepo       authn.SessionRepository
	)

	if opts.DB != nil {
		ownersRepo = pg.NewOwnersRepo(opts.DB)
		patientsRepo = pg.NewPatientsRepo(opts.DB)
		appointmentsRepo = pg.NewAppointmentsRepo(opts.DB)
		recordsRepo = pg.NewMedicalRecordsRepo(opts.DB)
		inventoryRepo = pg.NewInventoryRepo(opts.DB)
		prescriptionsRepo = pg.NewPrescriptionsRepo(opts.DB)
		consentsRepo = pg.NewConsentsRepo(opts.DB)
		clinicServicesRepo = pg.NewClinicServicesRepo(opts.DB)
		usersRepo = pg.NewUsersRepo(opts.DB)
		sessionsRepo = pg.NewSessionsRepo(opts.DB)
	} else {
		ownersRepo = mem.NewOwnersRepo()
		patientsRepo = mem.NewPatientsRepo()
		appointmentsRepo = mem.NewAppointmentsRepo()
		recordsRepo = mem.NewMedicalRecordsRepo()
		inventoryRepo = mem.NewInventoryRepo()
		prescriptionsRepo = mem.NewPrescriptionsRepo()
		consentsRepo = mem.NewConsentsRepo()
		clinicServicesRepo = mem.NewClinicServicesRepo()
		usersRepo = mem.NewUsersRepo()
		sessionsRepo = mem.NewSessionsRepo()
	}

	// Services por módulo.
	ownersSvc := owners.NewService(ownersRepo)
	patientsSvc := patients.NewService(patientsRepo, ownerExists{ownersSvc})
	appointmentsSvc := appointments.NewService(appointmentsRepo, patientExists{patientsSvc})
	recordsSvc := medicalrecords.NewService(recordsRepo, patientExists{patientsSvc})
	inventorySvc := inventory.NewService(inventoryRepo)
	prescriptionsSvc := prescriptions.NewService(prescriptionsRepo, medicationInfo{inventorySvc})
	consentsSvc := consents.NewService(consentsRepo, patientExists{patientsSvc})
	clinicServicesSvc := clinicservices.NewService(clinicServicesRepo)
	usersSvc := users.NewService(usersRepo)
	agendaSvc := agenda.NewService(appointmentsSvc)
	dashboardSvc := dashboard.NewService(patientsSvc, ownersSvc, appointmentsSvc, inventorySvc, consentsSvc, prescriptionsSvc)
	reportsSvc := reports.NewService(appointmentsSvc, patientsSvc, clinicServicesSvc)
	portalSvc := ownerportal.NewService(ownersSvc, patientsSvc, appointmentsSvc, consentsSvc)

	var tokens *token.Manager
	if opts.Tokens != nil {
		tokens = opts.Tokens
	} else {
		tokens = token.NewManager(opts.Auth.JWTSecret, opts.Auth.AccessTTL, opts.Auth.RefreshTTL)
	}
	authSvc := authn.NewService(usersSvc, tokens, sessionsRepo, opts.Auth.RefreshTTL, opts.Logger)

	// Endpoints públicos; el login pasa por el limitador por IP.
	loginRPS := opts.Auth.LoginRPS
	if loginRPS <= 0 {
		loginRPS = 1
	}
	loginBurst := opts.Auth.LoginBurst
	if loginBurst <= 0 {
		loginBurst = 5
	}
	limiter := middleware.NewIPRateLimiter(rate.Limit(loginRPS), loginBurst)

	r.Group(func(public chi.Router) {
		public.Use(limiter.Handler)
		authn.RegisterPublicRoutes(public, authSvc)
	})

	staffRoles := []string{users.RoleAdmin, users.RoleVeterinarian, users.RoleReceptionist}

	// Zona autenticada.
	r.Group(func(priv chi.Router) {
		priv.Use(middleware.RequireAuth)

		authn.RegisterProtectedRoutes(priv, authSvc)

		// Personal de la clínica.
		priv.Group(func(staff chi.Router) {
			staff.Use(middleware.RequireRoles(staffRoles...))

			owners.RegisterRoutes(staff, ownersSvc)
			patients.RegisterRoutes(staff, patientsSvc)
			appointments.RegisterRoutes(staff, appointmentsSvc)
			medicalrecords.RegisterRoutes(staff, recordsSvc)
			inventory.RegisterRoutes(staff, inventorySvc)
			prescriptions.RegisterRoutes(staff, prescriptionsSvc)
			consents.RegisterRoutes(staff, consentsSvc)
			clinicservices.RegisterRoutes(staff, clinicServicesSvc)
			agenda.RegisterRoutes(staff, agendaSvc)
			dashboard.RegisterRoutes(staff, dashboardSvc)
			reports.RegisterRoutes(staff, reportsSvc)
		})

		// Administración de usuarios, solo ADMIN.
		priv.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRoles(users.RoleAdmin))
			users.RegisterRoutes(admin, usersSvc)
		})

		// Portal de propietarios.
		priv.Group(func(portal chi.Router) {
			portal.Use(middleware.RequireRoles(users.RoleOwner))
			ownerportal.RegisterRoutes(portal, portalSvc)
		})
	})

	return r
}
