package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"vetclinic-admin/internal/config"
	"vetclinic-admin/internal/platform/token"
	"vetclinic-admin/internal/router"
)

func newTestServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	if opts.Auth.JWTSecret == "" {
		opts.Auth = config.AuthConfig{
			JWTSecret:  "test-secret",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			LoginRPS:   100,
			LoginBurst: 100,
		}
	}
	opts.Logger = zerolog.Nop()
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doReq(t *testing.T, base, method, path string, headers map[string]string, body any) (int, envelope) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, base+path, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return res.StatusCode, env
}

func dataID(t *testing.T, env envelope) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.ID == "" {
		t.Fatalf("response without id: %s", string(env.Data))
	}
	return out.ID
}

func TestHTTP_EndToEnd_ClinicFlow(t *testing.T) {
	ts := newTestServer(t, router.Options{AuthVerifier: nil})
	admin := map[string]string{"X-Debug-User-ID": "admin-1"}

	// Propietario y paciente.
	st, env := doReq(t, ts.URL, "POST", "/owners", admin, map[string]any{
		"documentType":   "CC",
		"documentNumber": "1032456789",
		"firstName":      "Laura",
		"lastName":       "Gómez",
		"email":          "laura@test.com",
		"phone":          "3001234567",
	})
	if st != http.StatusCreated {
		t.Fatalf("create owner: %d %s", st, env.Message)
	}
	ownerID := dataID(t, env)

	st, env = doReq(t, ts.URL, "POST", "/patients", admin, map[string]any{
		"name":    "Rocky",
		"species": "perro",
		"breed":   "Beagle",
		"gender":  "macho",
		"ownerId": ownerID,
	})
	if st != http.StatusCreated {
		t.Fatalf("create patient: %d %s", st, env.Message)
	}
	patientID := dataID(t, env)

	// Los sinónimos en español quedan normalizados.
	var pet struct {
		Species string `json:"species"`
		Gender  string `json:"gender"`
	}
	_ = json.Unmarshal(env.Data, &pet)
	if pet.Species != "DOG" || pet.Gender != "MALE" {
		t.Fatalf("species/gender = %s/%s, want DOG/MALE", pet.Species, pet.Gender)
	}

	// Paciente con propietario inexistente se rechaza.
	st, _ = doReq(t, ts.URL, "POST", "/patients", admin, map[string]any{
		"name": "Ghost", "species": "DOG", "ownerId": "no-such-owner",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("patient with unknown owner: %d, want 400", st)
	}

	// Cita y máquina de estados.
	st, env = doReq(t, ts.URL, "POST", "/appointments", admin, map[string]any{
		"patientId":       patientID,
		"veterinarianId":  "vet-1",
		"scheduledDate":   time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"appointmentType": "CONSULTATION",
		"reason":          "Control anual",
	})
	if st != http.StatusCreated {
		t.Fatalf("create appointment: %d %s", st, env.Message)
	}
	apptID := dataID(t, env)

	// Saltarse CONFIRMED es ilegal.
	st, _ = doReq(t, ts.URL, "PATCH", "/appointments/"+apptID+"/status", admin, map[string]any{"status": "IN_PROGRESS"})
	if st != http.StatusConflict {
		t.Fatalf("skip transition: %d, want 409", st)
	}
	st, _ = doReq(t, ts.URL, "PATCH", "/appointments/"+apptID+"/status", admin, map[string]any{"status": "CONFIRMED"})
	if st != http.StatusOK {
		t.Fatalf("confirm: %d, want 200", st)
	}

	// Inventario y prescripción con validación de stock.
	st, env = doReq(t, ts.URL, "POST", "/inventory", admin, map[string]any{
		"name": "Amoxicilina 250mg", "category": "medicamento",
		"quantity": 10, "minQuantity": 3, "unitPrice": 1200.0,
	})
	if st != http.StatusCreated {
		t.Fatalf("create inventory item: %d %s", st, env.Message)
	}
	medicationID := dataID(t, env)

	st, env = doReq(t, ts.URL, "POST", "/inventory", admin, map[string]any{
		"name": "Vacuna agotada", "category": "VACCINE",
		"quantity": 0, "minQuantity": 1, "unitPrice": 500.0,
	})
	if st != http.StatusCreated {
		t.Fatalf("create empty item: %d %s", st, env.Message)
	}
	emptyID := dataID(t, env)

	prescription := map[string]any{
		"patientId":    patientID,
		"medicationId": medicationID,
		"dosage":       "250mg",
		"frequency":    "cada 12 horas",
		"duration":     "7 días",
		"startDate":    time.Now().UTC().Format("2006-01-02"),
		"endDate":      time.Now().Add(7 * 24 * time.Hour).UTC().Format("2006-01-02"),
	}
	st, env = doReq(t, ts.URL, "POST", "/prescriptions", admin, prescription)
	if st != http.StatusCreated {
		t.Fatalf("create prescription: %d %s", st, env.Message)
	}

	prescription["medicationId"] = emptyID
	st, _ = doReq(t, ts.URL, "POST", "/prescriptions", admin, prescription)
	if st != http.StatusConflict {
		t.Fatalf("prescription without stock: %d, want 409", st)
	}

	// Consentimiento: firma de una sola vía.
	st, env = doReq(t, ts.URL, "POST", "/informed-consents", admin, map[string]any{
		"patientId": patientID, "ownerId": ownerID,
		"procedureType": "SURGERY", "title": "Cirugía de Rocky",
	})
	if st != http.StatusCreated {
		t.Fatalf("create consent: %d %s", st, env.Message)
	}
	consentID := dataID(t, env)

	st, _ = doReq(t, ts.URL, "POST", "/informed-consents/"+consentID+"/sign", admin, map[string]any{"signedBy": "Laura Gómez"})
	if st != http.StatusOK {
		t.Fatalf("sign consent: %d, want 200", st)
	}
	st, _ = doReq(t, ts.URL, "POST", "/informed-consents/"+consentID+"/sign", admin, map[string]any{"signedBy": "Otra Persona"})
	if st != http.StatusConflict {
		t.Fatalf("double sign: %d, want 409", st)
	}

	// Dashboard refleja lo creado.
	st, env = doReq(t, ts.URL, "GET", "/dashboard/stats", admin, nil)
	if st != http.StatusOK {
		t.Fatalf("dashboard stats: %d", st)
	}
	var stats struct {
		TotalPatients       int `json:"totalPatients"`
		OutOfStockItems     int `json:"outOfStockItems"`
		ActivePrescriptions int `json:"activePrescriptions"`
	}
	_ = json.Unmarshal(env.Data, &stats)
	if stats.TotalPatients != 1 || stats.OutOfStockItems != 1 || stats.ActivePrescriptions != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	// Agenda mensual incluye la cita.
	st, env = doReq(t, ts.URL, "GET", "/agenda/monthly", admin, nil)
	if st != http.StatusOK {
		t.Fatalf("agenda monthly: %d", st)
	}

	// Sin identidad no hay acceso.
	st, _ = doReq(t, ts.URL, "GET", "/patients", nil, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("anonymous list: %d, want 401", st)
	}
}

func TestHTTP_Auth_TokenFlow(t *testing.T) {
	authCfg := config.AuthConfig{
		JWTSecret:  "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		LoginRPS:   100,
		LoginBurst: 100,
	}
	tokens := token.NewManager(authCfg.JWTSecret, authCfg.AccessTTL, authCfg.RefreshTTL)
	ts := newTestServer(t, router.Options{AuthVerifier: tokens, Tokens: tokens, Auth: authCfg})

	st, env := doReq(t, ts.URL, "POST", "/auth/register", nil, map[string]any{
		"username": "laura", "email": "laura@test.com",
		"firstName": "Laura", "lastName": "Gómez", "password": "secreto1",
	})
	if st != http.StatusCreated {
		t.Fatalf("register: %d %s", st, env.Message)
	}

	st, env = doReq(t, ts.URL, "POST", "/auth/login", nil, map[string]any{
		"username": "laura", "password": "secreto1",
	})
	if st != http.StatusOK {
		t.Fatalf("login: %d %s", st, env.Message)
	}
	var session struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         struct {
			PrimaryRole string `json:"primaryRole"`
		} `json:"user"`
	}
	_ = json.Unmarshal(env.Data, &session)
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatalf("missing tokens: %s", string(env.Data))
	}
	if session.User.PrimaryRole != "OWNER" {
		t.Fatalf("primaryRole = %s, want OWNER", session.User.PrimaryRole)
	}

	// /auth/me exige Bearer válido.
	st, _ = doReq(t, ts.URL, "GET", "/auth/me", nil, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("me without token: %d, want 401", st)
	}
	bearer := map[string]string{"Authorization": "Bearer " + session.AccessToken}
	st, env = doReq(t, ts.URL, "GET", "/auth/me", bearer, nil)
	if st != http.StatusOK {
		t.Fatalf("me: %d %s", st, env.Message)
	}

	// Un OWNER no entra a las rutas del personal.
	st, _ = doReq(t, ts.URL, "GET", "/patients", bearer, nil)
	if st != http.StatusForbidden {
		t.Fatalf("owner on staff route: %d, want 403", st)
	}

	// Rotación de refresh: el viejo deja de servir.
	st, env = doReq(t, ts.URL, "POST", "/auth/refresh-token", nil, map[string]any{
		"refreshToken": session.RefreshToken,
	})
	if st != http.StatusOK {
		t.Fatalf("refresh: %d %s", st, env.Message)
	}
	st, _ = doReq(t, ts.URL, "POST", "/auth/refresh-token", nil, map[string]any{
		"refreshToken": session.RefreshToken,
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("reused refresh: %d, want 401", st)
	}
}

func TestHTTP_LoginRateLimit(t *testing.T) {
	authCfg := config.AuthConfig{
		JWTSecret:  "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		LoginRPS:   0.001,
		LoginBurst: 2,
	}
	ts := newTestServer(t, router.Options{AuthVerifier: nil, Auth: authCfg})

	body := map[string]any{"username": "nobody", "password": "wrong"}
	for i := 0; i < 2; i++ {
		st, _ := doReq(t, ts.URL, "POST", "/auth/login", nil, body)
		if st != http.StatusUnauthorized {
			t.Fatalf("attempt %d: %d, want 401", i, st)
		}
	}
	st, _ := doReq(t, ts.URL, "POST", "/auth/login", nil, body)
	if st != http.StatusTooManyRequests {
		t.Fatalf("throttled attempt: %d, want 429", st)
	}
}
