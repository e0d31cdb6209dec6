// Package client es el SDK HTTP de la consola: un servicio tipado por
// familia de recursos sobre un transporte común que adjunta el Bearer,
// renueva la sesión ante un 401 y desarma el sobre estándar.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"vetclinic-admin/internal/httpx"
)

const requestTimeout = 30 * time.Second

// Client habla con el backend de la clínica. Crear con New.
type Client struct {
	base    string
	http    *http.Client
	session *SessionStore
	refresh singleflight.Group
	log     zerolog.Logger

	Auth           *AuthService
	Owners         *OwnersService
	Patients       *PatientsService
	Appointments   *AppointmentsService
	MedicalRecords *MedicalRecordsService
	Prescriptions  *PrescriptionsService
	Inventory      *InventoryService
	Consents       *ConsentsService
	Services       *ClinicServicesService
	Users          *UsersService
	Dashboard      *DashboardService
	Agenda         *AgendaService
	Reports        *ReportsService
	OwnerPortal    *OwnerPortalService
}

// New arma el cliente contra baseURL usando la sesión persistida en store.
func New(baseURL string, store *SessionStore, log zerolog.Logger) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		session: store,
		log:     log,
	}
	c.Auth = &AuthService{c: c}
	c.Owners = &OwnersService{c: c}
	c.Patients = &PatientsService{c: c}
	c.Appointments = &AppointmentsService{c: c}
	c.MedicalRecords = &MedicalRecordsService{c: c}
	c.Prescriptions = &PrescriptionsService{c: c}
	c.Inventory = &InventoryService{c: c}
	c.Consents = &ConsentsService{c: c}
	c.Services = &ClinicServicesService{c: c}
	c.Users = &UsersService{c: c}
	c.Dashboard = &DashboardService{c: c}
	c.Agenda = &AgendaService{c: c}
	c.Reports = &ReportsService{c: c}
	c.OwnerPortal = &OwnerPortalService{c: c}
	return c
}

// Session expone el store para que la consola consulte estado y usuario.
func (c *Client) Session() *SessionStore { return c.session }

// do ejecuta un request con sobre JSON. Ante un 401 con sesión activa
// renueva el token (una sola renovación compartida entre llamadores
// concurrentes) y reintenta el request original una única vez.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	status, env, err := c.roundTrip(ctx, method, path, query, payload, c.session.Token())
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && c.session.Token() != "" {
		if err := c.refreshSession(ctx); err != nil {
			return err
		}
		status, env, err = c.roundTrip(ctx, method, path, query, payload, c.session.Token())
		if err != nil {
			return err
		}
	}

	return unwrap(status, env, out)
}

// doPublic ejecuta un request sin Bearer ni renovación (endpoints /auth públicos).
func (c *Client) doPublic(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}
	status, env, err := c.roundTrip(ctx, method, path, nil, payload, "")
	if err != nil {
		return err
	}
	return unwrap(status, env, out)
}

// Blob descarga una respuesta binaria (exports, reportes) con el mismo
// esquema de renovación que do.
func (c *Client) blob(ctx context.Context, path string, query url.Values) (File, error) {
	f, status, err := c.fetchBlob(ctx, path, query, c.session.Token())
	if err != nil {
		return File{}, err
	}
	if status == http.StatusUnauthorized && c.session.Token() != "" {
		if err := c.refreshSession(ctx); err != nil {
			return File{}, err
		}
		f, status, err = c.fetchBlob(ctx, path, query, c.session.Token())
		if err != nil {
			return File{}, err
		}
	}
	if status != http.StatusOK {
		return File{}, &APIError{Status: status, Message: "No se pudo generar el archivo"}
	}
	return f, nil
}

// File es un binario descargado del backend.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

func (c *Client) fetchBlob(ctx context.Context, path string, query url.Values, token string) (File, int, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return File{}, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return File{}, 0, fmt.Errorf("no se pudo contactar el servidor: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return File{}, res.StatusCode, err
	}
	f := File{
		Name:        filenameFrom(res.Header.Get("Content-Disposition"), "descarga.bin"),
		ContentType: res.Header.Get("Content-Type"),
		Body:        body,
	}
	return f, res.StatusCode, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (int, httpx.Envelope, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return 0, httpx.Envelope{}, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, httpx.Envelope{}, fmt.Errorf("no se pudo contactar el servidor: %w", err)
	}
	defer res.Body.Close()

	var env httpx.Envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil && err != io.EOF {
		return res.StatusCode, httpx.Envelope{}, fmt.Errorf("respuesta ilegible del servidor: %w", err)
	}
	return res.StatusCode, env, nil
}

// refreshSession intercambia el refresh token por un par nuevo. Con N
// llamadores concurrentes golpeados por el mismo 401 se hace un único
// intercambio y todos comparten el resultado; si falla, la sesión local
// se limpia y todos reciben ErrSessionExpired.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		refreshToken := c.session.RefreshToken()
		if refreshToken == "" {
			return nil, ErrSessionExpired
		}

		var out TokenPair
		err := c.doPublic(ctx, http.MethodPost, "/auth/refresh-token",
			map[string]string{"refreshToken": refreshToken}, &out)
		if err != nil {
			c.log.Debug().Err(err).Msg("renovación de sesión fallida")
			_ = c.session.Clear()
			return nil, ErrSessionExpired
		}
		if err := c.session.SetTokens(out.AccessToken, out.RefreshToken); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// unwrap desarma el sobre: éxito decodifica data en out, fallo se
// convierte en *APIError con el mensaje del backend tal cual.
func unwrap(status int, env httpx.Envelope, out any) error {
	if status >= 200 && status < 300 && env.Success {
		if out == nil || len(env.Data) == 0 {
			return nil
		}
		return json.Unmarshal(env.Data, out)
	}

	msg := env.Message
	if msg == "" && status >= 500 {
		msg = "Error interno del servidor"
	}
	return &APIError{Status: status, Message: msg, Errors: env.Errors}
}

// filenameFrom extrae el nombre sugerido del Content-Disposition.
func filenameFrom(header, fallback string) string {
	if header == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return fallback
	}
	if name := params["filename"]; name != "" {
		return name
	}
	return fallback
}
