package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": "",
		"data":    data,
	})
}

func seededStore(t *testing.T, token, refresh string) *SessionStore {
	t.Helper()
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, store.Save(token, refresh, &SessionUser{ID: "u1", Roles: []string{"ADMIN"}}))
	return store
}

// Con N llamadores concurrentes rechazados por el mismo 401 debe haber
// exactamente un intercambio de refresh y todos los requests originales
// deben reintentar con el token nuevo.
func TestClient_SingleFlightRefresh(t *testing.T) {
	var refreshCalls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		time.Sleep(50 * time.Millisecond) // mantiene a los llamadores solapados
		writeEnvelope(w, http.StatusOK, true, map[string]any{
			"accessToken":  "new-token",
			"refreshToken": "new-refresh",
			"tokenType":    "Bearer",
			"expiresIn":    900,
		})
	})
	mux.HandleFunc("/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer new-token" {
			writeEnvelope(w, http.StatusUnauthorized, false, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, map[string]any{"totalPatients": 7})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	store := seededStore(t, "stale-token", "stale-refresh")
	c := New(ts.URL, store, zerolog.Nop())

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	stats := make([]DashboardStats, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stats[i], errs[i] = c.Dashboard.Stats(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i], "llamador %d", i)
		assert.Equal(t, int64(7), stats[i].TotalPatients)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&refreshCalls))
	assert.Equal(t, "new-token", store.Token())
	assert.Equal(t, "new-refresh", store.RefreshToken())
}

// Si el refresh también falla, todos los llamadores reciben el error de
// sesión y la sesión local queda limpia.
func TestClient_RefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		writeEnvelope(w, http.StatusUnauthorized, false, nil)
	})
	mux.HandleFunc("/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, nil)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	store := seededStore(t, "stale-token", "stale-refresh")
	c := New(ts.URL, store, zerolog.Nop())

	const callers = 4
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Dashboard.Stats(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		assert.ErrorIs(t, errs[i], ErrSessionExpired, "llamador %d", i)
	}
	assert.Equal(t, StateAnonymous, store.State())
	assert.Empty(t, store.Token())
}

// Un error del backend con sesión válida se entrega tal cual, sin
// intentos de renovación.
func TestClient_BackendMessageVerbatim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/owners", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "documentNumber es obligatorio",
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := New(ts.URL, seededStore(t, "tok", "ref"), zerolog.Nop())

	_, err := c.Owners.Create(context.Background(), OwnerInput{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "documentNumber es obligatorio", apiErr.Message)
}
