package consents

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubRepo struct {
	items map[string]InformedConsent
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: make(map[string]InformedConsent)}
}

func (r *stubRepo) Create(_ context.Context, c InformedConsent) error {
	r.items[c.ID] = c
	return nil
}

func (r *stubRepo) Update(_ context.Context, c InformedConsent) error {
	if _, ok := r.items[c.ID]; !ok {
		return ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (InformedConsent, error) {
	c, ok := r.items[id]
	if !ok {
		return InformedConsent{}, ErrNotFound
	}
	return c, nil
}

func (r *stubRepo) List(_ context.Context, f ListFilter) ([]InformedConsent, int64, error) {
	out := make([]InformedConsent, 0)
	for _, c := range r.items {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.OwnerID != "" && c.OwnerID != f.OwnerID {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func newTestService(t *testing.T) (*Service, InformedConsent) {
	t.Helper()
	svc := NewService(newStubRepo(), nil)
	svc.now = func() time.Time { return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC) }

	c, err := svc.Create(context.Background(), CreateInput{
		PatientID:     "pat-1",
		OwnerID:       "own-1",
		ProcedureType: "SURGERY",
		Title:         "Consentimiento de cirugía",
		Content:       "Autorizo el procedimiento.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return svc, c
}

func TestSign_OneWay(t *testing.T) {
	svc, c := newTestService(t)

	signed, err := svc.Sign(context.Background(), c.ID, "Juan Pérez")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if signed.Status != StatusSigned {
		t.Fatalf("status = %s, want SIGNED", signed.Status)
	}
	if signed.SignedAt == nil || signed.SignedBy != "Juan Pérez" {
		t.Fatalf("signature metadata not recorded: %+v", signed)
	}

	// Firmar de nuevo no debe cambiar nada ni tener éxito.
	if _, err := svc.Sign(context.Background(), c.ID, "Otro"); !errors.Is(err, ErrAlreadySigned) {
		t.Fatalf("second Sign err = %v, want ErrAlreadySigned", err)
	}
}

func TestUpdate_RejectsSigned(t *testing.T) {
	svc, c := newTestService(t)

	if _, err := svc.Sign(context.Background(), c.ID, "Juan Pérez"); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	title := "Título nuevo"
	if _, err := svc.Update(context.Background(), c.ID, UpdateInput{Title: &title}); !errors.Is(err, ErrAlreadySigned) {
		t.Fatalf("Update err = %v, want ErrAlreadySigned", err)
	}
	if err := svc.Delete(context.Background(), c.ID); !errors.Is(err, ErrAlreadySigned) {
		t.Fatalf("Delete err = %v, want ErrAlreadySigned", err)
	}
}

func TestSignAsOwner_WrongOwner(t *testing.T) {
	svc, c := newTestService(t)

	if _, err := svc.SignAsOwner(context.Background(), c.ID, "own-2", "Alguien"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("SignAsOwner err = %v, want ErrNotOwner", err)
	}

	signed, err := svc.SignAsOwner(context.Background(), c.ID, "own-1", "Juan Pérez")
	if err != nil {
		t.Fatalf("SignAsOwner: %v", err)
	}
	if !signed.IsSigned() {
		t.Fatalf("expected consent to be signed")
	}
}

func TestPending_FiltersSigned(t *testing.T) {
	svc, c := newTestService(t)

	other, err := svc.Create(context.Background(), CreateInput{
		PatientID: "pat-2",
		OwnerID:   "own-1",
		Title:     "Consentimiento de anestesia",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Sign(context.Background(), other.ID, "Juan Pérez"); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	pending, err := svc.Pending(context.Background())
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != c.ID {
		t.Fatalf("pending = %+v, want only the unsigned consent", pending)
	}
}
