package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PrescriptionsService cubre /prescriptions.
type PrescriptionsService struct {
	c *Client
}

func (s *PrescriptionsService) Create(ctx context.Context, in PrescriptionInput) (Prescription, error) {
	var out Prescription
	err := s.c.do(ctx, http.MethodPost, "/prescriptions", nil, in, &out)
	return out, err
}

func (s *PrescriptionsService) List(ctx context.Context, patientID string) ([]Prescription, error) {
	var out []Prescription
	q := url.Values{}
	if patientID != "" {
		q.Set("patientId", patientID)
	}
	err := s.c.do(ctx, http.MethodGet, "/prescriptions", q, nil, &out)
	return out, err
}

func (s *PrescriptionsService) Page(ctx context.Context, page, size int) (Page[Prescription], error) {
	var out Page[Prescription]
	err := s.c.do(ctx, http.MethodGet, "/prescriptions/page", pageQuery(page, size, ""), nil, &out)
	return out, err
}

func (s *PrescriptionsService) Active(ctx context.Context, patientID string) ([]Prescription, error) {
	var out []Prescription
	q := url.Values{}
	if patientID != "" {
		q.Set("patientId", patientID)
	}
	err := s.c.do(ctx, http.MethodGet, "/prescriptions/active", q, nil, &out)
	return out, err
}

func (s *PrescriptionsService) Get(ctx context.Context, id string) (Prescription, error) {
	var out Prescription
	err := s.c.do(ctx, http.MethodGet, "/prescriptions/"+id, nil, nil, &out)
	return out, err
}

func (s *PrescriptionsService) ByPatient(ctx context.Context, patientID string) ([]Prescription, error) {
	var out []Prescription
	err := s.c.do(ctx, http.MethodGet, "/patients/"+patientID+"/prescriptions", nil, nil, &out)
	return out, err
}

func (s *PrescriptionsService) Update(ctx context.Context, id string, in PrescriptionInput) (Prescription, error) {
	var out Prescription
	err := s.c.do(ctx, http.MethodPut, "/prescriptions/"+id, nil, in, &out)
	return out, err
}

func (s *PrescriptionsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/prescriptions/"+id, nil, nil, nil)
}

// Export descarga el listado como blob; format es PDF, CSV o EXCEL.
func (s *PrescriptionsService) Export(ctx context.Context, format string) (File, error) {
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}
	return s.c.blob(ctx, "/prescriptions/export", q)
}

// InventoryService cubre /inventory.
type InventoryService struct {
	c *Client
}

func (s *InventoryService) Create(ctx context.Context, in InventoryItemInput) (InventoryItem, error) {
	var out InventoryItem
	err := s.c.do(ctx, http.MethodPost, "/inventory", nil, in, &out)
	return out, err
}

func (s *InventoryService) List(ctx context.Context, search, category string) ([]InventoryItem, error) {
	var out []InventoryItem
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if category != "" {
		q.Set("category", category)
	}
	err := s.c.do(ctx, http.MethodGet, "/inventory", q, nil, &out)
	return out, err
}

func (s *InventoryService) Page(ctx context.Context, page, size int, search string) (Page[InventoryItem], error) {
	var out Page[InventoryItem]
	err := s.c.do(ctx, http.MethodGet, "/inventory/page", pageQuery(page, size, search), nil, &out)
	return out, err
}

func (s *InventoryService) LowStock(ctx context.Context) ([]InventoryItem, error) {
	var out []InventoryItem
	err := s.c.do(ctx, http.MethodGet, "/inventory/low-stock", nil, nil, &out)
	return out, err
}

func (s *InventoryService) OutOfStock(ctx context.Context) ([]InventoryItem, error) {
	var out []InventoryItem
	err := s.c.do(ctx, http.MethodGet, "/inventory/out-of-stock", nil, nil, &out)
	return out, err
}

// Expiring lista ítems que vencen dentro de days días (default del backend: 30).
func (s *InventoryService) Expiring(ctx context.Context, days int) ([]InventoryItem, error) {
	var out []InventoryItem
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	err := s.c.do(ctx, http.MethodGet, "/inventory/expiring", q, nil, &out)
	return out, err
}

func (s *InventoryService) Get(ctx context.Context, id string) (InventoryItem, error) {
	var out InventoryItem
	err := s.c.do(ctx, http.MethodGet, "/inventory/"+id, nil, nil, &out)
	return out, err
}

func (s *InventoryService) Update(ctx context.Context, id string, in InventoryItemInput) (InventoryItem, error) {
	var out InventoryItem
	err := s.c.do(ctx, http.MethodPut, "/inventory/"+id, nil, in, &out)
	return out, err
}

// AdjustQuantity suma delta (negativo descuenta) a la existencia.
func (s *InventoryService) AdjustQuantity(ctx context.Context, id string, delta int) (InventoryItem, error) {
	var out InventoryItem
	err := s.c.do(ctx, http.MethodPatch, "/inventory/"+id+"/quantity", nil,
		map[string]int{"delta": delta}, &out)
	return out, err
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/inventory/"+id, nil, nil, nil)
}

// ConsentsService cubre /informed-consents.
type ConsentsService struct {
	c *Client
}

func (s *ConsentsService) Create(ctx context.Context, in ConsentInput) (InformedConsent, error) {
	var out InformedConsent
	err := s.c.do(ctx, http.MethodPost, "/informed-consents", nil, in, &out)
	return out, err
}

func (s *ConsentsService) List(ctx context.Context, status string) ([]InformedConsent, error) {
	var out []InformedConsent
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	err := s.c.do(ctx, http.MethodGet, "/informed-consents", q, nil, &out)
	return out, err
}

func (s *ConsentsService) Page(ctx context.Context, page, size int) (Page[InformedConsent], error) {
	var out Page[InformedConsent]
	err := s.c.do(ctx, http.MethodGet, "/informed-consents/page", pageQuery(page, size, ""), nil, &out)
	return out, err
}

func (s *ConsentsService) Pending(ctx context.Context) ([]InformedConsent, error) {
	var out []InformedConsent
	err := s.c.do(ctx, http.MethodGet, "/informed-consents/pending", nil, nil, &out)
	return out, err
}

func (s *ConsentsService) Get(ctx context.Context, id string) (InformedConsent, error) {
	var out InformedConsent
	err := s.c.do(ctx, http.MethodGet, "/informed-consents/"+id, nil, nil, &out)
	return out, err
}

func (s *ConsentsService) ByPatient(ctx context.Context, patientID string) ([]InformedConsent, error) {
	var out []InformedConsent
	err := s.c.do(ctx, http.MethodGet, "/patients/"+patientID+"/informed-consents", nil, nil, &out)
	return out, err
}

func (s *ConsentsService) Update(ctx context.Context, id string, in ConsentInput) (InformedConsent, error) {
	var out InformedConsent
	err := s.c.do(ctx, http.MethodPut, "/informed-consents/"+id, nil, in, &out)
	return out, err
}

// Sign firma el consentimiento; un consentimiento firmado no admite una
// segunda firma.
func (s *ConsentsService) Sign(ctx context.Context, id, signedBy string) (InformedConsent, error) {
	var out InformedConsent
	err := s.c.do(ctx, http.MethodPost, "/informed-consents/"+id+"/sign", nil,
		map[string]string{"signedBy": signedBy}, &out)
	return out, err
}

func (s *ConsentsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/informed-consents/"+id, nil, nil, nil)
}
