package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-admin/internal/httpx"
)

const maxBulkSize = 1000

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/inventory", func(ir chi.Router) {
		ir.Post("/", createHandler(svc))
		ir.Get("/", listHandler(svc))
		ir.Get("/page", pageHandler(svc))
		ir.Get("/low-stock", lowStockHandler(svc))
		ir.Get("/out-of-stock", outOfStockHandler(svc))
		ir.Get("/expiring", expiringHandler(svc))
		ir.Get("/{itemID}", getHandler(svc))
		ir.Put("/{itemID}", updateHandler(svc))
		ir.Patch("/{itemID}/quantity", quantityHandler(svc))
		ir.Delete("/{itemID}", deleteHandler(svc))
	})
}

type itemRequest struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	Quantity       int     `json:"quantity"`
	MinQuantity    int     `json:"minQuantity"`
	UnitPrice      float64 `json:"unitPrice"`
	Supplier       string  `json:"supplier"`
	ExpirationDate string  `json:"expirationDate"` // YYYY-MM-DD opcional
}

type itemResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	Quantity       int        `json:"quantity"`
	MinQuantity    int        `json:"minQuantity"`
	UnitPrice      float64    `json:"unitPrice"`
	Supplier       string     `json:"supplier"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		in := CreateInput{
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
			Quantity:    req.Quantity,
			MinQuantity: req.MinQuantity,
			UnitPrice:   req.UnitPrice,
			Supplier:    req.Supplier,
		}
		if strings.TrimSpace(req.ExpirationDate) != "" {
			t, err := time.Parse("2006-01-02", req.ExpirationDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "expirationDate debe ser YYYY-MM-DD")
				return
			}
			in.ExpirationDate = &t
		}

		item, err := svc.Create(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Nombre y cantidades válidas son obligatorios")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		httpx.OK(w, http.StatusCreated, "Ítem de inventario creado exitosamente", toResponse(item))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ListFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Size:   maxBulkSize,
		}
		if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
			f.Category = NormalizeCategory(v)
		}

		items, _, err := svc.List(r.Context(), f)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func pageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := 0, 10
		if v := r.URL.Query().Get("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				page = n
			}
		}
		if v := r.URL.Query().Get("size"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxBulkSize {
				size = n
			}
		}

		items, total, err := svc.List(r.Context(), ListFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Page:   page,
			Size:   size,
		})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", httpx.NewPage(toResponses(items), total, size, page))
	}
}

func lowStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.LowStock(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func outOfStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.OutOfStock(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func expiringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 30
		if v := r.URL.Query().Get("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				days = n
			}
		}
		items, err := svc.Expiring(r.Context(), days)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.GetByID(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Ítem de inventario no encontrado")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponse(item))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name           *string  `json:"name"`
			Category       *string  `json:"category"`
			Description    *string  `json:"description"`
			Quantity       *int     `json:"quantity"`
			MinQuantity    *int     `json:"minQuantity"`
			UnitPrice      *float64 `json:"unitPrice"`
			Supplier       *string  `json:"supplier"`
			ExpirationDate *string  `json:"expirationDate"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		in := UpdateInput{
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
			Quantity:    req.Quantity,
			MinQuantity: req.MinQuantity,
			UnitPrice:   req.UnitPrice,
			Supplier:    req.Supplier,
		}
		if req.ExpirationDate != nil {
			t, err := time.Parse("2006-01-02", *req.ExpirationDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "expirationDate debe ser YYYY-MM-DD")
				return
			}
			in.ExpirationDate = &t
		}

		item, err := svc.Update(r.Context(), chi.URLParam(r, "itemID"), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Datos inválidos")
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Ítem de inventario no encontrado")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Ítem de inventario actualizado exitosamente", toResponse(item))
	}
}

func quantityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Delta int `json:"delta"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		item, err := svc.AdjustQuantity(r.Context(), chi.URLParam(r, "itemID"), req.Delta)
		if err != nil {
			switch {
			case errors.Is(err, ErrInsufficientStock):
				httpx.Fail(w, http.StatusConflict, "Stock insuficiente")
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Ítem de inventario no encontrado")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Cantidad actualizada", toResponse(item))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "itemID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Ítem de inventario no encontrado")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "Ítem de inventario eliminado exitosamente", nil)
	}
}

func toResponse(item InventoryItem) itemResponse {
	return itemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Category:       string(item.Category),
		Description:    item.Description,
		Quantity:       item.Quantity,
		MinQuantity:    item.MinQuantity,
		UnitPrice:      item.UnitPrice,
		Supplier:       item.Supplier,
		ExpirationDate: item.ExpirationDate,
		Status:         string(item.Status()),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func toResponses(items []InventoryItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
