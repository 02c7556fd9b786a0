package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	app "softglow/internal/app/catalog"
	"softglow/internal/handler/http/httpx"
)

type CatalogHandler struct {
	service app.CatalogService
	logger  *zap.Logger
}

func NewCatalogHandler(s app.CatalogService, l *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: s, logger: l}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := app.ListFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil {
		filter.PageSize = v
	}

	res, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("Error listing products", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	res, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, app.ErrProductNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Error getting product", zap.String("product_id", productID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req app.CreateProductRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		h.logger.Error("Error creating product", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, res)
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req app.UpdateProductRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.UpdateProduct(r.Context(), productID, &req)
	if err != nil {
		if errors.Is(err, app.ErrProductNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Error updating product", zap.String("product_id", productID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		if errors.Is(err, app.ErrProductNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Error deleting product", zap.String("product_id", productID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "Product removed"})
}
