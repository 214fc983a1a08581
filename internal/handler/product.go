package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halicz/shopfloor/internal/model"
	"github.com/halicz/shopfloor/internal/repository"
)

// ProductHandler manages the product catalog.
type ProductHandler struct {
	Products *repository.ProductRepo
}

func NewProductHandler(p *repository.ProductRepo) *ProductHandler {
	return &ProductHandler{Products: p}
}

type createProductReq struct {
	Code string `json:"code"`
	Name string `json:"name"`
	// ExpectedWeight and TolerancePercent drive the variance check at
	// recording time.  Both nil disables the check for this product.
	ExpectedWeight   *float64 `json:"expected_weight"`
	TolerancePercent *float64 `json:"tolerance_percent"`
}

// Create handles POST /v1/products (supervisor only).
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code and name required"})
	}
	if req.ExpectedWeight != nil && *req.ExpectedWeight <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected_weight must be positive"})
	}
	if req.TolerancePercent != nil && *req.TolerancePercent < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tolerance_percent must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Products.Create(ctx, model.Product{
		Code:             req.Code,
		Name:             req.Name,
		ExpectedWeight:   req.ExpectedWeight,
		TolerancePercent: req.TolerancePercent,
	})
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "product code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
	}
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusCreated, echo.Map{"id": id})
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /v1/products.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}
