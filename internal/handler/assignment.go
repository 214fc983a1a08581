package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halicz/shopfloor/internal/model"
	"github.com/halicz/shopfloor/internal/repository"
)

// AssignmentHandler manages work assignments: supervisors hand a product
// and a target quantity to an operator, operators pull their open work.
type AssignmentHandler struct {
	Assignments *repository.AssignmentRepo
	Products    *repository.ProductRepo
	Users       *repository.UserRepo
}

func NewAssignmentHandler(a *repository.AssignmentRepo, p *repository.ProductRepo,
	u *repository.UserRepo) *AssignmentHandler {
	return &AssignmentHandler{Assignments: a, Products: p, Users: u}
}

type createAssignmentReq struct {
	OperatorID     uint64 `json:"operator_id"`
	ProductID      uint64 `json:"product_id"`
	TargetQuantity int64  `json:"target_quantity"`
}

// Create handles POST /v1/assignments (supervisor only).
func (h *AssignmentHandler) Create(c echo.Context) error {
	var req createAssignmentReq
	if err := c.Bind(&req); err != nil || req.OperatorID == 0 || req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "operator_id and product_id required"})
	}
	if req.TargetQuantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "target_quantity must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	operator, err := h.Users.GetByID(ctx, req.OperatorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "operator not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load operator failed"})
	}
	if operator.Role != model.RoleOperator {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "assignee must be an operator"})
	}
	if _, err := h.Products.GetByID(ctx, req.ProductID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load product failed"})
	}

	id, err := h.Assignments.Create(ctx, req.OperatorID, req.ProductID, req.TargetQuantity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create assignment failed"})
	}
	a, err := h.Assignments.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusCreated, echo.Map{"id": id})
	}
	return c.JSON(http.StatusCreated, a)
}

// List handles GET /v1/assignments.  Operators get their own assignments;
// supervisors get everything, or one operator's with ?operator_id=.
func (h *AssignmentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		assignments []model.Assignment
		err         error
	)
	if getRole(c) == model.RoleSupervisor {
		if operatorID, _ := strconv.ParseUint(c.QueryParam("operator_id"), 10, 64); operatorID != 0 {
			assignments, err = h.Assignments.ListByOperator(ctx, operatorID)
		} else {
			assignments, err = h.Assignments.List(ctx)
		}
	} else {
		assignments, err = h.Assignments.ListByOperator(ctx, getUserID(c))
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"assignments": assignments})
}

// Cancel handles POST /v1/assignments/:id/cancel (supervisor only).  Only
// active assignments can be cancelled; resolved ones answer 409.
func (h *AssignmentHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Assignments.Cancel(ctx, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "assignment is not active"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.AssignmentCancelled})
}
