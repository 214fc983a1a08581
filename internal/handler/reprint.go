package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halicz/shopfloor/internal/label"
	"github.com/halicz/shopfloor/internal/model"
	"github.com/halicz/shopfloor/internal/repository"
	"github.com/halicz/shopfloor/internal/service"
)

// ReprintHandler covers the reprint workflow: operators file requests
// against their own production records, supervisors review the queue and
// approve or reject.  A label is only rendered again once an approval
// lands; the stored serial and payload are reused verbatim.
type ReprintHandler struct {
	Reprints *repository.ReprintRepo
	Records  *repository.ProductionRepo
	Products *repository.ProductRepo
	Cache    *service.ConfigCache
}

func NewReprintHandler(rp *repository.ReprintRepo, rec *repository.ProductionRepo,
	p *repository.ProductRepo, cache *service.ConfigCache) *ReprintHandler {
	return &ReprintHandler{Reprints: rp, Records: rec, Products: p, Cache: cache}
}

type reprintReq struct {
	RecordID uint64 `json:"record_id"`
	Reason   string `json:"reason"`
}

// Create handles POST /v1/reprints.  Operators may only request reprints
// of records they produced themselves.
func (h *ReprintHandler) Create(c echo.Context) error {
	var req reprintReq
	if err := c.Bind(&req); err != nil || req.RecordID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "record_id required"})
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason required"})
	}
	uid := getUserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Records.GetByID(ctx, req.RecordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load record failed"})
	}
	if rec.OperatorID != uid && getRole(c) != model.RoleSupervisor {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "record belongs to another operator"})
	}

	id, err := h.Reprints.Create(ctx, req.RecordID, uid, reason)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create request failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "status": model.ReprintPending})
}

// List handles GET /v1/reprints.  Operators see their own requests;
// supervisors see the review queue, filterable with ?status= (default
// PENDING, "all" for everything).
func (h *ReprintHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		requests []model.ReprintRequest
		err      error
	)
	if getRole(c) == model.RoleSupervisor {
		status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
		switch status {
		case "":
			status = model.ReprintPending
		case "ALL":
			status = ""
		case model.ReprintPending, model.ReprintApproved, model.ReprintRejected:
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		requests, err = h.Reprints.ListByStatus(ctx, status)
	} else {
		requests, err = h.Reprints.ListByRequester(ctx, getUserID(c))
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if requests == nil {
		requests = []model.ReprintRequest{}
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": requests})
}

// Approve handles POST /v1/reprints/:id/approve.  The request row is
// locked and the label re-rendered before the status is flipped, so an
// approval response always carries a usable print document.
func (h *ReprintHandler) Approve(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	doc, err := h.approveOne(ctx, id, getUserID(c))
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":             id,
		"status":         model.ReprintApproved,
		"print_document": doc,
	})
}

// Reject handles POST /v1/reprints/:id/reject.
func (h *ReprintHandler) Reject(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Reprints.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := h.Reprints.GetByIDForUpdateTx(ctx, tx, id); err != nil {
		return h.reviewError(c, err)
	}
	if err := h.Reprints.ResolveTx(ctx, tx, id, model.ReprintRejected, getUserID(c)); err != nil {
		return h.reviewError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.ReprintRejected})
}

type approveBatchReq struct {
	// IDs selects specific requests.  Empty approves every pending request
	// in queue order.
	IDs []uint64 `json:"ids"`
}

type batchResult struct {
	ID            uint64 `json:"id"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
	PrintDocument string `json:"print_document,omitempty"`
}

// ApproveBatch handles POST /v1/reprints/approve-batch.  Requests are
// processed one at a time in queue order; a failure on one request is
// reported in its slot and does not stop the rest.
func (h *ReprintHandler) ApproveBatch(c echo.Context) error {
	var req approveBatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	ids := req.IDs
	if len(ids) == 0 {
		pending, err := h.Reprints.ListByStatus(ctx, model.ReprintPending)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		for _, p := range pending {
			ids = append(ids, p.ID)
		}
	}

	reviewerID := getUserID(c)
	results := make([]batchResult, 0, len(ids))
	for _, id := range ids {
		doc, err := h.approveOne(ctx, id, reviewerID)
		if err != nil {
			results = append(results, batchResult{ID: id, Status: "failed", Error: reviewErrorText(err)})
			continue
		}
		results = append(results, batchResult{ID: id, Status: model.ReprintApproved, PrintDocument: doc})
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// approveOne runs a single approval transaction and returns the rendered
// print document.
func (h *ReprintHandler) approveOne(ctx context.Context, id, reviewerID uint64) (string, error) {
	tx, err := h.Reprints.DB().BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	req, err := h.Reprints.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		return "", err
	}
	rec, err := h.Records.GetByID(ctx, req.RecordID)
	if err != nil {
		return "", err
	}
	product, err := h.Products.GetByID(ctx, rec.ProductID)
	if err != nil {
		return "", err
	}

	cfg, err := h.Cache.Get(ctx)
	if err != nil {
		log.Printf("reprint: label config unavailable, using default: %v", err)
		cfg = label.DefaultConfig()
	}
	doc := label.Render(cfg, labelValues(cfg, rec, product, rec.CreatedAt),
		label.NewPrintSurface(), label.Options{})

	if err := h.Reprints.ResolveTx(ctx, tx, id, model.ReprintApproved, reviewerID); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	committed = true
	return doc, nil
}

func (h *ReprintHandler) reviewError(c echo.Context, err error) error {
	switch {
	case err == sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
	case err == repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "request already resolved"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "review failed"})
	}
}

func reviewErrorText(err error) string {
	switch {
	case err == sql.ErrNoRows:
		return "request not found"
	case err == repository.ErrConflict:
		return "request already resolved"
	default:
		return "review failed"
	}
}
