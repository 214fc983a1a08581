package handler

import (
	"context"      // request-scoped timeouts
	"database/sql" // transaction control
	"fmt"          // label value formatting
	"log"          // non-fatal publish/render failures
	"net/http"     // status codes
	"strconv"      // query param parsing
	"time"         // timestamps

	"github.com/labstack/echo/v4" // HTTP framework

	"github.com/halicz/shopfloor/internal/label"      // label rendering engine
	"github.com/halicz/shopfloor/internal/model"      // domain models
	"github.com/halicz/shopfloor/internal/queue"      // broker event payloads
	"github.com/halicz/shopfloor/internal/repository" // DB repositories
	"github.com/halicz/shopfloor/internal/serial"     // serial/payload derivation + variance
	"github.com/halicz/shopfloor/internal/service"    // publisher + config cache
)

// ProductionHandler records produced units and serves production history.
type ProductionHandler struct {
	Assignments *repository.AssignmentRepo
	Products    *repository.ProductRepo
	Counters    *repository.CounterRepo
	Records     *repository.ProductionRepo
	Users       *repository.UserRepo
	Cache       *service.ConfigCache
}

func NewProductionHandler(a *repository.AssignmentRepo, p *repository.ProductRepo,
	cnt *repository.CounterRepo, rec *repository.ProductionRepo,
	u *repository.UserRepo, cache *service.ConfigCache) *ProductionHandler {
	return &ProductionHandler{Assignments: a, Products: p, Counters: cnt, Records: rec, Users: u, Cache: cache}
}

type recordReq struct {
	AssignmentID uint64  `json:"assignment_id"`
	Weight       float64 `json:"weight"`
	// ConfirmOutOfRange lets the operator record a unit whose weight fell
	// outside tolerance after the first attempt was answered with 409.
	ConfirmOutOfRange bool `json:"confirm_out_of_range"`
}

type recordResp struct {
	RecordID       uint64                `json:"record_id"`
	Serial         string                `json:"serial"`
	BarcodePayload string                `json:"barcode_payload"`
	GlobalSeq      int64                 `json:"global_seq"`
	ProductSeq     int64                 `json:"product_seq"`
	OperatorSeq    int64                 `json:"operator_seq"`
	Variance       serial.VarianceResult `json:"variance"`
	PrintDocument  string                `json:"print_document"`
}

// Record handles POST /v1/production.  The serial derivation and all three
// counter advances happen inside one transaction: the assignment row is
// locked first, quantity_produced is incremented, then the global and
// per-product counters are allocated, and the record is inserted.  A
// rollback at any point returns every sequence to its prior value, so the
// counters can never drift apart.
func (h *ProductionHandler) Record(c echo.Context) error {
	var req recordReq
	if err := c.Bind(&req); err != nil || req.AssignmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assignment_id required"})
	}
	if req.Weight <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "weight must be positive"})
	}
	uid := getUserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	a, err := h.Assignments.GetByID(ctx, req.AssignmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load assignment failed"})
	}
	if a.OperatorID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "assignment belongs to another operator"})
	}
	if a.Status != model.AssignmentActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "assignment is not active"})
	}

	product, err := h.Products.GetByID(ctx, a.ProductID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load product failed"})
	}

	variance, err := serial.CheckVariance(req.Weight, product.ExpectedWeight, product.TolerancePercent)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	// Out-of-tolerance weights need explicit operator confirmation before a
	// serial is ever allocated.
	if !variance.InRange && !req.ConfirmOutOfRange {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "weight outside tolerance",
			"variance": variance,
		})
	}

	operator, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load operator failed"})
	}

	now := time.Now()
	rec := model.ProductionRecord{
		AssignmentID: a.ID,
		OperatorID:   uid,
		ProductID:    product.ID,
		Weight:       req.Weight,
		InRange:      variance.InRange,
	}
	if !variance.InRange {
		dev := variance.DeviationPercent
		rec.DeviationPercent = &dev
	}

	tx, err := h.Assignments.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Re-read under lock: the status may have flipped between the fast
	// pre-check above and now.
	locked, err := h.Assignments.GetByIDForUpdateTx(ctx, tx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lock assignment failed"})
	}
	if locked.OperatorID != uid || locked.Status != model.AssignmentActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "assignment is not active"})
	}
	if err := h.Assignments.IncrementProducedTx(ctx, tx, a.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "advance assignment failed"})
	}
	rec.OperatorSeq = locked.QuantityProduced + 1

	rec.GlobalSeq, err = h.Counters.NextTx(ctx, tx, serial.GlobalScope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocate global sequence failed"})
	}
	rec.ProductSeq, err = h.Counters.NextTx(ctx, tx, serial.ProductScope(product.Code))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocate product sequence failed"})
	}

	rec.Serial, rec.BarcodePayload, err = serial.Format(serial.Input{
		OperatorCode: operator.OperatorCode,
		MachineCode:  operator.MachineCode,
		Timestamp:    now,
		OperatorSeq:  rec.OperatorSeq,
		GlobalSeq:    rec.GlobalSeq,
		ProductCode:  product.Code,
		ProductSeq:   rec.ProductSeq,
		Quantity:     req.Weight,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "derive serial failed"})
	}

	if err := h.Records.CreateTx(ctx, tx, &rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save record failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// The unit exists now; everything below is best-effort and must not
	// undo the record.
	doc := h.renderLabel(ctx, rec, product, now)

	evt := queue.ProductionRecordedEvent{
		RecordID:     rec.ID,
		AssignmentID: rec.AssignmentID,
		OperatorID:   rec.OperatorID,
		ProductCode:  product.Code,
		ProductName:  product.Name,
		Serial:       rec.Serial,
		GlobalSeq:    rec.GlobalSeq,
		ProductSeq:   rec.ProductSeq,
		Weight:       rec.Weight,
		InRange:      rec.InRange,
		RecordedAt:   now.UTC().Format(time.RFC3339),
	}
	if err := service.PublishProductionRecorded(ctx, evt); err != nil {
		log.Printf("production: publish event failed for record %d: %v", rec.ID, err)
	}

	return c.JSON(http.StatusCreated, recordResp{
		RecordID:       rec.ID,
		Serial:         rec.Serial,
		BarcodePayload: rec.BarcodePayload,
		GlobalSeq:      rec.GlobalSeq,
		ProductSeq:     rec.ProductSeq,
		OperatorSeq:    rec.OperatorSeq,
		Variance:       variance,
		PrintDocument:  doc,
	})
}

// List handles GET /v1/production.  Operators only see their own records;
// supervisors may filter by operator_id and product_id.
func (h *ProductionHandler) List(c echo.Context) error {
	var f repository.ListFilter
	if getRole(c) == model.RoleSupervisor {
		f.OperatorID, _ = strconv.ParseUint(c.QueryParam("operator_id"), 10, 64)
	} else {
		f.OperatorID = getUserID(c)
	}
	f.ProductID, _ = strconv.ParseUint(c.QueryParam("product_id"), 10, 64)
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	f.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	records, err := h.Records.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if records == nil {
		records = []model.ProductionRecord{}
	}
	return c.JSON(http.StatusOK, echo.Map{"records": records})
}

// Label handles GET /v1/production/:id/label.  It re-renders the print
// document for an existing record from its stored serial and payload; the
// sequences are never re-derived.
func (h *ProductionHandler) Label(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Records.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load record failed"})
	}
	if getRole(c) != model.RoleSupervisor && rec.OperatorID != getUserID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "record belongs to another operator"})
	}

	product, err := h.Products.GetByID(ctx, rec.ProductID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load product failed"})
	}
	doc := h.renderLabel(ctx, rec, product, rec.CreatedAt)
	return c.HTML(http.StatusOK, doc)
}

// renderLabel builds the print-ready HTML document for one record.  A
// configuration lookup failure falls back to the built-in layout so a
// cache or database hiccup never leaves the line without labels.
func (h *ProductionHandler) renderLabel(ctx context.Context, rec model.ProductionRecord,
	product model.Product, ts time.Time) string {
	cfg, err := h.Cache.Get(ctx)
	if err != nil {
		log.Printf("production: label config unavailable, using default: %v", err)
		cfg = label.DefaultConfig()
	}
	return label.Render(cfg, labelValues(cfg, rec, product, ts), label.NewPrintSurface(), label.Options{})
}

// labelValues binds the well-known field IDs to this record's data.
func labelValues(cfg model.LabelConfig, rec model.ProductionRecord,
	product model.Product, ts time.Time) map[string]string {
	return map[string]string{
		label.FieldSerial:      rec.Serial,
		label.FieldBarcodeID:   rec.BarcodePayload,
		label.FieldQRID:        rec.BarcodePayload,
		label.FieldCompany:     cfg.CompanyName,
		label.FieldProductName: product.Name,
		label.FieldProductCode: product.Code,
		label.FieldWeight:      fmt.Sprintf("%.2f kg", rec.Weight),
		label.FieldDate:        ts.Format("02.01.2006 15:04"),
	}
}
