package handler

import (
	"context"
	"encoding/csv" // CSV report streaming
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halicz/shopfloor/internal/model"
	"github.com/halicz/shopfloor/internal/repository"
)

// ReportHandler exports production history for spreadsheets and auditors.
type ReportHandler struct {
	Records  *repository.ProductionRepo
	Products *repository.ProductRepo
}

func NewReportHandler(rec *repository.ProductionRepo, p *repository.ProductRepo) *ReportHandler {
	return &ReportHandler{Records: rec, Products: p}
}

// ProductionCSV handles GET /v1/reports/production.csv (supervisor only).
// Rows stream straight into the response to keep memory flat on large
// exports.  The same operator_id/product_id/limit filters as the JSON
// history endpoint apply.
func (h *ReportHandler) ProductionCSV(c echo.Context) error {
	var f repository.ListFilter
	f.OperatorID, _ = strconv.ParseUint(c.QueryParam("operator_id"), 10, 64)
	f.ProductID, _ = strconv.ParseUint(c.QueryParam("product_id"), 10, 64)
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	f.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	records, err := h.Records.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="production.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write([]string{
		"record_id", "recorded_at", "serial", "barcode_payload",
		"operator_id", "product_code", "product_name",
		"global_seq", "product_seq", "operator_seq",
		"weight_kg", "in_range", "deviation_percent",
	}); err != nil {
		return err
	}

	// Product rows repeat heavily across an export; resolve each ID once.
	products := map[uint64]model.Product{}
	for _, rec := range records {
		p, ok := products[rec.ProductID]
		if !ok {
			p, err = h.Products.GetByID(ctx, rec.ProductID)
			if err != nil {
				p = model.Product{}
			}
			products[rec.ProductID] = p
		}

		deviation := ""
		if rec.DeviationPercent != nil {
			deviation = fmt.Sprintf("%.1f", *rec.DeviationPercent)
		}
		row := []string{
			strconv.FormatUint(rec.ID, 10),
			rec.CreatedAt.Format(time.RFC3339),
			rec.Serial,
			rec.BarcodePayload,
			strconv.FormatUint(rec.OperatorID, 10),
			p.Code,
			p.Name,
			strconv.FormatInt(rec.GlobalSeq, 10),
			strconv.FormatInt(rec.ProductSeq, 10),
			strconv.FormatInt(rec.OperatorSeq, 10),
			fmt.Sprintf("%.2f", rec.Weight),
			strconv.FormatBool(rec.InRange),
			deviation,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
