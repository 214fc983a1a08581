package handler

import (
	"context" // request-scoped timeouts
	"io"      // reading uploaded export files
	"log"     // non-fatal publish failures
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halicz/shopfloor/internal/label"
	"github.com/halicz/shopfloor/internal/model"
	"github.com/halicz/shopfloor/internal/queue"
	"github.com/halicz/shopfloor/internal/repository"
	"github.com/halicz/shopfloor/internal/service"
)

// Uploaded export files are small JSON documents; anything bigger is a
// client error.
const maxImportBytes = 1 << 20

// LabelConfigHandler serves the label designer API: fetching, saving,
// exporting, importing and previewing the layout.
type LabelConfigHandler struct {
	Repo  *repository.LabelConfigRepo
	Cache *service.ConfigCache
}

func NewLabelConfigHandler(r *repository.LabelConfigRepo, cache *service.ConfigCache) *LabelConfigHandler {
	return &LabelConfigHandler{Repo: r, Cache: cache}
}

// Get handles GET /v1/label-config.  Served from the shared cache; a fresh
// install without a saved layout gets the built-in default.
func (h *LabelConfigHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cfg, err := h.Cache.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load config failed"})
	}
	return c.JSON(http.StatusOK, cfg)
}

// Save handles PUT /v1/label-config.  The layout is normalized before it is
// stored; invalid geometry or duplicate field IDs are rejected outright.
// Every running instance is told to drop its cached copy through the
// broker, with the local cache invalidated directly as well.
func (h *LabelConfigHandler) Save(c echo.Context) error {
	var cfg model.LabelConfig
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := label.Normalize(&cfg); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.Repo.Save(ctx, cfg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save config failed"})
	}
	h.notifyUpdated(ctx, saved.ID, getUserID(c))
	return c.JSON(http.StatusOK, saved)
}

// Export handles GET /v1/label-config/export and returns the active layout
// as a downloadable JSON document.
func (h *LabelConfigHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cfg, err := h.Cache.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load config failed"})
	}
	data, err := label.Export(cfg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="label-config.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// Import handles POST /v1/label-config/import.  The uploaded document is
// parsed, normalized and saved as the new active layout.
func (h *LabelConfigHandler) Import(c echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes))
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty body"})
	}
	cfg, err := label.Import(data)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.Repo.Save(ctx, cfg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save config failed"})
	}
	h.notifyUpdated(ctx, saved.ID, getUserID(c))
	return c.JSON(http.StatusOK, saved)
}

type previewReq struct {
	// Config, when present, is previewed as-is so the designer can show
	// unsaved edits live.  Absent, the active layout is used.
	Config *model.LabelConfig `json:"config"`
	// Values override the placeholder samples for specific field IDs.
	Values map[string]string `json:"values"`
}

// Preview handles POST /v1/label-config/preview.  It renders the layout on
// the screen surface with placeholder samples for fields the caller left
// unbound, and returns an HTML fragment for direct embedding.
func (h *LabelConfigHandler) Preview(c echo.Context) error {
	var req previewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var cfg model.LabelConfig
	if req.Config != nil {
		cfg = *req.Config
		if err := label.Normalize(&cfg); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
	} else {
		var err error
		cfg, err = h.Cache.Get(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load config failed"})
		}
	}

	values := previewValues(cfg)
	for k, v := range req.Values {
		values[k] = v
	}
	doc := label.Render(cfg, values, label.NewScreenSurface(), label.Options{Preview: true})
	return c.HTML(http.StatusOK, doc)
}

// previewValues supplies representative sample data for the designer.
func previewValues(cfg model.LabelConfig) map[string]string {
	return map[string]string{
		label.FieldSerial:      "07-M2-040125-00003-0915",
		label.FieldBarcodeID:   "00000152:2770:000044:1.25",
		label.FieldQRID:        "00000152:2770:000044:1.25",
		label.FieldCompany:     cfg.CompanyName,
		label.FieldProductName: "Sample Product",
		label.FieldProductCode: "2770",
		label.FieldWeight:      "1.25 kg",
		label.FieldDate:        time.Now().Format("02.01.2006 15:04"),
	}
}

func (h *LabelConfigHandler) notifyUpdated(ctx context.Context, configID, userID uint64) {
	h.Cache.Invalidate()
	evt := queue.ConfigUpdatedEvent{
		ConfigID:  configID,
		UpdatedBy: userID,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := service.PublishConfigUpdated(ctx, evt); err != nil {
		log.Printf("label-config: publish update event failed: %v", err)
	}
}
