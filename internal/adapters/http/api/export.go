// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"fmt"
	"net/http"
)

// ExportHandler handles CSV export requests.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /contestants/export requests. The list is
// rendered fully before any byte hits the wire so a failed export still
// gets a proper error status.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_contestants"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := h.deps.ExportCSV(r.Context(), &buf); err != nil {
		writeError(w, http.StatusBadGateway, "store_unavailable", WrapKind(op, ErrStore, err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.deps.ExportFilename()))
	_, _ = buf.WriteTo(w)
}
