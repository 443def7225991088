package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/iho/txrecon/internal/domain"
)

const (
	reportNotFoundError   = "report not found"
	reportNotFoundMessage = "Error: File not found"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GetReport(ctx context.Context) (*domain.Report, error)
}

// ReportHandler serves the tabular failure report.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Get writes the CSV report bytes unchanged.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUC.GetReport(r.Context())
	if err != nil {
		status := mapDomainError(err)
		if status == http.StatusNotFound {
			writeError(w, status, reportNotFoundError, reportNotFoundMessage)
			return
		}
		writeError(w, status, "failed to read report", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	if !report.ModifiedAt.IsZero() {
		w.Header().Set("Last-Modified", report.ModifiedAt.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(report.Content)
}
