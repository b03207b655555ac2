package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportRoadmap sends the latest roadmap as a spreadsheet. It goes through the
// same gate as the dashboard page.
func (h *Handlers) ExportRoadmap(w http.ResponseWriter, r *http.Request) {
	r, outcome, ok := h.resolveDashboard(w, r)
	if !ok {
		return
	}
	if outcome.IsRedirect() {
		redirect(w, r, outcome.Redirect)
		return
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	headers := []string{"Step", "Title", "Description", "Duration"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}

	for i, step := range outcome.View.Roadmap {
		row := strconv.Itoa(i + 2)
		_ = file.SetCellValue(sheet, "A"+row, step.Step)
		_ = file.SetCellValue(sheet, "B"+row, step.Title)
		_ = file.SetCellValue(sheet, "C"+row, step.Description)
		_ = file.SetCellValue(sheet, "D"+row, step.Duration)
	}

	summaryRow := strconv.Itoa(len(outcome.View.Roadmap) + 3)
	_ = file.SetCellValue(sheet, "A"+summaryRow, "AI readiness score")
	_ = file.SetCellValue(sheet, "B"+summaryRow, outcome.View.AIReadinessScore)

	filename := "roadmap_" + time.Now().Format("20060102_150405") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if err := file.Write(w); err != nil {
		h.log.WithError(err).Error("write roadmap export")
	}
}
