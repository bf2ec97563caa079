package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

// ExportFormat identifies a supported export output format
type ExportFormat string

const (
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
	FormatText  ExportFormat = "text"
)

// ParseExportFormat validates a caller-supplied format. Unknown formats
// are rejected, never silently defaulted.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatCSV, FormatExcel, FormatText:
		return ExportFormat(s), nil
	}
	return "", apperrors.ErrUnsupportedFormat
}

// DateFormat selects the date token used in glucose exports
type DateFormat string

const (
	DateSlash DateFormat = "slash" // 2006/01/02
	DateISO   DateFormat = "iso"   // 2006-01-02
)

func (d DateFormat) layout(fallback string) string {
	switch d {
	case DateSlash:
		return "2006/01/02"
	case DateISO:
		return "2006-01-02"
	}
	return fallback
}

// ExportOptions tune glucose exports; other record kinds ignore them
type ExportOptions struct {
	IncludeUnits bool
	DateFormat   DateFormat
}

// Export is a rendered payload ready for download or clipboard delivery
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService serialises record sets. It renders exactly the records
// it is handed, in the order it is handed them: the caller's filter and
// sort are never recomputed here.
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// Readings exports a filtered, sorted set of glucose readings
func (s *ExportService) Readings(readings []domain.Reading, format ExportFormat, opts ExportOptions, loc *time.Location) (*Export, error) {
	switch format {
	case FormatText:
		return textExport("glucosereading", readingsText(readings, opts, loc)), nil
	case FormatCSV, FormatExcel:
		dateLayout := opts.DateFormat.layout("2006-01-02")
		headers := []string{"Date", "Time", "Value", "Unit", "Notes"}
		rows := make([][]any, 0, len(readings))
		for _, r := range readings {
			local := r.OccurredAt.In(loc)
			value := r.Value.String()
			if opts.IncludeUnits {
				value += " " + string(r.Unit)
			}
			rows = append(rows, []any{
				local.Format(dateLayout),
				local.Format("15:04:05"),
				value,
				string(r.Unit),
				r.Notes,
			})
		}
		return tableExport("glucosereading", "Glucose Readings", headers, rows, format)
	}
	return nil, apperrors.ErrUnsupportedFormat
}

// Doses exports a filtered, sorted set of insulin doses
func (s *ExportService) Doses(doses []domain.Dose, format ExportFormat, loc *time.Location) (*Export, error) {
	switch format {
	case FormatText:
		lines := make([]string, 0, len(doses)*2)
		for _, d := range doses {
			lines = append(lines, doseText(&d, loc), "")
		}
		return textExport("insulindose", lines), nil
	case FormatCSV, FormatExcel:
		headers := []string{"Date", "Time", "Insulin Type", "Base Units", "Correction Units", "Total Units", "Notes"}
		rows := make([][]any, 0, len(doses))
		for _, d := range doses {
			local := d.OccurredAt.In(loc)
			name := ""
			if d.InsulinType != nil {
				name = d.InsulinType.Name
			}
			rows = append(rows, []any{
				local.Format("2006-01-02"),
				local.Format("15:04:05"),
				name,
				d.BaseUnits.String(),
				d.CorrectionUnits.String(),
				d.TotalUnits().String(),
				d.Notes,
			})
		}
		return tableExport("insulindose", "Insulin Doses", headers, rows, format)
	}
	return nil, apperrors.ErrUnsupportedFormat
}

// Meals exports a filtered, sorted set of meals
func (s *ExportService) Meals(meals []domain.Meal, format ExportFormat, loc *time.Location) (*Export, error) {
	switch format {
	case FormatText:
		lines := make([]string, 0, len(meals)*2)
		for _, m := range meals {
			lines = append(lines, mealText(&m, loc), "")
		}
		return textExport("meal", lines), nil
	case FormatCSV, FormatExcel:
		headers := []string{"Date", "Time", "Meal Type", "Description", "Total Carbs (g)", "Notes"}
		rows := make([][]any, 0, len(meals))
		for _, m := range meals {
			local := m.OccurredAt.In(loc)
			rows = append(rows, []any{
				local.Format("2006-01-02"),
				local.Format("15:04:05"),
				string(m.MealType),
				m.Description,
				m.CarbsGrams.String(),
				m.Notes,
			})
		}
		return tableExport("meal", "Meals", headers, rows, format)
	}
	return nil, apperrors.ErrUnsupportedFormat
}

// readingsText renders the clipboard-oriented bulleted list: a header
// naming the effective date range, then one line per reading.
func readingsText(readings []domain.Reading, opts ExportOptions, loc *time.Location) []string {
	dateLayout := opts.DateFormat.layout("2006/01/02")

	rangeLabel := "No Data"
	if len(readings) > 0 {
		earliest, latest := readings[0].OccurredAt, readings[0].OccurredAt
		for _, r := range readings[1:] {
			if r.OccurredAt.Before(earliest) {
				earliest = r.OccurredAt
			}
			if r.OccurredAt.After(latest) {
				latest = r.OccurredAt
			}
		}
		lo, hi := earliest.In(loc), latest.In(loc)
		if lo.Format(dateLayout) == hi.Format(dateLayout) {
			rangeLabel = lo.Format(dateLayout)
		} else {
			rangeLabel = lo.Format(dateLayout) + " - " + hi.Format(dateLayout)
		}
	}

	lines := []string{"Glucose Readings for " + rangeLabel}
	for _, r := range readings {
		local := r.OccurredAt.In(loc)
		line := fmt.Sprintf("- %s %s: %s", local.Format(dateLayout), local.Format("3:04 pm"), r.Value)
		if opts.IncludeUnits {
			line += " " + string(r.Unit)
		}
		lines = append(lines, line)
	}
	return lines
}

func doseText(d *domain.Dose, loc *time.Location) string {
	name := ""
	if d.InsulinType != nil {
		name = d.InsulinType.Name
	}
	text := fmt.Sprintf("Insulin Dose - %s\n", d.OccurredAt.In(loc).Format("2006-01-02 15:04:05"))
	text += fmt.Sprintf("  Type: %s\n", name)
	text += fmt.Sprintf("  Base: %s units\n", d.BaseUnits)
	text += fmt.Sprintf("  Correction: %s units\n", d.CorrectionUnits)
	text += fmt.Sprintf("  Total: %s units", d.TotalUnits())
	if d.Notes != "" {
		text += fmt.Sprintf("\n  Notes: %s", d.Notes)
	}
	return text
}

func mealText(m *domain.Meal, loc *time.Location) string {
	text := fmt.Sprintf("%s - %s\n", m.MealType, m.OccurredAt.In(loc).Format("2006-01-02 15:04:05"))
	text += fmt.Sprintf("  Description: %s", m.Description)
	if !m.CarbsGrams.IsZero() {
		text += fmt.Sprintf("\n  Carbs: %sg", m.CarbsGrams)
	}
	if m.Notes != "" {
		text += fmt.Sprintf("\n  Notes: %s", m.Notes)
	}
	return text
}

func textExport(kind string, lines []string) *Export {
	return &Export{
		Filename:    exportFilename(kind, "txt"),
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(strings.Join(lines, "\n")),
	}
}

func tableExport(kind, sheet string, headers []string, rows [][]any, format ExportFormat) (*Export, error) {
	if format == FormatCSV {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write(headers)
		for _, row := range rows {
			record := make([]string, len(row))
			for i, cell := range row {
				record[i] = fmt.Sprint(cell)
			}
			_ = w.Write(record)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
		return &Export{
			Filename:    exportFilename(kind, "csv"),
			ContentType: "text/csv",
			Data:        buf.Bytes(),
		}, nil
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialise workbook: %w", err)
	}
	return &Export{
		Filename:    exportFilename(kind, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func exportFilename(kind, ext string) string {
	return fmt.Sprintf("%s_%s.%s", kind, time.Now().Format("20060102_150405"), ext)
}
