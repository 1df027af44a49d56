// Package export renders entry listings as CSV or Excel downloads.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sammyhga/SoulsData/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet holding exported entries.
const SheetName = "Entries"

// ErrUnsupportedFormat is returned by ParseFormat for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Headers are the export columns, in order.
var Headers = []string{
	"Soul Winner",
	"Date",
	"Category",
	"Name of Soul",
	"Residence",
	"Phone Number",
	"On WhatsApp",
	"Created At",
}

// ParseFormat resolves a format name. Empty selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the download name for an export made at now.
func FileName(f Format, now time.Time) string {
	return "soul_entries_" + now.Format(time.DateOnly) + "." + string(f)
}

// Write renders entries to w in format f. Dates are shown in loc.
func Write(w io.Writer, f Format, entries []domain.Entry, loc *time.Location) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, entries, loc)
	case FormatXLSX:
		return WriteXLSX(w, entries, loc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// WriteCSV writes a header row followed by one row per entry.
func WriteCSV(w io.Writer, entries []domain.Entry, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range entries {
		if err := cw.Write(Row(&entries[i], loc)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a bold header row on the Entries sheet.
func WriteXLSX(w io.Writer, entries []domain.Entry, loc *time.Location) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(Headers))
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err = f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := range entries {
		cells := Row(&entries[i], loc)
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return fmt.Errorf("row %d: %w", i+1, cellErr)
		}
		if err = f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err = f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Row returns the export cells for e.
func Row(e *domain.Entry, loc *time.Location) []string {
	date := e.Date
	if t, ok := domain.ParseDate(e.Date, loc); ok {
		date = LongDate(t)
	}
	created := ""
	if !e.CreatedAt.IsZero() {
		created = LongDate(e.CreatedAt.In(loc))
	}
	return []string{
		e.SoulWinner,
		date,
		string(e.Category),
		e.NameOfSoul,
		e.Residence,
		e.PhoneNumber,
		e.OnWhatsApp,
		created,
	}
}

// LongDate renders t as "March 5th, 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", t.Month(), ordinal(t.Day()), t.Year())
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
