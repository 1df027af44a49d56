package export_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sammyhga/SoulsData/internal/domain"
	"github.com/sammyhga/SoulsData/internal/export"
)

func sampleEntries() []domain.Entry {
	return []domain.Entry{
		{
			SoulWinner:  "Grace Mensah",
			Date:        "2024-03-05",
			Category:    domain.CategoryWon,
			NameOfSoul:  "Kofi, Jr",
			Residence:   "Madina",
			PhoneNumber: "0241234567",
			OnWhatsApp:  domain.WhatsAppYes,
			CreatedAt:   time.Date(2024, time.March, 22, 9, 30, 0, 0, time.UTC),
		},
		{
			SoulWinner: "Paul",
			Date:       "last tuesday",
			Category:   domain.CategoryInvited,
			NameOfSoul: "Ama",
			OnWhatsApp: domain.WhatsAppNo,
		},
	}
}

func TestLongDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		day  int
		want string
	}{
		{1, "January 1st, 2024"},
		{2, "January 2nd, 2024"},
		{3, "January 3rd, 2024"},
		{4, "January 4th, 2024"},
		{11, "January 11th, 2024"},
		{12, "January 12th, 2024"},
		{13, "January 13th, 2024"},
		{21, "January 21st, 2024"},
		{22, "January 22nd, 2024"},
		{23, "January 23rd, 2024"},
		{31, "January 31st, 2024"},
	}
	for _, tt := range tests {
		got := export.LongDate(time.Date(2024, time.January, tt.day, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, tt.want, got)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := export.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, export.FormatCSV, f)

	f, err = export.ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, f)

	_, err = export.ParseFormat("pdf")
	assert.True(t, errors.Is(err, export.ErrUnsupportedFormat))
}

func TestFileName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 30, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "soul_entries_2024-06-30.csv", export.FileName(export.FormatCSV, now))
	assert.Equal(t, "soul_entries_2024-06-30.xlsx", export.FileName(export.FormatXLSX, now))
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatCSV, sampleEntries(), time.UTC))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, export.Headers, records[0])
	assert.Equal(t, []string{
		"Grace Mensah", "March 5th, 2024", "won", "Kofi, Jr", "Madina",
		"0241234567", "yes", "March 22nd, 2024",
	}, records[1])
	assert.Equal(t, "last tuesday", records[2][1], "unparseable date is written verbatim")
	assert.Empty(t, records[2][7])
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatXLSX, sampleEntries(), time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.Headers, rows[0])
	assert.Equal(t, "March 5th, 2024", rows[1][1])
	assert.Equal(t, "Ama", rows[2][3])

	styleID, err := f.GetCellStyle(export.SheetName, "B1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWrite_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil, time.UTC))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
