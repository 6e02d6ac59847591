// Package export renders booking reports as XLSX workbooks.
package export

import (
	"fmt"
	"strings"
	"time"

	"turfbook/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var headers = []string{"Booking ID", "Date", "Start", "End", "Status", "Player", "Email", "Phone", "Booked At"}

// BookingsWorkbook builds a one-sheet workbook listing a turf's
// bookings. The caller owns the returned file and must Close it.
func BookingsWorkbook(turfName string, bookings []*models.TurfBooking) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Bookings for %s", turfName))
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, b := range bookings {
		values := []any{
			b.Booking.ID,
			b.Slot.Date,
			b.Slot.StartTime,
			b.Slot.EndTime,
			b.Booking.Status,
			b.Player.Name,
			b.Player.Email,
			b.Player.Phone,
			b.Booking.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", lastCol, 18)
	_ = f.DeleteSheet("Sheet1")

	return f, nil
}

// Filename derives a download name from the turf name:
// "Green Arena" -> "bookings_green_arena.xlsx".
func Filename(turfName string) string {
	slug := strings.ToLower(strings.TrimSpace(turfName))
	slug = strings.Join(strings.Fields(slug), "_")
	if slug == "" {
		slug = "turf"
	}
	return fmt.Sprintf("bookings_%s.xlsx", slug)
}
