package services

import (
	"fmt"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

// BookingExportColumns is the fixed header row of the bookings export
var BookingExportColumns = []string{
	"ID", "Customer", "Email", "Phone", "Trip", "Travelers",
	"Booking Date", "Total Price", "Status", "Special Requests",
}

// BookingExportFilename returns the download name for an export made on day.
func BookingExportFilename(day time.Time) string {
	return fmt.Sprintf("bookings_%s.xlsx", day.Format("2006-01-02"))
}

// BookingsWorkbook writes bookings to a single-sheet workbook. Bookings
// whose trip was deleted show an empty trip cell.
func BookingsWorkbook(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writeBookingsSheet(f, bookings); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeBookingsSheet(f *excelize.File, bookings []models.Booking) error {
	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(BookingExportColumns))
	for i, c := range BookingExportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(bookingsSheet, "A1", &header); err != nil {
		return err
	}

	for i, b := range bookings {
		tripTitle := ""
		if b.Trip != nil {
			tripTitle = b.Trip.Title
		}
		row := []interface{}{
			b.ID,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			tripTitle,
			b.NumberOfTravelers,
			b.BookingDate.Format("2006-01-02 15:04"),
			b.TotalPrice,
			string(b.Status),
			b.SpecialRequests,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(bookingsSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(bookingsSheet, "A", "J", 18)
}
