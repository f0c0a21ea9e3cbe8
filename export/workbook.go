// Package export writes the visible page of a payment list to a spreadsheet.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"smartpay/backend/listview"
	"smartpay/backend/models"
)

const (
	// SheetName is the only sheet in an exported workbook.
	SheetName = "Pembayaran"
	// FileName is the default download name.
	FileName = "data_pembayaran.xlsx"
	// ContentType is the MIME type of an xlsx workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Headers is the header row, in column order.
var Headers = []string{"Nama KK", "Blok", "Jenis Pembayaran", "Bulan", "Tahun", "Status", "Bukti"}

// Row returns the cells for one record. Absent values become empty cells and the
// status goes through the view's display policy.
func Row(view listview.View, p models.PaymentRecord) []string {
	name, _ := listview.FieldHouseholdName.Value(p)
	block, _ := listview.FieldHouseBlock.Value(p)
	paymentType, _ := listview.FieldPaymentType.Value(p)
	return []string{
		name,
		block,
		paymentType,
		p.Month,
		p.Year,
		view.Status.Display(p.Status),
		p.ProofURL,
	}
}

// Build creates a workbook holding exactly rows, one per record after the header.
func Build(view listview.View, rows []models.PaymentRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	if err := setRow(f, 1, Headers); err != nil {
		f.Close()
		return nil, err
	}
	for i, p := range rows {
		if err := setRow(f, i+2, Row(view, p)); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("error writing row %d: %w", row, err)
	}
	return nil
}

// Buffer builds the workbook for rows and serializes it in memory, so callers can
// report a failure before anything is sent.
func Buffer(view listview.View, rows []models.PaymentRecord) (*bytes.Buffer, error) {
	f, err := Build(view, rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}

// Write builds the workbook for rows and streams it to w.
func Write(w io.Writer, view listview.View, rows []models.PaymentRecord) error {
	f, err := Build(view, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
