// Package export renders stock opname reports into downloadable documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/utils/opname"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the report.
const SheetName = "Stock Opname"

// XLSXContentType is the MIME type of the spreadsheet.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// first row of the table header
const tableHeaderRow = 6

var columnHeadings = []string{
	"No", "Nama Obat", "Kategori", "Satuan", "Asal Barang", "Tgl Opname", "Kedaluwarsa",
	"Awal Baik", "Awal Rusak", "Awal Jumlah",
	"Masuk Baik", "Masuk Rusak", "Masuk Jumlah",
	"Keluar Baik", "Keluar Rusak", "Keluar Jumlah",
	"Akhir Baik", "Akhir Rusak", "Akhir Jumlah",
	"Keterangan",
}

// XLSXWriter writes reports as Excel workbooks.
type XLSXWriter struct{}

// NewXLSXWriter creates an XLSXWriter.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// WriteStockReport renders the report with its letterhead, rows, totals and signatories.
func (w *XLSXWriter) WriteStockReport(report *domain.StockReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	qty, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, err
	}

	officials := report.Officials
	header := [][]any{
		{officials.OfficeName},
		{officials.OfficeAddress},
		{"LAPORAN STOCK OPNAME OBAT"},
		{"Per tanggal", report.CutoffDate},
	}
	for i, values := range header {
		if err := setRow(f, i+1, values); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetName, "A3", "A3", bold); err != nil {
		return nil, err
	}

	if err := setRow(f, tableHeaderRow, toAny(columnHeadings)); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columnHeadings))
	if err := f.SetCellStyle(SheetName, cell(1, tableHeaderRow), cell(len(columnHeadings), tableHeaderRow), bold); err != nil {
		return nil, err
	}

	row := tableHeaderRow + 1
	for _, r := range report.Rows {
		values := []any{
			r.No, r.MedicineName, r.Category, r.UnitOfMeasure, r.OriginOfGoods, r.ReconciliationDate, r.ExpiryDate,
			r.PriorGood, r.PriorDamaged, r.PriorTotal,
			r.InGood, r.InDamaged, r.InTotal,
			r.OutGood, r.OutDamaged, r.OutTotal,
			r.EndingGood, r.EndingDamaged, r.EndingTotal,
			r.Notes,
		}
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
		row++
	}

	totals := opname.SumRows(report.Rows)
	totalRow := []any{"", "JUMLAH", "", "", "", "", "",
		"", "", totals.PriorTotal,
		"", "", totals.InTotal,
		"", "", totals.OutTotal,
		totals.EndingGood, totals.EndingDmg, totals.EndingTotal,
	}
	if err := setRow(f, row, totalRow); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, cell(1, row), cell(len(columnHeadings), row), bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, cell(8, tableHeaderRow+1), cell(19, row), qty); err != nil {
		return nil, err
	}

	row += 3
	signatures := [][]any{
		{"", "Mengetahui,", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "Pengurus Barang,"},
		{"", officials.HeadOfficialName, "", "", "", "", "", "", "", "", "", "", "", "", "", "", officials.KeeperOfficialName},
		{"", nipLabel(officials.HeadOfficialNIP), "", "", "", "", "", "", "", "", "", "", "", "", "", "", nipLabel(officials.KeeperOfficialNIP)},
	}
	for i, values := range signatures {
		r := row + i
		if i == 1 {
			r += 3 // room for the signatures
		}
		if err := setRow(f, r, values); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "T", lastCol, 28); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	if err := f.SetSheetRow(SheetName, cell(1, row), &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func nipLabel(nip string) string {
	if nip == "" {
		return ""
	}
	return "NIP. " + nip
}
