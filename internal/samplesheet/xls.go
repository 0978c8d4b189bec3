package samplesheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/extrame/xls"
)

// isXLS reports whether path names a legacy Excel workbook
func isXLS(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xls")
}

// readXLSRows returns the cells of the first worksheet, one slice per row.
// Empty rows are dropped.
func readXLSRows(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}
	if workbook == nil {
		return nil, pfx.Err(fmt.Errorf("file has no workbook stream"))
	}

	if workbook.NumSheets() < 1 {
		return nil, pfx.Err(fmt.Errorf("workbook has no sheets"))
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, pfx.Err(fmt.Errorf("sheet 0 could not be read"))
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheetRow(sheet, rowID)
		if row == nil {
			continue
		}

		record := make([]string, 0, row.LastCol())
		blank := true
		for colID := 0; colID < row.LastCol(); colID++ {
			value := row.Col(colID)
			if strings.TrimSpace(value) != "" {
				blank = false
			}
			record = append(record, value)
		}
		if blank {
			continue
		}
		rows = append(rows, record)
	}

	return rows, nil
}

// sheetRow returns row i, or nil when the sheet holds no record for it.
// WorkSheet.Row dereferences the missing row and panics in that case.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
