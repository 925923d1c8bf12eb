// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package xlsx reads plants from the first sheet of an Excel workbook.
// The first row is the header and must contain the name, image, and
// price columns (case-insensitive, in any order). Other columns and
// blank rows are ignored.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/momeni/plantshop/pkg/core/cerr"
	"github.com/momeni/plantshop/pkg/core/model"
	"github.com/xuri/excelize/v2"
)

// Columns lists the required header names.
var Columns = []string{"name", "image", "price"}

// ReadFile reads plants from the path workbook.
func ReadFile(path string) (nps []model.NewPlant, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer func() {
		if err2 := f.Close(); err2 != nil && err == nil {
			err = fmt.Errorf("closing %q: %w", path, err2)
		}
	}()
	return read(f)
}

// Read reads plants from a workbook which is streamed by r.
func Read(r io.Reader) (nps []model.NewPlant, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() {
		if err2 := f.Close(); err2 != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", err2)
		}
	}()
	return read(f)
}

func read(f *excelize.File) ([]model.NewPlant, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheet")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading %q rows: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}
	cols, err := header(rows[0])
	if err != nil {
		return nil, fmt.Errorf("header row: %w", err)
	}
	nps := make([]model.NewPlant, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		np, err := plant(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		nps = append(nps, np)
	}
	return nps, nil
}

// header returns the index of each required column in the Columns
// order.
func header(row []string) ([]int, error) {
	cols := make([]int, len(Columns))
	var missing cerr.MissingFieldsError
	for i, name := range Columns {
		cols[i] = -1
		for j, cell := range row {
			if strings.EqualFold(strings.TrimSpace(cell), name) {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			missing = append(missing, name)
		}
	}
	if missing != nil {
		return nil, missing
	}
	return cols, nil
}

func plant(row []string, cols []int) (np model.NewPlant, err error) {
	vals := make([]string, len(cols))
	var missing cerr.MissingFieldsError
	for i, c := range cols {
		if c < len(row) {
			vals[i] = strings.TrimSpace(row[c])
		}
		if vals[i] == "" {
			missing = append(missing, Columns[i])
		}
	}
	if missing != nil {
		return np, missing
	}
	np.Name, np.Image = vals[0], vals[1]
	np.Price, err = strconv.ParseFloat(vals[2], 64)
	if err != nil {
		return np, fmt.Errorf("invalid price %q: %w", vals[2], err)
	}
	return np, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
