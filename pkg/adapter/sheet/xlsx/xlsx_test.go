// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package xlsx_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/momeni/plantshop/pkg/adapter/sheet/xlsx"
	"github.com/momeni/plantshop/pkg/core/cerr"
	"github.com/momeni/plantshop/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook writes rows into the first sheet of a new workbook and
// returns its path. Nil rows are left blank.
func workbook(t *testing.T, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell := fmt.Sprintf("A%d", i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "plants.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFile(t *testing.T) {
	path := workbook(t,
		[]any{"Price", "Notes", "NAME", "image"},
		[]any{12.5, "shade", "Fern", "fern.jpg"},
		nil,
		[]any{3, "", "Cactus", "cactus.jpg"},
	)
	nps, err := xlsx.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []model.NewPlant{
		{Name: "Fern", Image: "fern.jpg", Price: 12.5},
		{Name: "Cactus", Image: "cactus.jpg", Price: 3},
	}, nps)
}

func TestReadFileHeaderOnly(t *testing.T) {
	path := workbook(t, []any{"name", "image", "price"})
	nps, err := xlsx.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, nps)
}

func TestReadFileMissingColumn(t *testing.T) {
	path := workbook(t,
		[]any{"name", "cost"},
		[]any{"Fern", 12.5},
	)
	_, err := xlsx.ReadFile(path)
	var missing cerr.MissingFieldsError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, cerr.MissingFieldsError{"image", "price"}, missing)
}

func TestReadFileBadRows(t *testing.T) {
	path := workbook(t,
		[]any{"name", "image", "price"},
		[]any{"Fern", "fern.jpg", 12.5},
		[]any{"Cactus", "", 3},
	)
	_, err := xlsx.ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	var missing cerr.MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, cerr.MissingFieldsError{"image"}, missing)

	path = workbook(t,
		[]any{"name", "image", "price"},
		[]any{"Fern", "fern.jpg", "cheap"},
	)
	_, err = xlsx.ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), `invalid price "cheap"`)
}

func TestReadFileMissing(t *testing.T) {
	_, err := xlsx.ReadFile(filepath.Join(t.TempDir(), "none.xlsx"))
	assert.Error(t, err)
}
