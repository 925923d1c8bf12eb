// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package plantsrs

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"
	"github.com/momeni/plantshop/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/plantshop/pkg/core/cerr"
	"github.com/momeni/plantshop/pkg/core/model"
)

// rawCreatePlantReq uses pointers, so absent keys can be told apart
// from zero values. Other keys (e.g., id and is_in_stock) are ignored.
type rawCreatePlantReq struct {
	Name  *string  `json:"name" binding:"required"`
	Image *string  `json:"image" binding:"required"`
	Price *float64 `json:"price" binding:"required"`
}

type rawPlantIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

type rawPlantPatchReq struct {
	IsInStock *bool `json:"is_in_stock"`
}

type plantUpdateReq struct {
	ID    uint
	Patch model.PlantPatch
}

func (rs *resource) DserCreatePlantReq(c *gin.Context) (
	np model.NewPlant, ok bool,
) {
	req := &rawCreatePlantReq{}
	if ok = serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	np.Name, np.Image, np.Price = *req.Name, *req.Image, *req.Price
	return
}

// DserPlantID parses the id path parameter. Identifiers which are not
// positive integers cannot belong to any plant, so they are reported
// as a missing plant.
func (rs *resource) DserPlantID(c *gin.Context) (uint, bool) {
	req := &rawPlantIDReq{}
	if err := c.ShouldBindUri(req); err != nil {
		serdser.SerErr(c, cerr.NotFound(model.ErrPlantNotFound))
		return 0, false
	}
	return req.ID, true
}

// DserUpdatePlantReq parses the id path parameter and the JSON body of
// a partial update request. An empty body is an empty patch. A missing
// plant takes precedence over a malformed body, so the plant existence
// is checked before reporting a bad request.
func (rs *resource) DserUpdatePlantReq(c *gin.Context) (
	*plantUpdateReq, bool,
) {
	id, ok := rs.DserPlantID(c)
	if !ok {
		return nil, false
	}
	val := &plantUpdateReq{ID: id}
	var body []byte
	if c.Request.Body != nil {
		var err error
		if body, err = c.GetRawData(); err != nil {
			serdser.SerErr(c, cerr.BadRequest(err))
			return nil, false
		}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return val, true
	}
	req := &rawPlantPatchReq{}
	if err := json.Unmarshal(body, req); err != nil {
		if _, gerr := rs.plants.Get(c.Request.Context(), id); gerr != nil {
			serdser.SerErr(c, gerr)
			return nil, false
		}
		serdser.SerErr(c, cerr.BadRequest(err))
		return nil, false
	}
	val.Patch.IsInStock = req.IsInStock
	return val, true
}
