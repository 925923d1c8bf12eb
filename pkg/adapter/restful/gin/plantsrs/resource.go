// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package plantsrs realizes the plants resource, allowing the plants
// manipulation REST APIs to be accepted and delegated to the plants
// use cases respectively.
package plantsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/plantshop/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/plantshop/pkg/core/usecase/plantsuc"
)

// resource handlers pass c.Request.Context() to the use cases instead
// of c itself, since the database drivers may still watch the given
// context after the handler returns while gin reuses c for another
// request.
type resource struct {
	plants *plantsuc.UseCase
}

// Register instantiates a resource adapting the plants use case
// instance with the relevant REST APIs including:
//  1. GET request to /plants in order to list all plants,
//  2. POST request to /plants in order to create a plant,
//  3. GET request to /plants/:id in order to fetch one plant,
//  4. PATCH request to /plants/:id in order to update its stock flag,
//  5. DELETE request to /plants/:id in order to remove a plant.
func Register(r *gin.RouterGroup, plants *plantsuc.UseCase) {
	rs := &resource{plants: plants}
	r.GET("plants", rs.ListPlants)
	r.POST("plants", rs.CreatePlant)
	r.GET("plants/:id", rs.GetPlant)
	r.PATCH("plants/:id", rs.UpdatePlant)
	r.DELETE("plants/:id", rs.DeletePlant)
}

func (rs *resource) ListPlants(c *gin.Context) {
	ps, err := rs.plants.List(c.Request.Context())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (rs *resource) CreatePlant(c *gin.Context) {
	np, ok := rs.DserCreatePlantReq(c)
	if !ok {
		return
	}
	p, err := rs.plants.Create(c.Request.Context(), np)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (rs *resource) GetPlant(c *gin.Context) {
	id, ok := rs.DserPlantID(c)
	if !ok {
		return
	}
	p, err := rs.plants.Get(c.Request.Context(), id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (rs *resource) UpdatePlant(c *gin.Context) {
	req, ok := rs.DserUpdatePlantReq(c)
	if !ok {
		return
	}
	p, err := rs.plants.Update(c.Request.Context(), req.ID, req.Patch)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (rs *resource) DeletePlant(c *gin.Context) {
	id, ok := rs.DserPlantID(c)
	if !ok {
		return
	}
	if err := rs.plants.Delete(c.Request.Context(), id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
