// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/plantshop/internal/test/dbcontainer"
	"github.com/momeni/plantshop/internal/test/memdb"
	"github.com/momeni/plantshop/pkg/adapter/config/cfg1"
	"github.com/momeni/plantshop/pkg/adapter/restful/gin"
	"github.com/momeni/plantshop/pkg/adapter/restful/gin/routes"
	"github.com/momeni/plantshop/pkg/core/model"
	"github.com/momeni/plantshop/pkg/core/repo"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx context.Context

	// NewPool returns an empty database for each test.
	NewPool func(t *testing.T) repo.Pool

	Pool repo.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinSQLiteTestSuite(t *testing.T) {
	ctx := context.Background()
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx: ctx,
		NewPool: func(t *testing.T) repo.Pool {
			return memdb.New(ctx, t)
		},
	})
}

func TestIntegrationGinPostgresTestSuite(t *testing.T) {
	if !dbcontainer.Available() {
		t.Skip("DOCKER_HOST is not set")
	}
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	memdb.CreateTables(ctx, t, pool)
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx: ctx,
		NewPool: func(t *testing.T) repo.Pool {
			err := pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
				_, err := c.Exec(ctx, "DELETE FROM plants")
				return err
			})
			require.NoError(t, err, "failed to empty plants table")
			return pool
		},
	})
}

func newConfig(t *testing.T, extra string) *cfg1.Config {
	t.Helper()
	c, err := cfg1.Load([]byte(extra + "versions:\n  config: 1.0.0\n"))
	require.NoError(t, err, "failed to load test configs")
	return c
}

func newEngine(t *testing.T, p repo.Pool, c *cfg1.Config) *gin.Engine {
	t.Helper()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := c.Gin.NewEngine(l)
	require.NotNil(t, e, "cannot instantiate Gin engine")
	err := routes.Register(e, p, c)
	require.NoError(t, err, "failed to register Gin routes")
	return e
}

func (igts *IntegrationGinTestSuite) SetupTest() {
	t := igts.T()
	igts.Pool = igts.NewPool(t)
	igts.Gin = newEngine(t, igts.Pool, newConfig(t, ""))
}

func send(
	e *gin.Engine, method, path string, body io.Reader,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func (igts *IntegrationGinTestSuite) sendReqRecvResp(
	method, path, body string, res any,
) int {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	w := send(igts.Gin, method, path, r)
	if res != nil {
		b := w.Body.Bytes()
		igts.Require().NoError(json.Unmarshal(b, res), "body is not json")
	}
	return w.Code
}

type errResp struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

func (igts *IntegrationGinTestSuite) create(body string) model.Plant {
	p := model.Plant{}
	code := igts.sendReqRecvResp(http.MethodPost, "/plants", body, &p)
	igts.Require().Equal(http.StatusCreated, code)
	return p
}

func (igts *IntegrationGinTestSuite) TestEmptyList() {
	w := send(igts.Gin, http.MethodGet, "/plants", nil)
	igts.Equal(http.StatusOK, w.Code)
	igts.JSONEq("[]", w.Body.String())
}

func (igts *IntegrationGinTestSuite) TestCreateGetPatchDelete() {
	fern := igts.create(`{"name":"Fern","image":"fern.jpg","price":12.5}`)
	igts.NotZero(fern.ID)
	igts.Equal(model.Plant{
		ID: fern.ID, Name: "Fern", Image: "fern.jpg", Price: 12.5,
		IsInStock: true,
	}, fern)

	got := model.Plant{}
	path := fmt.Sprintf("/plants/%d", fern.ID)
	code := igts.sendReqRecvResp(http.MethodGet, path, "", &got)
	igts.Equal(http.StatusOK, code)
	igts.Equal(fern, got)

	patched := model.Plant{}
	code = igts.sendReqRecvResp(
		http.MethodPatch, path, `{"is_in_stock":false}`, &patched,
	)
	igts.Equal(http.StatusOK, code)
	fern.IsInStock = false
	igts.Equal(fern, patched)

	code = igts.sendReqRecvResp(http.MethodGet, path, "", &got)
	igts.Equal(http.StatusOK, code)
	igts.Equal(fern, got, "patch must be persisted")

	w := send(igts.Gin, http.MethodDelete, path, nil)
	igts.Equal(http.StatusNoContent, w.Code)
	igts.Empty(w.Body.String())

	er := errResp{}
	code = igts.sendReqRecvResp(http.MethodGet, path, "", &er)
	igts.Equal(http.StatusNotFound, code)
	igts.Equal("Plant not found", er.Error)
}

func (igts *IntegrationGinTestSuite) TestConcurrentRequests() {
	const creates = 32
	var seeds []model.Plant
	for i := 0; i < 8; i++ {
		seeds = append(seeds, igts.create(fmt.Sprintf(
			`{"name":"S%d","image":"s%d.jpg","price":%d}`, i, i, i,
		)))
	}

	type outcome struct {
		want, got int
		id        uint
	}
	created := make(chan outcome, creates)
	others := make(chan outcome, 2*len(seeds))
	var wg sync.WaitGroup
	for i := 0; i < creates; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(
				`{"name":"C%d","image":"c%d.jpg","price":%d}`, i, i, i,
			)
			w := send(igts.Gin, http.MethodPost, "/plants", strings.NewReader(body))
			p := model.Plant{}
			_ = json.Unmarshal(w.Body.Bytes(), &p)
			created <- outcome{want: http.StatusCreated, got: w.Code, id: p.ID}
		}(i)
	}
	// even seeds are read and patched, odd seeds are deleted
	for i, sp := range seeds {
		wg.Add(2)
		path := fmt.Sprintf("/plants/%d", sp.ID)
		go func(i int, path string) {
			defer wg.Done()
			if i%2 == 1 {
				w := send(igts.Gin, http.MethodDelete, path, nil)
				others <- outcome{want: http.StatusNoContent, got: w.Code}
				return
			}
			w := send(igts.Gin, http.MethodGet, path, nil)
			others <- outcome{want: http.StatusOK, got: w.Code}
		}(i, path)
		go func(i int, path string) {
			defer wg.Done()
			if i%2 == 1 {
				return
			}
			body := strings.NewReader(`{"is_in_stock":false}`)
			w := send(igts.Gin, http.MethodPatch, path, body)
			others <- outcome{want: http.StatusOK, got: w.Code}
		}(i, path)
	}
	wg.Wait()
	close(created)
	close(others)

	for o := range others {
		igts.Equal(o.want, o.got)
	}
	ids := map[uint]bool{}
	for _, sp := range seeds {
		ids[sp.ID] = true
	}
	for o := range created {
		igts.Equal(o.want, o.got)
		igts.NotZero(o.id)
		igts.False(ids[o.id], "id %d is assigned twice", o.id)
		ids[o.id] = true
	}

	var ps []model.Plant
	code := igts.sendReqRecvResp(http.MethodGet, "/plants", "", &ps)
	igts.Equal(http.StatusOK, code)
	igts.Len(ps, len(seeds)/2+creates)
	for _, p := range ps {
		if p.Name[0] == 'S' {
			igts.False(p.IsInStock, "patch of %q is lost", p.Name)
		}
	}
}

func (igts *IntegrationGinTestSuite) TestListCountsCreatesMinusDeletes() {
	var ids []uint
	for i := 0; i < 4; i++ {
		p := igts.create(fmt.Sprintf(
			`{"name":"P%d","image":"p%d.jpg","price":%d}`, i, i, i,
		))
		ids = append(ids, p.ID)
	}
	w := send(igts.Gin, http.MethodDelete, fmt.Sprintf("/plants/%d", ids[1]), nil)
	igts.Equal(http.StatusNoContent, w.Code)

	var ps []model.Plant
	code := igts.sendReqRecvResp(http.MethodGet, "/plants", "", &ps)
	igts.Equal(http.StatusOK, code)
	igts.Require().Len(ps, 3)
	igts.Equal([]uint{ids[0], ids[2], ids[3]}, []uint{ps[0].ID, ps[1].ID, ps[2].ID})

	for i, p := range ps {
		for _, q := range ps[i+1:] {
			igts.NotEqual(p.ID, q.ID, "ids must be unique")
		}
	}
}

func (igts *IntegrationGinTestSuite) TestCreateIgnoresReadOnlyKeys() {
	p := igts.create(
		`{"id":999,"name":"Moss","image":"m.jpg","price":0,"is_in_stock":false}`,
	)
	igts.NotEqual(uint(999), p.ID)
	igts.True(p.IsInStock, "default availability must be used")
	igts.Equal(0.0, p.Price)
}

func (igts *IntegrationGinTestSuite) TestCreateMissingFields() {
	for _, tc := range []struct {
		name    string
		body    string
		missing []string
	}{
		{"empty object", `{}`, []string{"name", "image", "price"}},
		{"no image/price", `{"name":"Fern"}`, []string{"image", "price"}},
		{"no name", `{"image":"f.jpg","price":1}`, []string{"name"}},
		{"null price", `{"name":"F","image":"f.jpg","price":null}`, []string{"price"}},
	} {
		igts.Run(tc.name, func() {
			er := errResp{}
			code := igts.sendReqRecvResp(http.MethodPost, "/plants", tc.body, &er)
			igts.Equal(http.StatusBadRequest, code)
			igts.Equal("Missing required fields", er.Error)
			igts.Equal(tc.missing, er.Missing)
		})
	}
	var ps []model.Plant
	igts.sendReqRecvResp(http.MethodGet, "/plants", "", &ps)
	igts.Empty(ps, "nothing must be created")
}

func (igts *IntegrationGinTestSuite) TestCreateMalformed() {
	for _, tc := range []struct {
		name string
		body string
	}{
		{"no body", ""},
		{"not json", "plant please"},
		{"array", `[1, 2]`},
		{"wrong type", `{"name":"F","image":"f.jpg","price":"cheap"}`},
	} {
		igts.Run(tc.name, func() {
			er := errResp{}
			code := igts.sendReqRecvResp(http.MethodPost, "/plants", tc.body, &er)
			igts.Equal(http.StatusBadRequest, code)
			igts.NotEmpty(er.Error)
			igts.Empty(er.Missing)
		})
	}
}

func (igts *IntegrationGinTestSuite) TestNotFound() {
	for _, path := range []string{
		"/plants/999", "/plants/0", "/plants/-1", "/plants/abc",
	} {
		for _, tc := range []struct {
			method, body string
		}{
			{http.MethodGet, ""},
			{http.MethodPatch, `{"is_in_stock":true}`},
			{http.MethodPatch, `{bad json`},
			{http.MethodDelete, ""},
		} {
			igts.Run(tc.method+" "+path, func() {
				er := errResp{}
				code := igts.sendReqRecvResp(tc.method, path, tc.body, &er)
				igts.Equal(http.StatusNotFound, code)
				igts.Equal("Plant not found", er.Error)
			})
		}
	}
}

func (igts *IntegrationGinTestSuite) TestPatch() {
	p := igts.create(`{"name":"Fern","image":"fern.jpg","price":12.5}`)
	path := fmt.Sprintf("/plants/%d", p.ID)

	got := model.Plant{}
	code := igts.sendReqRecvResp(http.MethodPatch, path, "", &got)
	igts.Equal(http.StatusOK, code, "empty body is an empty patch")
	igts.Equal(p, got)

	code = igts.sendReqRecvResp(
		http.MethodPatch, path,
		`{"name":"Rose","price":1,"id":7,"is_in_stock":true}`, &got,
	)
	igts.Equal(http.StatusOK, code)
	igts.Equal(p, got, "only is_in_stock may change")

	er := errResp{}
	code = igts.sendReqRecvResp(
		http.MethodPatch, path, `{"is_in_stock":"no"}`, &er,
	)
	igts.Equal(http.StatusBadRequest, code)
	igts.NotEmpty(er.Error)

	code = igts.sendReqRecvResp(http.MethodGet, path, "", &got)
	igts.Equal(http.StatusOK, code)
	igts.Equal(p, got, "malformed patch must not change the plant")
}

func (igts *IntegrationGinTestSuite) TestRequestID() {
	w := send(igts.Gin, http.MethodGet, "/plants", nil)
	igts.NotEmpty(w.Header().Get(gin.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/plants/42", nil)
	req.Header.Set(gin.RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	igts.Equal(http.StatusNotFound, w.Code)
	igts.Equal("req-42", w.Header().Get(gin.RequestIDHeader))
}

func (igts *IntegrationGinTestSuite) TestDefaultOutOfStock() {
	t := igts.T()
	c := newConfig(t, "usecases:\n  plants:\n    default-in-stock: false\n")
	e := newEngine(t, igts.Pool, c)
	w := send(e, http.MethodPost, "/plants", strings.NewReader(
		`{"name":"Fern","image":"fern.jpg","price":12.5}`,
	))
	igts.Equal(http.StatusCreated, w.Code)
	p := model.Plant{}
	igts.Require().NoError(json.Unmarshal(w.Body.Bytes(), &p))
	igts.False(p.IsInStock)
}
