// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"strconv"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/pkg/web"
	"github.com/ecodeclub/estore/internal/product/internal/domain"
	"github.com/ecodeclub/estore/internal/product/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/products")
	g.GET("", h.List)
	g.GET("/:id", h.Detail)
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) List(ctx *gin.Context) {
	products, err := h.svc.List(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		web.Err(ctx, err)
		return
	}
	web.OK(ctx, slice.Map(products, func(idx int, src domain.Product) Product {
		return toProductVO(src)
	}))
}

func (h *Handler) Detail(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		web.Err(ctx, errs.New(errs.KindValidation, "商品ID非法"))
		return
	}
	p, err := h.svc.FindByID(ctx.Request.Context(), id)
	if err != nil {
		web.Err(ctx, err)
		return
	}
	web.OK(ctx, toProductVO(p))
}
