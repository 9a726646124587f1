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
	"math"

	"github.com/ecodeclub/estore/internal/paystack/internal/service"
	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/pkg/web"
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
	g := server.Group("/paystack")
	g.POST("/initialize", h.Initialize)
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) Initialize(ctx *gin.Context) {
	var req InitializeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		web.Err(ctx, errs.Wrap(errs.KindValidation, "email和amount为必填项", err))
		return
	}
	amount := int64(math.Round(req.Amount * 100))
	intent, err := h.svc.InitializeTransaction(ctx.Request.Context(), req.Email, amount)
	if err != nil {
		web.Err(ctx, err)
		return
	}
	web.OK(ctx, InitializeResp{
		AuthorizationURL: intent.AuthorizationURL,
		AccessCode:       intent.AccessCode,
		Reference:        intent.Reference,
	})
}
