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
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/service"
	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/pkg/web"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes 下单接口对游客开放, 路由上挂了可选登录中间件:
// 不带凭证按游客处理, 带了非法凭证直接 401
func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.POST("/orders", h.Create)
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	server.GET("/orders/history", h.History)
}

func (h *Handler) Create(ctx *gin.Context) {
	var req CreateOrderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		web.Err(ctx, errs.Wrap(errs.KindValidation, "下单请求参数非法", err))
		return
	}
	order, err := h.svc.CreateOrderAfterPayment(ctx.Request.Context(), domain.OrderCreation{
		PaymentReference: req.PaymentReference,
		BuyerID:          h.currentUID(ctx),
		Buyer: domain.Buyer{
			Name:  req.CustomerInfo.Name,
			Email: req.CustomerInfo.Email,
			Phone: req.CustomerInfo.Phone,
		},
		Address: domain.Address{
			Street:     req.ShippingAddress.Street,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		CartItems: slice.Map(req.Items, func(idx int, src CartItem) domain.CartItem {
			return domain.CartItem{
				ProductID: src.ProductID,
				Quantity:  src.Quantity,
			}
		}),
		Shipping: toMinorUnits(req.Financials.Shipping),
		Tax:      toMinorUnits(req.Financials.Tax),
	})
	if err != nil {
		web.Err(ctx, err)
		return
	}
	web.Created(ctx, toOrderVO(order))
}

func (h *Handler) History(ctx *gin.Context) {
	sess, err := session.Get(&ginx.Context{Context: ctx})
	if err != nil {
		web.Err(ctx, errs.Wrap(errs.KindAuthentication, "未登录", err))
		return
	}
	orders, err := h.svc.ListOrdersByUID(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		web.Err(ctx, err)
		return
	}
	web.OK(ctx, slice.Map(orders, func(idx int, src domain.Order) Order {
		return toOrderVO(src)
	}))
}

// currentUID 拿不到会话就按游客处理, 返回 0。
// 非法凭证在可选登录中间件里已经被拦下, 走不到这里。
func (h *Handler) currentUID(ctx *gin.Context) int64 {
	sess, err := session.Get(&ginx.Context{Context: ctx})
	if err != nil {
		return 0
	}
	return sess.Claims().Uid
}
