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
	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/pkg/web"
	"github.com/ecodeclub/estore/internal/user/internal/domain"
	"github.com/ecodeclub/estore/internal/user/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.UserService
}

func NewHandler(svc service.UserService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/users")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/users")
	g.GET("/profile", h.Profile)
}

func (h *Handler) Register(ctx *gin.Context) {
	var req RegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		web.Err(ctx, errs.Wrap(errs.KindValidation, "name、email、password为必填项", err))
		return
	}
	u, err := h.svc.Register(ctx.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		web.Err(ctx, err)
		return
	}
	// 注册即登录
	if err = h.newSession(ctx, u.ID); err != nil {
		web.Err(ctx, err)
		return
	}
	web.Created(ctx, h.toProfileVO(u))
}

func (h *Handler) Login(ctx *gin.Context) {
	var req LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		web.Err(ctx, errs.Wrap(errs.KindValidation, "email和password为必填项", err))
		return
	}
	u, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		web.Err(ctx, err)
		return
	}
	if err = h.newSession(ctx, u.ID); err != nil {
		web.Err(ctx, err)
		return
	}
	web.OK(ctx, h.toProfileVO(u))
}

func (h *Handler) Profile(ctx *gin.Context) {
	sess, err := session.Get(&ginx.Context{Context: ctx})
	if err != nil {
		web.Err(ctx, errs.Wrap(errs.KindAuthentication, "未登录", err))
		return
	}
	u, err := h.svc.Profile(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		web.Err(ctx, err)
		return
	}
	web.OK(ctx, h.toProfileVO(u))
}

func (h *Handler) newSession(ctx *gin.Context, uid int64) error {
	_, err := session.NewSessionBuilder(&ginx.Context{Context: ctx}, uid).Build()
	return err
}

func (h *Handler) toProfileVO(u domain.User) Profile {
	return Profile{
		ID:    u.ID,
		SN:    u.SN,
		Name:  u.Name,
		Email: u.Email,
	}
}
