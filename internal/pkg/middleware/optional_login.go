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

package middleware

import (
	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/pkg/web"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

const (
	accessTokenHeader = "X-Access-Token"
	sessionCookieName = "ssid"
	keySession        = "_session"
)

// OptionalLoginBuilder 用于游客可访问的路由。
// 没带凭证直接放行，带了凭证就必须是合法会话，否则 401。
type OptionalLoginBuilder struct{}

func NewOptionalLoginBuilder() *OptionalLoginBuilder {
	return &OptionalLoginBuilder{}
}

func (b *OptionalLoginBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !b.carriesToken(ctx) {
			return
		}
		sess, err := session.Get(&ginx.Context{Context: ctx})
		if err != nil {
			web.Err(ctx, errs.Wrap(errs.KindAuthentication, "登录凭证非法或已过期", err))
			ctx.Abort()
			return
		}
		ctx.Set(keySession, sess)
	}
}

func (b *OptionalLoginBuilder) carriesToken(ctx *gin.Context) bool {
	if ctx.GetHeader(accessTokenHeader) != "" {
		return true
	}
	if ctx.GetHeader("Authorization") != "" {
		return true
	}
	_, err := ctx.Cookie(sessionCookieName)
	return err == nil
}
