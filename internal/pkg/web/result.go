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

// Package web 统一响应结构以及错误类型到 HTTP 状态码的唯一一处映射
package web

import (
	"net/http"

	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type Result struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Result{Status: statusSuccess, Data: data})
}

func Created(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, Result{Status: statusSuccess, Data: data})
}

// 封闭错误集合到状态码的映射，只存在这一份
var kindToHTTPStatus = map[errs.Kind]int{
	errs.KindValidation:                http.StatusBadRequest,
	errs.KindAuthentication:            http.StatusUnauthorized,
	errs.KindPaymentVerificationFailed: http.StatusBadRequest,
	errs.KindNotFound:                  http.StatusNotFound,
	errs.KindAmountMismatch:            http.StatusBadRequest,
	errs.KindDuplicate:                 http.StatusConflict,
	errs.KindInternal:                  http.StatusInternalServerError,
}

// Err 完整错误只进服务端日志，客户端只拿到安全描述
func Err(ctx *gin.Context, err error) {
	kind := errs.KindOf(err)
	code, ok := kindToHTTPStatus[kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	if code == http.StatusInternalServerError {
		elog.DefaultLogger.Error("请求处理失败",
			elog.String("path", ctx.FullPath()),
			elog.FieldErr(err))
		ctx.JSON(code, Result{Status: statusError, Message: "系统错误"})
		return
	}
	elog.DefaultLogger.Warn("请求被拒绝",
		elog.String("path", ctx.FullPath()),
		elog.FieldErr(err))
	ctx.JSON(code, Result{Status: statusError, Message: errs.SafeMsg(err)})
}
