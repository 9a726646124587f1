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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	ordermocks "github.com/ecodeclub/estore/internal/order/mocks"
	"github.com/ecodeclub/estore/internal/pkg/errs"
	_ "github.com/ecodeclub/estore/internal/test"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testUID = 234

func newServer(svc *ordermocks.MockService, loggedIn bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	if loggedIn {
		server.Use(func(ctx *gin.Context) {
			ctx.Set("_session", session.NewMemorySession(session.Claims{
				Uid: testUID,
			}))
		})
	}
	hdl := NewHandler(svc)
	hdl.PublicRoutes(server)
	hdl.PrivateRoutes(server)
	return server
}

func TestHandler_Create(t *testing.T) {
	t.Parallel()

	reqBody := `{
		"paymentReference": "ref-abc-123",
		"customerInfo": {"name": "Tom", "email": "tom@example.com"},
		"shippingAddress": {"street": "1 Main St", "city": "Lagos", "state": "LA", "postalCode": "100001", "country": "NG"},
		"items": [{"productId": 1, "quantity": 2}],
		"financials": {"shipping": 5, "tax": 1}
	}`

	testCases := []struct {
		name       string
		loggedIn   bool
		reqBody    string
		mock       func(svc *ordermocks.MockService)
		wantCode   int
		wantStatus string
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:     "游客下单成功",
			reqBody:  reqBody,
			wantCode: http.StatusCreated,
			mock: func(svc *ordermocks.MockService) {
				svc.EXPECT().CreateOrderAfterPayment(gomock.Any(), domain.OrderCreation{
					PaymentReference: "ref-abc-123",
					Buyer:            domain.Buyer{Name: "Tom", Email: "tom@example.com"},
					Address: domain.Address{
						Street:     "1 Main St",
						City:       "Lagos",
						State:      "LA",
						PostalCode: "100001",
						Country:    "NG",
					},
					CartItems: []domain.CartItem{{ProductID: 1, Quantity: 2}},
					Shipping:  500,
					Tax:       100,
				}).Return(domain.Order{
					SN: "sn-1",
					Financials: domain.Financials{
						Subtotal:    2000,
						Shipping:    500,
						Tax:         100,
						TotalAmount: 2600,
					},
					Payment: domain.Payment{
						Reference: "ref-abc-123",
						Method:    domain.PaymentMethodPaystack,
						Status:    domain.PaymentStatusPaid,
					},
				}, nil)
			},
			wantStatus: "success",
			check: func(t *testing.T, body map[string]any) {
				data := body["data"].(map[string]any)
				fin := data["financials"].(map[string]any)
				// 对外输出用元表示
				assert.Equal(t, 20.0, fin["subtotal"])
				assert.Equal(t, 26.0, fin["totalAmount"])
			},
		},
		{
			name:     "登录用户下单带上UID",
			loggedIn: true,
			reqBody:  reqBody,
			wantCode: http.StatusCreated,
			mock: func(svc *ordermocks.MockService) {
				svc.EXPECT().CreateOrderAfterPayment(gomock.Any(), gomock.Cond(func(x any) bool {
					c, ok := x.(domain.OrderCreation)
					return ok && c.BuyerID == testUID
				})).Return(domain.Order{SN: "sn-2", BuyerID: testUID}, nil)
			},
			wantStatus: "success",
		},
		{
			name:       "缺少支付引用",
			reqBody:    `{"items": [{"productId": 1, "quantity": 2}]}`,
			mock:       func(svc *ordermocks.MockService) {},
			wantCode:   http.StatusBadRequest,
			wantStatus: "error",
		},
		{
			name: "商品数量为0",
			reqBody: `{
				"paymentReference": "ref-abc-123",
				"customerInfo": {"name": "Tom", "email": "tom@example.com"},
				"shippingAddress": {"street": "1 Main St", "city": "Lagos", "state": "LA", "postalCode": "100001", "country": "NG"},
				"items": [{"productId": 1, "quantity": 0}],
				"financials": {"shipping": 5, "tax": 1}
			}`,
			mock:       func(svc *ordermocks.MockService) {},
			wantCode:   http.StatusBadRequest,
			wantStatus: "error",
		},
		{
			name: "商品数量为负数",
			reqBody: `{
				"paymentReference": "ref-abc-123",
				"customerInfo": {"name": "Tom", "email": "tom@example.com"},
				"shippingAddress": {"street": "1 Main St", "city": "Lagos", "state": "LA", "postalCode": "100001", "country": "NG"},
				"items": [{"productId": 1, "quantity": -1}],
				"financials": {"shipping": 5, "tax": 1}
			}`,
			mock:       func(svc *ordermocks.MockService) {},
			wantCode:   http.StatusBadRequest,
			wantStatus: "error",
		},
		{
			name:    "金额对账失败",
			reqBody: reqBody,
			mock: func(svc *ordermocks.MockService) {
				svc.EXPECT().CreateOrderAfterPayment(gomock.Any(), gomock.Any()).
					Return(domain.Order{}, errs.New(errs.KindAmountMismatch, "订单金额和实际支付金额不一致"))
			},
			wantCode:   http.StatusBadRequest,
			wantStatus: "error",
		},
		{
			name:    "商品不存在",
			reqBody: reqBody,
			mock: func(svc *ordermocks.MockService) {
				svc.EXPECT().CreateOrderAfterPayment(gomock.Any(), gomock.Any()).
					Return(domain.Order{}, errs.Newf(errs.KindNotFound, "商品不存在: %d", 1))
			},
			wantCode:   http.StatusNotFound,
			wantStatus: "error",
		},
		{
			name:    "重复支付引用",
			reqBody: reqBody,
			mock: func(svc *ordermocks.MockService) {
				svc.EXPECT().CreateOrderAfterPayment(gomock.Any(), gomock.Any()).
					Return(domain.Order{}, errs.New(errs.KindDuplicate, "该支付已创建过订单"))
			},
			wantCode:   http.StatusConflict,
			wantStatus: "error",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			svc := ordermocks.NewMockService(ctrl)
			tc.mock(svc)
			server := newServer(svc, tc.loggedIn)

			req, err := http.NewRequest(http.MethodPost, "/orders", iox.NewJSONReader(json.RawMessage(tc.reqBody)))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			assert.Equal(t, tc.wantCode, recorder.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tc.wantStatus, body["status"])
			if tc.wantStatus == "error" {
				assert.NotEmpty(t, body["message"])
			}
			if tc.check != nil {
				tc.check(t, body)
			}
		})
	}
}

func TestHandler_History(t *testing.T) {
	t.Parallel()

	t.Run("查询成功", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		svc := ordermocks.NewMockService(ctrl)
		svc.EXPECT().ListOrdersByUID(gomock.Any(), int64(testUID)).
			Return([]domain.Order{
				{SN: "sn-2", BuyerID: testUID},
				{SN: "sn-1", BuyerID: testUID},
			}, nil)
		server := newServer(svc, true)

		req, err := http.NewRequest(http.MethodGet, "/orders/history", nil)
		require.NoError(t, err)
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "success", body["status"])
		data := body["data"].([]any)
		require.Len(t, data, 2)
		assert.Equal(t, "sn-2", data[0].(map[string]any)["sn"])
	})

	t.Run("未登录", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		svc := ordermocks.NewMockService(ctrl)
		server := newServer(svc, false)

		req, err := http.NewRequest(http.MethodGet, "/orders/history", nil)
		require.NoError(t, err)
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
