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

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/event"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/paystack"
	paystackmocks "github.com/ecodeclub/estore/internal/paystack/mocks"
	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/pkg/sequencenumber"
	"github.com/ecodeclub/estore/internal/product"
	productmocks "github.com/ecodeclub/estore/internal/product/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeOrderRepository 在内存里模拟支付引用的唯一索引
type fakeOrderRepository struct {
	orders []domain.Order
	refs   map[string]struct{}
	nextID int64
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{refs: map[string]struct{}{}, nextID: 1}
}

func (f *fakeOrderRepository) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	if _, ok := f.refs[order.Payment.Reference]; ok {
		return domain.Order{}, dao.ErrDuplicatePaymentReference
	}
	f.refs[order.Payment.Reference] = struct{}{}
	order.ID = f.nextID
	f.nextID++
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrderRepository) ListByBuyerID(_ context.Context, buyerID int64) ([]domain.Order, error) {
	var res []domain.Order
	// 新订单在前
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].BuyerID == buyerID {
			res = append(res, f.orders[i])
		}
	}
	return res, nil
}

type fakeProducer struct {
	events []event.OrderCreatedEvent
	err    error
}

func (f *fakeProducer) Produce(_ context.Context, evt event.OrderCreatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

func testCreation() domain.OrderCreation {
	return domain.OrderCreation{
		PaymentReference: "ref-abc-123",
		BuyerID:          7,
		Buyer: domain.Buyer{
			Name:  "Tom",
			Email: "tom@example.com",
			Phone: "123456",
		},
		Address: domain.Address{
			Street:     "1 Main St",
			City:       "Lagos",
			State:      "LA",
			PostalCode: "100001",
			Country:    "NG",
		},
		CartItems: []domain.CartItem{
			{ProductID: 1, Quantity: 2},
		},
		Shipping: 500,
		Tax:      100,
	}
}

func TestService_CreateOrderAfterPayment(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		mock       func(ctrl *gomock.Controller) (paystack.Service, product.Service)
		creation   func() domain.OrderCreation
		assertErr  func(t *testing.T, err error)
		wantKind   errs.Kind
		wantOrders int
		after      func(t *testing.T, order domain.Order, repo *fakeOrderRepository, producer *fakeProducer)
	}{
		{
			// 商品单价10.00元 x2, 运费5元, 税1元, 网关实扣26.00元
			name: "创建成功",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{
						Status:    paystack.StatusSuccess,
						Reference: "ref-abc-123",
						Amount:    2600,
					}, nil)
				productSvc := productmocks.NewMockService(ctrl)
				productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1}).
					Return([]product.Product{
						{ID: 1, Name: "键盘", Image: "kb.png", Price: 1000},
					}, nil)
				return paymentSvc, productSvc
			},
			creation:   testCreation,
			wantOrders: 1,
			after: func(t *testing.T, order domain.Order, repo *fakeOrderRepository, producer *fakeProducer) {
				assert.Equal(t, int64(2000), order.Financials.Subtotal)
				assert.Equal(t, int64(2600), order.Financials.TotalAmount)
				assert.Equal(t, domain.PaymentStatusPaid, order.Payment.Status)
				assert.Equal(t, domain.PaymentMethodPaystack, order.Payment.Method)
				require.Len(t, order.Items, 1)
				assert.Equal(t, domain.Item{
					ProductID: 1,
					Name:      "键盘",
					Image:     "kb.png",
					Price:     1000,
					Quantity:  2,
				}, order.Items[0])
				require.Len(t, order.StatusRecords, 1)
				assert.Equal(t, domain.FulfillmentStatusPending, order.StatusRecords[0].Status)
				assert.NotEmpty(t, order.SN)
				require.Len(t, producer.events, 1)
				assert.Equal(t, order.SN, producer.events[0].OrderSN)
			},
		},
		{
			// 网关说实扣26.01元, 差1分在容差内, 落库金额以网关为准
			name: "容差内以网关金额为准",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{
						Status:    paystack.StatusSuccess,
						Reference: "ref-abc-123",
						Amount:    2601,
					}, nil)
				productSvc := productmocks.NewMockService(ctrl)
				productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1}).
					Return([]product.Product{
						{ID: 1, Name: "键盘", Price: 1000},
					}, nil)
				return paymentSvc, productSvc
			},
			creation:   testCreation,
			wantOrders: 1,
			after: func(t *testing.T, order domain.Order, repo *fakeOrderRepository, producer *fakeProducer) {
				assert.Equal(t, int64(2601), order.Financials.TotalAmount)
				assert.Equal(t, int64(2000), order.Financials.Subtotal)
			},
		},
		{
			// 网关实扣30.00元, 差4.00元, 超出容差, 不能落库
			name: "金额对账失败",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{
						Status:    paystack.StatusSuccess,
						Reference: "ref-abc-123",
						Amount:    3000,
					}, nil)
				productSvc := productmocks.NewMockService(ctrl)
				productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1}).
					Return([]product.Product{
						{ID: 1, Name: "键盘", Price: 1000},
					}, nil)
				return paymentSvc, productSvc
			},
			creation: testCreation,
			wantKind: errs.KindAmountMismatch,
		},
		{
			name: "支付状态为failed",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{
						Status:    paystack.StatusFailed,
						Reference: "ref-abc-123",
						Amount:    2600,
					}, nil)
				// 支付没成功, 后面的目录查询不该发生
				return paymentSvc, productmocks.NewMockService(ctrl)
			},
			creation: testCreation,
			wantKind: errs.KindPaymentVerificationFailed,
		},
		{
			name: "网关不可达",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{}, errors.New("connection refused"))
				return paymentSvc, productmocks.NewMockService(ctrl)
			},
			creation: testCreation,
			wantKind: errs.KindPaymentVerificationFailed,
		},
		{
			name: "商品已下架",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{
						Status:    paystack.StatusSuccess,
						Reference: "ref-abc-123",
						Amount:    2600,
					}, nil)
				productSvc := productmocks.NewMockService(ctrl)
				productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1, 99}).
					Return([]product.Product{
						{ID: 1, Name: "键盘", Price: 1000},
					}, nil)
				return paymentSvc, productSvc
			},
			creation: func() domain.OrderCreation {
				c := testCreation()
				c.CartItems = append(c.CartItems, domain.CartItem{ProductID: 99, Quantity: 1})
				return c
			},
			wantKind: errs.KindNotFound,
		},
		{
			// 数量为0但金额恰好能对上, 也不允许落库
			name: "商品数量为0",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{
						Status:    paystack.StatusSuccess,
						Reference: "ref-abc-123",
						Amount:    600,
					}, nil)
				productSvc := productmocks.NewMockService(ctrl)
				productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1}).
					Return([]product.Product{
						{ID: 1, Name: "键盘", Price: 1000},
					}, nil)
				return paymentSvc, productSvc
			},
			creation: func() domain.OrderCreation {
				c := testCreation()
				c.CartItems = []domain.CartItem{{ProductID: 1, Quantity: 0}}
				return c
			},
			wantKind: errs.KindValidation,
		},
		{
			name: "商品数量为负数",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{
						Status:    paystack.StatusSuccess,
						Reference: "ref-abc-123",
						Amount:    600,
					}, nil)
				productSvc := productmocks.NewMockService(ctrl)
				productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1}).
					Return([]product.Product{
						{ID: 1, Name: "键盘", Price: 1000},
					}, nil)
				return paymentSvc, productSvc
			},
			creation: func() domain.OrderCreation {
				c := testCreation()
				c.CartItems = []domain.CartItem{{ProductID: 1, Quantity: -2}}
				return c
			},
			wantKind: errs.KindValidation,
		},
		{
			// 游客下单, BuyerID 为 0
			name: "游客下单",
			mock: func(ctrl *gomock.Controller) (paystack.Service, product.Service) {
				paymentSvc := paystackmocks.NewMockService(ctrl)
				paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
					Return(paystack.Verification{
						Status:    paystack.StatusSuccess,
						Reference: "ref-abc-123",
						Amount:    2600,
					}, nil)
				productSvc := productmocks.NewMockService(ctrl)
				productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1}).
					Return([]product.Product{
						{ID: 1, Name: "键盘", Price: 1000},
					}, nil)
				return paymentSvc, productSvc
			},
			creation: func() domain.OrderCreation {
				c := testCreation()
				c.BuyerID = 0
				return c
			},
			wantOrders: 1,
			after: func(t *testing.T, order domain.Order, repo *fakeOrderRepository, producer *fakeProducer) {
				assert.Equal(t, int64(0), order.BuyerID)
				// 游客订单不出现在任何账号的历史订单里
				orders, err := repo.ListByBuyerID(context.Background(), 7)
				require.NoError(t, err)
				assert.Empty(t, orders)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			paymentSvc, productSvc := tc.mock(ctrl)
			repo := newFakeOrderRepository()
			producer := &fakeProducer{}
			svc := NewService(repo, paymentSvc, productSvc, sequencenumber.NewGenerator(), producer)

			order, err := svc.CreateOrderAfterPayment(context.Background(), tc.creation())

			if tc.wantKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tc.wantKind, errs.KindOf(err))
				assert.Empty(t, repo.orders, "失败路径不允许落库半个订单")
				assert.Empty(t, producer.events)
				return
			}
			require.NoError(t, err)
			assert.Len(t, repo.orders, tc.wantOrders)
			if tc.after != nil {
				tc.after(t, order, repo, producer)
			}
		})
	}
}

func TestService_CreateOrderAfterPayment_DuplicateReference(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paystackmocks.NewMockService(ctrl)
	paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
		Return(paystack.Verification{
			Status:    paystack.StatusSuccess,
			Reference: "ref-abc-123",
			Amount:    2600,
		}, nil).Times(2)
	productSvc := productmocks.NewMockService(ctrl)
	productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1}).
		Return([]product.Product{
			{ID: 1, Name: "键盘", Price: 1000},
		}, nil).Times(2)

	repo := newFakeOrderRepository()
	svc := NewService(repo, paymentSvc, productSvc, sequencenumber.NewGenerator(), &fakeProducer{})

	_, err := svc.CreateOrderAfterPayment(context.Background(), testCreation())
	require.NoError(t, err)

	// 同一笔支付重复提交, 第二次必须失败, 订单还是只有一个
	_, err = svc.CreateOrderAfterPayment(context.Background(), testCreation())
	require.Error(t, err)
	assert.Equal(t, errs.KindDuplicate, errs.KindOf(err))
	assert.Len(t, repo.orders, 1)
}

func TestService_CreateOrderAfterPayment_ProducerFailureDoesNotFailOrder(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paystackmocks.NewMockService(ctrl)
	paymentSvc.EXPECT().VerifyTransaction(gomock.Any(), "ref-abc-123").
		Return(paystack.Verification{
			Status:    paystack.StatusSuccess,
			Reference: "ref-abc-123",
			Amount:    2600,
		}, nil)
	productSvc := productmocks.NewMockService(ctrl)
	productSvc.EXPECT().FindByIDs(gomock.Any(), []int64{1}).
		Return([]product.Product{
			{ID: 1, Name: "键盘", Price: 1000},
		}, nil)

	repo := newFakeOrderRepository()
	producer := &fakeProducer{err: errors.New("mq不可用")}
	svc := NewService(repo, paymentSvc, productSvc, sequencenumber.NewGenerator(), producer)

	_, err := svc.CreateOrderAfterPayment(context.Background(), testCreation())
	require.NoError(t, err)
	assert.Len(t, repo.orders, 1)
}

func TestService_ListOrdersByUID(t *testing.T) {
	t.Parallel()
	repo := newFakeOrderRepository()
	svc := NewService(repo, nil, nil, sequencenumber.NewGenerator(), &fakeProducer{})

	first, err := repo.Create(context.Background(), domain.Order{
		SN:      "sn-1",
		BuyerID: 7,
		Payment: domain.Payment{Reference: "ref-1"},
	})
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), domain.Order{
		SN:      "sn-2",
		BuyerID: 7,
		Payment: domain.Payment{Reference: "ref-2"},
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), domain.Order{
		SN:      "sn-3",
		BuyerID: 8,
		Payment: domain.Payment{Reference: "ref-3"},
	})
	require.NoError(t, err)

	orders, err := svc.ListOrdersByUID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// 新订单在前
	assert.Equal(t, second.SN, orders[0].SN)
	assert.Equal(t, first.SN, orders[1].SN)
}
