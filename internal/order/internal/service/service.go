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
	"time"

	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/event"
	"github.com/ecodeclub/estore/internal/order/internal/repository"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/paystack"
	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/pkg/sequencenumber"
	"github.com/ecodeclub/estore/internal/product"
	"github.com/gotomicro/ego/core/elog"
)

// amountTolerance 金额对账容差;单位为分, 吸收货币换算的舍入误差
const amountTolerance int64 = 1

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go -mock_names=Service=MockService Service
type Service interface {
	// CreateOrderAfterPayment 支付成功之后创建订单。
	// 任何一步失败都直接中止, 绝不落库半个订单。
	CreateOrderAfterPayment(ctx context.Context, c domain.OrderCreation) (domain.Order, error)
	// ListOrdersByUID 查询某账号的历史订单, 新订单在前
	ListOrdersByUID(ctx context.Context, uid int64) ([]domain.Order, error)
}

func NewService(repo repository.OrderRepository,
	paymentSvc paystack.Service,
	productSvc product.Service,
	snGenerator *sequencenumber.Generator,
	producer event.OrderCreatedProducer) Service {
	return &service{
		repo:        repo,
		paymentSvc:  paymentSvc,
		productSvc:  productSvc,
		snGenerator: snGenerator,
		producer:    producer,
		logger:      elog.DefaultLogger,
	}
}

type service struct {
	repo        repository.OrderRepository
	paymentSvc  paystack.Service
	productSvc  product.Service
	snGenerator *sequencenumber.Generator
	producer    event.OrderCreatedProducer
	logger      *elog.Component
}

func (s *service) CreateOrderAfterPayment(ctx context.Context, c domain.OrderCreation) (domain.Order, error) {
	// 第一步: 网关是唯一可信的扣款凭证, 先核实再谈其余
	verification, err := s.paymentSvc.VerifyTransaction(ctx, c.PaymentReference)
	if err != nil {
		return domain.Order{}, errs.Wrap(errs.KindPaymentVerificationFailed, "支付校验失败", err)
	}
	if !verification.Succeeded() {
		return domain.Order{}, errs.Newf(errs.KindPaymentVerificationFailed,
			"支付未成功, 状态为 %s", verification.Status)
	}

	// 第二步: 按去重后的商品ID拉取权威目录记录
	productIDs := s.distinctProductIDs(c.CartItems)
	products, err := s.productSvc.FindByIDs(ctx, productIDs)
	if err != nil {
		return domain.Order{}, err
	}
	if len(products) < len(productIDs) {
		return domain.Order{}, errs.New(errs.KindNotFound, "购物车中存在已下架的商品")
	}
	productSet := make(map[int64]product.Product, len(products))
	for _, p := range products {
		productSet[p.ID] = p
	}

	// 第三步: 逐行生成快照并用目录价重算小计, 客户端提交的价格一概不信
	items := make([]domain.Item, 0, len(c.CartItems))
	var subtotal int64
	for _, ci := range c.CartItems {
		// 数量来自客户端, 不做校验就可能落库零件数甚至负件数的快照行
		if ci.Quantity <= 0 {
			return domain.Order{}, errs.Newf(errs.KindValidation, "商品数量非法: %d", ci.Quantity)
		}
		p, ok := productSet[ci.ProductID]
		if !ok {
			return domain.Order{}, errs.Newf(errs.KindNotFound, "商品不存在: %d", ci.ProductID)
		}
		items = append(items, domain.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  ci.Quantity,
		})
		subtotal += p.Price * ci.Quantity
	}

	// 第四步: 重算总额和网关实扣金额对账
	calculated := subtotal + c.Shipping + c.Tax
	if diff := calculated - verification.Amount; diff > amountTolerance || diff < -amountTolerance {
		// 超出容差意味着客户端篡改或者改价竞态, 必须高优先级告警
		s.logger.Error("订单金额对账失败",
			elog.String("paymentReference", c.PaymentReference),
			elog.Int64("calculated", calculated),
			elog.Int64("verified", verification.Amount))
		return domain.Order{}, errs.New(errs.KindAmountMismatch, "订单金额和实际支付金额不一致")
	}

	sn, err := s.snGenerator.Generate(c.BuyerID)
	if err != nil {
		return domain.Order{}, err
	}

	// 第五步: 落库。TotalAmount 永远取网关核实的金额, 那才是真实发生的资金流
	order := domain.Order{
		SN:      sn,
		BuyerID: c.BuyerID,
		Buyer:   c.Buyer,
		Address: c.Address,
		Items:   items,
		Financials: domain.Financials{
			Subtotal:    subtotal,
			Shipping:    c.Shipping,
			Tax:         c.Tax,
			TotalAmount: verification.Amount,
		},
		Payment: domain.Payment{
			Reference: c.PaymentReference,
			Method:    domain.PaymentMethodPaystack,
			Status:    domain.PaymentStatusPaid,
		},
		StatusRecords: []domain.StatusRecord{
			{
				Status:    domain.FulfillmentStatusPending,
				Timestamp: time.Now().UnixMilli(),
			},
		},
	}
	order, err = s.repo.Create(ctx, order)
	if err != nil {
		if errors.Is(err, dao.ErrDuplicatePaymentReference) {
			return domain.Order{}, errs.Wrap(errs.KindDuplicate, "该支付已创建过订单", err)
		}
		return domain.Order{}, err
	}

	s.sendOrderCreatedEvent(order)
	return order, nil
}

func (s *service) ListOrdersByUID(ctx context.Context, uid int64) ([]domain.Order, error) {
	return s.repo.ListByBuyerID(ctx, uid)
}

func (s *service) distinctProductIDs(cartItems []domain.CartItem) []int64 {
	ids := make([]int64, 0, len(cartItems))
	seen := make(map[int64]struct{}, len(cartItems))
	for _, ci := range cartItems {
		if _, ok := seen[ci.ProductID]; ok {
			continue
		}
		seen[ci.ProductID] = struct{}{}
		ids = append(ids, ci.ProductID)
	}
	return ids
}

// sendOrderCreatedEvent 发送失败只记录日志, 不影响已创建的订单
func (s *service) sendOrderCreatedEvent(order domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	evt := event.OrderCreatedEvent{
		OrderSN:          order.SN,
		BuyerID:          order.BuyerID,
		BuyerEmail:       order.Buyer.Email,
		PaymentReference: order.Payment.Reference,
		TotalAmount:      order.Financials.TotalAmount,
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Warn("发送订单创建事件失败",
			elog.FieldErr(err),
			elog.String("orderSN", order.SN))
	}
}
