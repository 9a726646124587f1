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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"golang.org/x/sync/errgroup"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	// ListByBuyerID 新订单在前, 游客订单(buyerID为0)不走这条查询路径
	ListByBuyerID(ctx context.Context, buyerID int64) ([]domain.Order, error)
}

func NewOrderRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	oid, err := o.d.Create(ctx,
		o.toOrderEntity(order),
		o.toItemEntities(order.Items),
		o.toStatusRecordEntities(order.StatusRecords))
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = oid
	return order, nil
}

func (o *orderRepository) ListByBuyerID(ctx context.Context, buyerID int64) ([]domain.Order, error) {
	os, err := o.d.FindByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Order, len(os))
	var eg errgroup.Group
	for i := range os {
		i := i
		eg.Go(func() error {
			items, err := o.d.FindItemsByOrderID(ctx, os[i].Id)
			if err != nil {
				return err
			}
			records, err := o.d.FindStatusRecordsByOrderID(ctx, os[i].Id)
			if err != nil {
				return err
			}
			res[i] = o.toOrderDomain(os[i], items, records)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:               order.ID,
		SN:               order.SN,
		BuyerId:          order.BuyerID,
		BuyerName:        order.Buyer.Name,
		BuyerEmail:       order.Buyer.Email,
		BuyerPhone:       order.Buyer.Phone,
		Street:           order.Address.Street,
		City:             order.Address.City,
		State:            order.Address.State,
		PostalCode:       order.Address.PostalCode,
		Country:          order.Address.Country,
		Subtotal:         order.Financials.Subtotal,
		Shipping:         order.Financials.Shipping,
		Tax:              order.Financials.Tax,
		TotalAmount:      order.Financials.TotalAmount,
		PaymentReference: order.Payment.Reference,
		PaymentMethod:    order.Payment.Method,
		PaymentStatus:    order.Payment.Status,
	}
}

func (o *orderRepository) toItemEntities(items []domain.Item) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.Item) dao.OrderItem {
		return dao.OrderItem{
			ProductId: src.ProductID,
			Name:      src.Name,
			Image:     src.Image,
			Price:     src.Price,
			Quantity:  src.Quantity,
		}
	})
}

func (o *orderRepository) toStatusRecordEntities(records []domain.StatusRecord) []dao.OrderStatusRecord {
	return slice.Map(records, func(idx int, src domain.StatusRecord) dao.OrderStatusRecord {
		return dao.OrderStatusRecord{
			Status:    src.Status,
			Timestamp: src.Timestamp,
		}
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order, items []dao.OrderItem, records []dao.OrderStatusRecord) domain.Order {
	return domain.Order{
		ID:      order.Id,
		SN:      order.SN,
		BuyerID: order.BuyerId,
		Buyer: domain.Buyer{
			Name:  order.BuyerName,
			Email: order.BuyerEmail,
			Phone: order.BuyerPhone,
		},
		Address: domain.Address{
			Street:     order.Street,
			City:       order.City,
			State:      order.State,
			PostalCode: order.PostalCode,
			Country:    order.Country,
		},
		Items: slice.Map(items, func(idx int, src dao.OrderItem) domain.Item {
			return domain.Item{
				ProductID: src.ProductId,
				Name:      src.Name,
				Image:     src.Image,
				Price:     src.Price,
				Quantity:  src.Quantity,
			}
		}),
		Financials: domain.Financials{
			Subtotal:    order.Subtotal,
			Shipping:    order.Shipping,
			Tax:         order.Tax,
			TotalAmount: order.TotalAmount,
		},
		Payment: domain.Payment{
			Reference: order.PaymentReference,
			Method:    order.PaymentMethod,
			Status:    order.PaymentStatus,
		},
		StatusRecords: slice.Map(records, func(idx int, src dao.OrderStatusRecord) domain.StatusRecord {
			return domain.StatusRecord{
				Status:    src.Status,
				Timestamp: src.Timestamp,
			}
		}),
		Ctime: order.Ctime,
		Utime: order.Utime,
	}
}
