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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
)

// 对外接口金额一律用元表示, 内部换算成分

type CreateOrderReq struct {
	PaymentReference string     `json:"paymentReference" binding:"required"`
	CustomerInfo     Customer   `json:"customerInfo" binding:"required"`
	ShippingAddress  Address    `json:"shippingAddress" binding:"required"`
	Items            []CartItem `json:"items" binding:"required,min=1,dive"`
	Financials       Charges    `json:"financials" binding:"required"`
}

type Customer struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type Address struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type CartItem struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int64 `json:"quantity" binding:"required,gt=0"`
}

type Charges struct {
	Shipping float64 `json:"shipping" binding:"gte=0"`
	Tax      float64 `json:"tax" binding:"gte=0"`
}

type Order struct {
	SN              string         `json:"sn"`
	UserID          int64          `json:"userId,omitempty"`
	CustomerInfo    Customer       `json:"customerInfo"`
	ShippingAddress Address        `json:"shippingAddress"`
	Items           []OrderItem    `json:"items"`
	Financials      Financials     `json:"financials"`
	Payment         Payment        `json:"payment"`
	StatusHistory   []StatusRecord `json:"statusHistory"`
	CreatedAt       int64          `json:"createdAt"`
}

type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

type Financials struct {
	Subtotal    float64 `json:"subtotal"`
	Shipping    float64 `json:"shipping"`
	Tax         float64 `json:"tax"`
	TotalAmount float64 `json:"totalAmount"`
}

type Payment struct {
	Reference string `json:"reference"`
	Method    string `json:"method"`
	Status    string `json:"status"`
}

type StatusRecord struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

func toOrderVO(o domain.Order) Order {
	return Order{
		SN:     o.SN,
		UserID: o.BuyerID,
		CustomerInfo: Customer{
			Name:  o.Buyer.Name,
			Email: o.Buyer.Email,
			Phone: o.Buyer.Phone,
		},
		ShippingAddress: Address{
			Street:     o.Address.Street,
			City:       o.Address.City,
			State:      o.Address.State,
			PostalCode: o.Address.PostalCode,
			Country:    o.Address.Country,
		},
		Items: slice.Map(o.Items, func(idx int, src domain.Item) OrderItem {
			return OrderItem{
				ProductID: src.ProductID,
				Name:      src.Name,
				Image:     src.Image,
				Price:     toMajorUnits(src.Price),
				Quantity:  src.Quantity,
			}
		}),
		Financials: Financials{
			Subtotal:    toMajorUnits(o.Financials.Subtotal),
			Shipping:    toMajorUnits(o.Financials.Shipping),
			Tax:         toMajorUnits(o.Financials.Tax),
			TotalAmount: toMajorUnits(o.Financials.TotalAmount),
		},
		Payment: Payment{
			Reference: o.Payment.Reference,
			Method:    o.Payment.Method,
			Status:    o.Payment.Status,
		},
		StatusHistory: slice.Map(o.StatusRecords, func(idx int, src domain.StatusRecord) StatusRecord {
			return StatusRecord{
				Status:    src.Status,
				Timestamp: src.Timestamp,
			}
		}),
		CreatedAt: o.Ctime,
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func toMajorUnits(amount int64) float64 {
	return float64(amount) / 100
}
