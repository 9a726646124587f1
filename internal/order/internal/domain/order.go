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

package domain

const (
	// PaymentMethodPaystack 目前唯一的支付渠道
	PaymentMethodPaystack = "Paystack"

	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusFailed  = "failed"
)

// 履约状态, 和支付状态是两条独立的状态线
const (
	FulfillmentStatusPending    = "pending"
	FulfillmentStatusProcessing = "processing"
	FulfillmentStatusShipped    = "shipped"
	FulfillmentStatusDelivered  = "delivered"
	FulfillmentStatusCancelled  = "cancelled"
)

// Order 聚合根。落库之后商品快照、金额、支付引用全部不可变,
// 只有状态记录允许追加。
type Order struct {
	ID int64
	SN string
	// BuyerID 为 0 表示游客下单
	BuyerID       int64
	Buyer         Buyer
	Address       Address
	Items         []Item
	Financials    Financials
	Payment       Payment
	StatusRecords []StatusRecord
	Ctime         int64
	Utime         int64
}

// Buyer 下单时填写的联系方式, 和账号信息无关
type Buyer struct {
	Name  string
	Email string
	Phone string
}

type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Item 下单时刻的商品快照, 商品后续改价改名不影响历史订单
type Item struct {
	ProductID int64
	Name      string
	Image     string
	// Price 单价;单位为分, 999表示9.99元
	Price    int64
	Quantity int64
}

// Financials 金额全部以分为单位
type Financials struct {
	Subtotal int64
	Shipping int64
	Tax      int64
	// TotalAmount 以网关核实的实际扣款金额为准
	TotalAmount int64
}

type Payment struct {
	// Reference 网关下发的支付引用, 全局唯一
	Reference string
	Method    string
	Status    string
}

type StatusRecord struct {
	Status    string
	Timestamp int64
}

// CartItem 客户端提交的购物车行, 数量之外的信息一概不信
type CartItem struct {
	ProductID int64
	Quantity  int64
}

// OrderCreation 创建订单的全部输入。
// Shipping 和 Tax 由客户端提交, 单位为分, 会参与对账;
// 商品单价永远以目录为准。
type OrderCreation struct {
	PaymentReference string
	// BuyerID 为 0 表示游客下单
	BuyerID   int64
	Buyer     Buyer
	Address   Address
	CartItems []CartItem
	Shipping  int64
	Tax       int64
}
