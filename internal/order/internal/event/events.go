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

package event

const orderCreatedEvents = "order_created_events"

// OrderCreatedEvent 订单落库成功后发出, 供通知、对账等下游消费
type OrderCreatedEvent struct {
	OrderSN          string `json:"orderSN"`
	BuyerID          int64  `json:"buyerID"`
	BuyerEmail       string `json:"buyerEmail"`
	PaymentReference string `json:"paymentReference"`
	// TotalAmount 单位为分
	TotalAmount int64 `json:"totalAmount"`
}
