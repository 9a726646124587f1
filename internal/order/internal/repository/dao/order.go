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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrDuplicatePaymentReference 同一个支付引用只允许创建一个订单
var ErrDuplicatePaymentReference = errors.New("支付引用已创建过订单")

const uniqueIndexErrNo uint16 = 1062

type OrderDAO interface {
	// Create 订单主记录、订单项、状态记录在同一个事务里落库
	Create(ctx context.Context, o Order, items []OrderItem, records []OrderStatusRecord) (int64, error)
	FindByBuyerID(ctx context.Context, buyerID int64) ([]Order, error)
	FindItemsByOrderID(ctx context.Context, oid int64) ([]OrderItem, error)
	FindStatusRecordsByOrderID(ctx context.Context, oid int64) ([]OrderStatusRecord, error)
}

func NewGORMOrderDAO(db *egorm.Component) OrderDAO {
	return &gormOrderDAO{db: db}
}

type gormOrderDAO struct {
	db *egorm.Component
}

func (g *gormOrderDAO) Create(ctx context.Context, o Order, items []OrderItem, records []OrderStatusRecord) (int64, error) {
	now := time.Now().UnixMilli()
	o.Ctime, o.Utime = now, now
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == uniqueIndexErrNo {
				return ErrDuplicatePaymentReference
			}
			return err
		}
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		for i := range records {
			records[i].OrderId = o.Id
			records[i].Ctime, records[i].Utime = now, now
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return 0, err
	}
	return o.Id, nil
}

func (g *gormOrderDAO) FindByBuyerID(ctx context.Context, buyerID int64) ([]Order, error) {
	var res []Order
	// 新订单排在最前面, ctime 是毫秒级, 同一毫秒内用 id 兜底保证顺序稳定
	err := g.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("ctime DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (g *gormOrderDAO) FindItemsByOrderID(ctx context.Context, oid int64) ([]OrderItem, error) {
	var res []OrderItem
	err := g.db.WithContext(ctx).Where("order_id = ?", oid).Find(&res).Error
	return res, err
}

func (g *gormOrderDAO) FindStatusRecordsByOrderID(ctx context.Context, oid int64) ([]OrderStatusRecord, error) {
	var res []OrderStatusRecord
	// 状态记录只追加不改写, 按写入顺序返回
	err := g.db.WithContext(ctx).Where("order_id = ?", oid).Order("id ASC").Find(&res).Error
	return res, err
}

type Order struct {
	Id               int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN               string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerId          int64  `gorm:"not null;index:idx_buyer_id;comment:购买者ID, 0表示游客"`
	BuyerName        string `gorm:"type:varchar(255);not null;comment:收件人姓名"`
	BuyerEmail       string `gorm:"type:varchar(255);not null;comment:收件人邮箱"`
	BuyerPhone       string `gorm:"type:varchar(64);comment:收件人电话"`
	Street           string `gorm:"type:varchar(255);not null;comment:街道"`
	City             string `gorm:"type:varchar(128);not null;comment:城市"`
	State            string `gorm:"type:varchar(128);not null;comment:省/州"`
	PostalCode       string `gorm:"type:varchar(32);not null;comment:邮编"`
	Country          string `gorm:"type:varchar(128);not null;comment:国家"`
	Subtotal         int64  `gorm:"not null;comment:商品小计;单位为分, 999表示9.99元"`
	Shipping         int64  `gorm:"not null;comment:运费;单位为分"`
	Tax              int64  `gorm:"not null;comment:税费;单位为分"`
	TotalAmount      int64  `gorm:"not null;comment:网关核实的实付总额;单位为分"`
	PaymentReference string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_payment_reference;comment:支付引用, 网关下发"`
	PaymentMethod    string `gorm:"type:varchar(64);not null;comment:支付渠道"`
	PaymentStatus    string `gorm:"type:varchar(32);not null;comment:支付状态 paid/pending/failed"`
	Ctime            int64
	Utime            int64
}

type OrderItem struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId int64  `gorm:"not null;comment:商品自增ID"`
	Name      string `gorm:"type:varchar(255);not null;comment:下单时商品名称快照"`
	Image     string `gorm:"type:varchar(512);comment:下单时商品图片快照"`
	Price     int64  `gorm:"not null;comment:下单时商品单价快照;单位为分, 999表示9.99元"`
	Quantity  int64  `gorm:"not null;comment:购买数量"`
	Ctime     int64
	Utime     int64
}

type OrderStatusRecord struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:状态记录自增ID"`
	OrderId   int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	Status    string `gorm:"type:varchar(32);not null;comment:履约状态 pending/processing/shipped/delivered/cancelled"`
	Timestamp int64  `gorm:"not null;comment:状态发生时间"`
	Ctime     int64
	Utime     int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{}, &OrderStatusRecord{})
}
