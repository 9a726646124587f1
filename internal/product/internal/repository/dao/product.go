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
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrDataNotFound = gorm.ErrRecordNotFound

//go:generate mockgen -source=./product.go -package=daomocks -destination=mocks/product.mock.go ProductDAO
type ProductDAO interface {
	Insert(ctx context.Context, p Product) (int64, error)
	FindById(ctx context.Context, id int64) (Product, error)
	FindByIds(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context, category string) ([]Product, error)
}

type GORMProductDAO struct {
	db *egorm.Component
}

func NewGORMProductDAO(db *egorm.Component) ProductDAO {
	return &GORMProductDAO{db: db}
}

func (d *GORMProductDAO) FindById(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := d.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, err
}

func (d *GORMProductDAO) FindByIds(ctx context.Context, ids []int64) ([]Product, error) {
	var ps []Product
	err := d.db.WithContext(ctx).Find(&ps, "id IN ?", ids).Error
	return ps, err
}

func (d *GORMProductDAO) List(ctx context.Context, category string) ([]Product, error) {
	query := d.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var ps []Product
	err := query.Order("id asc").Find(&ps).Error
	return ps, err
}

func (d *GORMProductDAO) Insert(ctx context.Context, p Product) (int64, error) {
	now := time.Now().UnixMilli()
	p.Ctime = now
	p.Utime = now
	err := d.db.WithContext(ctx).Create(&p).Error
	return p.Id, err
}

type Product struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Price       int64  `gorm:"not null;comment:商品单价;单位为分, 999表示9.99"`
	Category    string `gorm:"type:varchar(255);not null;index:idx_category;comment:商品类目"`
	Image       string `gorm:"type:varchar(512);not null;comment:商品图片"`
	Description string `gorm:"not null;comment:商品描述"`
	Ctime       int64
	Utime       int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Product{})
}
