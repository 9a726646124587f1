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
	"github.com/ecodeclub/estore/internal/product/internal/domain"
	"github.com/ecodeclub/estore/internal/product/internal/repository/cache"
	"github.com/ecodeclub/estore/internal/product/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	List(ctx context.Context, category string) ([]domain.Product, error)
}

func NewCachedProductRepository(d dao.ProductDAO, c cache.ProductCache) ProductRepository {
	return &cachedProductRepository{
		d:      d,
		c:      c,
		logger: elog.DefaultLogger,
	}
}

type cachedProductRepository struct {
	d      dao.ProductDAO
	c      cache.ProductCache
	logger *elog.Component
}

func (r *cachedProductRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	p, err := r.c.GetProduct(ctx, id)
	if err == nil {
		return p, nil
	}
	entity, err := r.d.FindById(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	p = r.toDomain(entity)
	if er := r.c.SetProduct(ctx, p); er != nil {
		r.logger.Warn("回填商品缓存失败",
			elog.Int64("pid", id), elog.FieldErr(er))
	}
	return p, nil
}

func (r *cachedProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	// 订单结算要求一次拿到权威价格，不走缓存
	entities, err := r.d.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(idx int, src dao.Product) domain.Product {
		return r.toDomain(src)
	}), nil
}

func (r *cachedProductRepository) List(ctx context.Context, category string) ([]domain.Product, error) {
	entities, err := r.d.List(ctx, category)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(idx int, src dao.Product) domain.Product {
		return r.toDomain(src)
	}), nil
}

func (r *cachedProductRepository) toDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:          p.Id,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Description: p.Description,
		Ctime:       p.Ctime,
		Utime:       p.Utime,
	}
}
