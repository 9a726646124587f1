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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/estore/internal/product/internal/domain"
	"github.com/pkg/errors"
)

var ErrProductNotCached = errors.New("商品不在缓存中")

const expiration = 10 * time.Minute

type ProductCache interface {
	SetProduct(ctx context.Context, p domain.Product) error
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

type ProductECache struct {
	ec ecache.Cache
}

func NewProductECache(ec ecache.Cache) ProductCache {
	return &ProductECache{
		ec: &ecache.NamespaceCache{
			Namespace: "product:",
			C:         ec,
		},
	}
}

func (c *ProductECache) SetProduct(ctx context.Context, p domain.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "序列化商品失败")
	}
	return c.ec.Set(ctx, c.productKey(p.ID), string(data), expiration)
}

func (c *ProductECache) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	val := c.ec.Get(ctx, c.productKey(id))
	if val.KeyNotFound() {
		return domain.Product{}, ErrProductNotCached
	}
	if val.Err != nil {
		return domain.Product{}, errors.Wrap(val.Err, "查询商品缓存出错")
	}
	var p domain.Product
	err := json.Unmarshal([]byte(val.Val.(string)), &p)
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "反序列化商品失败")
	}
	return p, nil
}

func (c *ProductECache) productKey(id int64) string {
	return fmt.Sprintf("detail:%d", id)
}
