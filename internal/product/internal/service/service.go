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

	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/product/internal/domain"
	"github.com/ecodeclub/estore/internal/product/internal/repository"
	"github.com/ecodeclub/estore/internal/product/internal/repository/dao"
)

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go -mock_names=Service=MockService Service
type Service interface {
	// FindByID 商品不存在时返回 NotFound 类错误
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	// FindByIDs 只返回存在的商品，调用方自行核对数量
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	List(ctx context.Context, category string) ([]domain.Product, error)
}

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ProductRepository
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrDataNotFound) {
			return domain.Product{}, errs.Newf(errs.KindNotFound, "商品不存在: %d", id)
		}
		return domain.Product{}, err
	}
	return p, nil
}

func (s *service) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	return s.repo.FindByIDs(ctx, ids)
}

func (s *service) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.List(ctx, category)
}
