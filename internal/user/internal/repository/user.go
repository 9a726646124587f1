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

	"github.com/ecodeclub/estore/internal/user/internal/domain"
	"github.com/ecodeclub/estore/internal/user/internal/repository/dao"
)

type UserRepository interface {
	Create(ctx context.Context, u domain.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.User, error)
}

func NewUserRepository(d dao.UserDAO) UserRepository {
	return &userRepository{d: d}
}

type userRepository struct {
	d dao.UserDAO
}

func (r *userRepository) Create(ctx context.Context, u domain.User) (int64, error) {
	return r.d.Insert(ctx, r.toEntity(u))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := r.d.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	return r.toDomain(u), nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := r.d.FindById(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return r.toDomain(u), nil
}

func (r *userRepository) toEntity(u domain.User) dao.User {
	return dao.User{
		Id:       u.ID,
		SN:       u.SN,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.PasswordHash,
	}
}

func (r *userRepository) toDomain(u dao.User) domain.User {
	return domain.User{
		ID:           u.Id,
		SN:           u.SN,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.Password,
		Ctime:        u.Ctime,
		Utime:        u.Utime,
	}
}
