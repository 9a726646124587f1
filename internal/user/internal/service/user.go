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
	"github.com/ecodeclub/estore/internal/pkg/snowflake"
	"github.com/ecodeclub/estore/internal/user/internal/domain"
	"github.com/ecodeclub/estore/internal/user/internal/repository"
	"github.com/ecodeclub/estore/internal/user/internal/repository/dao"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

//go:generate mockgen -source=./user.go -package=usermocks -destination=../../mocks/user.mock.go -mock_names=UserService=MockUserService UserService
type UserService interface {
	// Register 邮箱重复返回 Duplicate 类错误
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	// Login 邮箱不存在和密码错误统一返回 Authentication 类错误，不泄露哪个错了
	Login(ctx context.Context, email, password string) (domain.User, error)
	Profile(ctx context.Context, uid int64) (domain.User, error)
}

func NewUserService(repo repository.UserRepository, snGen *snowflake.UserSNGenerator) UserService {
	return &userService{repo: repo, snGen: snGen}
}

type userService struct {
	repo  repository.UserRepository
	snGen *snowflake.UserSNGenerator
}

func (s *userService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		SN:           s.snGen.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, dao.ErrUserDuplicate) {
			return domain.User{}, errs.Wrap(errs.KindDuplicate, "该邮箱已注册", err)
		}
		return domain.User{}, err
	}
	u.ID = id
	return u, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, dao.ErrDataNotFound) {
			return domain.User{}, errs.New(errs.KindAuthentication, "邮箱或密码错误")
		}
		return domain.User{}, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return domain.User{}, errs.Wrap(errs.KindAuthentication, "邮箱或密码错误", err)
	}
	return u, nil
}

func (s *userService) Profile(ctx context.Context, uid int64) (domain.User, error) {
	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, dao.ErrDataNotFound) {
			return domain.User{}, errs.Newf(errs.KindNotFound, "用户不存在: %d", uid)
		}
		return domain.User{}, err
	}
	return u, nil
}
