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
	"testing"

	"github.com/ecodeclub/estore/internal/pkg/errs"
	"github.com/ecodeclub/estore/internal/pkg/snowflake"
	"github.com/ecodeclub/estore/internal/user/internal/domain"
	"github.com/ecodeclub/estore/internal/user/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepository 用内存 map 模拟唯一索引语义
type fakeUserRepository struct {
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[int64]domain.User{}, nextID: 1}
}

func (f *fakeUserRepository) Create(_ context.Context, u domain.User) (int64, error) {
	for _, exist := range f.users {
		if exist.Email == u.Email {
			return 0, dao.ErrUserDuplicate
		}
	}
	id := f.nextID
	f.nextID++
	u.ID = id
	f.users[id] = u
	return id, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, dao.ErrDataNotFound
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, dao.ErrDataNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (UserService, *fakeUserRepository) {
	t.Helper()
	snGen, err := snowflake.NewUserSNGenerator(1)
	require.NoError(t, err)
	repo := newFakeUserRepository()
	return NewUserService(repo, snGen), repo
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)

	u, err := svc.Register(context.Background(), "Tom", "tom@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEmpty(t, u.SN)
	assert.Equal(t, "tom@example.com", u.Email)
	// 只存慢哈希
	stored := repo.users[u.ID]
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), "Tom", "tom@example.com", "s3cret-pass")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "Jerry", "tom@example.com", "another-pass")
	require.Error(t, err)
	assert.Equal(t, errs.KindDuplicate, errs.KindOf(err))
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	registered, err := svc.Register(context.Background(), "Tom", "tom@example.com", "s3cret-pass")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		email    string
		password string
		wantKind errs.Kind
	}{
		{
			name:     "登录成功",
			email:    "tom@example.com",
			password: "s3cret-pass",
		},
		{
			name:     "密码错误",
			email:    "tom@example.com",
			password: "wrong-pass",
			wantKind: errs.KindAuthentication,
		},
		{
			name:     "邮箱不存在",
			email:    "nobody@example.com",
			password: "s3cret-pass",
			wantKind: errs.KindAuthentication,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := svc.Login(context.Background(), tc.email, tc.password)
			if tc.wantKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tc.wantKind, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, u.ID)
		})
	}
}

func TestUserService_Profile_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.Profile(context.Background(), 12345)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
