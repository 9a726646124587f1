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

//go:build wireinject

package user

import (
	"sync"

	"github.com/ecodeclub/estore/internal/pkg/snowflake"
	"github.com/ecodeclub/estore/internal/user/internal/repository"
	"github.com/ecodeclub/estore/internal/user/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/user/internal/service"
	"github.com/ecodeclub/estore/internal/user/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

var ModuleSet = wire.NewSet(
	InitDAO,
	InitSNGenerator,
	repository.NewUserRepository,
	service.NewUserService,
	web.NewHandler,
	wire.Struct(new(Module), "*"),
)

func InitModule(db *egorm.Component) (*Module, error) {
	wire.Build(ModuleSet)
	return new(Module), nil
}

var daoOnce = sync.Once{}

func InitDAO(db *egorm.Component) dao.UserDAO {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewGORMUserDAO(db)
}

func InitSNGenerator() *snowflake.UserSNGenerator {
	type Config struct {
		NodeID int64 `yaml:"nodeID"`
	}
	var cfg Config
	err := econf.UnmarshalKey("snowflake", &cfg)
	if err != nil {
		panic(err)
	}
	gen, err := snowflake.NewUserSNGenerator(cfg.NodeID)
	if err != nil {
		panic(err)
	}
	return gen
}
