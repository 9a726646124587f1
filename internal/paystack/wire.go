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

package paystack

import (
	"time"

	"github.com/ecodeclub/estore/internal/paystack/internal/service"
	"github.com/ecodeclub/estore/internal/paystack/internal/web"
	"github.com/google/wire"
	"github.com/gotomicro/ego/client/ehttp"
	"github.com/gotomicro/ego/core/econf"
)

var ModuleSet = wire.NewSet(
	InitService,
	web.NewHandler,
	wire.Struct(new(Module), "*"))

func InitModule() (*Module, error) {
	wire.Build(ModuleSet)
	return new(Module), nil
}

// InitService 网关密钥与地址只在进程启动时读取一次，
// 业务代码不接触全局配置
func InitService() Service {
	type Config struct {
		BaseURL     string        `yaml:"baseURL"`
		SecretKey   string        `yaml:"secretKey"`
		ReadTimeout time.Duration `yaml:"readTimeout"`
	}
	var cfg Config
	err := econf.UnmarshalKey("paystack", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	client := ehttp.DefaultContainer().Build(
		ehttp.WithAddr(cfg.BaseURL),
		ehttp.WithReadTimeout(cfg.ReadTimeout))
	return service.NewService(client, cfg.SecretKey)
}
