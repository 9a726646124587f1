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
	"fmt"

	"github.com/ecodeclub/estore/internal/paystack/internal/domain"
	"github.com/gotomicro/ego/client/ehttp"
)

//go:generate mockgen -source=./service.go -package=paystackmocks -destination=../../mocks/paystack.mock.go -mock_names=Service=MockService Service
type Service interface {
	// InitializeTransaction 在网关侧创建一笔待支付交易，amount 单位为分
	InitializeTransaction(ctx context.Context, email string, amount int64) (domain.Intent, error)
	// VerifyTransaction 幂等读取网关对 reference 的权威记录。
	// 网关不可达、reference 未知均返回错误，链路后续一律以失败处理
	VerifyTransaction(ctx context.Context, reference string) (domain.Verification, error)
}

func NewService(client *ehttp.Component, secretKey string) Service {
	return &paystackService{
		client:    client,
		secretKey: secretKey,
	}
}

type paystackService struct {
	client    *ehttp.Component
	secretKey string
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

func (s *paystackService) InitializeTransaction(ctx context.Context, email string, amount int64) (domain.Intent, error) {
	var res initializeResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.secretKey).
		SetBody(map[string]any{
			"email":  email,
			"amount": amount,
		}).
		SetResult(&res).
		Post("/transaction/initialize")
	if err != nil {
		return domain.Intent{}, fmt.Errorf("调用网关创建交易失败: %w", err)
	}
	if resp.IsError() || !res.Status {
		return domain.Intent{}, fmt.Errorf("网关拒绝创建交易: http=%d msg=%s", resp.StatusCode(), res.Message)
	}
	return domain.Intent{
		AuthorizationURL: res.Data.AuthorizationURL,
		AccessCode:       res.Data.AccessCode,
		Reference:        res.Data.Reference,
	}, nil
}

func (s *paystackService) VerifyTransaction(ctx context.Context, reference string) (domain.Verification, error) {
	var res verifyResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.secretKey).
		SetResult(&res).
		Get("/transaction/verify/" + reference)
	if err != nil {
		return domain.Verification{}, fmt.Errorf("调用网关核验交易失败: %w", err)
	}
	if resp.IsError() || !res.Status {
		return domain.Verification{}, fmt.Errorf("网关未识别交易: reference=%s http=%d msg=%s",
			reference, resp.StatusCode(), res.Message)
	}
	return domain.Verification{
		Status:    res.Data.Status,
		Reference: res.Data.Reference,
		Amount:    res.Data.Amount,
	}, nil
}
