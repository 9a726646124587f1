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

package domain

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Intent 发起交易后网关返回的引导信息
type Intent struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Verification 网关对一笔交易的权威记录。
// Amount 为网关实收金额，单位为分
type Verification struct {
	Status    string
	Reference string
	Amount    int64
}

func (v Verification) Succeeded() bool {
	return v.Status == StatusSuccess
}
