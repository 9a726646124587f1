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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gotomicro/ego/client/ehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "sk_test_abcdef"

func newTestService(t *testing.T, handler http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := ehttp.DefaultContainer().Build(ehttp.WithAddr(srv.URL))
	return NewService(client, testSecretKey)
}

func TestInitializeTransaction(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer "+testSecretKey, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// 金额必须已经是分
		assert.Equal(t, float64(2600), body["amount"])
		assert.Equal(t, "buyer@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.example.com/abc123",
				"access_code": "abc123",
				"reference": "ref-001"
			}
		}`))
	})

	intent, err := svc.InitializeTransaction(context.Background(), "buyer@example.com", 2600)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/abc123", intent.AuthorizationURL)
	assert.Equal(t, "abc123", intent.AccessCode)
	assert.Equal(t, "ref-001", intent.Reference)
}

func TestVerifyTransactionSuccess(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/ref-001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "success", "reference": "ref-001", "amount": 2600}
		}`))
	})

	v, err := svc.VerifyTransaction(context.Background(), "ref-001")
	require.NoError(t, err)
	assert.True(t, v.Succeeded())
	assert.Equal(t, "ref-001", v.Reference)
	assert.Equal(t, int64(2600), v.Amount)
}

func TestVerifyTransactionFailedStatus(t *testing.T) {
	// 网关认识这笔交易但支付失败，不是错误，由调用方决策
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "failed", "reference": "ref-002", "amount": 2600}
		}`))
	})

	v, err := svc.VerifyTransaction(context.Background(), "ref-002")
	require.NoError(t, err)
	assert.False(t, v.Succeeded())
}

func TestVerifyTransactionUnknownReference(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	})

	_, err := svc.VerifyTransaction(context.Background(), "ref-miss")
	assert.Error(t, err)
}
