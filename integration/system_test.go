//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E_StatePersists(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	email := fmt.Sprintf("user_%d_%d@example.com", time.Now().Unix(), rand.Intn(100000))
	pass := "password123!"

	doJSON(t, http.MethodPost, baseURL+"/auth/register", map[string]any{
		"name":            "E2E",
		"email":           email,
		"password":        pass,
		"confirmPassword": pass,
	}, nil, 201)

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	doJSON(t, http.MethodPost, baseURL+"/auth/login", map[string]any{
		"email":    email,
		"password": pass,
	}, &loginResp, 200)
	if loginResp.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	token := loginResp.AccessToken

	var products []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/products", nil, &products, 200)
	if len(products) == 0 {
		t.Fatalf("expected non-empty products")
	}

	pid, _ := products[0]["id"].(string)
	if pid == "" {
		t.Fatalf("product id missing in response: %#v", products[0])
	}

	doJSONAuth(t, http.MethodPut, baseURL+"/favorites/"+pid, token, nil, nil, 204)
	doJSONAuth(t, http.MethodPost, baseURL+"/history/"+pid, token, nil, nil, 204)
	doJSONAuth(t, http.MethodPost, baseURL+"/cart/"+pid, token, nil, nil, 201)

	if os.Getenv("E2E_RESTART_SHOP") == "1" {
		restartShopContainer(t, ctx)
		waitReady(t, ctx, baseURL+"/readyz")
	}

	var favorites []map[string]any
	doJSONAuth(t, http.MethodGet, baseURL+"/favorites", token, nil, &favorites, 200)
	if len(favorites) != 1 {
		t.Fatalf("favorites=%v", favorites)
	}

	var cart struct {
		Items []map[string]any `json:"items"`
	}
	doJSONAuth(t, http.MethodGet, baseURL+"/cart", token, nil, &cart, 200)
	if len(cart.Items) != 1 {
		t.Fatalf("cart=%v", cart.Items)
	}

	var created map[string]any
	doJSONAuth(t, http.MethodPost, baseURL+"/checkout", token, map[string]any{"paymentMethod": "vnpay"}, &created, 201)
	if id, _ := created["id"].(string); id == "" {
		t.Fatalf("order id missing: %#v", created)
	}

	doJSON(t, http.MethodPost, baseURL+"/auth/logout", nil, nil, 204)
	doJSONAuth(t, http.MethodGet, baseURL+"/cart", token, nil, nil, 401)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()
	doJSONAuth(t, method, url, "", body, out, want)
}

func doJSONAuth(t *testing.T, method, url, token string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
