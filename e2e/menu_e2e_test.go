//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"os"
	"testing"
	"time"

	menugrpc "github.com/vibast-solutions/ms-go-menu/app/grpc"
	"github.com/vibast-solutions/ms-go-menu/app/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// The target server must run outside production with ALLOW_MOCK_OTP=true.
const (
	defaultHTTPBase = "http://localhost:8080"
	defaultGRPCAddr = "localhost:9090"
	defaultMockCode = "123456"
)

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(t *testing.T, baseURL string) *httpClient {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &httpClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

func (c *httpClient) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal failed: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request failed: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		t.Fatalf("http request failed: %v", err)
	}
	defer resp.Body.Close()

	buf := &bytes.Buffer{}
	if _, err = buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response failed: %v", err)
	}
	return resp, buf.Bytes()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func waitForHTTP(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("http service not ready at %s", baseURL)
}

func waitForGRPC(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("grpc service not ready at %s", addr)
}

func TestMenuE2E_OwnerFlow(t *testing.T) {
	httpBase := envOr("MENU_HTTP_URL", defaultHTTPBase)
	grpcAddr := envOr("MENU_GRPC_ADDR", defaultGRPCAddr)
	mockCode := envOr("MOCK_OTP_CODE", defaultMockCode)

	if err := waitForHTTP(httpBase, 30*time.Second); err != nil {
		t.Fatalf("http not ready: %v", err)
	}
	if err := waitForGRPC(grpcAddr, 30*time.Second); err != nil {
		t.Fatalf("grpc not ready: %v", err)
	}

	client := newHTTPClient(t, httpBase)
	state := struct {
		email        string
		sessionToken string
		restaurantID string
		slug         string
		categoryID   string
		dishID       string
	}{
		email: fmt.Sprintf("e2e+%d@example.com", time.Now().UnixNano()),
	}

	abort := false
	fail := func(t *testing.T, format string, args ...any) {
		abort = true
		t.Fatalf(format, args...)
	}

	step := func(name string, fn func(t *testing.T)) {
		t.Run(name, func(t *testing.T) {
			if abort {
				t.Skip("previous step failed")
			}
			fn(t)
		})
	}

	step("LoginBeforeSignup", func(t *testing.T) {
		resp, _ := client.do(t, http.MethodPost, "/auth/request-code", map[string]string{"email": state.email})
		if resp.StatusCode != http.StatusNotFound {
			fail(t, "expected login before signup to 404, got %d", resp.StatusCode)
		}
	})

	step("Signup", func(t *testing.T) {
		resp, body := client.do(t, http.MethodPost, "/auth/request-code", map[string]string{
			"email":   state.email,
			"name":    "E2E Owner",
			"country": "RO",
		})
		if resp.StatusCode != http.StatusOK {
			fail(t, "signup status: %d body: %s", resp.StatusCode, string(body))
		}
	})

	step("SignupDuplicate", func(t *testing.T) {
		resp, _ := client.do(t, http.MethodPost, "/auth/request-code", map[string]string{
			"email":   state.email,
			"name":    "E2E Owner",
			"country": "RO",
		})
		// The cooldown may answer first when a rate limiter is configured.
		if resp.StatusCode != http.StatusConflict && resp.StatusCode != http.StatusTooManyRequests {
			fail(t, "expected duplicate signup to fail, got %d", resp.StatusCode)
		}
	})

	step("VerifyCode", func(t *testing.T) {
		resp, body := client.do(t, http.MethodPost, "/auth/verify-code", map[string]string{
			"email": state.email,
			"code":  mockCode,
		})
		if resp.StatusCode != http.StatusOK {
			fail(t, "verify status: %d body: %s", resp.StatusCode, string(body))
		}
		var res types.VerifyCodeResponse
		if err := json.Unmarshal(body, &res); err != nil {
			fail(t, "verify unmarshal failed: %v", err)
		}
		if res.SessionToken == "" || res.User == nil || !res.User.EmailVerified {
			fail(t, "unexpected verify response: %s", string(body))
		}
		state.sessionToken = res.SessionToken
	})

	step("Session", func(t *testing.T) {
		resp, body := client.do(t, http.MethodGet, "/auth/session", nil)
		var res types.SessionResponse
		if err := json.Unmarshal(body, &res); err != nil || resp.StatusCode != http.StatusOK {
			fail(t, "session status: %d body: %s", resp.StatusCode, string(body))
		}
		if res.User == nil || res.User.Email != state.email {
			fail(t, "expected session user %s, got %s", state.email, string(body))
		}
	})

	step("CreateRestaurant", func(t *testing.T) {
		resp, body := client.do(t, http.MethodPost, "/restaurants", map[string]string{
			"name":     "E2E Bistro",
			"location": "Cluj",
		})
		if resp.StatusCode != http.StatusCreated {
			fail(t, "create restaurant status: %d body: %s", resp.StatusCode, string(body))
		}
		var res types.RestaurantResponse
		if err := json.Unmarshal(body, &res); err != nil {
			fail(t, "restaurant unmarshal failed: %v", err)
		}
		state.restaurantID = res.ID
		state.slug = res.Slug
	})

	step("CreateCategory", func(t *testing.T) {
		resp, body := client.do(t, http.MethodPost, "/restaurants/"+state.restaurantID+"/categories", map[string]string{"name": "Mains"})
		if resp.StatusCode != http.StatusCreated {
			fail(t, "create category status: %d body: %s", resp.StatusCode, string(body))
		}
		var res types.CategoryResponse
		if err := json.Unmarshal(body, &res); err != nil {
			fail(t, "category unmarshal failed: %v", err)
		}
		state.categoryID = res.ID
	})

	step("CreateCategoryDuplicate", func(t *testing.T) {
		resp, _ := client.do(t, http.MethodPost, "/restaurants/"+state.restaurantID+"/categories", map[string]string{"name": "Mains"})
		if resp.StatusCode != http.StatusConflict {
			fail(t, "expected duplicate category conflict, got %d", resp.StatusCode)
		}
	})

	step("CreateDish", func(t *testing.T) {
		resp, body := client.do(t, http.MethodPost, "/restaurants/"+state.restaurantID+"/dishes", map[string]any{
			"name":        "Soup",
			"description": "Hot",
			"spiceLevel":  2,
			"categoryIds": []string{state.categoryID},
		})
		if resp.StatusCode != http.StatusCreated {
			fail(t, "create dish status: %d body: %s", resp.StatusCode, string(body))
		}
		var res types.DishResponse
		if err := json.Unmarshal(body, &res); err != nil {
			fail(t, "dish unmarshal failed: %v", err)
		}
		state.dishID = res.ID
	})

	step("PublicMenu", func(t *testing.T) {
		anonymous := newHTTPClient(t, httpBase)
		resp, body := anonymous.do(t, http.MethodGet, "/menu/"+state.slug, nil)
		if resp.StatusCode != http.StatusOK {
			fail(t, "menu status: %d body: %s", resp.StatusCode, string(body))
		}
		var res types.MenuResponse
		if err := json.Unmarshal(body, &res); err != nil {
			fail(t, "menu unmarshal failed: %v", err)
		}
		if len(res.Categories) != 1 || len(res.Categories[0].Dishes) != 1 || res.Categories[0].Dishes[0].ID != state.dishID {
			fail(t, "unexpected menu: %s", string(body))
		}
	})

	step("GRPC", func(t *testing.T) {
		conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			fail(t, "grpc dial: %v", err)
		}
		defer conn.Close()

		grpcClient := menugrpc.NewAuthServiceClient(conn)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		session, err := grpcClient.ValidateSession(ctx, &types.ValidateSessionRequest{Token: state.sessionToken})
		if err != nil || !session.Valid || session.Email != state.email {
			fail(t, "unexpected validate session: %+v, %v", session, err)
		}

		menu, err := grpcClient.GetMenu(ctx, &types.GetMenuRequest{Slug: state.slug})
		if err != nil || menu.ID != state.restaurantID {
			fail(t, "unexpected grpc menu: %+v, %v", menu, err)
		}

		_, err = grpcClient.GetMenu(ctx, &types.GetMenuRequest{Slug: state.slug + "-missing"})
		if status.Code(err) != codes.NotFound {
			fail(t, "expected NotFound, got %v", err)
		}
	})

	step("DeleteRestaurant", func(t *testing.T) {
		resp, body := client.do(t, http.MethodDelete, "/restaurants/"+state.restaurantID, nil)
		if resp.StatusCode != http.StatusOK {
			fail(t, "delete status: %d body: %s", resp.StatusCode, string(body))
		}
		resp, _ = client.do(t, http.MethodGet, "/dishes/"+state.dishID, nil)
		if resp.StatusCode != http.StatusNotFound {
			fail(t, "expected dish to be gone, got %d", resp.StatusCode)
		}
	})

	step("Logout", func(t *testing.T) {
		resp, _ := client.do(t, http.MethodPost, "/auth/logout", nil)
		if resp.StatusCode != http.StatusOK {
			fail(t, "logout status: %d", resp.StatusCode)
		}
		resp, _ = client.do(t, http.MethodGet, "/restaurants", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			fail(t, "expected 401 after logout, got %d", resp.StatusCode)
		}
	})
}
