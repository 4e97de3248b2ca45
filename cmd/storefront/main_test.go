package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"pizza-storefront/internal/common/config"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/service"
)

// ==========================================
// Stub pizza service
// ==========================================

type call struct {
	Method string
	Path   string
	Body   string
}

type stubService struct {
	mu           sync.Mutex
	calls        []call
	rejectOrders bool
	rejectVerify bool
	rejectLogout bool
	server       *httptest.Server
}

const dinerJSON = `{"id":3,"name":"pizza diner","email":"d@jwt.com","roles":[{"role":"diner"}]}`

func newStubService(t *testing.T) *stubService {
	s := &stubService{}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			body, _ := io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
			s.mu.Lock()
			s.calls = append(s.calls, call{Method: req.Method, Path: req.URL.Path, Body: string(body)})
			s.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, req)
		})
	})

	r.Post("/auth", func(w http.ResponseWriter, req *http.Request) {
		var form struct{ Password string }
		_ = json.NewDecoder(req.Body).Decode(&form)
		if form.Password != "diner" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"Invalid credentials"}`)
			return
		}
		fmt.Fprintf(w, `{"user":%s,"token":"t"}`, dinerJSON)
	})
	r.Delete("/auth", func(w http.ResponseWriter, req *http.Request) {
		if s.rejectLogout {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message":"logout failed"}`)
			return
		}
		fmt.Fprint(w, `{"message":"logout successful"}`)
	})
	r.Get("/order/menu", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `[{"id":1,"title":"Veggie","description":"A garden of delight","image":"pizza1.png","price":0.0038},
			{"id":2,"title":"Pepperoni","description":"Spicy treat","image":"pizza2.png","price":0.0042}]`)
	})
	r.Get("/franchise", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"franchises":[{"id":1,"name":"pizzaPocket","admins":[{"id":4,"name":"pizza franchisee","email":"f@jwt.com"}],"stores":[{"id":1,"name":"SLC","totalRevenue":1000}]}],"more":false}`)
	})
	r.Get("/franchise/{userId}", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	r.Delete("/franchise/{id}", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"message":"franchise deleted"}`)
	})
	r.Get("/order", func(w http.ResponseWriter, req *http.Request) {
		if s.rejectOrders {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"unauthorized"}`)
			return
		}
		fmt.Fprint(w, `{"dinerId":3,"orders":[{"id":7,"franchiseId":1,"storeId":1,"date":"2024-06-05T05:14:40.000Z","items":[{"id":1,"menuId":1,"description":"Veggie","price":0.05}]}],"page":1}`)
	})
	r.Post("/order", func(w http.ResponseWriter, req *http.Request) {
		var order models.Order
		_ = json.NewDecoder(req.Body).Decode(&order)
		order.ID = "7"
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, service.OrderClaims{
			Vendor: map[string]interface{}{"id": "student"},
			Order:  &order,
		})
		signed, _ := token.SignedString([]byte("factory"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"order": order, "jwt": signed})
	})
	r.Post("/order/verify", func(w http.ResponseWriter, req *http.Request) {
		if s.rejectVerify {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"unauthorized"}`)
			return
		}
		fmt.Fprint(w, `{"message":"valid","payload":{"vendor":{"id":"student"}}}`)
	})

	s.server = httptest.NewServer(r)
	t.Cleanup(s.server.Close)
	return s
}

func (s *stubService) find(method, path string) []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []call
	for _, c := range s.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// ==========================================
// Harness
// ==========================================

type cli struct {
	t           *testing.T
	configPath  string
	sessionPath string
}

func newCLI(t *testing.T, baseURL string) *cli {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, "session.json")
	configPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(`app:
  name: storefront-test
api:
  base_url: %s
  timeout: 2000
session:
  backend: file
  path: %s
logging:
  level: error
`, baseURL, sessionPath)
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o600))
	return &cli{t: t, configPath: configPath, sessionPath: sessionPath}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (c *cli) run(stdin string, args ...string) result {
	var stdout, stderr bytes.Buffer
	full := append([]string{"-config", c.configPath}, args...)
	code := run(context.Background(), full, strings.NewReader(stdin), &stdout, &stderr,
		appOptions{registerer: prometheus.NewRegistry()})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func (c *cli) login() {
	res := c.run("", "login", "-email", "d@jwt.com", "-password", "diner")
	require.Equal(c.t, 0, res.code, res.stderr)
}

// ==========================================
// Tests
// ==========================================

func TestRun_LoginWhoamiLogout(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)

	res := c.run("", "login", "-email", "d@jwt.com", "-password", "diner")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[PD] pizza diner <d@jwt.com>")
	assert.FileExists(t, c.sessionPath)

	res = c.run("", "-o", "json", "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "pizza diner", gjson.Get(res.stdout, "name").String())
	assert.Equal(t, "diner", gjson.Get(res.stdout, "roles.0").String())

	res = c.run("", "logout")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Len(t, stub.find(http.MethodDelete, "/auth"), 1)
	assert.NoFileExists(t, c.sessionPath)

	res = c.run("", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not logged in")
}

func TestRun_LoginRejected(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)

	res := c.run("", "login", "-email", "d@jwt.com", "-password", "wrong")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "⚠️ Invalid credentials")
	assert.NoFileExists(t, c.sessionPath)
}

func TestRun_LoginValidationSendsNothing(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)

	res := c.run("", "login", "-email", "not-an-email", "-password", "diner")

	assert.Equal(t, 1, res.code)
	assert.Empty(t, stub.find(http.MethodPost, "/auth"))
}

func TestRun_OrderAndVerify(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()

	res := c.run("", "order", "-store", "1", "-verify", "1", "2")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Contains(t, res.stdout, "Here is your JWT Pizza!")
	assert.Contains(t, res.stdout, "order ID: 7")
	assert.Contains(t, res.stdout, "pie count: 2")
	assert.Contains(t, res.stdout, "total: 0.008 ₿")
	assert.Contains(t, res.stdout, "JWT Pizza - valid")
	assert.Contains(t, res.stdout, "order in token: 7 (2 pies)")

	orders := stub.find(http.MethodPost, "/order")
	require.Len(t, orders, 1)
	assert.Equal(t, "1", gjson.Get(orders[0].Body, "franchiseId").String())
	assert.Equal(t, "1", gjson.Get(orders[0].Body, "storeId").String())
	assert.Equal(t, "Pepperoni", gjson.Get(orders[0].Body, "items.1.description").String())
	assert.Len(t, stub.find(http.MethodPost, "/order/verify"), 1)
}

func TestRun_OrderBlockedWithoutPizzas(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()

	res := c.run("", "order", "-store", "1")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "order cannot be checked out")
	assert.Empty(t, stub.find(http.MethodPost, "/order"))
}

func TestRun_OrderRequiresLogin(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)

	res := c.run("", "order", "-store", "1", "1")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "/payment/login")
	assert.Empty(t, stub.find(http.MethodPost, "/order"))
}

func TestRun_UnauthorizedClearsSession(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()
	stub.rejectOrders = true

	res := c.run("", "orders")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Your session has expired")
	assert.NoFileExists(t, c.sessionPath)
}

func TestRun_VerifyUnauthorizedClearsSession(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()
	stub.rejectVerify = true

	res := c.run("", "verify", "abc.def.ghi")

	assert.Equal(t, 1, res.code)
	assert.NotContains(t, res.stdout, "JWT Pizza - invalid")
	assert.Contains(t, res.stderr, "Your session has expired")
	assert.NoFileExists(t, c.sessionPath)
}

func TestRun_DinerDashboard(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()

	res := c.run("", "dashboard", "diner")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Your pizza kitchen")
	assert.Contains(t, res.stdout, "role: diner")
	assert.Contains(t, res.stdout, "0.05 ₿")

	res = c.run("", "dashboard", "franchise")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "So you want a piece of the pie?")

	res = c.run("", "dashboard", "admin")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Oops")
	assert.Empty(t, stub.find(http.MethodGet, "/franchise"), "non-admins never load franchises")
}

func TestRun_CloseFranchiseAsksFirst(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()

	res := c.run("", "close-franchise", "-id", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Are you sure you want to close the pizzaPocket franchise?")
	assert.Empty(t, stub.find(http.MethodDelete, "/franchise/1"))

	res = c.run("", "close-franchise", "-id", "1", "-yes")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Len(t, stub.find(http.MethodDelete, "/franchise/1"), 1)
}

func TestRun_CloseRequiresIdentifiers(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()

	res := c.run("", "close-franchise")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "franchiseId: is required")

	res = c.run("", "close-store", "-franchise", "1")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "storeId: is required")

	assert.Empty(t, stub.find(http.MethodGet, "/franchise"))
	assert.NotContains(t, res.stderr, "Are you sure")
}

func TestRun_OutputFormats(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)

	res := c.run("", "menu")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Veggie")
	assert.Contains(t, res.stdout, "0.0038 ₿")

	res = c.run("", "-o", "yaml", "menu")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Regexp(t, `- id: "?1"?`, res.stdout)
	assert.Contains(t, res.stdout, "title: Veggie")

	res = c.run("", "-o", "json", "franchises")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "SLC", gjson.Get(res.stdout, "0.stores.0.name").String())
}

func TestRun_Nav(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)

	res := c.run("", "nav")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Login | Register")

	c.login()
	res = c.run("", "nav", "/admin-dashboard")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[PD]")
	assert.Contains(t, res.stdout, "home > admin-dashboard")
	assert.Contains(t, res.stdout, "Admin: not available to you")
}

func TestRun_Shell(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()

	script := strings.Join([]string{
		"cart store 1",
		"cart add 1 1",
		"checkout",
		"cart",
		"bogus",
		"exit",
		"menu",
	}, "\n")
	res := c.run(script, "shell")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Contains(t, res.stdout, "Selected pizzas: 2")
	assert.Contains(t, res.stdout, "Here is your JWT Pizza!")
	assert.Contains(t, res.stdout, "Selected pizzas: 0")
	assert.Contains(t, res.stderr, "unknown command: bogus")
	assert.Len(t, stub.find(http.MethodPost, "/order"), 1)
	assert.Len(t, stub.find(http.MethodGet, "/order/menu"), 1, "commands after exit are not run")
}

func TestRun_ShellLogoutFailureEmptiesCart(t *testing.T) {
	stub := newStubService(t)
	c := newCLI(t, stub.server.URL)
	c.login()
	stub.rejectLogout = true

	script := strings.Join([]string{"cart add 1", "logout", "cart", "exit"}, "\n")
	res := c.run(script, "shell")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Contains(t, res.stdout, "Selected pizzas: 1")
	assert.Contains(t, res.stderr, "logout failed")
	assert.Contains(t, res.stdout, "Selected pizzas: 0")
	assert.NoFileExists(t, c.sessionPath)
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(context.Background(), nil, strings.NewReader(""), &stdout, &stderr, appOptions{}))
	assert.Contains(t, stderr.String(), "COMMANDS:")

	assert.Equal(t, 2, run(context.Background(), []string{"-o", "xml", "menu"}, strings.NewReader(""), &stdout, &stderr, appOptions{}))
	assert.Contains(t, stderr.String(), "unknown output format")

	stdout.Reset()
	assert.Equal(t, 0, run(context.Background(), []string{"help"}, strings.NewReader(""), &stdout, &stderr, appOptions{}))
	assert.Contains(t, stdout.String(), "close-franchise")
}

func TestOpsRouter(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Name: "ops-test"},
		API:     config.APIConfig{BaseURL: "http://127.0.0.1:1", Timeout: 100},
		Session: config.SessionConfig{Backend: config.SessionBackendMemory},
		Logging: config.LoggingConfig{Level: "error"},
	}
	var out bytes.Buffer
	a, err := newApp(context.Background(), cfg, appOptions{out: &out, errOut: &out, registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	defer a.Close()

	srv := httptest.NewServer(newOpsRouter(a))
	defer srv.Close()

	for path, status := range map[string]string{"/health": "healthy", "/ready": "ready"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, status, gjson.GetBytes(body, "status").String())
	}

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSplitArgs(t *testing.T) {
	args, err := splitArgs(`create-store -franchise 1 -name "Salt Lake City"  `)
	require.NoError(t, err)
	assert.Equal(t, []string{"create-store", "-franchise", "1", "-name", "Salt Lake City"}, args)

	args, err = splitArgs(`login -password ""`)
	require.NoError(t, err)
	assert.Equal(t, []string{"login", "-password", ""}, args)

	_, err = splitArgs(`create-store -name "open`)
	assert.Error(t, err)
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableWriter("Store", "Revenue")
	table.AddRow("SLC", "1,000 ₿")
	table.Print(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "│ SLC   │ 1,000 ₿ │", lines[3])
}
