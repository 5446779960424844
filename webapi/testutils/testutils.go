// Package testutils hosts the in-process HTTP test harness: a fully wired
// Fiber app on top of the in-memory store, plus request helpers.
package testutils

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/felipecesargomes/banking-api/internal/fixtures/memstore"
	"github.com/felipecesargomes/banking-api/pkg/app"
	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/webapi"
)

// APITestSuite wires the full HTTP surface against the in-memory store. Each
// test gets a fresh store and a valid bearer token.
type APITestSuite struct {
	suite.Suite

	App   *fiber.App
	Store *memstore.Store
	Cfg   *config.App
	Token string
}

// TestConfig returns the configuration used by the in-process app.
func TestConfig() *config.App {
	return &config.App{
		Env: "test",
		Jwt: config.Jwt{
			Secret: "test-secret",
			Expiry: time.Hour,
		},
		RateLimit: config.RateLimit{
			MaxRequests: 1000,
			Window:      time.Minute,
		},
		Ledger: config.Ledger{CommitRetries: 3},
	}
}

// SetupTest rebuilds the app and logs in.
func (s *APITestSuite) SetupTest() {
	s.Store = memstore.New()
	s.Cfg = TestConfig()
	a := app.New(s.Store.UoW(), s.Cfg, slog.New(slog.DiscardHandler))
	s.App = webapi.SetupApp(a)
	s.Token = s.Login("tester")
}

// Login issues a token through the real login endpoint.
func (s *APITestSuite) Login(username string) string {
	resp := s.MakeRequest(http.MethodPost, "/auth/login",
		`{"username":"`+username+`"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().NotEmpty(body.AccessToken)
	return body.AccessToken
}

// MakeRequest performs an in-process HTTP request against the app.
func (s *APITestSuite) MakeRequest(method, target, body, token string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// DecodeData decodes the data field of the standard success envelope into
// out.
func (s *APITestSuite) DecodeData(resp *http.Response, out any) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	s.Require().NoError(json.Unmarshal(envelope.Data, out))
}

// SeedAccount puts an active account with the given balance directly into
// the store.
func (s *APITestSuite) SeedAccount(ownerID int64, balanceCents int64) *account.Account {
	a, err := account.New().
		WithOwnerID(ownerID).
		WithInitialBalance(money.FromCents(balanceCents)).
		Build()
	s.Require().NoError(err)
	return s.Store.SeedAccount(a)
}
