package webapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/felipecesargomes/banking-api/webapi/testutils"
)

type AuthTestSuite struct {
	testutils.APITestSuite
}

func (s *AuthTestSuite) TestLogin() {
	resp := s.MakeRequest(http.MethodPost, "/auth/login", `{"username":"alice"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.NotEmpty(body.AccessToken)
	s.Equal("bearer", body.TokenType)
}

func (s *AuthTestSuite) TestLogin_BadRequest() {
	resp := s.MakeRequest(http.MethodPost, "/auth/login", `{"username":123}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthTestSuite) TestLogin_UsernameTooShort() {
	resp := s.MakeRequest(http.MethodPost, "/auth/login", `{"username":"x"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthTestSuite) TestProtectedRoute_MissingToken() {
	resp := s.MakeRequest(http.MethodGet, "/accounts", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthTestSuite) TestProtectedRoute_InvalidToken() {
	resp := s.MakeRequest(http.MethodGet, "/accounts", "", "not-a-token")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestHealthRoute_Open() {
	resp := s.MakeRequest(http.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
