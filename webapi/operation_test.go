package webapi_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/felipecesargomes/banking-api/webapi/operation"
	"github.com/felipecesargomes/banking-api/webapi/testutils"
)

type OperationTestSuite struct {
	testutils.APITestSuite
}

func (s *OperationTestSuite) deposit(accountID uint, amount float64) *http.Response {
	body := fmt.Sprintf(
		`{"account_id": %d, "operation_kind": "deposit", "amount": %v}`, accountID, amount)
	return s.MakeRequest(http.MethodPost, "/operations/deposit", body, s.Token)
}

func (s *OperationTestSuite) withdraw(accountID uint, amount float64) *http.Response {
	body := fmt.Sprintf(
		`{"account_id": %d, "operation_kind": "withdrawal", "amount": %v}`, accountID, amount)
	return s.MakeRequest(http.MethodPost, "/operations/withdraw", body, s.Token)
}

func (s *OperationTestSuite) TestDeposit() {
	acct := s.SeedAccount(7, 100_00)

	resp := s.deposit(acct.ID, 250.50)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var dto operation.OperationDTO
	s.DecodeData(resp, &dto)
	s.Equal("deposit", dto.OperationKind)
	s.InDelta(250.50, dto.Amount, 1e-9)
	s.InDelta(350.50, dto.BalanceAfter, 1e-9)
	s.Equal("Deposit", dto.Description)
	s.NotEmpty(dto.Reference)
}

func (s *OperationTestSuite) TestDeposit_AccountNotFound() {
	resp := s.deposit(999, 10)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *OperationTestSuite) TestDeposit_KindMismatch() {
	acct := s.SeedAccount(7, 0)
	body := fmt.Sprintf(
		`{"account_id": %d, "operation_kind": "withdrawal", "amount": 10}`, acct.ID)
	resp := s.MakeRequest(http.MethodPost, "/operations/deposit", body, s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *OperationTestSuite) TestDeposit_Validation() {
	acct := s.SeedAccount(7, 0)
	cases := map[string]string{
		"zero amount":      fmt.Sprintf(`{"account_id": %d, "operation_kind": "deposit", "amount": 0}`, acct.ID),
		"negative amount":  fmt.Sprintf(`{"account_id": %d, "operation_kind": "deposit", "amount": -5}`, acct.ID),
		"amount above cap": fmt.Sprintf(`{"account_id": %d, "operation_kind": "deposit", "amount": 1000001}`, acct.ID),
		"missing account":  `{"operation_kind": "deposit", "amount": 10}`,
		"unknown kind":     fmt.Sprintf(`{"account_id": %d, "operation_kind": "transfer", "amount": 10}`, acct.ID),
	}
	for name, body := range cases {
		resp := s.MakeRequest(http.MethodPost, "/operations/deposit", body, s.Token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, name)
		resp.Body.Close() //nolint: errcheck
	}
}

func (s *OperationTestSuite) TestWithdraw() {
	acct := s.SeedAccount(7, 500_00)

	resp := s.withdraw(acct.ID, 200)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var dto operation.OperationDTO
	s.DecodeData(resp, &dto)
	s.Equal("withdrawal", dto.OperationKind)
	s.InDelta(300.0, dto.BalanceAfter, 1e-9)
}

func (s *OperationTestSuite) TestWithdraw_InsufficientBalance() {
	acct := s.SeedAccount(7, 50_00)
	resp := s.withdraw(acct.ID, 100)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *OperationTestSuite) TestWithdraw_DailyLimitExceeded() {
	acct := s.SeedAccount(7, 5_000_00)

	resp := s.withdraw(acct.ID, 1000)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.withdraw(acct.ID, 0.01)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *OperationTestSuite) TestOperations_InactiveAccount() {
	acct := s.SeedAccount(7, 100_00)
	resp := s.MakeRequest(http.MethodPatch,
		fmt.Sprintf("/accounts/%d/deactivate", acct.ID), "", s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	// Mutations are rejected on a deactivated account.
	resp = s.deposit(acct.ID, 10)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close() //nolint: errcheck
	resp = s.withdraw(acct.ID, 10)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close() //nolint: errcheck

	// The statement is still served.
	resp = s.MakeRequest(http.MethodGet,
		fmt.Sprintf("/operations/%d/statement", acct.ID), "", s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *OperationTestSuite) TestStatement() {
	acct := s.SeedAccount(7, 0)
	for i := 1; i <= 3; i++ {
		resp := s.deposit(acct.ID, float64(i*10))
		s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close() //nolint: errcheck
	}

	resp := s.MakeRequest(http.MethodGet,
		fmt.Sprintf("/operations/%d/statement?limit=2", acct.ID), "", s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var st operation.StatementResponse
	s.DecodeData(resp, &st)
	s.Equal(acct.ID, st.Account.ID)
	s.Equal(int64(3), st.TotalOperations)
	s.Require().Len(st.Operations, 2)
	s.InDelta(30.0, st.Operations[0].Amount, 1e-9)
	s.InDelta(60.0, st.Operations[0].BalanceAfter, 1e-9)
}

func (s *OperationTestSuite) TestStatement_NotFound() {
	resp := s.MakeRequest(http.MethodGet, "/operations/999/statement", "", s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *OperationTestSuite) TestListOperations() {
	first := s.SeedAccount(1, 100_00)
	second := s.SeedAccount(2, 100_00)

	resp := s.deposit(first.ID, 10)
	resp.Body.Close() //nolint: errcheck
	resp = s.withdraw(second.ID, 20)
	resp.Body.Close() //nolint: errcheck

	resp = s.MakeRequest(http.MethodGet, "/operations", "", s.Token)
	var dtos []operation.OperationDTO
	s.DecodeData(resp, &dtos)
	resp.Body.Close() //nolint: errcheck
	s.Len(dtos, 2)

	resp = s.MakeRequest(http.MethodGet, "/operations?operation_kind=withdrawal", "", s.Token)
	s.DecodeData(resp, &dtos)
	resp.Body.Close() //nolint: errcheck
	s.Require().Len(dtos, 1)
	s.Equal(second.ID, dtos[0].AccountID)

	resp = s.MakeRequest(http.MethodGet, "/operations?operation_kind=transfer", "", s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestOperationTestSuite(t *testing.T) {
	suite.Run(t, new(OperationTestSuite))
}
