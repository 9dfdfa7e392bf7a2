package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/furiksayram-commits/debt-tracker/internal/adapters/storage/memory"
	"github.com/furiksayram-commits/debt-tracker/internal/apperrors"
	"github.com/furiksayram-commits/debt-tracker/internal/core/domain"
	"github.com/furiksayram-commits/debt-tracker/internal/dto"
	"github.com/furiksayram-commits/debt-tracker/internal/handlers"
	"github.com/furiksayram-commits/debt-tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DebtorService ---
type MockDebtorService struct {
	mock.Mock
}

func (m *MockDebtorService) ListAll(ctx context.Context) ([]domain.Debtor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debtor), args.Error(1)
}

func (m *MockDebtorService) Search(ctx context.Context, query string) ([]domain.Debtor, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debtor), args.Error(1)
}

func (m *MockDebtorService) AddDebt(ctx context.Context, req dto.AddDebtRequest) (*domain.Debtor, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debtor), args.Error(1)
}

func (m *MockDebtorService) AddDebtTo(ctx context.Context, debtorID string, req dto.AddRecordRequest) (*domain.Debtor, error) {
	args := m.Called(ctx, debtorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debtor), args.Error(1)
}

func (m *MockDebtorService) RecordPayment(ctx context.Context, debtorID string, req dto.AddRecordRequest) (*domain.Debtor, error) {
	args := m.Called(ctx, debtorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debtor), args.Error(1)
}

func (m *MockDebtorService) DeleteDebtor(ctx context.Context, debtorID string) (string, error) {
	args := m.Called(ctx, debtorID)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type DebtorHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockDebtorService
}

func (suite *DebtorHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockDebtorService)
	suite.router = gin.New()
	// IsProduction skips the swagger routes; health gets a live memory store.
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, suite.mockService, memory.NewStore(), "memory")
}

func TestDebtorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DebtorHandlerTestSuite))
}

func (suite *DebtorHandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleDebtor(name string) *domain.Debtor {
	now := time.Now().UTC()
	d := &domain.Debtor{
		DebtorID:  uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.AppendRecord(domain.LedgerRecord{
		RecordID: uuid.NewString(),
		Kind:     domain.KindDebt,
		Amount:   decimal.NewFromInt(1000),
		Date:     now,
	})
	return d
}

// --- Test Cases ---

func (suite *DebtorHandlerTestSuite) TestListDebts() {
	debtor := sampleDebtor("Ivan")
	suite.mockService.On("ListAll", mock.Anything).Return([]domain.Debtor{*debtor}, nil).Once()

	w := suite.perform(http.MethodGet, "/api/debts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.DebtorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Ivan", resp[0].Name)
	suite.Require().Len(resp[0].Records, 1)
	suite.Equal(domain.KindDebt, resp[0].Records[0].Type)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtorHandlerTestSuite) TestListDebts_StorageFailure() {
	err := fmt.Errorf("%w: bin unreachable", apperrors.ErrStorage)
	suite.mockService.On("ListAll", mock.Anything).Return(nil, err).Once()

	w := suite.perform(http.MethodGet, "/api/debts", nil)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *DebtorHandlerTestSuite) TestAddDebt() {
	debtor := sampleDebtor("Ivan")
	suite.mockService.On("AddDebt", mock.Anything, mock.MatchedBy(func(req dto.AddDebtRequest) bool {
		return req.Name == "Ivan" && req.Amount.Equal(decimal.NewFromInt(1000))
	})).Return(debtor, nil).Once()

	w := suite.perform(http.MethodPost, "/api/debts", gin.H{"name": "Ivan", "amount": 1000})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DebtorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(debtor.DebtorID, resp.ID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtorHandlerTestSuite) TestAddDebt_AmountAsDecimalString() {
	debtor := sampleDebtor("Ivan")
	suite.mockService.On("AddDebt", mock.Anything, mock.MatchedBy(func(req dto.AddDebtRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("99.95"))
	})).Return(debtor, nil).Once()

	w := suite.perform(http.MethodPost, "/api/debts", gin.H{"name": "Ivan", "amount": "99.95"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtorHandlerTestSuite) TestAddDebt_MissingNameRejectedBeforeService() {
	w := suite.perform(http.MethodPost, "/api/debts", gin.H{"amount": 1000})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "AddDebt", mock.Anything, mock.Anything)
}

func (suite *DebtorHandlerTestSuite) TestAddDebt_ValidationError() {
	err := fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	suite.mockService.On("AddDebt", mock.Anything, mock.Anything).Return(nil, err).Once()

	w := suite.perform(http.MethodPost, "/api/debts", gin.H{"name": "Ivan", "amount": 0})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DebtorHandlerTestSuite) TestAddDebtTo_UnknownID() {
	err := fmt.Errorf("%w: debtor nope", apperrors.ErrNotFound)
	suite.mockService.On("AddDebtTo", mock.Anything, "nope", mock.Anything).Return(nil, err).Once()

	w := suite.perform(http.MethodPost, "/api/debts/nope/add-debt", gin.H{"amount": 100})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DebtorHandlerTestSuite) TestRecordPayment() {
	debtor := sampleDebtor("Ivan")
	suite.mockService.On("RecordPayment", mock.Anything, debtor.DebtorID, mock.MatchedBy(func(req dto.AddRecordRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(400))
	})).Return(debtor, nil).Once()

	w := suite.perform(http.MethodPost, "/api/debts/"+debtor.DebtorID+"/pay", gin.H{"amount": 400})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtorHandlerTestSuite) TestRecordPayment_InvalidAmount() {
	err := fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	suite.mockService.On("RecordPayment", mock.Anything, "some-id", mock.Anything).Return(nil, err).Once()

	w := suite.perform(http.MethodPost, "/api/debts/some-id/pay", gin.H{"amount": -5})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DebtorHandlerTestSuite) TestRecordPayment_StorageFailure() {
	err := fmt.Errorf("%w: write failed", apperrors.ErrStorage)
	suite.mockService.On("RecordPayment", mock.Anything, "some-id", mock.Anything).Return(nil, err).Once()

	w := suite.perform(http.MethodPost, "/api/debts/some-id/pay", gin.H{"amount": 400})

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *DebtorHandlerTestSuite) TestSearchDebts() {
	debtor := sampleDebtor("Ivan")
	suite.mockService.On("Search", mock.Anything, "iva").Return([]domain.Debtor{*debtor}, nil).Once()

	w := suite.perform(http.MethodGet, "/api/debts/search?q=iva", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.DebtorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Ivan", resp[0].Name)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtorHandlerTestSuite) TestSearchDebts_EmptyQuery() {
	suite.mockService.On("Search", mock.Anything, "").Return([]domain.Debtor{}, nil).Once()

	w := suite.perform(http.MethodGet, "/api/debts/search", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtorHandlerTestSuite) TestDeleteDebtor() {
	suite.mockService.On("DeleteDebtor", mock.Anything, "some-id").Return("Ivan", nil).Once()

	w := suite.perform(http.MethodDelete, "/api/debts/some-id", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DeleteDebtorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("Ivan", resp.DeletedDebtor)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtorHandlerTestSuite) TestDeleteDebtor_UnknownID() {
	err := fmt.Errorf("%w: debtor nope", apperrors.ErrNotFound)
	suite.mockService.On("DeleteDebtor", mock.Anything, "nope").Return("", err).Once()

	w := suite.perform(http.MethodDelete, "/api/debts/nope", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DebtorHandlerTestSuite) TestHealth() {
	w := suite.perform(http.MethodGet, "/api/health", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("OK", resp["status"])
	suite.Equal("memory", resp["store"])
}
