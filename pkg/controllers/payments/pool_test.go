package payments_test

import (
	"net/http"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/controllers/payments"
	"github.com/propnest/backend/pkg/models"
	"github.com/propnest/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPoolScenario() {
	// Initialize P1 with 10000 total and 2000 material cost
	created := initTestPool(suite.T(), payments.PoolInitEditable{
		ProjectID:    "P1",
		TotalCost:    decimal.NewFromFloat(10000),
		MaterialCost: decimal.NewFromFloat(2000),
	})
	suite.Require().NotNil(created.Data)
	suite.Assert().True(created.Data.Pool.RemainingPool.Equal(decimal.NewFromFloat(8000)))
	suite.Assert().True(created.Data.Pool.SalariesCost.IsZero())
	suite.Assert().Equal(models.DefaultCurrency, created.Data.Pool.Currency)
	suite.Assert().Equal("http://example.com/payments/pool/P1", created.Data.Pool.Links.Self)

	suite.Require().NotNil(created.Data.Material)
	suite.Assert().Equal(models.PaymentTypeMaterial, created.Data.Material.Type)
	suite.Assert().Equal(models.PaymentStatusPaid, created.Data.Material.Status)
	suite.Assert().Equal(models.PaymentSourceInit, created.Data.Material.Source)
	suite.Assert().True(created.Data.Material.Amount.Equal(decimal.NewFromFloat(2000)))

	// Allocate 3000 salary to Bob
	a := allocate(suite.T(), payments.AllocationEditable{
		ProjectID: "P1",
		Recipient: "Bob",
		Amount:    decimal.NewFromFloat(3000),
		Type:      models.PaymentTypeSalary,
	})
	suite.Require().NotNil(a.Data)
	suite.Assert().True(a.Data.Pool.RemainingPool.Equal(decimal.NewFromFloat(5000)))
	suite.Assert().True(a.Data.Pool.SalariesCost.Equal(decimal.NewFromFloat(3000)))
	suite.Assert().Equal("Bob", a.Data.Payment.Recipient)
	suite.Assert().Equal("Payment to Bob", a.Data.Payment.Description)
	suite.Assert().Equal(models.PaymentStatusPaid, a.Data.Payment.Status)
	suite.Assert().Equal(models.PaymentSourceAllocation, a.Data.Payment.Source)

	// 6000 exceeds the remaining 5000
	rejected := allocate(suite.T(), payments.AllocationEditable{
		ProjectID: "P1",
		Recipient: "Bob",
		Amount:    decimal.NewFromFloat(6000),
		Type:      models.PaymentTypeSalary,
	}, http.StatusBadRequest)
	suite.Assert().Nil(rejected.Data)
	suite.Assert().Equal(models.ErrInsufficientFunds.Error(), *rejected.Error)

	pool := getPool(suite.T(), "P1")
	suite.Require().NotNil(pool.Data)
	suite.Assert().True(pool.Data.RemainingPool.Equal(decimal.NewFromFloat(5000)))
	suite.Assert().True(pool.Data.SalariesCost.Equal(decimal.NewFromFloat(3000)))
	suite.Assert().Len(listPayments(suite.T(), "P1").Data, 2)

	// Stored and derived balance agree
	r := test.Request(suite.T(), http.MethodGet, pool.Data.Links.Reconcile, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var rec payments.ReconciliationResponse
	test.DecodeResponse(suite.T(), &r, &rec)
	suite.Assert().True(rec.Data.Drift.IsZero(), "drift is %s", rec.Data.Drift)
	suite.Assert().True(rec.Data.Allocated.Equal(decimal.NewFromFloat(5000)))
	suite.Assert().True(rec.Data.Derived.Equal(decimal.NewFromFloat(5000)))
}

func (suite *TestSuiteStandard) TestPoolGetAbsent() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/payments/pool/nobody", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().JSONEq(`{"data": null, "error": null}`, r.Body.String())
}

func (suite *TestSuiteStandard) TestPoolInitReplace() {
	_ = initTestPool(suite.T(), payments.PoolInitEditable{ProjectID: "P2", TotalCost: decimal.NewFromFloat(1000)})
	_ = allocate(suite.T(), payments.AllocationEditable{ProjectID: "P2", Recipient: "Carol", Amount: decimal.NewFromFloat(400), Type: models.PaymentTypeSalary})

	replaced := initTestPool(suite.T(), payments.PoolInitEditable{ProjectID: "P2", TotalCost: decimal.NewFromFloat(3000), Currency: "eur"})
	suite.Assert().Nil(replaced.Data.Material)
	suite.Assert().True(replaced.Data.Pool.RemainingPool.Equal(decimal.NewFromFloat(3000)))
	suite.Assert().True(replaced.Data.Pool.SalariesCost.IsZero())
	suite.Assert().Equal("EUR", replaced.Data.Pool.Currency)
	suite.Assert().Equal(uint(2), replaced.Data.Pool.Version)
}

func (suite *TestSuiteStandard) TestPoolInitFails() {
	tests := []struct {
		name     string
		editable payments.PoolInitEditable
		err      error
	}{
		{"No project", payments.PoolInitEditable{TotalCost: decimal.NewFromFloat(10)}, models.ErrProjectIDEmpty},
		{"Negative total", payments.PoolInitEditable{ProjectID: "P3", TotalCost: decimal.NewFromFloat(-10)}, models.ErrCostNegative},
		{"Negative material", payments.PoolInitEditable{ProjectID: "P3", MaterialCost: decimal.NewFromFloat(-1)}, models.ErrCostNegative},
		{"Bad currency", payments.PoolInitEditable{ProjectID: "P3", Currency: "RUPEES"}, models.ErrCurrencyInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			p := initTestPool(t, tt.editable, http.StatusBadRequest)
			assert.Nil(t, p.Data)
			assert.Equal(t, tt.err.Error(), *p.Error)
		})
	}

	suite.Assert().Nil(getPool(suite.T(), "P3").Data)
}

func (suite *TestSuiteStandard) TestPoolAllocateFails() {
	_ = initTestPool(suite.T(), payments.PoolInitEditable{ProjectID: "P4", TotalCost: decimal.NewFromFloat(100)})

	tests := []struct {
		name     string
		editable payments.AllocationEditable
		status   int
		err      string
	}{
		{"No pool", payments.AllocationEditable{ProjectID: "nobody", Amount: decimal.NewFromFloat(1), Type: models.PaymentTypeSalary}, http.StatusNotFound, "there is no project pool matching your query"},
		{"Zero amount", payments.AllocationEditable{ProjectID: "P4", Type: models.PaymentTypeSalary}, http.StatusBadRequest, models.ErrPaymentAmountNotPositive.Error()},
		{"Bad type", payments.AllocationEditable{ProjectID: "P4", Amount: decimal.NewFromFloat(1), Type: "bribe"}, http.StatusBadRequest, models.ErrPaymentTypeInvalid.Error()},
		{"No project", payments.AllocationEditable{Amount: decimal.NewFromFloat(1), Type: models.PaymentTypeSalary}, http.StatusBadRequest, models.ErrProjectIDEmpty.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			a := allocate(t, tt.editable, tt.status)
			assert.Nil(t, a.Data)
			assert.Equal(t, tt.err, *a.Error)
		})
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/payments/pool/allocate", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPoolReconcileAbsent() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/payments/pool/nobody/reconcile", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPoolDBClosed() {
	suite.CloseDB()

	initTestPool(suite.T(), payments.PoolInitEditable{ProjectID: "P5", TotalCost: decimal.NewFromFloat(10)}, http.StatusInternalServerError)
	allocate(suite.T(), payments.AllocationEditable{ProjectID: "P5", Amount: decimal.NewFromFloat(1), Type: models.PaymentTypeSalary}, http.StatusInternalServerError)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/payments/pool/P5/reconcile", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestPoolOptions() {
	tests := []struct {
		url   string
		allow string
	}{
		{"http://example.com/payments/pool/init", "OPTIONS, POST"},
		{"http://example.com/payments/pool/allocate", "OPTIONS, POST"},
		{"http://example.com/payments/pool/P1", "OPTIONS, GET"},
		{"http://example.com/payments/pool/P1/reconcile", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.url, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.url, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestPoolAuthentication() {
	secret := "site-secret"
	os.Setenv("API_JWT_SECRET", secret)
	defer os.Unsetenv("API_JWT_SECRET")

	body := payments.PoolInitEditable{ProjectID: "P6", TotalCost: decimal.NewFromFloat(100)}

	initTestPool(suite.T(), body, http.StatusUnauthorized)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "manager"}).SignedString([]byte(secret))
	suite.Require().Nil(err)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/payments/pool/init", body, map[string]string{"Authorization": "Bearer " + token})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	// Reading does not need a token
	suite.Assert().NotNil(getPool(suite.T(), "P6").Data)
}

// TestPoolRepeatedRequests verifies that repeating init and allocate
// requests with the same ID applies them once.
func (suite *TestSuiteStandard) TestPoolRepeatedRequests() {
	in := payments.PoolInitEditable{
		ID:           uuid.New(),
		ProjectID:    "P1",
		TotalCost:    decimal.NewFromFloat(10000),
		MaterialCost: decimal.NewFromFloat(2000),
	}
	created := initTestPool(suite.T(), in)
	suite.Require().NotNil(created.Data)
	suite.Assert().Equal(in.ID, created.Data.Pool.Generation)

	a := payments.AllocationEditable{
		ID:        uuid.New(),
		ProjectID: "P1",
		Recipient: "Bob",
		Amount:    decimal.NewFromFloat(3000),
		Type:      models.PaymentTypeSalary,
	}
	first := allocate(suite.T(), a)
	second := allocate(suite.T(), a)
	suite.Require().NotNil(second.Data)
	suite.Assert().Equal(a.ID, first.Data.Payment.ID)
	suite.Assert().Equal(first.Data.Payment.ID, second.Data.Payment.ID)
	suite.Assert().True(second.Data.Pool.RemainingPool.Equal(decimal.NewFromFloat(5000)), second.Data.Pool.RemainingPool.String())

	repeated := initTestPool(suite.T(), in)
	suite.Require().NotNil(repeated.Data)
	suite.Assert().True(repeated.Data.Pool.RemainingPool.Equal(decimal.NewFromFloat(5000)))

	pool := getPool(suite.T(), "P1")
	suite.Assert().True(pool.Data.RemainingPool.Equal(decimal.NewFromFloat(5000)))
	suite.Assert().Len(listPayments(suite.T(), "P1").Data, 2)
}
