package mirror_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/controllers/payments"
	"github.com/propnest/backend/pkg/mirror"
	"github.com/propnest/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreatePaymentOptimistic() {
	m := suite.mirror()

	p, err := m.CreatePayment(payments.PaymentEditable{
		ProjectID: " villa-7 ",
		Type:      models.PaymentTypeContractor,
		Amount:    decimal.NewFromFloat(1500),
		Recipient: "Alice",
		Installments: []payments.InstallmentEditable{
			{Amount: decimal.NewFromFloat(1000)},
			{Amount: decimal.NewFromFloat(500)},
		},
	})
	suite.Require().Nil(err)

	suite.Assert().NotEqual(uuid.Nil, p.ID)
	suite.Assert().Equal("villa-7", p.ProjectID)
	suite.Assert().Equal(models.PaymentStatusPending, p.Status)
	suite.Assert().Equal(models.PaymentSourceDirect, p.Source)
	suite.Require().Len(p.Installments, 2)
	suite.Assert().Equal(1, p.Installments[1].Position)

	list := m.Payments("villa-7")
	suite.Require().Len(list, 1)
	suite.Assert().Equal(p.ID, list[0].ID)
	suite.Assert().Len(m.Unsynced(), 1)

	// Nothing reaches the server before Sync
	remote, err := suite.client().ListPayments(context.Background(), "villa-7", payments.PaymentQueryFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(remote, 0)
}

func (suite *TestSuiteStandard) TestOperationsInvalid() {
	m := suite.mirror()

	tests := []struct {
		name string
		fn   func() error
		err  error
	}{
		{"Empty project", func() error {
			_, err := m.CreatePayment(payments.PaymentEditable{Type: models.PaymentTypeEMI, Amount: decimal.NewFromFloat(10)})
			return err
		}, models.ErrProjectIDEmpty},
		{"Zero amount", func() error {
			_, err := m.CreatePayment(payments.PaymentEditable{ProjectID: "villa-7", Type: models.PaymentTypeEMI})
			return err
		}, models.ErrPaymentAmountNotPositive},
		{"Bad type", func() error {
			_, err := m.CreatePayment(payments.PaymentEditable{ProjectID: "villa-7", Type: "rent", Amount: decimal.NewFromFloat(10)})
			return err
		}, models.ErrPaymentTypeInvalid},
		{"Bad installment", func() error {
			_, err := m.CreatePayment(payments.PaymentEditable{ProjectID: "villa-7", Type: models.PaymentTypeEMI, Amount: decimal.NewFromFloat(10), Installments: []payments.InstallmentEditable{{}}})
			return err
		}, models.ErrInstallmentAmount},
		{"Unknown payment", func() error {
			_, err := m.MarkPaid("villa-7", uuid.New())
			return err
		}, models.ErrResourceNotFound},
		{"No pool", func() error {
			_, _, err := m.Allocate(payments.AllocationEditable{ProjectID: "villa-7", Recipient: "Bob", Amount: decimal.NewFromFloat(10), Type: models.PaymentTypeSalary})
			return err
		}, models.ErrResourceNotFound},
		{"Negative cost", func() error {
			_, err := m.InitPool(payments.PoolInitEditable{ProjectID: "villa-7", TotalCost: decimal.NewFromFloat(-1), Currency: "INR"})
			return err
		}, models.ErrCostNegative},
		{"Bad currency", func() error {
			_, err := m.InitPool(payments.PoolInitEditable{ProjectID: "villa-7", TotalCost: decimal.NewFromFloat(1), Currency: "XYZW"})
			return err
		}, models.ErrCurrencyInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(), tt.err)
		})
	}

	suite.Assert().Len(m.Unsynced(), 0, "rejected operations must not be queued")
}

func (suite *TestSuiteStandard) TestSyncPayments() {
	m := suite.mirror()
	client := suite.client()

	p, err := m.CreatePayment(payments.PaymentEditable{
		ProjectID: "villa-7",
		Type:      models.PaymentTypeEMI,
		Amount:    decimal.NewFromFloat(2000),
		Installments: []payments.InstallmentEditable{
			{Amount: decimal.NewFromFloat(1000)},
			{Amount: decimal.NewFromFloat(1000)},
		},
	})
	suite.Require().Nil(err)

	// Local IDs are used before the payment exists on the server
	_, err = m.MarkInstallmentPaid("villa-7", p.ID, p.Installments[1].ID)
	suite.Require().Nil(err)

	suite.Require().Nil(m.Sync(context.Background()))
	suite.Assert().Len(m.Unsynced(), 0)
	suite.Assert().Len(m.Failed(), 0)

	local := m.Payments("villa-7")
	suite.Require().Len(local, 1)
	serverID := local[0].ID
	suite.Assert().NotEqual(p.ID, serverID, "synced payments carry the server ID")

	// Local IDs stay valid after the sync
	updated, err := m.MarkPaid("villa-7", p.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(models.PaymentStatusPaid, updated.Status)
	suite.Require().Nil(m.Sync(context.Background()))

	remote, err := client.GetPayment(context.Background(), serverID)
	suite.Require().Nil(err)
	suite.Assert().Equal(models.PaymentStatusPaid, remote.Status)
	suite.Require().Len(remote.Installments, 2)
	suite.Assert().Equal(models.PaymentStatusPending, remote.Installments[0].Status)
	suite.Assert().Equal(models.PaymentStatusPaid, remote.Installments[1].Status)

	suite.Assert().Equal(remote.Status, m.Payments("villa-7")[0].Status)
}

func (suite *TestSuiteStandard) TestSyncPool() {
	m := suite.mirror()

	pool, err := m.InitPool(payments.PoolInitEditable{
		ProjectID:    "villa-7",
		TotalCost:    decimal.NewFromFloat(10000),
		MaterialCost: decimal.NewFromFloat(2000),
		Currency:     "inr",
	})
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromFloat(8000).Equal(pool.RemainingPool))
	suite.Assert().Equal("INR", pool.Currency)

	pool, payment, err := m.Allocate(payments.AllocationEditable{ProjectID: "villa-7", Recipient: "Bob", Amount: decimal.NewFromFloat(3000), Type: models.PaymentTypeSalary})
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromFloat(5000).Equal(pool.RemainingPool))
	suite.Assert().True(decimal.NewFromFloat(3000).Equal(pool.SalariesCost))
	suite.Assert().Equal("Payment to Bob", payment.Description)

	_, _, err = m.Allocate(payments.AllocationEditable{ProjectID: "villa-7", Recipient: "Bob", Amount: decimal.NewFromFloat(6000), Type: models.PaymentTypeSalary})
	suite.Assert().ErrorIs(err, models.ErrInsufficientFunds)

	suite.Require().Len(m.Payments("villa-7"), 2)
	suite.Require().Nil(m.Sync(context.Background()))
	suite.Assert().Len(m.Unsynced(), 0)

	remote, err := suite.client().GetPool(context.Background(), "villa-7")
	suite.Require().Nil(err)
	suite.Require().NotNil(remote)
	suite.Assert().True(decimal.NewFromFloat(5000).Equal(remote.RemainingPool))

	local := m.Pool("villa-7")
	suite.Require().NotNil(local)
	suite.Assert().Equal(remote.ID, local.ID)
	suite.Assert().Equal(remote.Version, local.Version)
	suite.Assert().True(remote.RemainingPool.Equal(local.RemainingPool))

	list := m.Payments("villa-7")
	suite.Require().Len(list, 2)
	suite.Assert().Equal(models.PaymentSourceInit, list[0].Source)
	suite.Assert().Equal(models.PaymentSourceAllocation, list[1].Source)

	r, err := suite.client().Reconcile(context.Background(), "villa-7")
	suite.Require().Nil(err)
	suite.Assert().True(r.Drift.IsZero())
}

func (suite *TestSuiteStandard) TestSyncRejected() {
	ctx := context.Background()
	a := suite.mirror()
	b := suite.mirror()

	_, err := a.InitPool(payments.PoolInitEditable{ProjectID: "villa-7", TotalCost: decimal.NewFromFloat(10000), MaterialCost: decimal.NewFromFloat(2000), Currency: "INR"})
	suite.Require().Nil(err)
	suite.Require().Nil(a.Sync(ctx))

	suite.Require().Nil(b.Refresh(ctx, "villa-7"))
	suite.Require().NotNil(b.Pool("villa-7"))

	// b allocates offline from the balance it knows about
	_, _, err = b.Allocate(payments.AllocationEditable{ProjectID: "villa-7", Recipient: "Carol", Amount: decimal.NewFromFloat(4000), Type: models.PaymentTypeDesigner})
	suite.Require().Nil(err)

	_, _, err = a.Allocate(payments.AllocationEditable{ProjectID: "villa-7", Recipient: "Bob", Amount: decimal.NewFromFloat(5000), Type: models.PaymentTypeSalary})
	suite.Require().Nil(err)
	suite.Require().Nil(a.Sync(ctx))

	suite.Require().Nil(b.Sync(ctx))
	suite.Assert().Len(b.Unsynced(), 0)

	failed := b.Failed()
	suite.Require().Len(failed, 1)
	suite.Assert().Equal(http.StatusBadRequest, failed[0].Status)
	suite.Assert().Equal(models.ErrInsufficientFunds.Error(), failed[0].Error)
	suite.Assert().Equal(mirror.KindAllocate, failed[0].Operation.Kind)

	// The local copy matches the server again
	pool := b.Pool("villa-7")
	suite.Require().NotNil(pool)
	suite.Assert().True(decimal.NewFromFloat(3000).Equal(pool.RemainingPool))

	list := b.Payments("villa-7")
	suite.Require().Len(list, 2)
	suite.Assert().Equal("Bob", list[1].Recipient)
}

func (suite *TestSuiteStandard) TestSyncRetry() {
	m := suite.mirror()
	m.BaseDelay = time.Second
	m.MaxDelay = time.Minute

	_, err := m.CreatePayment(payments.PaymentEditable{ProjectID: "villa-7", Type: models.PaymentTypeContractor, Amount: decimal.NewFromFloat(100)})
	suite.Require().Nil(err)

	suite.server.Close()

	suite.Assert().NotNil(m.Sync(context.Background()))
	queue := m.Unsynced()
	suite.Require().Len(queue, 1)
	suite.Assert().Equal(1, queue[0].Attempts)
	suite.Assert().Equal(suite.clock.Add(time.Second), queue[0].NextAttempt)
	suite.Assert().NotEmpty(queue[0].LastError)

	// Not due yet, nothing is attempted
	suite.Assert().Nil(m.Sync(context.Background()))
	suite.Assert().Equal(1, m.Unsynced()[0].Attempts)

	suite.clock = suite.clock.Add(time.Second)
	suite.Assert().NotNil(m.Sync(context.Background()))
	queue = m.Unsynced()
	suite.Assert().Equal(2, queue[0].Attempts)
	suite.Assert().Equal(suite.clock.Add(2*time.Second), queue[0].NextAttempt)

	// The optimistic state is kept while the server is unreachable
	suite.Assert().Len(m.Payments("villa-7"), 1)
	suite.Assert().Len(m.Failed(), 0)
}

func (suite *TestSuiteStandard) TestBackoff() {
	m := suite.mirror()
	m.BaseDelay = time.Second
	m.MaxDelay = 10 * time.Second

	suite.Assert().Equal(time.Second, m.Backoff(1))
	suite.Assert().Equal(2*time.Second, m.Backoff(2))
	suite.Assert().Equal(8*time.Second, m.Backoff(4))
	suite.Assert().Equal(10*time.Second, m.Backoff(5))
	suite.Assert().Equal(10*time.Second, m.Backoff(60))
}

func (suite *TestSuiteStandard) TestSaveLoad() {
	path := filepath.Join(suite.T().TempDir(), "mirror.json")

	m := suite.mirror()
	_, err := m.InitPool(payments.PoolInitEditable{ProjectID: "villa-7", TotalCost: decimal.NewFromFloat(10000), Currency: "INR"})
	suite.Require().Nil(err)
	suite.Require().Nil(m.Sync(context.Background()))

	p, err := m.CreatePayment(payments.PaymentEditable{ProjectID: "villa-7", Type: models.PaymentTypeDesigner, Amount: decimal.NewFromFloat(700)})
	suite.Require().Nil(err)

	suite.Require().Nil(m.Save(path))

	loaded := suite.mirror()
	suite.Require().Nil(loaded.Load(path))

	queue := loaded.Unsynced()
	suite.Require().Len(queue, 1)
	suite.Assert().Equal(m.Unsynced()[0].ID, queue[0].ID)
	suite.Assert().Equal(mirror.KindCreatePayment, queue[0].Kind)
	suite.Require().Len(loaded.Payments("villa-7"), 1)
	suite.Assert().Equal(p.ID, loaded.Payments("villa-7")[0].ID)
	suite.Require().NotNil(loaded.Pool("villa-7"))
	suite.Assert().True(decimal.NewFromFloat(10000).Equal(loaded.Pool("villa-7").RemainingPool))

	suite.Require().Nil(loaded.Sync(context.Background()))
	remote, err := suite.client().ListPayments(context.Background(), "villa-7", payments.PaymentQueryFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(remote, 1)
}

func (suite *TestSuiteStandard) TestLoadMissing() {
	m := suite.mirror()
	suite.Assert().Nil(m.Load(filepath.Join(suite.T().TempDir(), "missing.json")))
	suite.Assert().Len(m.Unsynced(), 0)
}

func (suite *TestSuiteStandard) TestRefreshUnreachable() {
	m := suite.mirror()
	suite.server.Close()

	suite.Assert().NotNil(m.Refresh(context.Background(), "villa-7"))
	suite.Assert().Nil(m.Pool("villa-7"))
}

// dropFirstResponse forwards every request to the server but loses the
// response of the first POST to each path.
type dropFirstResponse struct {
	mu      sync.Mutex
	dropped map[string]bool
}

func (d *dropFirstResponse) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := http.DefaultTransport.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if r.Method != http.MethodPost || d.dropped[r.URL.Path] {
		return resp, nil
	}

	d.dropped[r.URL.Path] = true
	resp.Body.Close()
	return nil, errors.New("connection reset by peer")
}

// TestSyncLostResponses verifies that operations the server applied but
// whose response never arrived are not applied again on retry.
func (suite *TestSuiteStandard) TestSyncLostResponses() {
	ctx := context.Background()
	transport := &dropFirstResponse{dropped: map[string]bool{}}
	m := suite.mirrorWith(mirror.NewClient(suite.server.URL, mirror.WithHTTPClient(&http.Client{Transport: transport})))

	_, err := m.InitPool(payments.PoolInitEditable{ProjectID: "villa-7", TotalCost: decimal.NewFromFloat(10000), MaterialCost: decimal.NewFromFloat(2000), Currency: "INR"})
	suite.Require().Nil(err)

	p, err := m.CreatePayment(payments.PaymentEditable{ProjectID: "villa-7", Type: models.PaymentTypeContractor, Amount: decimal.NewFromFloat(1500), Recipient: "Alice"})
	suite.Require().Nil(err)

	_, allocated, err := m.Allocate(payments.AllocationEditable{ProjectID: "villa-7", Recipient: "Bob", Amount: decimal.NewFromFloat(3000), Type: models.PaymentTypeSalary})
	suite.Require().Nil(err)

	// Each sync loses one response, the next one retries it
	for i := 0; i < 3; i++ {
		suite.Require().NotNil(m.Sync(ctx), "sync %d", i)
		suite.Require().Len(m.Unsynced(), 3-i)
		suite.clock = suite.clock.Add(time.Hour)
	}
	suite.Require().Nil(m.Sync(ctx))
	suite.Assert().Len(m.Unsynced(), 0)
	suite.Assert().Len(m.Failed(), 0)

	remote, err := suite.client().GetPool(ctx, "villa-7")
	suite.Require().Nil(err)
	suite.Require().NotNil(remote)
	suite.Assert().True(decimal.NewFromFloat(5000).Equal(remote.RemainingPool), "remaining is %s", remote.RemainingPool)
	suite.Assert().Equal(uint(1), remote.Version)

	list, err := suite.client().ListPayments(ctx, "villa-7", payments.PaymentQueryFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 3)

	ids := []uuid.UUID{}
	for _, payment := range list {
		ids = append(ids, payment.ID)
	}
	suite.Assert().Contains(ids, p.ID)
	suite.Assert().Contains(ids, allocated.ID)

	local := m.Pool("villa-7")
	suite.Require().NotNil(local)
	suite.Assert().True(remote.RemainingPool.Equal(local.RemainingPool))
	suite.Assert().Len(m.Payments("villa-7"), 3)

	r, err := suite.client().Reconcile(ctx, "villa-7")
	suite.Require().Nil(err)
	suite.Assert().True(r.Drift.IsZero())
}

// TestSyncUnauthorized verifies that operations stay queued while the
// server refuses the credentials.
func (suite *TestSuiteStandard) TestSyncUnauthorized() {
	ctx := context.Background()
	secret := "site-secret"
	os.Setenv("API_JWT_SECRET", secret)
	defer os.Unsetenv("API_JWT_SECRET")
	suite.restart()

	m := suite.mirrorWith(mirror.NewClient(suite.server.URL, mirror.WithToken("expired")))
	for _, amount := range []float64{700, 300} {
		_, err := m.CreatePayment(payments.PaymentEditable{ProjectID: "villa-7", Type: models.PaymentTypeDesigner, Amount: decimal.NewFromFloat(amount)})
		suite.Require().Nil(err)
	}

	err := m.Sync(ctx)
	var apiErr *mirror.APIError
	suite.Require().True(errors.As(err, &apiErr), "error is %v", err)
	suite.Assert().Equal(http.StatusUnauthorized, apiErr.Status)

	queue := m.Unsynced()
	suite.Require().Len(queue, 2)
	suite.Assert().Equal(1, queue[0].Attempts)
	suite.Assert().Equal(0, queue[1].Attempts)
	suite.Assert().Len(m.Failed(), 0)
	suite.Assert().Len(m.Payments("villa-7"), 2)

	// The queue syncs once a valid token is configured
	path := filepath.Join(suite.T().TempDir(), "mirror.json")
	suite.Require().Nil(m.Save(path))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "manager"}).SignedString([]byte(secret))
	suite.Require().Nil(err)

	authorized := suite.mirrorWith(mirror.NewClient(suite.server.URL, mirror.WithToken(token)))
	suite.Require().Nil(authorized.Load(path))
	suite.clock = suite.clock.Add(time.Hour)
	suite.Require().Nil(authorized.Sync(ctx))
	suite.Assert().Len(authorized.Unsynced(), 0)

	remote, err := suite.client().ListPayments(ctx, "villa-7", payments.PaymentQueryFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(remote, 2)
}
