package payments

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/models"
	"github.com/shopspring/decimal"
)

type PoolInitEditable struct {
	ID           uuid.UUID       `json:"id" example:"9b1a3c51-4f0e-4b8e-9d6c-1f1c2a7e5b10"`               // Optional. Repeating a request with the same ID does not reset the pool again
	ProjectID    string          `json:"projectId" example:"villa-7"`                                     // ID of the project
	TotalCost    decimal.Decimal `json:"totalCost" example:"10000" minimum:"0" multipleOf:"0.00000001"`   // Total budget of the project
	MaterialCost decimal.Decimal `json:"materialCost" example:"2000" minimum:"0" multipleOf:"0.00000001"` // Material cost. A paid material payment is recorded when positive
	Currency     string          `json:"currency" example:"INR" default:"INR"`                            // ISO 4217 code of the currency
}

func (editable PoolInitEditable) model() models.PoolInit {
	return models.PoolInit{
		ID:           editable.ID,
		ProjectID:    editable.ProjectID,
		TotalCost:    editable.TotalCost,
		MaterialCost: editable.MaterialCost,
		Currency:     editable.Currency,
	}
}

type AllocationEditable struct {
	ID        uuid.UUID          `json:"id" example:"4fd2f2a4-3f57-4bda-9d6a-7bd6bdb0b9c1"`                                                  // Optional ID of the recorded payment. Repeating a request with the same ID does not debit the pool again
	ProjectID string             `json:"projectId" example:"villa-7"`                                                                        // ID of the project
	Recipient string             `json:"recipient" example:"Bob"`                                                                            // Name of the recipient
	Amount    decimal.Decimal    `json:"amount" example:"3000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount to allocate
	Type      models.PaymentType `json:"type" example:"salary"`                                                                              // Type of the payment that is recorded
}

func (editable AllocationEditable) model() models.Allocation {
	return models.Allocation{
		PaymentID: editable.ID,
		ProjectID: editable.ProjectID,
		Recipient: editable.Recipient,
		Amount:    editable.Amount,
		Type:      editable.Type,
	}
}

type PoolLinks struct {
	Self      string `json:"self" example:"https://example.com/api/payments/pool/villa-7"`                // The pool itself
	Payments  string `json:"payments" example:"https://example.com/api/payments/project/villa-7"`         // Payments of the project
	Reconcile string `json:"reconcile" example:"https://example.com/api/payments/pool/villa-7/reconcile"` // Compare the stored balance with the payment records
}

// Pool is the API representation of a ProjectPool.
type Pool struct {
	models.DefaultModel
	ProjectID     string          `json:"projectId" example:"villa-7"`
	Currency      string          `json:"currency" example:"INR"`
	TotalCost     decimal.Decimal `json:"totalCost" example:"10000"`
	RemainingPool decimal.Decimal `json:"remainingPool" example:"5000"` // Funds that can still be allocated. Negative if the material cost exceeds the total cost
	MaterialCost  decimal.Decimal `json:"materialCost" example:"2000"`
	SalariesCost  decimal.Decimal `json:"salariesCost" example:"3000"`                               // Sum of all salary allocations
	Version       uint            `json:"version" example:"2"`                                       // Incremented with every write to the pool
	Generation    uuid.UUID       `json:"generation" example:"9b1a3c51-4f0e-4b8e-9d6c-1f1c2a7e5b10"` // ID of the initialization that set up the current balance
	Links         PoolLinks       `json:"links"`
}

func newPool(c *gin.Context, model models.ProjectPool) Pool {
	base := c.GetString(string(models.DBContextURL))
	project := url.PathEscape(model.ProjectID)

	return Pool{
		DefaultModel:  model.DefaultModel,
		ProjectID:     model.ProjectID,
		Currency:      model.Currency,
		TotalCost:     model.TotalCost,
		RemainingPool: model.RemainingPool,
		MaterialCost:  model.MaterialCost,
		SalariesCost:  model.SalariesCost,
		Version:       model.Version,
		Generation:    model.Generation,
		Links: PoolLinks{
			Self:      fmt.Sprintf("%s/payments/pool/%s", base, project),
			Payments:  fmt.Sprintf("%s/payments/project/%s", base, project),
			Reconcile: fmt.Sprintf("%s/payments/pool/%s/reconcile", base, project),
		},
	}
}

type PoolResponse struct {
	Data  *Pool   `json:"data"`                                             // Data for the pool. null if the project has no pool
	Error *string `json:"error" example:"the project ID must not be empty"` // The error, if any occurred
}

type PoolInit struct {
	Pool     Pool     `json:"pool"`     // The pool after initialization
	Material *Payment `json:"material"` // The material payment, null if the material cost is zero
}

type PoolInitResponse struct {
	Data  *PoolInit `json:"data"`
	Error *string   `json:"error" example:"total cost and material cost must not be negative"` // The error, if any occurred
}

type AllocationResult struct {
	Pool    Pool    `json:"pool"`    // The pool after the allocation
	Payment Payment `json:"payment"` // The payment recorded for the allocation
}

type AllocationResponse struct {
	Data  *AllocationResult `json:"data"`
	Error *string           `json:"error" example:"the remaining pool balance is insufficient for this allocation"` // The error, if any occurred
}

type Reconciliation struct {
	ProjectID string          `json:"projectId" example:"villa-7"`
	Stored    decimal.Decimal `json:"stored" example:"5000"`    // Remaining pool as stored
	Allocated decimal.Decimal `json:"allocated" example:"5000"` // Sum of material and allocation payments
	Derived   decimal.Decimal `json:"derived" example:"5000"`   // Total cost minus allocated
	Drift     decimal.Decimal `json:"drift" example:"0"`        // Stored minus derived
}

type ReconciliationResponse struct {
	Data  *Reconciliation `json:"data"`
	Error *string         `json:"error" example:"there is no project pool matching your query"` // The error, if any occurred
}
