package payments

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/models"
	"github.com/shopspring/decimal"
)

type InstallmentEditable struct {
	Amount  decimal.Decimal      `json:"amount" example:"2500" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount of the installment
	DueDate time.Time            `json:"dueDate" example:"2024-03-01T00:00:00Z"`                                                             // Date the installment is due. Defaults to now
	Status  models.PaymentStatus `json:"status" example:"pending" default:"pending"`                                                         // pending or paid
}

type PaymentEditable struct {
	ID           uuid.UUID             `json:"id" example:"4fd2f2a4-3f57-4bda-9d6a-7bd6bdb0b9c1"`                                                  // Optional. Repeating a request with the same ID returns the existing payment
	ProjectID    string                `json:"projectId" example:"villa-7"`                                                                        // ID of the project the payment belongs to
	Description  string                `json:"description" example:"Tiles for the kitchen" default:""`                                             // Free-text description
	Type         models.PaymentType    `json:"type" example:"material"`                                                                            // One of emi, salary, material, contractor, designer
	Amount       decimal.Decimal       `json:"amount" example:"7500" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount of the payment
	DueDate      time.Time             `json:"dueDate" example:"2024-03-01T00:00:00Z"`                                                             // Date the payment is due. Defaults to now
	Status       models.PaymentStatus  `json:"status" example:"pending" default:"pending"`                                                         // One of pending, paid, overdue
	Recipient    string                `json:"recipient" example:"Bob" default:""`                                                                 // Name of the recipient
	Installments []InstallmentEditable `json:"installments"`                                                                                       // Installments in the order they are due
}

// model returns the database resource for the editable fields
func (editable PaymentEditable) model() models.Payment {
	installments := make([]models.Installment, 0, len(editable.Installments))
	for _, i := range editable.Installments {
		installments = append(installments, models.Installment{
			Amount:  i.Amount,
			DueDate: i.DueDate,
			Status:  i.Status,
		})
	}

	return models.Payment{
		DefaultModel: models.DefaultModel{ID: editable.ID},
		ProjectID:    editable.ProjectID,
		Description:  editable.Description,
		Type:         editable.Type,
		Amount:       editable.Amount,
		DueDate:      editable.DueDate,
		Status:       editable.Status,
		Recipient:    editable.Recipient,
		Source:       models.PaymentSourceDirect,
		Installments: installments,
	}
}

type InstallmentLinks struct {
	Pay string `json:"pay" example:"https://example.com/api/payments/installment/4fd2f2a4-3f57-4bda-9d6a-7bd6bdb0b9c1/7cd0ba43-a92c-4a9f-a5ff-2b0a8f9e9a9f"` // PATCH this URL to mark the installment paid
}

type Installment struct {
	models.DefaultModel
	Position int                  `json:"position" example:"0"` // Position of the installment in the payment
	Amount   decimal.Decimal      `json:"amount" example:"2500"`
	DueDate  time.Time            `json:"dueDate" example:"2024-03-01T00:00:00Z"`
	Status   models.PaymentStatus `json:"status" example:"pending"`
	Links    InstallmentLinks     `json:"links"`
}

type PaymentLinks struct {
	Self    string `json:"self" example:"https://example.com/api/payments/4fd2f2a4-3f57-4bda-9d6a-7bd6bdb0b9c1"`            // The payment itself
	Project string `json:"project" example:"https://example.com/api/payments/project/villa-7"`                              // All payments of the project
	Pool    string `json:"pool" example:"https://example.com/api/payments/pool/villa-7"`                                    // The pool of the project
	Paid    string `json:"paid" example:"https://example.com/api/payments/paid/4fd2f2a4-3f57-4bda-9d6a-7bd6bdb0b9c1"`       // PATCH this URL to mark the payment paid
	Overdue string `json:"overdue" example:"https://example.com/api/payments/overdue/4fd2f2a4-3f57-4bda-9d6a-7bd6bdb0b9c1"` // PATCH this URL to mark the payment overdue
}

// Payment is the API representation of a Payment.
type Payment struct {
	models.DefaultModel
	ProjectID    string               `json:"projectId" example:"villa-7"`
	Description  string               `json:"description" example:"Payment to Bob"`
	Type         models.PaymentType   `json:"type" example:"salary"`
	Amount       decimal.Decimal      `json:"amount" example:"3000"`
	DueDate      time.Time            `json:"dueDate" example:"2024-03-01T00:00:00Z"`
	Status       models.PaymentStatus `json:"status" example:"paid"`
	Recipient    string               `json:"recipient" example:"Bob"`
	Source       models.PaymentSource `json:"source" example:"allocation"` // Operation that created the payment: direct, init or allocation
	Installments []Installment        `json:"installments"`
	Links        PaymentLinks         `json:"links"`
}

func newPayment(c *gin.Context, model models.Payment) Payment {
	base := c.GetString(string(models.DBContextURL))
	project := url.PathEscape(model.ProjectID)

	installments := make([]Installment, 0, len(model.Installments))
	for _, i := range model.Installments {
		installments = append(installments, Installment{
			DefaultModel: i.DefaultModel,
			Position:     i.Position,
			Amount:       i.Amount,
			DueDate:      i.DueDate,
			Status:       i.Status,
			Links: InstallmentLinks{
				Pay: fmt.Sprintf("%s/payments/installment/%s/%s", base, model.ID, i.ID),
			},
		})
	}

	return Payment{
		DefaultModel: model.DefaultModel,
		ProjectID:    model.ProjectID,
		Description:  model.Description,
		Type:         model.Type,
		Amount:       model.Amount,
		DueDate:      model.DueDate,
		Status:       model.Status,
		Recipient:    model.Recipient,
		Source:       model.Source,
		Installments: installments,
		Links: PaymentLinks{
			Self:    fmt.Sprintf("%s/payments/%s", base, model.ID),
			Project: fmt.Sprintf("%s/payments/project/%s", base, project),
			Pool:    fmt.Sprintf("%s/payments/pool/%s", base, project),
			Paid:    fmt.Sprintf("%s/payments/paid/%s", base, model.ID),
			Overdue: fmt.Sprintf("%s/payments/overdue/%s", base, model.ID),
		},
	}
}

type PaymentListResponse struct {
	Data  []Payment `json:"data"`                                                          // List of payments
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PaymentResponse struct {
	Data  *Payment `json:"data"`                                                          // Data for the payment
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PaymentQueryFilter struct {
	Type      string `form:"type"`      // Only payments of this type
	Status    string `form:"status"`    // Only payments with this status
	Recipient string `form:"recipient"` // Glob pattern for the recipient, e.g. "Bo*"
}

func (f PaymentQueryFilter) model() (models.PaymentFilter, error) {
	filter := models.PaymentFilter{
		Type:   models.PaymentType(f.Type),
		Status: models.PaymentStatus(f.Status),
	}

	if filter.Type != "" && !filter.Type.Valid() {
		return models.PaymentFilter{}, models.ErrPaymentTypeInvalid
	}

	if filter.Status != "" && !filter.Status.Valid() {
		return models.PaymentFilter{}, models.ErrPaymentStatusInvalid
	}

	return filter, nil
}
