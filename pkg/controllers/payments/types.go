package payments

type URIID struct {
	ID string `uri:"id" binding:"required"` // The ID of the payment
}

type URIInstallment struct {
	PaymentID     string `uri:"paymentId" binding:"required"`     // ID of the payment
	InstallmentID string `uri:"installmentId" binding:"required"` // ID of the installment
}

type URIProject struct {
	ProjectID string `uri:"projectId" binding:"required"` // ID of the project
}
