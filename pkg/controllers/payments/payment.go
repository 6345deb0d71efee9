package payments

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/httputil"
	"github.com/propnest/backend/pkg/models"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// RegisterRoutes registers the routes for payments and project pools with
// the RouterGroup that is passed.
func RegisterRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPaymentList)
		r.POST("", CreatePayment)
	}

	// Payments of a project
	{
		r.OPTIONS("/project/:projectId", OptionsProjectPayments)
		r.GET("/project/:projectId", GetProjectPayments)
	}

	// Payment with ID
	{
		r.OPTIONS("/:id", OptionsPaymentDetail)
		r.GET("/:id", GetPayment)
		r.OPTIONS("/paid/:id", OptionsPaymentStatus)
		r.PATCH("/paid/:id", MarkPaid)
		r.OPTIONS("/overdue/:id", OptionsPaymentStatus)
		r.PATCH("/overdue/:id", MarkOverdue)
		r.OPTIONS("/installment/:paymentId/:installmentId", OptionsInstallment)
		r.PATCH("/installment/:paymentId/:installmentId", MarkInstallmentPaid)
	}

	RegisterPoolRoutes(r.Group("/pool"))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Router			/payments [options]
func OptionsPaymentList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Param			projectId	path	string	true	"ID of the project"
// @Router			/payments/project/{projectId} [options]
func OptionsProjectPayments(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/payments/{id} [options]
func OptionsPaymentDetail(c *gin.Context) {
	if _, ok := paymentFromURI(c); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/payments/paid/{id} [options]
// @Router			/payments/overdue/{id} [options]
func OptionsPaymentStatus(c *gin.Context) {
	if _, ok := paymentFromURI(c); !ok {
		return
	}

	httputil.OptionsPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Failure		400				{object}	httpError
// @Param			paymentId		path		string	true	"ID of the payment"
// @Param			installmentId	path		string	true	"ID of the installment"
// @Router			/payments/installment/{paymentId}/{installmentId} [options]
func OptionsInstallment(c *gin.Context) {
	var uri URIInstallment
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsPatch(c)
}

// paymentFromURI binds the payment ID from the URI and verifies that the
// payment exists. If it does not, the error response is written and ok is false.
func paymentFromURI(c *gin.Context) (payment models.Payment, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Payment{}, false
	}

	id, err := httputil.UUIDFromString(uri.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Payment{}, false
	}

	payment, err = models.GetPayment(c.Request.Context(), models.DB, id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Payment{}, false
	}

	return payment, true
}

// @Summary		Create payment
// @Description	Records a payment that does not touch the project pool
// @Tags			Payments
// @Produce		json
// @Success		201		{object}	PaymentResponse
// @Failure		400		{object}	PaymentResponse
// @Failure		500		{object}	PaymentResponse
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/payments [post]
func CreatePayment(c *gin.Context) {
	var editable PaymentEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	payment, err := models.CreatePayment(c.Request.Context(), models.DB, editable.model())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	data := newPayment(c, payment)
	c.JSON(http.StatusCreated, PaymentResponse{Data: &data})
}

// @Summary		List payments of a project
// @Description	Returns all payments of the project, oldest first
// @Tags			Payments
// @Produce		json
// @Success		200			{object}	PaymentListResponse
// @Failure		400			{object}	PaymentListResponse
// @Failure		500			{object}	PaymentListResponse
// @Param			projectId	path		string	true	"ID of the project"
// @Param			type		query		string	false	"Filter by type"
// @Param			status		query		string	false	"Filter by status"
// @Param			recipient	query		string	false	"Filter by recipient. Supports * as wildcard"
// @Router			/payments/project/{projectId} [get]
func GetProjectPayments(c *gin.Context) {
	var uri URIProject
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	var filter PaymentQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PaymentListResponse{
			Error: &e,
		})
		return
	}

	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	payments, err := models.ListPayments(c.Request.Context(), models.DB, uri.ProjectID, model)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	data := make([]Payment, 0, len(payments))
	for _, payment := range payments {
		if filter.Recipient != "" && !glob.Glob(filter.Recipient, payment.Recipient) {
			continue
		}

		data = append(data, newPayment(c, payment))
	}

	c.JSON(http.StatusOK, PaymentListResponse{Data: data})
}

// @Summary		Get payment
// @Description	Returns a specific payment with its installments
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/payments/{id} [get]
func GetPayment(c *gin.Context) {
	payment, ok := paymentFromURI(c)
	if !ok {
		return
	}

	data := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}

// @Summary		Mark payment as paid
// @Description	Sets the status of the payment to paid. Installments are not changed
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentResponse
// @Failure		400	{object}	PaymentResponse
// @Failure		404	{object}	PaymentResponse
// @Failure		500	{object}	PaymentResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/payments/paid/{id} [patch]
func MarkPaid(c *gin.Context) {
	updateStatus(c, models.MarkPaid)
}

// @Summary		Mark payment as overdue
// @Description	Sets the status of a pending payment to overdue
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentResponse
// @Failure		400	{object}	PaymentResponse
// @Failure		404	{object}	PaymentResponse
// @Failure		500	{object}	PaymentResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/payments/overdue/{id} [patch]
func MarkOverdue(c *gin.Context) {
	updateStatus(c, models.MarkOverdue)
}

type statusFunc func(ctx context.Context, db *gorm.DB, id uuid.UUID) (models.Payment, error)

func updateStatus(c *gin.Context, update statusFunc) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	id, err := httputil.UUIDFromString(uri.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	payment, err := update(c.Request.Context(), models.DB, id)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	data := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}

// @Summary		Mark installment as paid
// @Description	Sets the status of one installment to paid. Neither the other installments nor the payment are changed
// @Tags			Payments
// @Produce		json
// @Success		200				{object}	PaymentResponse
// @Failure		400				{object}	PaymentResponse
// @Failure		404				{object}	PaymentResponse
// @Failure		500				{object}	PaymentResponse
// @Param			paymentId		path		string	true	"ID of the payment"
// @Param			installmentId	path		string	true	"ID of the installment"
// @Router			/payments/installment/{paymentId}/{installmentId} [patch]
func MarkInstallmentPaid(c *gin.Context) {
	var uri URIInstallment
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	paymentID, err := httputil.UUIDFromString(uri.PaymentID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	installmentID, err := httputil.UUIDFromString(uri.InstallmentID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	payment, err := models.MarkInstallmentPaid(c.Request.Context(), models.DB, paymentID, installmentID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	data := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}
