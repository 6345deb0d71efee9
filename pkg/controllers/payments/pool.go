package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propnest/backend/pkg/httputil"
	"github.com/propnest/backend/pkg/models"
)

// RegisterPoolRoutes registers the routes for project pools with
// the RouterGroup that is passed.
func RegisterPoolRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/init", OptionsPoolWrite)
		r.POST("/init", InitPool)
		r.OPTIONS("/allocate", OptionsPoolWrite)
		r.POST("/allocate", AllocatePool)
	}

	// Pool of a project
	{
		r.OPTIONS("/:projectId", OptionsPoolRead)
		r.GET("/:projectId", GetPool)
		r.OPTIONS("/:projectId/reconcile", OptionsPoolRead)
		r.GET("/:projectId/reconcile", ReconcilePool)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pools
// @Success		204
// @Router			/payments/pool/init [options]
// @Router			/payments/pool/allocate [options]
func OptionsPoolWrite(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pools
// @Success		204
// @Param			projectId	path	string	true	"ID of the project"
// @Router			/payments/pool/{projectId} [options]
// @Router			/payments/pool/{projectId}/reconcile [options]
func OptionsPoolRead(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Initialize pool
// @Description	Creates the pool for a project or replaces the existing one. The remaining pool is the total cost minus the material cost
// @Tags			Pools
// @Produce		json
// @Success		201		{object}	PoolInitResponse
// @Failure		400		{object}	PoolInitResponse
// @Failure		409		{object}	PoolInitResponse
// @Failure		500		{object}	PoolInitResponse
// @Param			pool	body		PoolInitEditable	true	"Pool"
// @Router			/payments/pool/init [post]
func InitPool(c *gin.Context) {
	var editable PoolInitEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PoolInitResponse{
			Error: &e,
		})
		return
	}

	pool, material, err := models.InitPool(c.Request.Context(), models.DB, editable.model())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PoolInitResponse{
			Error: &e,
		})
		return
	}

	data := PoolInit{Pool: newPool(c, pool)}
	if material != nil {
		p := newPayment(c, *material)
		data.Material = &p
	}

	c.JSON(http.StatusCreated, PoolInitResponse{Data: &data})
}

// @Summary		Allocate funds
// @Description	Debits the amount from the project pool and records a paid payment to the recipient
// @Tags			Pools
// @Produce		json
// @Success		201			{object}	AllocationResponse
// @Failure		400			{object}	AllocationResponse
// @Failure		404			{object}	AllocationResponse
// @Failure		409			{object}	AllocationResponse
// @Failure		500			{object}	AllocationResponse
// @Param			allocation	body		AllocationEditable	true	"Allocation"
// @Router			/payments/pool/allocate [post]
func AllocatePool(c *gin.Context) {
	var editable AllocationEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	pool, payment, err := models.Allocate(c.Request.Context(), models.DB, editable.model())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, AllocationResponse{Data: &AllocationResult{
		Pool:    newPool(c, pool),
		Payment: newPayment(c, payment),
	}})
}

// @Summary		Get pool
// @Description	Returns the pool of a project. data is null if the project has no pool
// @Tags			Pools
// @Produce		json
// @Success		200			{object}	PoolResponse
// @Failure		400			{object}	PoolResponse
// @Failure		500			{object}	PoolResponse
// @Param			projectId	path		string	true	"ID of the project"
// @Router			/payments/pool/{projectId} [get]
func GetPool(c *gin.Context) {
	var uri URIProject
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PoolResponse{
			Error: &e,
		})
		return
	}

	pool, err := models.GetPool(c.Request.Context(), models.DB, uri.ProjectID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PoolResponse{
			Error: &e,
		})
		return
	}

	if pool == nil {
		c.JSON(http.StatusOK, PoolResponse{})
		return
	}

	data := newPool(c, *pool)
	c.JSON(http.StatusOK, PoolResponse{Data: &data})
}

// @Summary		Reconcile pool
// @Description	Derives the remaining pool from the recorded payments and compares it with the stored value
// @Tags			Pools
// @Produce		json
// @Success		200			{object}	ReconciliationResponse
// @Failure		400			{object}	ReconciliationResponse
// @Failure		404			{object}	ReconciliationResponse
// @Failure		500			{object}	ReconciliationResponse
// @Param			projectId	path		string	true	"ID of the project"
// @Router			/payments/pool/{projectId}/reconcile [get]
func ReconcilePool(c *gin.Context) {
	var uri URIProject
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &e,
		})
		return
	}

	r, err := models.Reconcile(c.Request.Context(), models.DB, uri.ProjectID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ReconciliationResponse{Data: &Reconciliation{
		ProjectID: r.ProjectID,
		Stored:    r.Stored,
		Allocated: r.Allocated,
		Derived:   r.Derived,
		Drift:     r.Drift,
	}})
}
