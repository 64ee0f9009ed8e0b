package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"address-registry/internal/address"
	"address-registry/internal/models"

	"github.com/gin-gonic/gin"
)

// AddressHandler handles address registry requests
type AddressHandler struct {
	service AddressService
}

// AddressService interface for dependency injection
type AddressService interface {
	Validate(address.Record) address.Validation
	Create(context.Context, address.Record) (*models.Address, error)
	Get(context.Context, int64) (*models.Address, error)
	Replace(context.Context, int64, address.Record) (*models.Address, error)
	Delete(context.Context, int64) error
	Exists(context.Context, address.Record) (bool, error)
	List(context.Context, int, int) ([]models.Address, error)
}

// FieldErrorResponse describes one rejected field
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []FieldErrorResponse `json:"fields,omitempty"`
}

// ValidationResponse is the body of POST /addresses/validate
type ValidationResponse struct {
	Valid   bool                 `json:"valid"`
	Display string               `json:"display,omitempty"`
	Errors  []FieldErrorResponse `json:"errors"`
}

// ExistsResponse is the body of GET /addresses/exists
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{service: svc}
}

// RegisterRoutes mounts the address endpoints on r
func (h *AddressHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/addresses")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/exists", h.Exists)
	g.POST("/validate", h.Validate)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Replace)
	g.DELETE("/:id", h.Delete)
}

// Create handles POST /addresses requests
//
//	@Summary	Register an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		address	body		address.Record	true	"Address components"
//	@Success	201		{object}	models.Address
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var rec address.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	addr, err := h.service.Create(c.Request.Context(), rec)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, addr)
}

// List handles GET /addresses requests
//
//	@Summary	List addresses ordered by ZIP code, state, city, street and house number
//	@Tags		addresses
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (default 50, max 500)"
//	@Param		offset	query		int	false	"Rows to skip"
//	@Success	200		{array}		models.Address
//	@Failure	400		{object}	ErrorResponse
//	@Router		/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		return
	}

	offset, err := queryInt(c, "offset")
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		return
	}

	addresses, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// Get handles GET /addresses/:id requests
//
//	@Summary	Fetch an address
//	@Tags		addresses
//	@Produce	json
//	@Param		id	path		int	true	"Address id"
//	@Success	200	{object}	models.Address
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	addr, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, addr)
}

// Replace handles PUT /addresses/:id requests
//
//	@Summary	Replace every component of an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"Address id"
//	@Param		address	body		address.Record	true	"Address components"
//	@Success	200		{object}	models.Address
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/addresses/{id} [put]
func (h *AddressHandler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var rec address.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	addr, err := h.service.Replace(c.Request.Context(), id, rec)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, addr)
}

// Delete handles DELETE /addresses/:id requests
//
//	@Summary	Delete an address
//	@Tags		addresses
//	@Param		id	path	int	true	"Address id"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Validate handles POST /addresses/validate requests
//
//	@Summary	Validate an address without storing it
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		address	body		address.Record	true	"Address components"
//	@Success	200		{object}	ValidationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/addresses/validate [post]
func (h *AddressHandler) Validate(c *gin.Context) {
	var rec address.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	v := h.service.Validate(rec)
	resp := ValidationResponse{
		Valid:  v.Valid(),
		Errors: fieldErrors(v.Errors()),
	}
	if display, err := v.CanonicalString(); err == nil {
		resp.Display = display
	}

	c.JSON(http.StatusOK, resp)
}

// Exists handles GET /addresses/exists requests
//
//	@Summary	Check whether an address is already registered
//	@Tags		addresses
//	@Produce	json
//	@Param		address	query		address.Record	true	"Address components"
//	@Success	200		{object}	ExistsResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/addresses/exists [get]
func (h *AddressHandler) Exists(c *gin.Context) {
	var rec address.Record
	if err := c.ShouldBindQuery(&rec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), rec)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExistsResponse{Exists: exists})
}

func writeError(c *gin.Context, err error) {
	var verr *address.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "invalid address",
			Fields: fieldErrors(verr.Errors),
		})
	case errors.Is(err, address.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "duplicate address"})
	case errors.Is(err, address.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "address not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func fieldErrors(errs []*address.FieldError) []FieldErrorResponse {
	out := make([]FieldErrorResponse, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldErrorResponse{
			Field:   fe.Field.String(),
			Code:    fe.Kind.Code(),
			Message: fe.Message(),
		})
	}
	return out
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid address id"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) (int, error) {
	s := c.Query(name)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
