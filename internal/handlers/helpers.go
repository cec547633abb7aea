package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/validators"
)

// bindError answers a failed ShouldBind with a validation_error.
func bindError(c *gin.Context, err error) {
	httperr.FromError(c, httperr.ErrBusinessf(httperr.CodeValidation, validators.Describe(err)))
}

// paramID reads a positive numeric path parameter or answers not_found.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeNotFound))
		return 0, false
	}
	return uint(id), true
}
