package handler

import (
	"errors"
	"net/http"
	"strconv"

	"prodplan/internal/apierror"
	"prodplan/internal/planning"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	return runValidator(c, req)
}

// bindQueryAndValidate is bindAndValidate for query strings.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query: "+err.Error()))
		return false
	}
	return runValidator(c, req)
}

func runValidator(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

func parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid year"))
		return 0, false
	}
	return year, true
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognised
// is attached to the context for ErrorHandler, which logs it and answers 500.
func respondError(c *gin.Context, err error) {
	var (
		invalid  *planning.ValidationError
		missing  *planning.NotFoundError
		conflict *planning.ConflictError
	)
	switch {
	case errors.As(err, &invalid):
		fields := map[string]string{}
		if invalid.Field != "" {
			fields[invalid.Field] = invalid.Reason
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.ValidationError{Detail: invalid.Reason, Fields: fields})
	case errors.As(err, &missing):
		c.JSON(http.StatusNotFound, apierror.New(missing.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.NewConflict(conflict.Reason, conflict.UnitNumber))
	default:
		_ = c.Error(err)
	}
}
