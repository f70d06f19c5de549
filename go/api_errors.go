package restaurantserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	menuapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/application"
	menuports "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
	ordersapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
	reportsapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/application"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

var responder = apierrors.NewResponder("",
	mapMenuError,
	mapOrderError,
	mapReportError,
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError sends err through the registered mappers; unknown errors become 500s.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBindError reports a request body or parameter that could not be decoded.
func respondBindError(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(bindErrorDetail(err)))
}

func bindErrorDetail(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return "invalid " + typeErr.Field
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		name := strings.ToLower(fieldErr.Field())
		if fieldErr.Tag() == "required" {
			return name + " required"
		}
		return "invalid " + name
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "malformed JSON body"
	}
	return err.Error()
}

func mapMenuError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, menuports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("not found"), true
	case errors.Is(err, menuports.ErrDuplicateName):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, menuapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, menuapp.ErrInvalidInput)), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	var validationErr *ordersdomain.ValidationError
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("not found"), true
	case errors.As(err, &validationErr):
		return apierrors.NewValidationProblem("validation failed", validationErr.Problems), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, ordersapp.ErrInvalidInput)), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapReportError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, reportsapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(causeDetail(err, reportsapp.ErrInvalidInput)), true
	}
	return apierrors.ProblemDetail{}, false
}

// causeDetail strips the application sentinel prefix so the client sees the domain message.
func causeDetail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), fmt.Sprintf("%s: ", sentinel))
}
