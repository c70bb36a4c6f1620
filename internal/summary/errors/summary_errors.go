package summaryerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var (
	ErrSummaryUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"AI summaries are not configured",
		http.StatusServiceUnavailable,
	)
	ErrGenerationFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"AI summary could not be generated, try again later",
		http.StatusServiceUnavailable,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)
