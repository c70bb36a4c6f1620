package personnel

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var ErrEmployeeNotFound = apperror.New(
	apperror.CodeNotFound,
	"Employee not found",
	http.StatusNotFound,
)
