// Package leaveerrors lists the failures the leave module reports to clients.
package leaveerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

func badRequest(msg string) *apperror.AppError {
	return apperror.New(apperror.CodeInvalidInput, msg, http.StatusBadRequest)
}

func stateConflict(msg string) *apperror.AppError {
	return apperror.New(apperror.CodeInvalidState, msg, http.StatusConflict)
}

// Input
var (
	ErrInvalidCompanyID        = badRequest("invalid company id")
	ErrInvalidActorID          = badRequest("invalid actor id")
	ErrInvalidEmployeeID       = badRequest("invalid employee id")
	ErrInvalidDateFormat       = badRequest("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateRange        = badRequest("start_date must be before or equal end_date")
	ErrInvalidStatusFilter     = badRequest("status must be one of PENDING, APPROVED, REJECTED, CANCELLED")
	ErrEmployeeNotInCompany    = badRequest("employee does not belong to this company")
	ErrRejectionReasonRequired = badRequest("rejection_reason is required when status is REJECTED")
)

// Lifecycle
var (
	ErrLeaveNotFound           = apperror.New(apperror.CodeNotFound, "leave not found", http.StatusNotFound)
	ErrLeaveOverlap            = apperror.New(apperror.CodeConflict, "leave already exists in overlapping period", http.StatusConflict)
	ErrEmployeeRetired         = stateConflict("employee is retired")
	ErrInvalidStatusTransition = stateConflict("invalid leave status transition")
	ErrLeaveNotEditable        = stateConflict("only pending leaves can be edited")
)
