package absence

import "errors"

var (
	ErrRequestNotFound     = errors.New("absence request not found")
	ErrAbsenceTypeNotFound = errors.New("absence type not found")
	ErrHolidayNotFound     = errors.New("holiday not found")

	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrVacationOverlap     = errors.New("an active vacation request already covers these dates")
	ErrLeaveOverlap        = errors.New("an active leave request already covers these dates")
	ErrNoChargeableDays    = errors.New("the requested range contains no chargeable days")
	ErrInsufficientBalance = errors.New("insufficient vacation balance")
	ErrAbsenceTypeRequired = errors.New("leave requests require an absence type")

	ErrAlreadyProcessed    = errors.New("request has already been processed")
	ErrNotCurrentVersion   = errors.New("only the current version of a request can be acted on")
	ErrNotRequestOwner     = errors.New("only the request owner may cancel it")
	ErrNotAssignedApprover = errors.New("actor is not an assigned approver for this user")

	ErrHolidayExists = errors.New("a holiday already exists on that date")
)
