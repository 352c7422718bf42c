package errors

var (
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrClinicNotFound = &DomainError{
		Code:    "CLINIC_NOT_FOUND",
		Message: "clinic not found",
	}
	ErrFormNotFound = &DomainError{
		Code:    "FORM_NOT_FOUND",
		Message: "calculation form not found",
	}
	ErrHeadNotFound = &DomainError{
		Code:    "EXPENSE_HEAD_NOT_FOUND",
		Message: "expense head not found",
	}
	ErrEntryNotFound = &DomainError{
		Code:    "ENTRY_NOT_FOUND",
		Message: "entry not found",
	}
)

// Restrict-on-delete violations.
var (
	ErrClinicNotEmpty = &DomainError{
		Code:    "CLINIC_NOT_EMPTY",
		Message: "clinic still has forms, expense heads or entries",
	}
	ErrFormInUse = &DomainError{
		Code:    "FORM_IN_USE",
		Message: "calculation form is referenced by income entries",
	}
	ErrHeadInUse = &DomainError{
		Code:    "EXPENSE_HEAD_IN_USE",
		Message: "expense head is referenced by expense entries",
	}
	ErrUserHasClinics = &DomainError{
		Code:    "USER_HAS_CLINICS",
		Message: "user still owns clinics",
	}
)

var ErrFeeSourceNotConfigured = &DomainError{
	Code:    "FEE_SOURCE_NOT_CONFIGURED",
	Message: "merchant fee lookup is not configured",
}

var ErrFeeLookupFailed = &DomainError{
	Code:    "FEE_LOOKUP_FAILED",
	Message: "merchant fee lookup failed",
}
