package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrAccountDisabled    ErrCode = "ACCOUNT_DISABLED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrActionForbidden  ErrCode = "ACTION_FORBIDDEN"

	// ─── Domain-specific ───────────────────────────────────────────────
	ErrSectionMismatch     ErrCode = "SECTION_MISMATCH"
	ErrMarksOutOfRange     ErrCode = "MARKS_OUT_OF_RANGE"
	ErrSlotConflict        ErrCode = "TIMETABLE_SLOT_CONFLICT"
	ErrSubmissionGraded    ErrCode = "SUBMISSION_ALREADY_GRADED"
	ErrPaymentExceedsDue   ErrCode = "PAYMENT_EXCEEDS_OUTSTANDING"
	ErrPaymentNotPositive  ErrCode = "PAYMENT_NOT_POSITIVE"
	ErrFeeAlreadySettled   ErrCode = "FEE_ALREADY_SETTLED"
	ErrCrossSchoolRef      ErrCode = "CROSS_SCHOOL_REFERENCE"
	ErrSectionFull         ErrCode = "SECTION_AT_CAPACITY"
	ErrRecipientNotInScope ErrCode = "RECIPIENT_NOT_IN_SCOPE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionInvalidated:
		return "Your session has ended. Please sign in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."
	case ErrAccountDisabled:
		return "This account has been deactivated."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrPermissionDenied:
		return "Permission denied."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record cannot be deleted because other data still references it."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Domain-specific ───────────────────────────────────────────────
	case ErrSectionMismatch:
		return "The student does not belong to the referenced class or section."
	case ErrMarksOutOfRange:
		return "Marks must be between zero and the exam's maximum marks."
	case ErrSlotConflict:
		return "A timetable slot already exists for this class, weekday and start time."
	case ErrSubmissionGraded:
		return "This submission has already been graded."
	case ErrPaymentExceedsDue:
		return "Payment amount exceeds the outstanding balance."
	case ErrPaymentNotPositive:
		return "Payment amount must be greater than zero."
	case ErrFeeAlreadySettled:
		return "This fee record is already fully paid."
	case ErrCrossSchoolRef:
		return "Referenced records must belong to the same school."
	case ErrSectionFull:
		return "The section has reached its maximum capacity."
	case ErrRecipientNotInScope:
		return "One or more recipients are outside your school."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
