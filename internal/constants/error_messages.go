package constants

const (
	ErrCodeUserNotFound         = "USER_NOT_FOUND"
	ErrCodeStudentNotFound      = "STUDENT_NOT_FOUND"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeInsufficientBalance  = "INSUFFICIENT_BALANCE"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeDuplicateEmail       = "DUPLICATE_EMAIL"
	ErrCodeDuplicateCPF         = "DUPLICATE_CPF"
	ErrCodeDuplicateTransaction = "DUPLICATE_TRANSACTION"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

const (
	ErrMsgUserNotFound         = "user not found"
	ErrMsgStudentNotFound      = "student not found"
	ErrMsgForbidden            = "operation not allowed for this role"
	ErrMsgInsufficientBalance  = "insufficient balance"
	ErrMsgValidationFailed     = "request validation failed"
	ErrMsgInvalidRequestBody   = "failed to parse request body"
	ErrMsgDuplicateEmail       = "email already registered"
	ErrMsgDuplicateCPF         = "cpf already registered"
	ErrMsgDuplicateTransaction = "transaction already processed"
	ErrMsgInternalError        = "Internal server error"
)

const MessageErrorFormat = "field %s is invalid"

var errorMessages = map[string]string{
	ErrCodeUserNotFound:         ErrMsgUserNotFound,
	ErrCodeStudentNotFound:      ErrMsgStudentNotFound,
	ErrCodeForbidden:            ErrMsgForbidden,
	ErrCodeInsufficientBalance:  ErrMsgInsufficientBalance,
	ErrCodeValidationFailed:     ErrMsgValidationFailed,
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
	ErrCodeDuplicateEmail:       ErrMsgDuplicateEmail,
	ErrCodeDuplicateCPF:         ErrMsgDuplicateCPF,
	ErrCodeDuplicateTransaction: ErrMsgDuplicateTransaction,
	ErrCodeInternalError:        ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeForbidden:
		return 403
	case ErrCodeUserNotFound, ErrCodeStudentNotFound:
		return 404
	case ErrCodeValidationFailed:
		return 422
	case ErrCodeInsufficientBalance, ErrCodeDuplicateEmail, ErrCodeDuplicateCPF, ErrCodeDuplicateTransaction:
		return 409
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
