package service

import "errors"

const (
	ErrCodeDatabase = "DATABASE_ERROR"
)

var (
	ErrInsufficientBalance     = errors.New("INSUFFICIENT_BALANCE")
	ErrAmountNotPositive       = errors.New("AMOUNT_NOT_POSITIVE")
	ErrMissingField            = errors.New("MISSING_FIELD")
	ErrRecipientNotStudent     = errors.New("RECIPIENT_NOT_STUDENT")
	ErrSenderNotProfessor      = errors.New("SENDER_NOT_PROFESSOR")
	ErrCallerNotProfessor      = errors.New("CALLER_NOT_PROFESSOR")
	ErrReceiverNotProfessor    = errors.New("RECEIVER_NOT_PROFESSOR")
	ErrNotificationNotSendable = errors.New("NOTIFICATION_NOT_SENDABLE")
	ErrDatabase                = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
