package v1

type TransferRequest struct {
	SenderID       int64  `json:"sender_id" validate:"required"`
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
	Amount         int64  `json:"amount" validate:"required,min=1"`
	Reason         string `json:"reason" validate:"required"`
	IdempotencyKey string `json:"idempotency_key"`
}

type GrantRequest struct {
	ReceiverID int64  `json:"receiver_id" validate:"required"`
	Amount     int64  `json:"amount" validate:"required,min=1"`
	Reason     string `json:"reason" validate:"required"`
}

type RegisterStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	CPF         string `json:"cpf" validate:"required,cpf_format"`
	Institution string `json:"institution" validate:"required"`
	Course      string `json:"course" validate:"required"`
}

type UpdateStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Course      string `json:"course" validate:"required"`
}
