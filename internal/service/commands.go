package service

type TransferCommand struct {
	SenderID       int64
	RecipientEmail string
	Amount         int64
	Reason         string
	IdempotencyKey string
}

type GrantCommand struct {
	ReceiverID int64
	Amount     int64
	Reason     string
}

type RegisterStudentCommand struct {
	Name        string
	Email       string
	Password    string
	CPF         string
	Institution string
	Course      string
}

type UpdateStudentCommand struct {
	UserID      int64
	Name        string
	Institution string
	Course      string
}

type SendNotificationCommand struct {
	NotificationID int64  `json:"notification_id"`
	Recipient      string `json:"recipient"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}
