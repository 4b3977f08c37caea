package service

import "time"

type TransferResult struct {
	TransactionID int64     `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
	Duplicate     bool      `json:"duplicate,omitempty"`
}

type TransactionEntry struct {
	TransactionID int64     `json:"transaction_id"`
	SenderID      *int64    `json:"sender_id,omitempty"`
	ReceiverID    *int64    `json:"receiver_id,omitempty"`
	Amount        int64     `json:"amount"`
	Reason        string    `json:"reason"`
	TxType        string    `json:"tx_type"`
	CreatedAt     time.Time `json:"created_at"`
}

type StudentProfile struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CPF         string `json:"cpf"`
	Institution string `json:"institution"`
	Course      string `json:"course"`
}

type AdvantageSummary struct {
	AdvantageID int64  `json:"advantage_id"`
	Title       string `json:"title"`
	Cost        int64  `json:"cost"`
}

type CompanySummary struct {
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
}

type RedemptionEntry struct {
	RedemptionID int64            `json:"redemption_id"`
	Code         string           `json:"code"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	Advantage    AdvantageSummary `json:"advantage"`
	Company      *CompanySummary  `json:"company"`
}

type StudentReport struct {
	Student       StudentProfile     `json:"student"`
	Transactions  []TransactionEntry `json:"transactions"`
	Redemptions   []RedemptionEntry  `json:"redemptions"`
	TotalReceived int64              `json:"total_received"`
}

type RegisterStudentResult struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	CPF    string `json:"cpf"`
}
