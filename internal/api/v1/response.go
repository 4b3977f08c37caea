package v1

import "github.com/meritus/coinledger/internal/service"

type BalanceResponse struct {
	UserID  int64 `json:"user_id"`
	Balance int64 `json:"balance"`
}

type TransactionsResponse struct {
	Transactions []service.TransactionEntry `json:"transactions"`
	Total        int                        `json:"total"`
}

type StudentsReportResponse struct {
	Students []service.StudentReport `json:"students"`
	Total    int                     `json:"total"`
}

type AdvantagesResponse struct {
	Advantages []service.AdvantageSummary `json:"advantages"`
	Total      int                        `json:"total"`
}
