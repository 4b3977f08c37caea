package v1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/meritus/coinledger/internal/api/contract"
	"github.com/meritus/coinledger/internal/api/validator"
	"github.com/meritus/coinledger/internal/constants"
	"github.com/meritus/coinledger/internal/metrics"
	"github.com/meritus/coinledger/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	logger          *zap.Logger
	transferService service.TransferService
	reportService   service.ReportService
	studentService  service.StudentService
	XValidator      validator.IXValidator
	metrics         *metrics.Metrics
}

func NewHandler(logger *zap.Logger, transferService service.TransferService,
	reportService service.ReportService, studentService service.StudentService,
	XValidator validator.IXValidator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:          logger,
		transferService: transferService,
		reportService:   reportService,
		studentService:  studentService,
		XValidator:      XValidator,
		metrics:         metrics,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c)
	}

	balance, err := h.transferService.GetBalance(userID)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{
		Code:    "success",
		TrackID: uuid.NewString(),
		Result:  BalanceResponse{UserID: userID, Balance: balance},
	})
}

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c)
	}

	transactions, err := h.transferService.ListTransactions(userID)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{
		Code:    "success",
		TrackID: uuid.NewString(),
		Result:  TransactionsResponse{Transactions: transactions, Total: len(transactions)},
	})
}

func (h *Handler) Transfer(c *fiber.Ctx) error {
	var request TransferRequest

	responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Transfer request failed validation", zap.Any("request", request))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.TransferCommand{
		SenderID:       request.SenderID,
		RecipientEmail: request.RecipientEmail,
		Amount:         request.Amount,
		Reason:         request.Reason,
		IdempotencyKey: request.IdempotencyKey,
	}

	result, err := h.transferService.Transfer(c.UserContext(), cmd)
	if err != nil {
		h.logger.Error("Transfer failed",
			zap.Error(err),
			zap.Int64("senderID", request.SenderID),
			zap.String("recipient", request.RecipientEmail))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contract.Response{
		Code:    "success",
		TrackID: uuid.NewString(),
		Result:  result,
	})
}

func (h *Handler) Grant(c *fiber.Ctx) error {
	var request GrantRequest

	responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Grant request failed validation", zap.Any("request", request))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.GrantCommand{
		ReceiverID: request.ReceiverID,
		Amount:     request.Amount,
		Reason:     request.Reason,
	}

	result, err := h.transferService.Grant(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contract.Response{
		Code:    "success",
		TrackID: uuid.NewString(),
		Result:  result,
	})
}

func (h *Handler) StudentsReport(c *fiber.Ctx) error {
	professorID, err := parseID(c)
	if err != nil {
		return badRequest(c)
	}

	students, err := h.reportService.StudentsWithRedemptions(c.UserContext(), professorID)
	if err != nil {
		return err
	}

	h.metrics.RecordReportGenerated()

	h.logger.Info("Students report generated",
		zap.Int64("professorID", professorID),
		zap.Int("students", len(students)))

	return c.JSON(contract.Response{
		Code:    "success",
		TrackID: uuid.NewString(),
		Result:  StudentsReportResponse{Students: students, Total: len(students)},
	})
}

func (h *Handler) RegisterStudent(c *fiber.Ctx) error {
	var request RegisterStudentRequest

	responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Student registration failed validation", zap.String("email", request.Email))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.RegisterStudentCommand{
		Name:        request.Name,
		Email:       request.Email,
		Password:    request.Password,
		CPF:         request.CPF,
		Institution: request.Institution,
		Course:      request.Course,
	}

	result, err := h.studentService.Register(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contract.Response{
		Code:    "success",
		TrackID: uuid.NewString(),
		Result:  result,
	})
}

func (h *Handler) GetStudent(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c)
	}

	profile, err := h.studentService.Get(userID)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{
		Code:    "success",
		TrackID: uuid.NewString(),
		Result:  profile,
	})
}

func (h *Handler) UpdateStudent(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c)
	}

	var request UpdateStudentRequest
	responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.UpdateStudentCommand{
		UserID:      userID,
		Name:        request.Name,
		Institution: request.Institution,
		Course:      request.Course,
	}

	if err := h.studentService.Update(c.UserContext(), cmd); err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", TrackID: uuid.NewString()})
}

func (h *Handler) DeactivateStudent(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c)
	}

	if err := h.studentService.Deactivate(c.UserContext(), userID); err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", TrackID: uuid.NewString()})
}

func (h *Handler) ListAdvantages(c *fiber.Ctx) error {
	advantages, err := h.studentService.ListAdvantages()
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{
		Code:    "success",
		TrackID: uuid.NewString(),
		Result:  AdvantagesResponse{Advantages: advantages, Total: len(advantages)},
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    constants.ErrCodeInvalidRequestBody,
		"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
	})
}
