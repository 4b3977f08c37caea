package service

import (
	"context"
	"errors"

	"github.com/meritus/coinledger/internal/constants"
	"github.com/meritus/coinledger/internal/model"
	"github.com/meritus/coinledger/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentEnrichments = 8

type ReportService interface {
	StudentsWithRedemptions(ctx context.Context, professorID int64) ([]StudentReport, error)
}

type report struct {
	userRepo       repository.UserRepository
	studentRepo    repository.StudentRepository
	ledgerRepo     repository.LedgerRepository
	redemptionRepo repository.RedemptionRepository
	advantageRepo  repository.AdvantageRepository
	companyRepo    repository.CompanyRepository
	logger         *zap.Logger
}

func NewReportService(userRepo repository.UserRepository, studentRepo repository.StudentRepository,
	ledgerRepo repository.LedgerRepository, redemptionRepo repository.RedemptionRepository,
	advantageRepo repository.AdvantageRepository, companyRepo repository.CompanyRepository,
	logger *zap.Logger) ReportService {
	return &report{
		userRepo:       userRepo,
		studentRepo:    studentRepo,
		ledgerRepo:     ledgerRepo,
		redemptionRepo: redemptionRepo,
		advantageRepo:  advantageRepo,
		companyRepo:    companyRepo,
		logger:         logger,
	}
}

// StudentsWithRedemptions joins a professor's sent transfers with each
// recipient's profile and redemption history. Output order follows the
// recipients' first appearance in the sent-transfer list, regardless of
// which enrichment finishes first. A recipient whose enrichment fails or
// comes back incomplete is omitted, never fatal.
func (r *report) StudentsWithRedemptions(ctx context.Context, professorID int64) ([]StudentReport, error) {
	caller, err := r.userRepo.FindByID(professorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	if caller.Role != model.RoleProfessor {
		return nil, NewServiceError(constants.ErrCodeForbidden, ErrCallerNotProfessor)
	}

	sent, err := r.ledgerRepo.ListTransfersBySender(professorID)
	if err != nil {
		r.logger.Error("Failed to list sent transfers",
			zap.Int64("professorID", professorID),
			zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	recipientIDs := distinctRecipients(sent)
	if len(recipientIDs) == 0 {
		return []StudentReport{}, nil
	}

	byRecipient := make(map[int64][]model.Transaction, len(recipientIDs))
	for _, tx := range sent {
		if tx.ReceiverID == nil {
			continue
		}
		byRecipient[*tx.ReceiverID] = append(byRecipient[*tx.ReceiverID], tx)
	}

	results := make([]*StudentReport, len(recipientIDs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEnrichments)

	for i, recipientID := range recipientIDs {
		i, recipientID := i, recipientID
		g.Go(func() error {
			entry, ok := r.enrichRecipient(recipientID, byRecipient[recipientID])
			if ok {
				results[i] = entry
			}
			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	reports := make([]StudentReport, 0, len(recipientIDs))
	for _, entry := range results {
		if entry != nil {
			reports = append(reports, *entry)
		}
	}

	return reports, nil
}

func (r *report) enrichRecipient(recipientID int64, transfers []model.Transaction) (*StudentReport, bool) {
	user, err := r.userRepo.FindByID(recipientID)
	if err != nil {
		r.logger.Debug("Skipping recipient without user record",
			zap.Int64("recipientID", recipientID),
			zap.Error(err))
		return nil, false
	}

	if user.Role != model.RoleStudent {
		return nil, false
	}

	student, err := r.studentRepo.FindByUserID(recipientID)
	if err != nil {
		r.logger.Debug("Skipping recipient without student profile",
			zap.Int64("recipientID", recipientID),
			zap.Error(err))
		return nil, false
	}

	entries := make([]TransactionEntry, 0, len(transfers))
	var totalReceived int64
	for _, tx := range transfers {
		entries = append(entries, toTransactionEntry(tx))
		totalReceived += tx.Amount
	}

	redemptions, err := r.redemptionRepo.ListByStudent(recipientID)
	if err != nil {
		r.logger.Warn("Skipping recipient, redemption lookup failed",
			zap.Int64("recipientID", recipientID),
			zap.Error(err))
		return nil, false
	}

	enriched := make([]RedemptionEntry, 0, len(redemptions))
	for _, redemption := range redemptions {
		advantage, err := r.advantageRepo.FindByID(redemption.AdvantageID)
		if err != nil {
			// A redemption pointing at a deleted advantage is dropped.
			r.logger.Debug("Dropping redemption without advantage",
				zap.Int64("redemptionID", redemption.ID),
				zap.Int64("advantageID", redemption.AdvantageID))
			continue
		}

		entry := RedemptionEntry{
			RedemptionID: redemption.ID,
			Code:         redemption.Code,
			Status:       string(redemption.Status),
			CreatedAt:    redemption.CreatedAt,
			Advantage: AdvantageSummary{
				AdvantageID: advantage.ID,
				Title:       advantage.Title,
				Cost:        advantage.Cost,
			},
		}

		// A deleted company does not invalidate the redemption; the
		// report shows it as absent.
		company, err := r.companyRepo.FindByID(advantage.CompanyID)
		if err == nil {
			entry.Company = &CompanySummary{CompanyID: company.ID, Name: company.Name}
		}

		enriched = append(enriched, entry)
	}

	return &StudentReport{
		Student: StudentProfile{
			UserID:      user.ID,
			Name:        student.Name,
			Email:       user.Email,
			CPF:         student.CPF,
			Institution: student.Institution,
			Course:      student.Course,
		},
		Transactions:  entries,
		Redemptions:   enriched,
		TotalReceived: totalReceived,
	}, true
}

func distinctRecipients(transfers []model.Transaction) []int64 {
	seen := make(map[int64]struct{}, len(transfers))
	ids := make([]int64, 0, len(transfers))
	for _, tx := range transfers {
		if tx.ReceiverID == nil {
			continue
		}
		if _, ok := seen[*tx.ReceiverID]; ok {
			continue
		}
		seen[*tx.ReceiverID] = struct{}{}
		ids = append(ids, *tx.ReceiverID)
	}
	return ids
}
