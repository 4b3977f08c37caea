package service

import (
	"context"
	"errors"
	"time"

	"github.com/meritus/coinledger/internal/constants"
	"github.com/meritus/coinledger/internal/model"
	"github.com/meritus/coinledger/internal/repository"
	"go.uber.org/zap"
)

type StudentService interface {
	Register(ctx context.Context, cmd RegisterStudentCommand) (RegisterStudentResult, error)
	Get(userID int64) (StudentProfile, error)
	Update(ctx context.Context, cmd UpdateStudentCommand) error
	Deactivate(ctx context.Context, userID int64) error
	ListAdvantages() ([]AdvantageSummary, error)
}

type student struct {
	txManager     repository.TxManager
	userRepo      repository.UserRepository
	studentRepo   repository.StudentRepository
	advantageRepo repository.AdvantageRepository
	logger        *zap.Logger
}

func NewStudentService(txManager repository.TxManager, userRepo repository.UserRepository,
	studentRepo repository.StudentRepository, advantageRepo repository.AdvantageRepository,
	logger *zap.Logger) StudentService {
	return &student{
		txManager:     txManager,
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		advantageRepo: advantageRepo,
		logger:        logger,
	}
}

func (s *student) Register(ctx context.Context, cmd RegisterStudentCommand) (RegisterStudentResult, error) {
	if _, err := s.userRepo.FindByEmail(cmd.Email); err == nil {
		return RegisterStudentResult{}, NewServiceError(constants.ErrCodeDuplicateEmail, repository.ErrEmailExisted)
	}

	if _, err := s.studentRepo.FindByCPF(cmd.CPF); err == nil {
		return RegisterStudentResult{}, NewServiceError(constants.ErrCodeDuplicateCPF, repository.ErrCPFExisted)
	}

	user := model.User{
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: cmd.Password,
		Role:         model.RoleStudent,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	profile := model.Student{
		CPF:         cmd.CPF,
		Name:        cmd.Name,
		Institution: cmd.Institution,
		Course:      cmd.Course,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, &user); err != nil {
			if errors.Is(err, repository.ErrEmailExisted) {
				return NewServiceError(constants.ErrCodeDuplicateEmail, err)
			}

			s.logger.Error("Failed to create user", zap.Error(err))
			return NewServiceError(ErrCodeDatabase, err)
		}

		profile.UserID = user.ID

		if err := s.studentRepo.Create(ctx, &profile); err != nil {
			if errors.Is(err, repository.ErrCPFExisted) {
				return NewServiceError(constants.ErrCodeDuplicateCPF, err)
			}

			s.logger.Error("Failed to create student profile", zap.Error(err))
			return NewServiceError(ErrCodeDatabase, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Student registration failed",
			zap.String("email", cmd.Email),
			zap.Error(err))
		return RegisterStudentResult{}, err
	}

	s.logger.Info("Student registered",
		zap.Int64("userID", user.ID),
		zap.String("email", user.Email))

	return RegisterStudentResult{UserID: user.ID, Email: user.Email, CPF: profile.CPF}, nil
}

func (s *student) Get(userID int64) (StudentProfile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return StudentProfile{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return StudentProfile{}, NewServiceError(ErrCodeDatabase, err)
	}

	profile, err := s.studentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return StudentProfile{}, NewServiceError(constants.ErrCodeStudentNotFound, err)
		}
		return StudentProfile{}, NewServiceError(ErrCodeDatabase, err)
	}

	return StudentProfile{
		UserID:      user.ID,
		Name:        profile.Name,
		Email:       user.Email,
		CPF:         profile.CPF,
		Institution: profile.Institution,
		Course:      profile.Course,
	}, nil
}

func (s *student) Update(ctx context.Context, cmd UpdateStudentCommand) error {
	profile, err := s.studentRepo.FindByUserID(cmd.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return NewServiceError(constants.ErrCodeStudentNotFound, err)
		}
		return NewServiceError(ErrCodeDatabase, err)
	}

	profile.Name = cmd.Name
	profile.Institution = cmd.Institution
	profile.Course = cmd.Course
	profile.UpdatedAt = time.Now()

	if err := s.studentRepo.Update(ctx, &profile); err != nil {
		s.logger.Error("Failed to update student profile",
			zap.Int64("userID", cmd.UserID),
			zap.Error(err))
		return NewServiceError(ErrCodeDatabase, err)
	}

	return nil
}

// Deactivate is a logical delete: the user row stays for ledger history.
func (s *student) Deactivate(ctx context.Context, userID int64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return NewServiceError(ErrCodeDatabase, err)
	}

	user.Active = false
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, &user); err != nil {
		s.logger.Error("Failed to deactivate user",
			zap.Int64("userID", userID),
			zap.Error(err))
		return NewServiceError(ErrCodeDatabase, err)
	}

	s.logger.Info("Student deactivated", zap.Int64("userID", userID))

	return nil
}

func (s *student) ListAdvantages() ([]AdvantageSummary, error) {
	advantages, err := s.advantageRepo.List()
	if err != nil {
		s.logger.Error("Failed to list advantages", zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	summaries := make([]AdvantageSummary, 0, len(advantages))
	for _, advantage := range advantages {
		summaries = append(summaries, AdvantageSummary{
			AdvantageID: advantage.ID,
			Title:       advantage.Title,
			Cost:        advantage.Cost,
		})
	}

	return summaries, nil
}
