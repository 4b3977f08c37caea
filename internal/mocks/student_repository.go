package mocks

import (
	"context"

	"github.com/meritus/coinledger/internal/model"
	"github.com/stretchr/testify/mock"
)

type StudentRepository struct {
	mock.Mock
}

func (m *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *StudentRepository) FindByUserID(userID int64) (model.Student, error) {
	args := m.Called(userID)
	return args.Get(0).(model.Student), args.Error(1)
}

func (m *StudentRepository) FindByCPF(cpf string) (model.Student, error) {
	args := m.Called(cpf)
	return args.Get(0).(model.Student), args.Error(1)
}

func (m *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}
