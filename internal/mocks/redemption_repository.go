package mocks

import (
	"github.com/meritus/coinledger/internal/model"
	"github.com/stretchr/testify/mock"
)

type RedemptionRepository struct {
	mock.Mock
}

func (m *RedemptionRepository) ListByStudent(studentID int64) ([]model.Redemption, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Redemption), args.Error(1)
}
