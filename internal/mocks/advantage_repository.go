package mocks

import (
	"github.com/meritus/coinledger/internal/model"
	"github.com/stretchr/testify/mock"
)

type AdvantageRepository struct {
	mock.Mock
}

func (m *AdvantageRepository) FindByID(id int64) (model.Advantage, error) {
	args := m.Called(id)
	return args.Get(0).(model.Advantage), args.Error(1)
}

func (m *AdvantageRepository) List() ([]model.Advantage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Advantage), args.Error(1)
}

type CompanyRepository struct {
	mock.Mock
}

func (m *CompanyRepository) FindByID(id int64) (model.Company, error) {
	args := m.Called(id)
	return args.Get(0).(model.Company), args.Error(1)
}
