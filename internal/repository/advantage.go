package repository

import (
	"errors"

	"github.com/meritus/coinledger/internal/model"
	"gorm.io/gorm"
)

var (
	ErrAdvantageNotFound = errors.New("ADVANTAGE_NOT_FOUND")
	ErrCompanyNotFound   = errors.New("COMPANY_NOT_FOUND")
)

type AdvantageRepository interface {
	FindByID(id int64) (model.Advantage, error)
	List() ([]model.Advantage, error)
}

type CompanyRepository interface {
	FindByID(id int64) (model.Company, error)
}

type advantage struct {
	db *gorm.DB
}

func NewAdvantageRepository(db *gorm.DB) AdvantageRepository {
	return &advantage{db: db}
}

func (r *advantage) FindByID(id int64) (model.Advantage, error) {
	var a model.Advantage
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Advantage{}, ErrAdvantageNotFound
		}
		return model.Advantage{}, err
	}

	return a, nil
}

func (r *advantage) List() ([]model.Advantage, error) {
	var advantages []model.Advantage
	if err := r.db.Order("id ASC").Find(&advantages).Error; err != nil {
		return nil, err
	}

	return advantages, nil
}

type company struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &company{db: db}
}

func (r *company) FindByID(id int64) (model.Company, error) {
	var c model.Company
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Company{}, ErrCompanyNotFound
		}
		return model.Company{}, err
	}

	return c, nil
}
