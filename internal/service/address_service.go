package service

import (
	"strings"

	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"

	"gorm.io/gorm"
)

// AddressService 地址簿服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// AddressInput 新增地址
type AddressInput struct {
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
}

// List 顾客地址列表
func (s *AddressService) List(customerID string) ([]models.Address, error) {
	return s.addressRepo.ListByCustomer(customerID)
}

// Create 新增地址，设为默认时清除其他默认地址
func (s *AddressService) Create(customerID string, input AddressInput) (*models.Address, error) {
	input = normalizeAddressInput(input)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	address := &models.Address{
		CustomerID: customerID,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		IsDefault:  input.IsDefault,
	}
	if !input.IsDefault {
		if err := s.addressRepo.Create(address); err != nil {
			return nil, err
		}
		return address, nil
	}
	err := s.addressRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.addressRepo.WithTx(tx)
		if err := txRepo.ClearDefault(customerID); err != nil {
			return err
		}
		return txRepo.Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除自己的地址
func (s *AddressService) Delete(customerID, addressID string) error {
	address, err := s.addressRepo.GetByIDAndCustomer(addressID, customerID)
	if err != nil {
		return err
	}
	if address == nil {
		return NotFound("Address", addressID)
	}
	return s.addressRepo.Delete(address.ID)
}

func normalizeAddressInput(input AddressInput) AddressInput {
	input.Line1 = strings.TrimSpace(input.Line1)
	input.Line2 = strings.TrimSpace(input.Line2)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.PostalCode = strings.TrimSpace(input.PostalCode)
	input.Country = strings.TrimSpace(input.Country)
	return input
}
