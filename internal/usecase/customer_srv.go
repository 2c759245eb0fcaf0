package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	MsgFullNameRequired    = "Full name is required."
	MsgValidEmailRequired  = "Valid email is required."
	MsgPhoneRequired       = "Phone number is required."
	MsgCustomerEmailExists = "Customer with this email already exists."
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error)
	GetCustomers(ctx context.Context) ([]response.CustomerResponse, error)
	GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerRequest) (*response.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

type customerService struct {
	repo repository.CustomerRepository
	log  *zap.Logger
}

func NewCustomerService(repo repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
	}
}

// ValidateCustomer returns every problem with req; nil means valid.
func ValidateCustomer(req *request.CustomerRequest) []string {
	var errs []string
	if strings.TrimSpace(req.FullName) == "" {
		errs = append(errs, MsgFullNameRequired)
	}
	if !emailPattern.MatchString(req.Email) {
		errs = append(errs, MsgValidEmailRequired)
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		errs = append(errs, MsgPhoneRequired)
	}
	return errs
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if errs := ValidateCustomer(req); len(errs) > 0 {
		s.log.Warn("Create customer validation failed", zap.Strings("errors", errs))
		return nil, NewValidationError(errs)
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewInternalError("Failed to create customer", err)
	}
	if existing != nil {
		return nil, NewBadRequestError(MsgCustomerEmailExists)
	}

	now := time.Now().UTC()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        utils.GenerateID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:            req.FullName,
		Email:               req.Email,
		PhoneNumber:         req.PhoneNumber,
		SpecialRequirements: req.SpecialRequirements,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		// Lost a race with a concurrent create on the same email.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewBadRequestError(MsgCustomerEmailExists)
		}
		s.log.Error("Failed to create customer", zap.Error(err), zap.String("email", req.Email))
		return nil, NewInternalError("Failed to create customer", err)
	}

	s.log.Info("Customer created", zap.String("customer_id", customer.ID))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) GetCustomers(ctx context.Context) ([]response.CustomerResponse, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get customers", zap.Error(err))
		return nil, NewInternalError("Failed to get customers", err)
	}

	result := make([]response.CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = response.CustomerToResponse(c)
	}
	return result, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, NewInternalError("Failed to get customer", err)
	}
	if customer == nil {
		return nil, NewNotFoundError(MsgCustomerNotFound)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if errs := ValidateCustomer(req); len(errs) > 0 {
		s.log.Warn("Update customer validation failed", zap.Strings("errors", errs))
		return nil, NewValidationError(errs)
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, NewInternalError("Failed to update customer", err)
	}
	if customer == nil {
		return nil, NewNotFoundError(MsgCustomerNotFound)
	}

	customer.FullName = req.FullName
	customer.Email = req.Email
	customer.PhoneNumber = req.PhoneNumber
	customer.SpecialRequirements = req.SpecialRequirements
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, customer); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, NewNotFoundError(MsgCustomerNotFound)
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, NewBadRequestError(MsgCustomerEmailExists)
		}
		s.log.Error("Failed to update customer", zap.Error(err), zap.String("customer_id", customerID))
		return nil, NewInternalError("Failed to update customer", err)
	}

	s.log.Info("Customer updated", zap.String("customer_id", customerID))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

// DeleteCustomer removes the customer only. Bookings that reference it are kept.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError(MsgCustomerNotFound)
		}
		s.log.Error("Failed to delete customer", zap.Error(err), zap.String("customer_id", customerID))
		return NewInternalError("Failed to delete customer", err)
	}

	s.log.Info("Customer deleted", zap.String("customer_id", customerID))
	return nil
}
