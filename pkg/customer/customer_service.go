package customer

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	CustomerService interface {
		RegisterCustomer(ctx context.Context, req domain.RegisterCustomerRequest) (*domain.Customer, error)
		GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
		GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error)
		GetCustomers(ctx context.Context, req domain.ListCustomersRequest) ([]*domain.Customer, int64, error)
		UpdateCustomer(ctx context.Context, id string, req domain.UpdateCustomerRequest) (*domain.Customer, error)
	}

	customerService struct {
		customerRepository CustomerRepository
	}
)

func NewCustomerService(customerRepository CustomerRepository) CustomerService {
	return &customerService{
		customerRepository: customerRepository,
	}
}

// NormalizePhone strips the whitespace and separators staff commonly type into the phone field.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

func (s *customerService) RegisterCustomer(ctx context.Context, req domain.RegisterCustomerRequest) (*domain.Customer, error) {
	phone := NormalizePhone(req.Phone)
	if phone == "" {
		return nil, domain.ErrInvalidPhone
	}

	customer := &entities.Customer{
		Phone: phone,
		Name:  strings.TrimSpace(req.Name),
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, domain.ErrInvalidBirthDate
		}
		customer.DateOfBirth = &dob
	}

	if err := s.customerRepository.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return ToDomain(customer), nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}
	customer, err := s.customerRepository.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDomain(customer), nil
}

func (s *customerService) GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return nil, domain.ErrInvalidPhone
	}
	customer, err := s.customerRepository.GetCustomerByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return ToDomain(customer), nil
}

func (s *customerService) GetCustomers(ctx context.Context, req domain.ListCustomersRequest) ([]*domain.Customer, int64, error) {
	customers, count, err := s.customerRepository.GetCustomers(ctx, req.Search, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Customer, 0, len(customers))
	for _, c := range customers {
		result = append(result, ToDomain(c))
	}
	return result, count, nil
}

// UpdateCustomer only touches profile columns; wallet fields are owned by the ledger operations.
func (s *customerService) UpdateCustomer(ctx context.Context, id string, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.PhotoURL != nil {
		fields["photo_url"] = *req.PhotoURL
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, domain.ErrInvalidBirthDate
		}
		fields["date_of_birth"] = dob
	}

	if len(fields) > 0 {
		if err := s.customerRepository.UpdateCustomerProfile(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetCustomerByID(ctx, id)
}

func ToDomain(c *entities.Customer) *domain.Customer {
	return &domain.Customer{
		ID:           c.ID.String(),
		Phone:        c.Phone,
		Name:         c.Name,
		PhotoURL:     c.PhotoURL,
		DateOfBirth:  c.DateOfBirth,
		Coins:        c.Coins,
		TotalSpent:   c.TotalSpent,
		WeeklySpent:  c.WeeklySpent,
		MonthlySpent: c.MonthlySpent,
		CreatedAt:    c.CreatedAt,
	}
}
