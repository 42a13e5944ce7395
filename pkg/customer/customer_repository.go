package customer

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type (
	CustomerRepository interface {
		CreateCustomer(ctx context.Context, customer *entities.Customer) error
		GetCustomerByID(ctx context.Context, id string) (*entities.Customer, error)
		GetCustomerByPhone(ctx context.Context, phone string) (*entities.Customer, error)
		GetCustomers(ctx context.Context, search string, page, limit int) ([]*entities.Customer, int64, error)
		UpdateCustomerProfile(ctx context.Context, id string, fields map[string]interface{}) error
	}

	customerRepository struct {
		db *gorm.DB
	}
)

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer *entities.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCustomerExists
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id string) (*entities.Customer, error) {
	var customer entities.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) GetCustomerByPhone(ctx context.Context, phone string) (*entities.Customer, error) {
	var customer entities.Customer
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by phone: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) GetCustomers(ctx context.Context, search string, page, limit int) ([]*entities.Customer, int64, error) {
	var customers []*entities.Customer
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Customer{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("phone LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}

	return customers, count, nil
}

func (r *customerRepository) UpdateCustomerProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Customer{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update customer profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
