package pgstore

import (
	"context"
	"errors"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type customerRepository struct {
	s   *Store
	log *zap.Logger
}

const customerColumns = `id, full_name, email, phone_number, special_requirements, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, full_name, email, phone_number, special_requirements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.s.conn(ctx).Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Email,
		customer.PhoneNumber,
		customer.SpecialRequirements,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("failed to create customer: %w", mapWriteError(err, repository.ErrDuplicateKey))
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *customerRepository) findOne(ctx context.Context, query string, arg string) (*entity.Customer, error) {
	customer, err := scanCustomer(r.s.conn(ctx).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer", zap.Error(err), zap.String("key", arg))
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at`

	rows, err := r.s.conn(ctx).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find customers", zap.Error(err))
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}
	defer rows.Close()

	customers := make([]*entity.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $2, email = $3, phone_number = $4, special_requirements = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.s.conn(ctx).Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Email,
		customer.PhoneNumber,
		customer.SpecialRequirements,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID),
		)
		return fmt.Errorf("failed to update customer: %w", mapWriteError(err, repository.ErrDuplicateKey))
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.s.conn(ctx).Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete customer", zap.Error(err), zap.String("customer_id", id))
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var customer entity.Customer
	err := row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.Email,
		&customer.PhoneNumber,
		&customer.SpecialRequirements,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
