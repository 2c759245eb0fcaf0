package memstore

import (
	"context"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
)

type customerRepository struct {
	s *Store
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(customer.Email, customer.ID) {
		return repository.ErrDuplicateKey
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.customers {
		if c.Email == email {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	customers := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		c := c
		customers = append(customers, &c)
	}
	sortByCreated(customers, func(c *entity.Customer) int64 { return c.CreatedAt.UnixNano() })
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customer.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(customer.Email, customer.ID) {
		return repository.ErrDuplicateKey
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

// emailTaken must be called with the write lock held.
func (r *customerRepository) emailTaken(email, exceptID string) bool {
	for id, c := range r.s.customers {
		if id != exceptID && c.Email == email {
			return true
		}
	}
	return false
}
