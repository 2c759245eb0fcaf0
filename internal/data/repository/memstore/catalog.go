package memstore

import (
	"context"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
)

type packageRepository struct {
	s *Store
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.Package) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.packages[pkg.ID] = *pkg
	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id string) (*entity.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.packages[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *packageRepository) FindAll(ctx context.Context) ([]*entity.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	packages := make([]*entity.Package, 0, len(r.s.packages))
	for _, p := range r.s.packages {
		p := p
		packages = append(packages, &p)
	}
	sortByCreated(packages, func(p *entity.Package) int64 { return p.CreatedAt.UnixNano() })
	return packages, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.Package) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.packages[pkg.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.packages[pkg.ID] = *pkg
	return nil
}

func (r *packageRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.packages[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.packages, id)
	return nil
}

type addOnRepository struct {
	s *Store
}

func (r *addOnRepository) Create(ctx context.Context, addOn *entity.AddOn) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.addOns[addOn.ID] = *addOn
	return nil
}

func (r *addOnRepository) FindByID(ctx context.Context, id string) (*entity.AddOn, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.addOns[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *addOnRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.AddOn, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	var addOns []*entity.AddOn
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if a, ok := r.s.addOns[id]; ok {
			addOns = append(addOns, &a)
		}
	}
	return addOns, nil
}

func (r *addOnRepository) FindAll(ctx context.Context) ([]*entity.AddOn, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	addOns := make([]*entity.AddOn, 0, len(r.s.addOns))
	for _, a := range r.s.addOns {
		a := a
		addOns = append(addOns, &a)
	}
	sortByCreated(addOns, func(a *entity.AddOn) int64 { return a.CreatedAt.UnixNano() })
	return addOns, nil
}

func (r *addOnRepository) Update(ctx context.Context, addOn *entity.AddOn) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.addOns[addOn.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.addOns[addOn.ID] = *addOn
	return nil
}

func (r *addOnRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.addOns[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.addOns, id)
	return nil
}
