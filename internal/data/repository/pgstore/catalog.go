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

type packageRepository struct {
	s   *Store
	log *zap.Logger
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.Package) error {
	query := `
		INSERT INTO packages (id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.s.conn(ctx).Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create package", zap.Error(err), zap.String("name", pkg.Name))
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id string) (*entity.Package, error) {
	query := `
		SELECT id, name, description, price, created_at, updated_at
		FROM packages
		WHERE id = $1
	`

	var pkg entity.Package
	err := r.s.conn(ctx).QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.Price,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID", zap.Error(err), zap.String("package_id", id))
		return nil, fmt.Errorf("failed to find package: %w", err)
	}
	return &pkg, nil
}

func (r *packageRepository) FindAll(ctx context.Context) ([]*entity.Package, error) {
	query := `
		SELECT id, name, description, price, created_at, updated_at
		FROM packages
		ORDER BY created_at
	`

	rows, err := r.s.conn(ctx).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find packages", zap.Error(err))
		return nil, fmt.Errorf("failed to find packages: %w", err)
	}
	defer rows.Close()

	packages := make([]*entity.Package, 0)
	for rows.Next() {
		var pkg entity.Package
		if err := rows.Scan(&pkg.ID, &pkg.Name, &pkg.Description, &pkg.Price, &pkg.CreatedAt, &pkg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, &pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return packages, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.Package) error {
	query := `
		UPDATE packages
		SET name = $2, description = $3, price = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.s.conn(ctx).Exec(ctx, query, pkg.ID, pkg.Name, pkg.Description, pkg.Price, pkg.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update package", zap.Error(err), zap.String("package_id", pkg.ID))
		return fmt.Errorf("failed to update package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *packageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.s.conn(ctx).Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete package", zap.Error(err), zap.String("package_id", id))
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type addOnRepository struct {
	s   *Store
	log *zap.Logger
}

const addOnColumns = `id, name, description, price, category, created_at, updated_at`

func (r *addOnRepository) Create(ctx context.Context, addOn *entity.AddOn) error {
	query := `
		INSERT INTO add_ons (id, name, description, price, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.s.conn(ctx).Exec(ctx, query,
		addOn.ID,
		addOn.Name,
		addOn.Description,
		addOn.Price,
		addOn.Category,
		addOn.CreatedAt,
		addOn.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create add-on", zap.Error(err), zap.String("name", addOn.Name))
		return fmt.Errorf("failed to create add-on: %w", err)
	}
	return nil
}

func (r *addOnRepository) FindByID(ctx context.Context, id string) (*entity.AddOn, error) {
	query := `SELECT ` + addOnColumns + ` FROM add_ons WHERE id = $1`

	addOn, err := scanAddOn(r.s.conn(ctx).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find add-on by ID", zap.Error(err), zap.String("add_on_id", id))
		return nil, fmt.Errorf("failed to find add-on: %w", err)
	}
	return addOn, nil
}

func (r *addOnRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.AddOn, error) {
	if len(ids) == 0 {
		return []*entity.AddOn{}, nil
	}
	query := `SELECT ` + addOnColumns + ` FROM add_ons WHERE id = ANY($1)`
	return r.query(ctx, query, ids)
}

func (r *addOnRepository) FindAll(ctx context.Context) ([]*entity.AddOn, error) {
	query := `SELECT ` + addOnColumns + ` FROM add_ons ORDER BY created_at`
	return r.query(ctx, query)
}

func (r *addOnRepository) query(ctx context.Context, query string, args ...any) ([]*entity.AddOn, error) {
	rows, err := r.s.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find add-ons", zap.Error(err))
		return nil, fmt.Errorf("failed to find add-ons: %w", err)
	}
	defer rows.Close()

	addOns := make([]*entity.AddOn, 0)
	for rows.Next() {
		addOn, err := scanAddOn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan add-on: %w", err)
		}
		addOns = append(addOns, addOn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return addOns, nil
}

func (r *addOnRepository) Update(ctx context.Context, addOn *entity.AddOn) error {
	query := `
		UPDATE add_ons
		SET name = $2, description = $3, price = $4, category = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.s.conn(ctx).Exec(ctx, query,
		addOn.ID,
		addOn.Name,
		addOn.Description,
		addOn.Price,
		addOn.Category,
		addOn.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update add-on", zap.Error(err), zap.String("add_on_id", addOn.ID))
		return fmt.Errorf("failed to update add-on: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *addOnRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.s.conn(ctx).Exec(ctx, `DELETE FROM add_ons WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete add-on", zap.Error(err), zap.String("add_on_id", id))
		return fmt.Errorf("failed to delete add-on: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanAddOn(row pgx.Row) (*entity.AddOn, error) {
	var addOn entity.AddOn
	err := row.Scan(
		&addOn.ID,
		&addOn.Name,
		&addOn.Description,
		&addOn.Price,
		&addOn.Category,
		&addOn.CreatedAt,
		&addOn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &addOn, nil
}
