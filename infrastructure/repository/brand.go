package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
	"github.com/trackrcommerce/trackr-api/internal/domain"
)

const (
	brandsTable       = "brands b"
	brandSecretsTable = "brand_secrets"
)

var brandColumns = []string{
	"b.id",
	"b.name",
	"b.owner_id",
	"b.external_store_id",
	"b.is_real",
	"b.created_at",
}

type BrandRepository interface {
	ListAll(ctx context.Context) ([]*domain.Brand, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*domain.Brand, error)
	GetByID(ctx context.Context, brandID string) (*domain.Brand, error)
	ListSyncable(ctx context.Context) ([]*domain.Brand, error)
	GetSecret(ctx context.Context, brandID string) (*domain.BrandSecret, error)
	StoreSecret(ctx context.Context, secret *domain.BrandSecret) error
}

type brandRepository struct {
	conn postgres.Queryer
}

func NewBrandRepository(conn postgres.Queryer) BrandRepository {
	return &brandRepository{
		conn: conn,
	}
}

func (r *brandRepository) baseQuery() squirrel.SelectBuilder {
	return squirrel.
		Select(brandColumns...).
		From(brandsTable).
		OrderBy("b.name ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *brandRepository) ListAll(ctx context.Context) ([]*domain.Brand, error) {
	return r.list(ctx, r.baseQuery())
}

func (r *brandRepository) ListByOwner(ctx context.Context, ownerID int) ([]*domain.Brand, error) {
	return r.list(ctx, r.baseQuery().Where(squirrel.Eq{"b.owner_id": ownerID}))
}

// ListSyncable lista as marcas reais com loja conectada e token salvo
func (r *brandRepository) ListSyncable(ctx context.Context) ([]*domain.Brand, error) {
	return r.list(ctx, r.baseQuery().
		Join("brand_secrets bs ON bs.brand_id = b.id").
		Where(squirrel.Eq{"b.is_real": true}).
		Where(squirrel.NotEq{"b.external_store_id": nil}).
		Where(squirrel.NotEq{"bs.access_token": ""}))
}

func (r *brandRepository) list(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]*domain.Brand, error) {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	brands := make([]*domain.Brand, 0)
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear marca: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return brands, nil
}

func (r *brandRepository) GetByID(ctx context.Context, brandID string) (*domain.Brand, error) {
	query, args, err := squirrel.
		Select(brandColumns...).
		From(brandsTable).
		Where(squirrel.Eq{"b.id": brandID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	brand, err := scanBrand(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear marca: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) GetSecret(ctx context.Context, brandID string) (*domain.BrandSecret, error) {
	query, args, err := squirrel.
		Select("brand_id", "access_token", "updated_at").
		From(brandSecretsTable).
		Where(squirrel.Eq{"brand_id": brandID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	secret := &domain.BrandSecret{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(&secret.BrandID, &secret.AccessToken, &secret.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar token da marca: %w", err)
	}

	return secret, nil
}

func (r *brandRepository) StoreSecret(ctx context.Context, secret *domain.BrandSecret) error {
	query, args, err := squirrel.
		Insert(brandSecretsTable).
		Columns("brand_id", "access_token").
		Values(secret.BrandID, secret.AccessToken).
		Suffix(`
			ON CONFLICT (brand_id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				updated_at = NOW()
			RETURNING updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&secret.UpdatedAt); err != nil {
		return fmt.Errorf("erro ao salvar token da marca: %w", err)
	}

	return nil
}

func scanBrand(row postgres.Row) (*domain.Brand, error) {
	brand := &domain.Brand{}

	err := row.Scan(
		&brand.ID,
		&brand.Name,
		&brand.OwnerID,
		&brand.ExternalStoreID,
		&brand.IsReal,
		&brand.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return brand, nil
}
