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
	classificationsTable = "coupon_classifications cc"
)

var classificationColumns = []string{
	"cc.id",
	"cc.brand_id",
	"cc.name",
	"cc.description",
	"cc.color",
	"cc.is_active",
	"cc.created_at",
	"cc.updated_at",
}

type ClassificationRepository interface {
	SelectClassifications(ctx context.Context, brandID string, isActive *bool) ([]*domain.CouponClassification, error)
	GetByID(ctx context.Context, brandID, classificationID string) (*domain.CouponClassification, error)
	Upsert(ctx context.Context, classification *domain.CouponClassification) error
	SoftDelete(ctx context.Context, brandID, classificationID string) error
}

type classificationRepository struct {
	conn postgres.Queryer
}

func NewClassificationRepository(conn postgres.Queryer) ClassificationRepository {
	return &classificationRepository{
		conn: conn,
	}
}

func (r *classificationRepository) SelectClassifications(ctx context.Context, brandID string, isActive *bool) ([]*domain.CouponClassification, error) {
	queryBuilder := squirrel.
		Select(classificationColumns...).
		From(classificationsTable).
		Where(squirrel.Eq{"cc.brand_id": brandID}).
		OrderBy("cc.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if isActive != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"cc.is_active": *isActive})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	classifications := make([]*domain.CouponClassification, 0)
	for rows.Next() {
		classification, err := scanClassification(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear classificação: %w", err)
		}
		classifications = append(classifications, classification)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return classifications, nil
}

// GetByID busca a classificação diretamente, inclusive as inativas
func (r *classificationRepository) GetByID(ctx context.Context, brandID, classificationID string) (*domain.CouponClassification, error) {
	query, args, err := squirrel.
		Select(classificationColumns...).
		From(classificationsTable).
		Where(squirrel.Eq{"cc.brand_id": brandID, "cc.id": classificationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	classification, err := scanClassification(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear classificação: %w", err)
	}

	return classification, nil
}

// Upsert cria a classificação quando ID está vazio, senão atualiza nome, descrição e cor
func (r *classificationRepository) Upsert(ctx context.Context, classification *domain.CouponClassification) error {
	if classification.ID == "" {
		return r.insert(ctx, classification)
	}

	query, args, err := squirrel.
		Update("coupon_classifications").
		Set("name", classification.Name).
		Set("description", classification.Description).
		Set("color", classification.Color).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": classification.ID, "brand_id": classification.BrandID}).
		Suffix("RETURNING is_active, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&classification.IsActive,
		&classification.CreatedAt,
		&classification.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("erro ao atualizar classificação: %w", err)
	}

	return nil
}

func (r *classificationRepository) insert(ctx context.Context, classification *domain.CouponClassification) error {
	query, args, err := squirrel.
		Insert("coupon_classifications").
		Columns("brand_id", "name", "description", "color", "is_active").
		Values(classification.BrandID, classification.Name, classification.Description, classification.Color, true).
		Suffix("RETURNING id, is_active, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&classification.ID,
		&classification.IsActive,
		&classification.CreatedAt,
		&classification.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar classificação: %w", err)
	}

	return nil
}

// SoftDelete apenas desativa: cupons antigos continuam referenciando a classificação
func (r *classificationRepository) SoftDelete(ctx context.Context, brandID, classificationID string) error {
	query, args, err := squirrel.
		Update("coupon_classifications").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": classificationID, "brand_id": brandID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao desativar classificação: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func scanClassification(row postgres.Row) (*domain.CouponClassification, error) {
	classification := &domain.CouponClassification{}

	err := row.Scan(
		&classification.ID,
		&classification.BrandID,
		&classification.Name,
		&classification.Description,
		&classification.Color,
		&classification.IsActive,
		&classification.CreatedAt,
		&classification.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return classification, nil
}
