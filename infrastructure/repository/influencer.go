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
	influencersTable = "influencers i"
)

var influencerColumns = []string{
	"i.id",
	"i.brand_id",
	"i.name",
	"i.social_handle",
	"i.commission_rate",
	"i.created_at",
}

type InfluencerRepository interface {
	SelectInfluencers(ctx context.Context, brandID string, createdRange *domain.DateRange) ([]*domain.Influencer, error)
	GetByID(ctx context.Context, brandID, influencerID string) (*domain.Influencer, error)
}

type influencerRepository struct {
	conn postgres.Queryer
}

func NewInfluencerRepository(conn postgres.Queryer) InfluencerRepository {
	return &influencerRepository{
		conn: conn,
	}
}

func (r *influencerRepository) SelectInfluencers(ctx context.Context, brandID string, createdRange *domain.DateRange) ([]*domain.Influencer, error) {
	queryBuilder := squirrel.
		Select(influencerColumns...).
		From(influencersTable).
		Where(squirrel.Eq{"i.brand_id": brandID}).
		OrderBy("i.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if createdRange != nil {
		queryBuilder = queryBuilder.
			Where(squirrel.GtOrEq{"i.created_at": createdRange.Start}).
			Where(squirrel.Lt{"i.created_at": createdRange.End})
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

	influencers := make([]*domain.Influencer, 0)
	for rows.Next() {
		influencer, err := scanInfluencer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear influenciador: %w", err)
		}
		influencers = append(influencers, influencer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return influencers, nil
}

func (r *influencerRepository) GetByID(ctx context.Context, brandID, influencerID string) (*domain.Influencer, error) {
	query, args, err := squirrel.
		Select(influencerColumns...).
		From(influencersTable).
		Where(squirrel.Eq{"i.brand_id": brandID, "i.id": influencerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	influencer, err := scanInfluencer(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear influenciador: %w", err)
	}

	return influencer, nil
}

func scanInfluencer(row postgres.Row) (*domain.Influencer, error) {
	influencer := &domain.Influencer{}

	err := row.Scan(
		&influencer.ID,
		&influencer.BrandID,
		&influencer.Name,
		&influencer.SocialHandle,
		&influencer.CommissionRate,
		&influencer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return influencer, nil
}
