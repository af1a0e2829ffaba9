package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
	"github.com/trackrcommerce/trackr-api/internal/domain"
)

const (
	couponsTable = "coupons cp"

	// pqUniqueViolation é o código do Postgres para violação de unicidade
	pqUniqueViolation = "23505"
)

var (
	// ErrDuplicateCoupon indica que já existe um cupom com o mesmo código na marca
	ErrDuplicateCoupon = errors.New("cupom já cadastrado")
	// ErrClassificationUnavailable indica que a classificação sumiu ou foi desativada antes da gravação
	ErrClassificationUnavailable = errors.New("classificação inativa")
)

var couponColumns = []string{
	"cp.id",
	"cp.brand_id",
	"cp.code",
	"cp.influencer_id",
	"i.name",
	"cp.discount_value",
	"cp.discount_type",
	"cp.is_active",
	"cp.classification_id",
	"cp.classification_updated_at",
	"cp.created_at",
}

type CouponFilter struct {
	Code         *string
	IsActive     *bool
	CreatedRange *domain.DateRange
	InfluencerID *string
}

type CouponRepository interface {
	SelectCoupons(ctx context.Context, brandID string, filter CouponFilter) ([]*domain.Coupon, error)
	GetByID(ctx context.Context, brandID, couponID string) (*domain.Coupon, error)
	GetByCode(ctx context.Context, brandID, code string) (*domain.Coupon, error)
	CreateCoupon(ctx context.Context, coupon *domain.Coupon) error
	AssignClassification(ctx context.Context, brandID, couponID, classificationID string) error
}

type couponRepository struct {
	conn postgres.Conn
}

func NewCouponRepository(conn postgres.Conn) CouponRepository {
	return &couponRepository{
		conn: conn,
	}
}

func (r *couponRepository) baseQuery(brandID string) squirrel.SelectBuilder {
	return squirrel.
		Select(couponColumns...).
		From(couponsTable).
		LeftJoin("influencers i ON i.id = cp.influencer_id").
		Where(squirrel.Eq{"cp.brand_id": brandID}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *couponRepository) SelectCoupons(ctx context.Context, brandID string, filter CouponFilter) ([]*domain.Coupon, error) {
	queryBuilder := r.baseQuery(brandID).OrderBy("cp.created_at DESC", "cp.id ASC")

	if filter.Code != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"cp.code": *filter.Code})
	}

	if filter.IsActive != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"cp.is_active": *filter.IsActive})
	}

	if filter.CreatedRange != nil {
		queryBuilder = queryBuilder.
			Where(squirrel.GtOrEq{"cp.created_at": filter.CreatedRange.Start}).
			Where(squirrel.Lt{"cp.created_at": filter.CreatedRange.End})
	}

	if filter.InfluencerID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"cp.influencer_id": *filter.InfluencerID})
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

	coupons := make([]*domain.Coupon, 0)
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cupom: %w", err)
		}
		coupons = append(coupons, coupon)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return coupons, nil
}

func (r *couponRepository) GetByID(ctx context.Context, brandID, couponID string) (*domain.Coupon, error) {
	return r.getOne(ctx, r.baseQuery(brandID).Where(squirrel.Eq{"cp.id": couponID}))
}

func (r *couponRepository) GetByCode(ctx context.Context, brandID, code string) (*domain.Coupon, error) {
	return r.getOne(ctx, r.baseQuery(brandID).Where(squirrel.Eq{"cp.code": code}).Limit(1))
}

func (r *couponRepository) getOne(ctx context.Context, queryBuilder squirrel.SelectBuilder) (*domain.Coupon, error) {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	coupon, err := scanCoupon(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cupom: %w", err)
	}

	return coupon, nil
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	query, args, err := squirrel.
		Insert("coupons").
		Columns("brand_id", "code", "influencer_id", "discount_value", "discount_type", "is_active").
		Values(coupon.BrandID, coupon.Code, coupon.InfluencerID, coupon.DiscountValue, string(coupon.DiscountType), coupon.IsActive).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&coupon.ID, &coupon.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateCoupon
		}
		return fmt.Errorf("erro ao criar cupom: %w", err)
	}

	return nil
}

// AssignClassification trava a classificação com FOR SHARE e grava no cupom na
// mesma transação. Uma exclusão concorrente espera o commit ou faz a gravação falhar.
func (r *couponRepository) AssignClassification(ctx context.Context, brandID, couponID, classificationID string) error {
	lockQuery, lockArgs, err := squirrel.
		Select("is_active").
		From("coupon_classifications").
		Where(squirrel.Eq{"id": classificationID, "brand_id": brandID}).
		Suffix("FOR SHARE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	updateQuery, updateArgs, err := squirrel.
		Update("coupons").
		Set("classification_id", classificationID).
		Set("classification_updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": couponID, "brand_id": brandID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx postgres.Queryer) error {
		var isActive bool
		if err := tx.QueryRow(ctx, lockQuery, lockArgs...).Scan(&isActive); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrClassificationUnavailable
			}
			return fmt.Errorf("erro ao travar classificação: %w", err)
		}
		if !isActive {
			return ErrClassificationUnavailable
		}

		result, err := tx.Exec(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("erro ao classificar cupom: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
		}

		if affected == 0 {
			return sql.ErrNoRows
		}

		return nil
	})
}

func scanCoupon(row postgres.Row) (*domain.Coupon, error) {
	coupon := &domain.Coupon{}
	var discountType string

	err := row.Scan(
		&coupon.ID,
		&coupon.BrandID,
		&coupon.Code,
		&coupon.InfluencerID,
		&coupon.InfluencerName,
		&coupon.DiscountValue,
		&discountType,
		&coupon.IsActive,
		&coupon.ClassificationID,
		&coupon.ClassificationUpdatedAt,
		&coupon.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	coupon.DiscountType = domain.DiscountType(discountType)
	return coupon, nil
}
