// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
	"github.com/trackrcommerce/trackr-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	conversionsTable = "conversions c"
)

var conversionColumns = []string{
	"c.id",
	"c.brand_id",
	"c.order_id",
	"c.order_number",
	"c.coupon_id",
	"cp.code",
	"cp.classification_id",
	"c.order_amount",
	"c.commission_amount",
	"c.status",
	"c.order_is_real",
	"c.sale_date",
	"c.customer_id",
	"c.customer_email",
	"c.metadata",
}

// ConversionFilter são os predicados aplicados no banco. Campos nil/vazios não filtram.
type ConversionFilter struct {
	Range       *domain.DateRange
	Statuses    domain.StatusSet
	OrderIsReal *bool
	CouponID     *string
	CouponIDs    []string
	InfluencerID *string
}

type ConversionRepository interface {
	SelectConversions(ctx context.Context, brandID string, filter ConversionFilter) ([]*domain.Conversion, error)
	LogConversion(ctx context.Context, conversion *domain.Conversion) error
}

type conversionRepository struct {
	conn postgres.Queryer
}

func NewConversionRepository(conn postgres.Queryer) ConversionRepository {
	return &conversionRepository{
		conn: conn,
	}
}

func (r *conversionRepository) SelectConversions(ctx context.Context, brandID string, filter ConversionFilter) ([]*domain.Conversion, error) {
	queryBuilder := squirrel.
		Select(conversionColumns...).
		From(conversionsTable).
		LeftJoin("coupons cp ON cp.id = c.coupon_id").
		Where(squirrel.Eq{"c.brand_id": brandID}).
		OrderBy("c.sale_date ASC", "c.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	// Intervalo semiaberto: sale_date >= início AND sale_date < dia seguinte ao fim
	if filter.Range != nil {
		queryBuilder = queryBuilder.
			Where(squirrel.GtOrEq{"c.sale_date": filter.Range.Start}).
			Where(squirrel.Lt{"c.sale_date": filter.Range.End})
	}

	if len(filter.Statuses) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.status": filter.Statuses.Strings()})
	}

	if filter.OrderIsReal != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.order_is_real": *filter.OrderIsReal})
	}

	if filter.CouponID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.coupon_id": *filter.CouponID})
	}

	if len(filter.CouponIDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.coupon_id": filter.CouponIDs})
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

	conversions := make([]*domain.Conversion, 0)
	for rows.Next() {
		conversion, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conversão: %w", err)
		}
		conversions = append(conversions, conversion)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return conversions, nil
}

// LogConversion grava o pedido; um pedido já registrado para a marca é atualizado
func (r *conversionRepository) LogConversion(ctx context.Context, conversion *domain.Conversion) error {
	var metadataJSON []byte
	var err error

	if conversion.Metadata != nil {
		metadataJSON, err = json.Marshal(conversion.Metadata)
		if err != nil {
			return fmt.Errorf("erro ao serializar metadata para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("conversions").
		Columns(
			"brand_id",
			"order_id",
			"order_number",
			"coupon_id",
			"order_amount",
			"commission_amount",
			"status",
			"order_is_real",
			"sale_date",
			"customer_id",
			"customer_email",
			"metadata",
		).
		Values(
			conversion.BrandID,
			conversion.OrderID,
			conversion.OrderNumber,
			conversion.CouponID,
			conversion.OrderAmount,
			conversion.CommissionAmount,
			string(conversion.Status),
			conversion.OrderIsReal,
			conversion.SaleDate,
			conversion.CustomerID,
			conversion.CustomerEmail,
			metadataJSON,
		).
		Suffix(`
			ON CONFLICT (brand_id, order_id) DO UPDATE SET
				order_number = EXCLUDED.order_number,
				coupon_id = EXCLUDED.coupon_id,
				order_amount = EXCLUDED.order_amount,
				commission_amount = EXCLUDED.commission_amount,
				status = EXCLUDED.status,
				order_is_real = EXCLUDED.order_is_real,
				sale_date = EXCLUDED.sale_date,
				customer_id = EXCLUDED.customer_id,
				customer_email = EXCLUDED.customer_email,
				metadata = EXCLUDED.metadata
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(ctx, sqlQuery, args...).Scan(&conversion.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func scanConversion(row postgres.Row) (*domain.Conversion, error) {
	conversion := &domain.Conversion{}
	var status string
	var metadataJSON []byte

	err := row.Scan(
		&conversion.ID,
		&conversion.BrandID,
		&conversion.OrderID,
		&conversion.OrderNumber,
		&conversion.CouponID,
		&conversion.CouponCode,
		&conversion.CouponClassificationID,
		&conversion.OrderAmount,
		&conversion.CommissionAmount,
		&status,
		&conversion.OrderIsReal,
		&conversion.SaleDate,
		&conversion.CustomerID,
		&conversion.CustomerEmail,
		&metadataJSON,
	)
	if err != nil {
		return nil, err
	}

	conversion.Status = domain.ConversionStatus(status)

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &conversion.Metadata); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de metadata: %w", err)
		}
	}

	return conversion, nil
}
