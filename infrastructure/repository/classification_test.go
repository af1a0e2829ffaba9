package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackrcommerce/trackr-api/internal/domain"
)

func TestClassificationRepository_Upsert(t *testing.T) {
	now := time.Now()

	t.Run("Sem ID cria uma nova classificação ativa", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewClassificationRepository(conn)

		mock.ExpectQuery("INSERT INTO coupon_classifications").
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "updated_at"}).
				AddRow("class-1", true, now, now))

		classification := &domain.CouponClassification{BrandID: "brand-1", Name: "Embaixador", Color: "#ff0000"}
		require.NoError(t, repo.Upsert(context.Background(), classification))
		assert.Equal(t, "class-1", classification.ID)
		assert.True(t, classification.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Com ID atualiza a classificação existente", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewClassificationRepository(conn)

		mock.ExpectQuery("UPDATE coupon_classifications SET name = .+ RETURNING is_active").
			WillReturnRows(sqlmock.NewRows([]string{"is_active", "created_at", "updated_at"}).
				AddRow(false, now, now))

		classification := &domain.CouponClassification{ID: "class-1", BrandID: "brand-1", Name: "Parceiro", Color: "#00ff00"}
		require.NoError(t, repo.Upsert(context.Background(), classification))
		assert.False(t, classification.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClassificationRepository_SoftDelete(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewClassificationRepository(conn)

	mock.ExpectExec("UPDATE coupon_classifications SET is_active = ").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SoftDelete(context.Background(), "brand-1", "class-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
