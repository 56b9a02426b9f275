package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	"github.com/tipnest/tipnest_backend/internal/models"
	"github.com/tipnest/tipnest_backend/internal/utils/mapping"
)

type PgxPaymentMethodRepository struct {
	db *pgxpool.Pool
}

func newPgxPaymentMethodRepository(db *pgxpool.Pool) portsrepo.PaymentMethodRepository {
	return &PgxPaymentMethodRepository{db: db}
}

var _ portsrepo.PaymentMethodRepository = (*PgxPaymentMethodRepository)(nil)

func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(method)
	query := `
		INSERT INTO payment_methods (
			payment_method_id, user_id, brand, last4, is_default,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.PaymentMethodID, m.UserID, m.Brand, m.Last4, m.IsDefault,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment method: %w", err)
	}
	return nil
}

func (r *PgxPaymentMethodRepository) ListPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	query := `
		SELECT payment_method_id, user_id, brand, last4, is_default,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payment_methods
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	var ms []models.PaymentMethod
	for rows.Next() {
		var m models.PaymentMethod
		err := rows.Scan(
			&m.PaymentMethodID, &m.UserID, &m.Brand, &m.Last4, &m.IsDefault,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mapping.ToDomainPaymentMethodSlice(ms), nil
}

func (r *PgxPaymentMethodRepository) HasUsableMethod(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM payment_methods WHERE user_id = $1);
	`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payment methods: %w", err)
	}
	return exists, nil
}
