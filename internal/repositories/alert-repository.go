package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lending-system/internal/entities"
	apperrors "lending-system/pkg/errors"
)

type AlertRepositoryInterface interface {
	CreateAlert(ctx context.Context, tx pgx.Tx, alert entities.AdminAlert) (uint64, error)
	GetAlerts(ctx context.Context, onlyUnacknowledged bool) ([]entities.AdminAlert, error)
	Acknowledge(ctx context.Context, id uint64, userID uint64) error
	HasAlertForLoan(ctx context.Context, loanID uint64, alertType string) (bool, error)
}

type AlertRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAlertRepository(storage *pgxpool.Pool, logger *zap.Logger) AlertRepositoryInterface {
	return &AlertRepository{storage: storage, logger: logger}
}

func (r *AlertRepository) CreateAlert(ctx context.Context, tx pgx.Tx, alert entities.AdminAlert) (uint64, error) {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}
	var id uint64
	err := q.QueryRow(ctx, `
        INSERT INTO admin_alerts (type, loan_request_id, equipment_id, message)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, alert.Type, alert.LoanRequestID, alert.EquipmentID, alert.Message).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AlertRepository) GetAlerts(ctx context.Context, onlyUnacknowledged bool) ([]entities.AdminAlert, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id, type, loan_request_id, equipment_id, message, is_acknowledged, acknowledged_by, created_at").
		From("admin_alerts").
		OrderBy("created_at DESC")
	if onlyUnacknowledged {
		builder = builder.Where(sq.Eq{"is_acknowledged": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.AdminAlert
	for rows.Next() {
		var a entities.AdminAlert
		err = rows.Scan(&a.ID, &a.Type, &a.LoanRequestID, &a.EquipmentID,
			&a.Message, &a.IsAcknowledged, &a.AcknowledgedBy, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AlertRepository) Acknowledge(ctx context.Context, id uint64, userID uint64) error {
	result, err := r.storage.Exec(ctx, `
        UPDATE admin_alerts
        SET is_acknowledged = TRUE, acknowledged_by = $1
        WHERE id = $2 AND is_acknowledged = FALSE
    `, userID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasAlertForLoan защищает от дублей при повторных проходах фонового обходчика.
func (r *AlertRepository) HasAlertForLoan(ctx context.Context, loanID uint64, alertType string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `
        SELECT EXISTS(SELECT 1 FROM admin_alerts WHERE loan_request_id = $1 AND type = $2)
    `, loanID, alertType).Scan(&exists)
	return exists, err
}
