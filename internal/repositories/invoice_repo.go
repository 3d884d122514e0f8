package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/prudhvinik1/odoosync/internal/models"
)

type SQLInvoiceRepository struct {
	db      database.Querier
	dialect database.Dialect
}

func NewSQLInvoiceRepository(db database.Querier, dialect database.Dialect) *SQLInvoiceRepository {
	return &SQLInvoiceRepository{db: db, dialect: dialect}
}

func (r *SQLInvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	query := `SELECT id, remote_id, number, amount_total FROM invoices ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*models.Invoice, 0)
	for rows.Next() {
		var invoice models.Invoice
		if err := rows.Scan(&invoice.ID, &invoice.RemoteID, &invoice.Number, &invoice.AmountTotal); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, &invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

func (r *SQLInvoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	query := `SELECT id, remote_id, number, amount_total FROM invoices WHERE id = ?`

	var invoice models.Invoice
	err := r.db.QueryRowContext(ctx, database.Rebind(r.dialect, query), id).
		Scan(&invoice.ID, &invoice.RemoteID, &invoice.Number, &invoice.AmountTotal)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

func (r *SQLInvoiceRepository) GetByRemoteID(ctx context.Context, remoteID int64) (*models.Invoice, error) {
	query := `SELECT id, remote_id, number, amount_total FROM invoices WHERE remote_id = ?`

	var invoice models.Invoice
	err := r.db.QueryRowContext(ctx, database.Rebind(r.dialect, query), remoteID).
		Scan(&invoice.ID, &invoice.RemoteID, &invoice.Number, &invoice.AmountTotal)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice by remote id: %w", err)
	}
	return &invoice, nil
}

func (r *SQLInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `INSERT INTO invoices (remote_id, number, amount_total)
	          VALUES (?, ?, ?)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, database.Rebind(r.dialect, query),
		invoice.RemoteID,
		invoice.Number,
		invoice.AmountTotal,
	).Scan(&invoice.ID)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *SQLInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	query := `UPDATE invoices SET remote_id = ?, number = ?, amount_total = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, database.Rebind(r.dialect, query),
		invoice.RemoteID,
		invoice.Number,
		invoice.AmountTotal,
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLInvoiceRepository) Prune(ctx context.Context, keep []int64) (int64, error) {
	deleted, err := pruneMissing(ctx, r.db, r.dialect, "invoices", keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune invoices: %w", err)
	}
	return deleted, nil
}
