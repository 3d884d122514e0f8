package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/prudhvinik1/odoosync/internal/models"
)

var ErrNotFound = errors.New("not found")

type SQLContactRepository struct {
	db      database.Querier
	dialect database.Dialect
}

func NewSQLContactRepository(db database.Querier, dialect database.Dialect) *SQLContactRepository {
	return &SQLContactRepository{db: db, dialect: dialect}
}

func (r *SQLContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	query := `SELECT id, remote_id, name, email FROM contacts ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		var contact models.Contact
		if err := rows.Scan(&contact.ID, &contact.RemoteID, &contact.Name, &contact.Email); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, &contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

func (r *SQLContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	query := `SELECT id, remote_id, name, email FROM contacts WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *SQLContactRepository) GetByRemoteID(ctx context.Context, remoteID int64) (*models.Contact, error) {
	query := `SELECT id, remote_id, name, email FROM contacts WHERE remote_id = ?`
	return r.getOne(ctx, query, remoteID)
}

func (r *SQLContactRepository) getOne(ctx context.Context, query string, arg int64) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.QueryRowContext(ctx, database.Rebind(r.dialect, query), arg).
		Scan(&contact.ID, &contact.RemoteID, &contact.Name, &contact.Email)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

func (r *SQLContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	query := `INSERT INTO contacts (remote_id, name, email)
	          VALUES (?, ?, ?)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, database.Rebind(r.dialect, query),
		contact.RemoteID,
		contact.Name,
		contact.Email,
	).Scan(&contact.ID)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r *SQLContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	query := `UPDATE contacts SET remote_id = ?, name = ?, email = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, database.Rebind(r.dialect, query),
		contact.RemoteID,
		contact.Name,
		contact.Email,
		contact.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune deletes every contact whose remote_id is not in keep.
func (r *SQLContactRepository) Prune(ctx context.Context, keep []int64) (int64, error) {
	deleted, err := pruneMissing(ctx, r.db, r.dialect, "contacts", keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune contacts: %w", err)
	}
	return deleted, nil
}
