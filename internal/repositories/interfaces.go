package repositories

import (
	"context"
	"time"

	"github.com/prudhvinik1/odoosync/internal/models"
)

type ContactRepository interface {
	List(ctx context.Context) ([]*models.Contact, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	GetByRemoteID(ctx context.Context, remoteID int64) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	Prune(ctx context.Context, keep []int64) (int64, error)
}

type InvoiceRepository interface {
	List(ctx context.Context) ([]*models.Invoice, error)
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)
	GetByRemoteID(ctx context.Context, remoteID int64) (*models.Invoice, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, invoice *models.Invoice) error
	Prune(ctx context.Context, keep []int64) (int64, error)
}

type SyncLockRepository interface {
	Acquire(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, owner string) error
}

type SyncStatusRepository interface {
	Save(ctx context.Context, report *models.SyncReport) error
	Get(ctx context.Context, entity models.EntityType) (*models.SyncReport, error)
	GetAll(ctx context.Context) ([]*models.SyncReport, error)
}
