package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/prudhvinik1/odoosync/internal/models"
	"github.com/prudhvinik1/odoosync/internal/odoo"
	"github.com/prudhvinik1/odoosync/internal/repositories"
)

// ErrSyncInProgress is returned when another run holds the sync lock.
var ErrSyncInProgress = errors.New("another sync run is in progress")

var (
	contactFields = []string{"id", "name", "email"}
	invoiceFields = []string{"id", "name", "amount_total"}
)

// SyncService mirrors Odoo partners and invoices into the local store. It is
// the only writer of the contacts and invoices tables.
type SyncService struct {
	store  *database.Store
	remote odoo.Client
	logger *slog.Logger

	lock    repositories.SyncLockRepository
	lockTTL time.Duration
	status  repositories.SyncStatusRepository

	now func() time.Time
}

func NewSyncService(store *database.Store, remote odoo.Client, logger *slog.Logger) *SyncService {
	return &SyncService{
		store:  store,
		remote: remote,
		logger: logger,
		now:    time.Now,
	}
}

// WithLock makes Run refuse to start while another run holds the lock.
func (s *SyncService) WithLock(lock repositories.SyncLockRepository, ttl time.Duration) *SyncService {
	s.lock = lock
	s.lockTTL = ttl
	return s
}

// WithStatus publishes every entity report after it finishes.
func (s *SyncService) WithStatus(status repositories.SyncStatusRepository) *SyncService {
	s.status = status
	return s
}

// Run authenticates once and syncs each entity type in order, each in its own
// transaction. It stops at the first failure; entity types already synced in
// this run stay committed.
func (s *SyncService) Run(ctx context.Context, entities []models.EntityType) ([]*models.SyncReport, error) {
	runID := uuid.New()
	logger := s.logger.With("run_id", runID.String())

	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx, runID.String(), s.lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSyncInProgress
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), runID.String()); err != nil {
				logger.Warn("failed to release sync lock", "error", err)
			}
		}()
	}

	session, err := s.remote.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("authenticated with Odoo", "uid", session.UID)

	reports := make([]*models.SyncReport, 0, len(entities))
	for _, entity := range entities {
		report, err := s.SyncEntity(ctx, runID, session, entity)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			return reports, fmt.Errorf("failed to sync %s: %w", entity, err)
		}
	}
	return reports, nil
}

func (s *SyncService) SyncEntity(ctx context.Context, runID uuid.UUID, session *odoo.Session, entity models.EntityType) (*models.SyncReport, error) {
	switch entity {
	case models.EntityContacts:
		return s.SyncContacts(ctx, runID, session)
	case models.EntityInvoices:
		return s.SyncInvoices(ctx, runID, session)
	default:
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}
}

func (s *SyncService) SyncContacts(ctx context.Context, runID uuid.UUID, session *odoo.Session) (*models.SyncReport, error) {
	report := s.newReport(runID, models.EntityContacts)

	records, err := s.remote.SearchRead(ctx, session, odoo.ModelPartner, contactFields)
	if err != nil {
		return s.finish(ctx, report, err)
	}

	snapshot := make([]*models.Contact, 0, len(records))
	for i, rec := range records {
		contact, err := contactFromRecord(rec)
		if err != nil {
			return s.finish(ctx, report, fmt.Errorf("%s record %d: %w", odoo.ModelPartner, i, err))
		}
		snapshot = append(snapshot, contact)
	}
	report.Fetched = len(snapshot)

	err = s.store.WithTx(ctx, func(tx *sql.Tx) error {
		repo := repositories.NewSQLContactRepository(tx, s.store.Dialect())
		return reconcile[*models.Contact](ctx, repo, snapshot, report)
	})
	return s.finish(ctx, report, err)
}

func (s *SyncService) SyncInvoices(ctx context.Context, runID uuid.UUID, session *odoo.Session) (*models.SyncReport, error) {
	report := s.newReport(runID, models.EntityInvoices)

	records, err := s.remote.SearchRead(ctx, session, odoo.ModelMove, invoiceFields)
	if err != nil {
		return s.finish(ctx, report, err)
	}

	snapshot := make([]*models.Invoice, 0, len(records))
	for i, rec := range records {
		invoice, err := invoiceFromRecord(rec)
		if err != nil {
			return s.finish(ctx, report, fmt.Errorf("%s record %d: %w", odoo.ModelMove, i, err))
		}
		snapshot = append(snapshot, invoice)
	}
	report.Fetched = len(snapshot)

	err = s.store.WithTx(ctx, func(tx *sql.Tx) error {
		repo := repositories.NewSQLInvoiceRepository(tx, s.store.Dialect())
		return reconcile[*models.Invoice](ctx, repo, snapshot, report)
	})
	return s.finish(ctx, report, err)
}

// mirrorRepository is the slice of a repository reconcile needs.
type mirrorRepository[T models.Mirrored] interface {
	GetByRemoteID(ctx context.Context, remoteID int64) (T, error)
	Create(ctx context.Context, item T) error
	Update(ctx context.Context, item T) error
	Prune(ctx context.Context, keep []int64) (int64, error)
}

// reconcile upserts every snapshot item by remote id, in snapshot order, then
// deletes local rows the snapshot no longer contains. A remote id repeated in
// the snapshot is written twice, so the last occurrence wins.
func reconcile[T models.Mirrored](ctx context.Context, repo mirrorRepository[T], snapshot []T, report *models.SyncReport) error {
	keep := make([]int64, 0, len(snapshot))

	for _, item := range snapshot {
		existing, err := repo.GetByRemoteID(ctx, item.ForeignID())
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			if err := repo.Create(ctx, item); err != nil {
				return err
			}
			report.Created++
		case err != nil:
			return err
		default:
			item.SetLocalID(existing.LocalID())
			if err := repo.Update(ctx, item); err != nil {
				return err
			}
			report.Updated++
		}
		keep = append(keep, item.ForeignID())
	}

	deleted, err := repo.Prune(ctx, keep)
	if err != nil {
		return err
	}
	report.Deleted = deleted
	return nil
}

func contactFromRecord(rec odoo.Record) (*models.Contact, error) {
	id, err := rec.ID()
	if err != nil {
		return nil, err
	}
	return &models.Contact{
		RemoteID: id,
		Name:     rec.String("name"),
		Email:    rec.String("email"),
	}, nil
}

// invoiceFromRecord maps account.move's name onto the invoice number.
func invoiceFromRecord(rec odoo.Record) (*models.Invoice, error) {
	id, err := rec.ID()
	if err != nil {
		return nil, err
	}
	return &models.Invoice{
		RemoteID:    id,
		Number:      rec.String("name"),
		AmountTotal: rec.Float("amount_total"),
	}, nil
}

func (s *SyncService) newReport(runID uuid.UUID, entity models.EntityType) *models.SyncReport {
	return &models.SyncReport{
		RunID:     runID,
		Entity:    entity,
		StartedAt: s.now().UTC(),
	}
}

func (s *SyncService) finish(ctx context.Context, report *models.SyncReport, err error) (*models.SyncReport, error) {
	report.FinishedAt = s.now().UTC()
	logger := s.logger.With("run_id", report.RunID.String(), "entity", report.Entity)

	if err != nil {
		// The transaction was rolled back, so nothing was written.
		report.Created, report.Updated, report.Deleted = 0, 0, 0
		report.Status = models.SyncFailed
		report.Error = err.Error()
		logger.Error("sync failed", "error", err, "duration", report.Duration())
	} else {
		report.Status = models.SyncSucceeded
		logger.Info("sync complete",
			"fetched", report.Fetched,
			"created", report.Created,
			"updated", report.Updated,
			"deleted", report.Deleted,
			"duration", report.Duration(),
		)
	}

	if s.status != nil {
		if saveErr := s.status.Save(context.WithoutCancel(ctx), report); saveErr != nil {
			logger.Warn("failed to publish sync status", "error", saveErr)
		}
	}
	return report, err
}
