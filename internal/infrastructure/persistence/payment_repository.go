package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/investkaro/backend/internal/domain/collection"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements PaymentRepository using GORM.
// Payments are append-only; the repository exposes no delete.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]collection.Payment, error) {
	var paymentModels []models.PaymentModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter, "account_ref ILIKE ?", 1,
		"date", "amount", "status", "created_at")

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(paymentModels), nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByClient finds every payment recorded against a client
func (r *GormPaymentRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]collection.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(paymentModels), nil
}

// FindByOwners finds payments owned by any of the given users. Zero
// bounds mean an unbounded date range.
func (r *GormPaymentRepository) FindByOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]collection.Payment, error) {
	if len(ownerIDs) == 0 {
		return []collection.Payment{}, nil
	}
	query := r.db.WithContext(ctx).
		Where("owner_user_id IN ?", ownerIDs)
	query = applyDateRange(query, from, to)

	var paymentModels []models.PaymentModel
	if err := query.Order("date DESC").Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(paymentModels), nil
}

// FindByStatus finds payments in the given verification state
func (r *GormPaymentRepository) FindByStatus(ctx context.Context, status collection.PaymentStatus, filter shared.Filter) ([]collection.Payment, error) {
	var paymentModels []models.PaymentModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("status = ?", status),
		filter, "account_ref ILIKE ?", 1,
		"date", "amount", "status", "created_at")

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(paymentModels), nil
}

// FindByDateRange finds payments dated inside [from, to)
func (r *GormPaymentRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]collection.Payment, error) {
	query := applyDateRange(r.db.WithContext(ctx), from, to)

	var paymentModels []models.PaymentModel
	if err := query.Order("date DESC").Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(paymentModels), nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *collection.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// CreateWithSplits persists the payment and its splits in one
// transaction so a partial write can never leave orphan splits.
func (r *GormPaymentRepository) CreateWithSplits(ctx context.Context, payment *collection.Payment, splits []*collection.Split) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
			return err
		}
		for _, split := range splits {
			if err := tx.Create(models.SplitModelFromDomain(split)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func applyDateRange(query *gorm.DB, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date < ?", to)
	}
	return query
}

func paymentsToDomain(paymentModels []models.PaymentModel) []collection.Payment {
	payments := make([]collection.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}

var _ collection.PaymentRepository = (*GormPaymentRepository)(nil)

// GormSplitRepository implements SplitRepository using GORM. Reads only;
// splits are written through CreateWithSplits.
type GormSplitRepository struct {
	db *gorm.DB
}

// NewGormSplitRepository creates a new GormSplitRepository
func NewGormSplitRepository(db *gorm.DB) *GormSplitRepository {
	return &GormSplitRepository{db: db}
}

// FindByPayment finds the splits of one payment
func (r *GormSplitRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]collection.Split, error) {
	var splitModels []models.SplitModel
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Find(&splitModels).Error; err != nil {
		return nil, err
	}
	return splitsToDomain(splitModels), nil
}

// FindByPayments finds the splits of many payments, grouped by payment
func (r *GormSplitRepository) FindByPayments(ctx context.Context, paymentIDs []uuid.UUID) (map[uuid.UUID][]collection.Split, error) {
	out := make(map[uuid.UUID][]collection.Split)
	if len(paymentIDs) == 0 {
		return out, nil
	}
	var splitModels []models.SplitModel
	if err := r.db.WithContext(ctx).
		Where("payment_id IN ?", paymentIDs).
		Find(&splitModels).Error; err != nil {
		return nil, err
	}
	for i := range splitModels {
		split := splitModels[i].ToDomain()
		out[split.PaymentID] = append(out[split.PaymentID], *split)
	}
	return out, nil
}

// FindByRecipient finds every split granted to one user
func (r *GormSplitRepository) FindByRecipient(ctx context.Context, recipientUserID uuid.UUID) ([]collection.Split, error) {
	var splitModels []models.SplitModel
	if err := r.db.WithContext(ctx).
		Where("recipient_user_id = ?", recipientUserID).
		Find(&splitModels).Error; err != nil {
		return nil, err
	}
	return splitsToDomain(splitModels), nil
}

// FindPaymentIDsByRecipients finds the distinct payments on which any of
// the given users holds a split.
func (r *GormSplitRepository) FindPaymentIDsByRecipients(ctx context.Context, recipientUserIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(recipientUserIDs) == 0 {
		return []uuid.UUID{}, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.SplitModel{}).
		Distinct("payment_id").
		Where("recipient_user_id IN ?", recipientUserIDs).
		Pluck("payment_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func splitsToDomain(splitModels []models.SplitModel) []collection.Split {
	splits := make([]collection.Split, len(splitModels))
	for i, model := range splitModels {
		splits[i] = *model.ToDomain()
	}
	return splits
}

var _ collection.SplitRepository = (*GormSplitRepository)(nil)
