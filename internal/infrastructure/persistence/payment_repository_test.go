package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/investkaro/backend/internal/domain/collection"
	"github.com/investkaro/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func paymentRows(p *collection.Payment) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at",
		"client_id", "owner_user_id", "amount", "date", "account_ref",
		"status", "verified_by", "verified_at", "reject_note",
	}).AddRow(
		p.ID, p.CreatedAt, p.UpdatedAt,
		p.ClientID, p.OwnerUserID, p.Amount, p.Date, p.AccountRef,
		p.Status, p.VerifiedBy, p.VerifiedAt, p.RejectNote,
	)
}

func TestGormPaymentRepository_FindByID(t *testing.T) {
	t.Run("finds existing payment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		payment, err := collection.NewPayment(uuid.New(), uuid.New(), decimal.NewFromInt(1500), time.Now(), "HDFC-1")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(payment.ID, 1).
			WillReturnRows(paymentRows(payment))

		found, err := repo.FindByID(context.Background(), payment.ID)
		require.NoError(t, err)
		assert.Equal(t, payment.ID, found.ID)
		assert.True(t, found.Amount.Equal(decimal.NewFromInt(1500)))
		assert.Equal(t, collection.PaymentStatusPending, found.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to NOT_FOUND", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindByOwners(t *testing.T) {
	t.Run("empty owner set short-circuits without a query", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		payments, err := repo.FindByOwners(context.Background(), nil, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Empty(t, payments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero bounds leave the date unconstrained", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		ownerID := uuid.New()
		payment, err := collection.NewPayment(uuid.New(), ownerID, decimal.NewFromInt(100), time.Now(), "")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE owner_user_id IN \(\$1\) ORDER BY date DESC`).
			WithArgs(ownerID).
			WillReturnRows(paymentRows(payment))

		payments, err := repo.FindByOwners(context.Background(), []uuid.UUID{ownerID}, time.Time{}, time.Time{})
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bounded range adds both date predicates", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		ownerID := uuid.New()
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE owner_user_id IN \(\$1\) AND date >= \$2 AND date < \$3 ORDER BY date DESC`).
			WithArgs(ownerID, from, to).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		payments, err := repo.FindByOwners(context.Background(), []uuid.UUID{ownerID}, from, to)
		require.NoError(t, err)
		assert.Empty(t, payments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_CreateWithSplits(t *testing.T) {
	t.Run("payment and splits land in one transaction", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		payment, err := collection.NewPayment(uuid.New(), uuid.New(), decimal.NewFromInt(1000), time.Now(), "")
		require.NoError(t, err)
		split, err := collection.NewSplit(payment, uuid.New(), decimal.NewFromInt(40))
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "payments"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "payment_splits"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.CreateWithSplits(context.Background(), payment, []*collection.Split{split})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("split failure rolls the payment back", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		payment, err := collection.NewPayment(uuid.New(), uuid.New(), decimal.NewFromInt(1000), time.Now(), "")
		require.NoError(t, err)
		split, err := collection.NewSplit(payment, uuid.New(), decimal.NewFromInt(40))
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "payments"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "payment_splits"`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err = repo.CreateWithSplits(context.Background(), payment, []*collection.Split{split})
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSplitRepository_FindPaymentIDsByRecipients(t *testing.T) {
	t.Run("empty recipient set short-circuits", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSplitRepository(gormDB)

		ids, err := repo.FindPaymentIDsByRecipients(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns distinct payment ids", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSplitRepository(gormDB)

		recipientID := uuid.New()
		paymentID := uuid.New()

		mock.ExpectQuery(`SELECT DISTINCT "payment_id" FROM "payment_splits" WHERE recipient_user_id IN \(\$1\)`).
			WithArgs(recipientID).
			WillReturnRows(sqlmock.NewRows([]string{"payment_id"}).AddRow(paymentID))

		ids, err := repo.FindPaymentIDsByRecipients(context.Background(), []uuid.UUID{recipientID})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{paymentID}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
