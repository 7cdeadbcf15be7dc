package service

import (
	"context"
	"errors"
	"testing"

	"demo-bank/internal/core/domain"
	"demo-bank/internal/core/ports"
	"demo-bank/internal/core/ports/mocks"
	"demo-bank/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type transferTestDeps struct {
	svc        *TransferServiceImpl
	userRepo   *mocks.MockUserRepository
	txRepo     *mocks.MockTransactionRepository
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupTransferService(t *testing.T) *transferTestDeps {
	ctrl := gomock.NewController(t)
	d := &transferTestDeps{
		userRepo:   mocks.NewMockUserRepository(ctrl),
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewTransferService(d.userRepo, d.txRepo, d.transactor, zerolog.Nop())
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (m *mockTx) Rollback(_ context.Context) error {
	if m.committed {
		return pgx.ErrTxClosed
	}
	m.rolledBack = true
	return nil
}

func (m *mockTx) Commit(_ context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}

// decimalMatcher matches a decimal.Decimal argument by numeric value.
type decimalMatcher struct{ want decimal.Decimal }

func decimalEq(s string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return "is decimal " + m.want.String() }

func demoUser(balance string) *domain.User {
	return &domain.User{ID: 1, Username: "demo_user", Balance: decimal.RequireFromString(balance)}
}

// ==================== Transfer Tests ====================

func TestTransferService_Transfer_Success(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(demoUser("10000.00"), nil)
	d.userRepo.EXPECT().UpdateBalance(ctx, tx, int64(1), decimalEq("7500.00")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, txn *domain.Transaction) error {
			assert.Equal(t, int64(1), txn.UserID)
			assert.Equal(t, "-2500.00", domain.FormatAmount(txn.Amount))
			require.NotNil(t, txn.Recipient)
			assert.Equal(t, "alice", *txn.Recipient)
			assert.False(t, txn.CreatedAt.IsZero())
			txn.ID = 10
			return nil
		})

	err := d.svc.Transfer(ctx, ports.TransferRequest{UserID: 1, Recipient: "  alice ", Amount: "2500"})
	require.NoError(t, err)
	assert.True(t, tx.committed)
}

func TestTransferService_Transfer_ExactBalance(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(demoUser("100.00"), nil)
	d.userRepo.EXPECT().UpdateBalance(ctx, tx, int64(1), decimalEq("0")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	err := d.svc.Transfer(ctx, ports.TransferRequest{UserID: 1, Recipient: "bob", Amount: "100.00"})
	require.NoError(t, err)
	assert.True(t, tx.committed)
}

func TestTransferService_Transfer_EmptyRecipientStoredAsNull(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(demoUser("50.00"), nil)
	d.userRepo.EXPECT().UpdateBalance(ctx, tx, int64(1), decimalEq("49.99")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, txn *domain.Transaction) error {
			assert.Nil(t, txn.Recipient)
			return nil
		})

	err := d.svc.Transfer(ctx, ports.TransferRequest{UserID: 1, Recipient: "   ", Amount: "0.01"})
	require.NoError(t, err)
}

func TestTransferService_Transfer_InsufficientFunds(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(demoUser("100.00"), nil)
	// No UpdateBalance, no Create

	err := d.svc.Transfer(ctx, ports.TransferRequest{UserID: 1, Recipient: "bob", Amount: "500"})
	assertAppError(t, err, apperror.CodeInsufficientFunds)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestTransferService_Transfer_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"negative", "-5"},
		{"not a number", "abc"},
		{"empty", ""},
		{"three decimals", "1.001"},
		{"too large", "1000000000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := setupTransferService(t)
			defer d.ctrl.Finish()
			// No transactor calls expected

			err := d.svc.Transfer(context.Background(), ports.TransferRequest{UserID: 1, Recipient: "bob", Amount: tc.amount})
			assertAppError(t, err, apperror.CodeInvalidAmount)
		})
	}
}

func TestTransferService_Transfer_RecipientTooLong(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	long := make([]rune, MaxRecipientLength+1)
	for i := range long {
		long[i] = 'é'
	}

	err := d.svc.Transfer(context.Background(), ports.TransferRequest{UserID: 1, Recipient: string(long), Amount: "1"})
	assertAppError(t, err, apperror.CodeInvalidAmount)
}

func TestTransferService_Transfer_StorageFaults(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		setup func(d *transferTestDeps, ctx context.Context, tx *mockTx)
	}{
		{
			name: "begin",
			setup: func(d *transferTestDeps, ctx context.Context, tx *mockTx) {
				d.transactor.EXPECT().Begin(ctx).Return(nil, boom)
			},
		},
		{
			name: "lock",
			setup: func(d *transferTestDeps, ctx context.Context, tx *mockTx) {
				d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
				d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(nil, boom)
			},
		},
		{
			name: "sender missing",
			setup: func(d *transferTestDeps, ctx context.Context, tx *mockTx) {
				d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
				d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(nil, nil)
			},
		},
		{
			name: "update",
			setup: func(d *transferTestDeps, ctx context.Context, tx *mockTx) {
				d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
				d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(demoUser("10.00"), nil)
				d.userRepo.EXPECT().UpdateBalance(ctx, tx, int64(1), gomock.Any()).Return(boom)
			},
		},
		{
			name: "insert",
			setup: func(d *transferTestDeps, ctx context.Context, tx *mockTx) {
				d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
				d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(demoUser("10.00"), nil)
				d.userRepo.EXPECT().UpdateBalance(ctx, tx, int64(1), gomock.Any()).Return(nil)
				d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(boom)
			},
		},
		{
			name: "commit",
			setup: func(d *transferTestDeps, ctx context.Context, tx *mockTx) {
				tx.commitErr = boom
				d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
				d.userRepo.EXPECT().GetByIDForUpdate(ctx, tx, int64(1)).Return(demoUser("10.00"), nil)
				d.userRepo.EXPECT().UpdateBalance(ctx, tx, int64(1), gomock.Any()).Return(nil)
				d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := setupTransferService(t)
			defer d.ctrl.Finish()

			ctx := context.Background()
			tx := &mockTx{}
			tc.setup(d, ctx, tx)

			err := d.svc.Transfer(ctx, ports.TransferRequest{UserID: 1, Recipient: "bob", Amount: "5"})
			assertAppError(t, err, apperror.CodeTransferFailed)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "Transfer failed", appErr.Message)
			assert.False(t, tx.committed)
		})
	}
}

// ==================== Helper ====================

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
