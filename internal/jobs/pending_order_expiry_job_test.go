package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type stubOrderPaymentUoW struct {
	mock.Mock
}

func (s *stubOrderPaymentUoW) Begin(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

func (s *stubOrderPaymentUoW) Commit(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

func (s *stubOrderPaymentUoW) Rollback(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

func (s *stubOrderPaymentUoW) OrderRepository() ports.OrderRepository {
	return s.Called().Get(0).(ports.OrderRepository)
}

func (s *stubOrderPaymentUoW) PaymentRepository() ports.PaymentRepository {
	return s.Called().Get(0).(ports.PaymentRepository)
}

type stubOrderPaymentUoWFactory struct {
	uow commands.OrderPaymentUoW
}

func (s *stubOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	return s.uow
}

type stubGateway struct {
	mock.Mock
}

func (s *stubGateway) Charge(
	ctx context.Context, amount kernel.Money, method payment.Method,
) (ports.ChargeResult, error) {
	args := s.Called(ctx, amount, method)
	return args.Get(0).(ports.ChargeResult), args.Error(1)
}

func (s *stubGateway) Refund(ctx context.Context, transactionID string, amount kernel.Money) error {
	return s.Called(ctx, transactionID, amount).Error(0)
}

type stubPublisher struct {
	mock.Mock
}

func (s *stubPublisher) PublishStatusChange(ctx context.Context, event ports.StatusChangeEvent) error {
	return s.Called(ctx, event).Error(0)
}

// TestPendingOrderExpiryJobStartStop verifies the job starts and stops
// cleanly without leaking the scheduler goroutine.
func TestPendingOrderExpiryJobStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := commands.NewExpirePendingOrdersCommandHandler(
		&stubOrderPaymentUoWFactory{uow: new(stubOrderPaymentUoW)},
		new(stubGateway), new(stubPublisher), logger,
	)

	job := jobs.NewPendingOrderExpiryJob(handler, 15*time.Minute, logger)
	require.NoError(t, job.Start())
	job.Stop()
}
