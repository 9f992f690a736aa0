package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkpoint/storefront-service/internal/domain"
	orderStorage "github.com/perkpoint/storefront-service/internal/infra/storage/order"
	reservationStorage "github.com/perkpoint/storefront-service/internal/infra/storage/reservation"
	"github.com/perkpoint/storefront-service/internal/integrations/stripepay"
	"github.com/perkpoint/storefront-service/internal/service/orders/models"
	"github.com/perkpoint/storefront-service/pkg/ptr"
)

type fakeOrderRepo struct {
	orders map[int64]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[int64]*domain.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, orderStorage.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) GetByPaymentIntentID(_ context.Context, intentID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.PaymentIntentID != nil && *o.PaymentIntentID == intentID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, orderStorage.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListWithFilter(_ context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if !filter.IncludeInactive && !o.IsActive() {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return orderStorage.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) SetPaymentIntent(_ context.Context, id int64, intentID string) error {
	o, ok := r.orders[id]
	if !ok {
		return orderStorage.ErrOrderNotFound
	}
	o.PaymentIntentID = &intentID
	return nil
}

func (r *fakeOrderRepo) UpdatePaymentStatus(_ context.Context, id int64, status domain.PaymentStatus, paymentError *string) error {
	o, ok := r.orders[id]
	if !ok {
		return orderStorage.ErrOrderNotFound
	}
	o.PaymentStatus = status
	o.PaymentError = paymentError
	return nil
}

type fakeReservationRepo struct {
	deleted []int64
	missing bool
}

func (r *fakeReservationRepo) DeleteByOrderID(_ context.Context, orderID int64) error {
	if r.missing {
		return reservationStorage.ErrReservationNotFound
	}
	r.deleted = append(r.deleted, orderID)
	return nil
}

type fakePaymentClient struct {
	lastKey      string
	lastAmount   int64
	lastMetadata map[string]string
	existing     *stripepay.PaymentIntent
}

func (c *fakePaymentClient) CreateIntent(amount int64, idempotencyKey string, metadata map[string]string) (*stripepay.PaymentIntent, error) {
	c.lastAmount = amount
	c.lastKey = idempotencyKey
	c.lastMetadata = metadata
	return &stripepay.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       amount,
		Currency:     "gbp",
		Status:       "requires_payment_method",
	}, nil
}

func (c *fakePaymentClient) GetIntent(intentID string) (*stripepay.PaymentIntent, error) {
	if c.existing == nil || c.existing.ID != intentID {
		return nil, stripepay.ErrGetIntent
	}
	return c.existing, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testOrder(id int64) *domain.Order {
	return &domain.Order{
		ID:            id,
		UserID:        "user-1",
		UserEmail:     "user@example.com",
		Total:         10.55,
		PickupDate:    time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		PickupTime:    "11:30",
		Status:        domain.OrderStatusNew,
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func TestGetByID_OwnerAccess(t *testing.T) {
	svc := NewService(newFakeOrderRepo(testOrder(1)), &fakeReservationRepo{}, nil, nopLogger{})
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 1, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(ctx, 1, "user-2")
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Пустой userID означает админский доступ
	_, err = svc.GetByID(ctx, 1, "")
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 99, "user-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatus_AllowsForwardTransition(t *testing.T) {
	repo := newFakeOrderRepo(testOrder(1))
	svc := NewService(repo, &fakeReservationRepo{}, nil, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "processing"})
	require.NoError(t, err)
	assert.Equal(t, "processing", resp.Status)
	assert.Equal(t, domain.OrderStatusProcessing, repo.orders[1].Status)
}

func TestUpdateStatus_RejectsTerminalTransition(t *testing.T) {
	order := testOrder(1)
	order.Status = domain.OrderStatusCompleted
	svc := NewService(newFakeOrderRepo(order), &fakeReservationRepo{}, nil, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "processing"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(newFakeOrderRepo(testOrder(1)), &fakeReservationRepo{}, nil, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_CancelReleasesReservation(t *testing.T) {
	reservations := &fakeReservationRepo{}
	svc := NewService(newFakeOrderRepo(testOrder(1)), reservations, nil, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, reservations.deleted)
}

func TestUpdateStatus_CancelToleratesMissingReservation(t *testing.T) {
	reservations := &fakeReservationRepo{missing: true}
	svc := NewService(newFakeOrderRepo(testOrder(1)), reservations, nil, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.NoError(t, err)
}

func TestList_FiltersInvalidInput(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), &fakeReservationRepo{}, nil, nopLogger{})
	ctx := context.Background()

	_, err := svc.List(ctx, &models.ListOrdersRequest{Date: ptr.Ptr("05/09/2026")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, &models.ListOrdersRequest{Status: ptr.Ptr("shipped")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.List(ctx, &models.ListOrdersRequest{PaymentStatus: ptr.Ptr("refunded")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestList_ExcludesCancelledByDefault(t *testing.T) {
	cancelled := testOrder(2)
	cancelled.Status = domain.OrderStatusCancelled
	svc := NewService(newFakeOrderRepo(testOrder(1), cancelled), &fakeReservationRepo{}, nil, nopLogger{})
	ctx := context.Background()

	resp, err := svc.List(ctx, &models.ListOrdersRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 1)

	resp, err = svc.List(ctx, &models.ListOrdersRequest{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 2)
}

func TestCreatePaymentIntent_ConvertsToMinorUnits(t *testing.T) {
	repo := newFakeOrderRepo(testOrder(1))
	payments := &fakePaymentClient{}
	svc := NewService(repo, &fakeReservationRepo{}, payments, nopLogger{})

	resp, err := svc.CreatePaymentIntent(context.Background(), 1, "user-1")
	require.NoError(t, err)

	// 10.55 GBP -> 1055 pence
	assert.Equal(t, int64(1055), payments.lastAmount)
	assert.Equal(t, "order-1", payments.lastKey)
	assert.Equal(t, "1", payments.lastMetadata["order_id"])
	assert.Equal(t, "pi_test", resp.IntentID)
	require.NotNil(t, repo.orders[1].PaymentIntentID)
	assert.Equal(t, "pi_test", *repo.orders[1].PaymentIntentID)
}

func TestCreatePaymentIntent_ReusesActiveIntent(t *testing.T) {
	order := testOrder(1)
	order.PaymentIntentID = ptr.Ptr("pi_existing")
	payments := &fakePaymentClient{existing: &stripepay.PaymentIntent{
		ID:           "pi_existing",
		ClientSecret: "pi_existing_secret",
		Amount:       1055,
		Currency:     "gbp",
		Status:       "requires_payment_method",
	}}
	svc := NewService(newFakeOrderRepo(order), &fakeReservationRepo{}, payments, nopLogger{})

	resp, err := svc.CreatePaymentIntent(context.Background(), 1, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_existing", resp.IntentID)
	assert.Equal(t, "pi_existing_secret", resp.ClientSecret)
	// Новое намерение не создавалось
	assert.Empty(t, payments.lastKey)
}

func TestCreatePaymentIntent_ReplacesCanceledIntent(t *testing.T) {
	order := testOrder(1)
	order.PaymentIntentID = ptr.Ptr("pi_existing")
	payments := &fakePaymentClient{existing: &stripepay.PaymentIntent{
		ID:     "pi_existing",
		Status: "canceled",
	}}
	repo := newFakeOrderRepo(order)
	svc := NewService(repo, &fakeReservationRepo{}, payments, nopLogger{})

	resp, err := svc.CreatePaymentIntent(context.Background(), 1, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_test", resp.IntentID)
	assert.Equal(t, "order-1", payments.lastKey)
}

func TestCreatePaymentIntent_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("foreign order", func(t *testing.T) {
		svc := NewService(newFakeOrderRepo(testOrder(1)), &fakeReservationRepo{}, &fakePaymentClient{}, nopLogger{})
		_, err := svc.CreatePaymentIntent(ctx, 1, "user-2")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already paid", func(t *testing.T) {
		order := testOrder(1)
		order.PaymentStatus = domain.PaymentStatusCompleted
		svc := NewService(newFakeOrderRepo(order), &fakeReservationRepo{}, &fakePaymentClient{}, nopLogger{})
		_, err := svc.CreatePaymentIntent(ctx, 1, "user-1")
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("payments disabled", func(t *testing.T) {
		svc := NewService(newFakeOrderRepo(testOrder(1)), &fakeReservationRepo{}, nil, nopLogger{})
		_, err := svc.CreatePaymentIntent(ctx, 1, "user-1")
		assert.ErrorIs(t, err, ErrPaymentFailed)
	})
}

func TestApplyPaymentSucceeded(t *testing.T) {
	order := testOrder(1)
	order.PaymentIntentID = ptr.Ptr("pi_test")
	repo := newFakeOrderRepo(order)
	svc := NewService(repo, &fakeReservationRepo{}, nil, nopLogger{})

	require.NoError(t, svc.ApplyPaymentSucceeded(context.Background(), "pi_test"))
	assert.Equal(t, domain.PaymentStatusCompleted, repo.orders[1].PaymentStatus)

	// Неизвестный intent молча игнорируется
	assert.NoError(t, svc.ApplyPaymentSucceeded(context.Background(), "pi_unknown"))
}

func TestApplyPaymentFailed_StoresReason(t *testing.T) {
	order := testOrder(1)
	order.PaymentIntentID = ptr.Ptr("pi_test")
	repo := newFakeOrderRepo(order)
	svc := NewService(repo, &fakeReservationRepo{}, nil, nopLogger{})

	require.NoError(t, svc.ApplyPaymentFailed(context.Background(), "pi_test", "card_declined"))
	assert.Equal(t, domain.PaymentStatusFailed, repo.orders[1].PaymentStatus)
	require.NotNil(t, repo.orders[1].PaymentError)
	assert.Equal(t, "card_declined", *repo.orders[1].PaymentError)
}
