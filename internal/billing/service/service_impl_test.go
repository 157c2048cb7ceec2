package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/reciply/reciply/internal/billing/domain"
	"github.com/reciply/reciply/internal/billing/repository"
	"github.com/reciply/reciply/internal/clock"
	"github.com/reciply/reciply/internal/config"
	userdomain "github.com/reciply/reciply/internal/user/domain"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test"

type creditCall struct {
	userID  string
	credits int64
}

type fakeUserService struct {
	calls []creditCall
}

func (f *fakeUserService) EnsureUser(context.Context, string, string) (userdomain.User, error) {
	return userdomain.User{}, nil
}

func (f *fakeUserService) GetByID(context.Context, string) (userdomain.User, error) {
	return userdomain.User{}, nil
}

func (f *fakeUserService) CheckGenerationAllowance(context.Context, string) (userdomain.User, error) {
	return userdomain.User{}, nil
}

func (f *fakeUserService) ConsumeCredit(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeUserService) SetCredits(_ context.Context, userID string, credits int64) error {
	f.calls = append(f.calls, creditCall{userID, credits})
	return nil
}

func (f *fakeUserService) SetBanned(context.Context, string, bool) error { return nil }

func (f *fakeUserService) List(context.Context, userdomain.ListUserRequest) (userdomain.ListUserResponse, error) {
	return userdomain.ListUserResponse{}, nil
}

type billingFixture struct {
	svc   domain.Service
	db    *gorm.DB
	users *fakeUserService
	node  *snowflake.Node
	clock *clock.FakeClock
}

func setupBilling(t *testing.T) *billingFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Subscription{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &billingFixture{
		db:    db,
		users: &fakeUserService{},
		node:  node,
		clock: clock.NewFakeClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)),
	}

	cfg := config.Config{}
	cfg.Billing.WebhookSecret = testWebhookSecret

	f.svc = New(Params{
		Config: cfg,
		DB:     db,
		Log:    zap.NewNop(),
		Clock:  f.clock,
		Node:   node,
		Users:  f.users,
		Repo:   repository.Provide(),
	})
	return f
}

func signedPayload(t *testing.T, eventType string, object map[string]any) ([]byte, string) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"id":   "evt_test",
		"type": eventType,
		"data": map[string]any{"object": object},
	})
	require.NoError(t, err)

	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, testWebhookSecret)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
	return payload, header
}

func (f *billingFixture) seedSubscription(t *testing.T, userID, customerID string) {
	t.Helper()
	now := f.clock.Now()
	require.NoError(t, repository.Provide().Insert(context.Background(), f.db, &domain.Subscription{
		ID:                 f.node.Generate(),
		UserID:             userID,
		ProviderCustomerID: customerID,
		Status:             "active",
		CreatedAt:          now,
		UpdatedAt:          now,
	}))
}

func TestHandleEventRejectsBadSignature(t *testing.T) {
	f := setupBilling(t)

	err := f.svc.HandleEvent(context.Background(), []byte(`{}`), "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	assert.Empty(t, f.users.calls)
}

func TestHandleCheckoutCompleted(t *testing.T) {
	f := setupBilling(t)

	payload, header := signedPayload(t, "checkout.session.completed", map[string]any{
		"id":                  "cs_test",
		"customer":            "cus_1",
		"client_reference_id": "user-1",
		"subscription":        "sub_1",
	})
	require.NoError(t, f.svc.HandleEvent(context.Background(), payload, header))

	require.Len(t, f.users.calls, 1)
	assert.Equal(t, creditCall{"user-1", userdomain.CreditsUnlimited}, f.users.calls[0])

	sub, err := repository.Provide().FindByCustomer(context.Background(), f.db, "cus_1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "user-1", sub.UserID)
	assert.Equal(t, "active", sub.Status)
}

func TestHandleSubscriptionActivated(t *testing.T) {
	f := setupBilling(t)
	f.seedSubscription(t, "user-1", "cus_1")

	payload, header := signedPayload(t, "customer.subscription.updated", map[string]any{
		"id":       "sub_1",
		"customer": "cus_1",
		"status":   "active",
	})
	require.NoError(t, f.svc.HandleEvent(context.Background(), payload, header))

	require.Len(t, f.users.calls, 1)
	assert.Equal(t, creditCall{"user-1", userdomain.CreditsUnlimited}, f.users.calls[0])
}

func TestHandleSubscriptionCanceledRevertsToFreeTier(t *testing.T) {
	f := setupBilling(t)
	f.seedSubscription(t, "user-1", "cus_1")

	payload, header := signedPayload(t, "customer.subscription.updated", map[string]any{
		"id":       "sub_1",
		"customer": "cus_1",
		"status":   "canceled",
	})
	require.NoError(t, f.svc.HandleEvent(context.Background(), payload, header))

	require.Len(t, f.users.calls, 1)
	assert.Equal(t, creditCall{"user-1", userdomain.FreeTierCredits}, f.users.calls[0])
}

func TestHandleSubscriptionPastDueRevertsToFreeTier(t *testing.T) {
	f := setupBilling(t)
	f.seedSubscription(t, "user-1", "cus_1")

	payload, header := signedPayload(t, "customer.subscription.updated", map[string]any{
		"id":       "sub_1",
		"customer": "cus_1",
		"status":   "past_due",
	})
	require.NoError(t, f.svc.HandleEvent(context.Background(), payload, header))

	require.Len(t, f.users.calls, 1)
	assert.Equal(t, creditCall{"user-1", userdomain.FreeTierCredits}, f.users.calls[0])

	sub, err := repository.Provide().FindByCustomer(context.Background(), f.db, "cus_1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "past_due", sub.Status)
}

func TestHandleSubscriptionDeleted(t *testing.T) {
	f := setupBilling(t)
	f.seedSubscription(t, "user-1", "cus_1")

	payload, header := signedPayload(t, "customer.subscription.deleted", map[string]any{
		"id":       "sub_1",
		"customer": "cus_1",
		"status":   "canceled",
	})
	require.NoError(t, f.svc.HandleEvent(context.Background(), payload, header))

	require.Len(t, f.users.calls, 1)
	assert.Equal(t, creditCall{"user-1", userdomain.FreeTierCredits}, f.users.calls[0])

	sub, err := repository.Provide().FindByCustomer(context.Background(), f.db, "cus_1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "canceled", sub.Status)
}

func TestHandleEventUnknownCustomerAcknowledged(t *testing.T) {
	f := setupBilling(t)

	payload, header := signedPayload(t, "customer.subscription.updated", map[string]any{
		"id":       "sub_1",
		"customer": "cus_unknown",
		"status":   "active",
	})
	require.NoError(t, f.svc.HandleEvent(context.Background(), payload, header))
	assert.Empty(t, f.users.calls)
}

func TestHandleEventIgnoresUnrelatedTypes(t *testing.T) {
	f := setupBilling(t)

	payload, header := signedPayload(t, "invoice.paid", map[string]any{"id": "in_1"})
	require.NoError(t, f.svc.HandleEvent(context.Background(), payload, header))
	assert.Empty(t, f.users.calls)
}
