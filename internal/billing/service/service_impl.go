package service

import (
	"context"
	"encoding/json"

	"github.com/bwmarrin/snowflake"
	"github.com/reciply/reciply/internal/billing/domain"
	"github.com/reciply/reciply/internal/clock"
	"github.com/reciply/reciply/internal/config"
	"github.com/reciply/reciply/internal/metrics"
	userdomain "github.com/reciply/reciply/internal/user/domain"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config  config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Node    *snowflake.Node
	Users   userdomain.Service
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	secret  string
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	node    *snowflake.Node
	users   userdomain.Service
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		secret:  p.Config.Billing.WebhookSecret,
		db:      p.DB,
		log:     p.Log.Named("billing.service"),
		clock:   p.Clock,
		node:    p.Node,
		users:   p.Users,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// HandleEvent verifies the delivery signature and applies the credit-state
// transition for the event. Events for unknown customers are logged and
// acknowledged so the provider stops retrying them.
func (s *Service) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return domain.ErrInvalidSignature
	}

	s.metrics.RecordWebhookEvent(string(event.Type))

	switch string(event.Type) {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.created", "customer.subscription.updated":
		return s.handleSubscriptionChanged(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionEnded(ctx, event)
	default:
		s.log.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return err
	}

	userID := session.ClientReferenceID
	if userID == "" {
		userID = session.Metadata["userId"]
	}
	if userID == "" || session.Customer == nil {
		s.log.Warn("checkout session without user reference", zap.String("event_id", event.ID))
		return nil
	}

	subscriptionID := ""
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}

	existing, err := s.repo.FindByCustomer(ctx, s.db, session.Customer.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		now := s.clock.Now()
		if err := s.repo.Insert(ctx, s.db, &domain.Subscription{
			ID:                     s.node.Generate(),
			UserID:                 userID,
			ProviderCustomerID:     session.Customer.ID,
			ProviderSubscriptionID: subscriptionID,
			Status:                 "active",
			CreatedAt:              now,
			UpdatedAt:              now,
		}); err != nil {
			return err
		}
	} else if err := s.repo.UpdateStatus(ctx, s.db, session.Customer.ID, subscriptionID, "active"); err != nil {
		return err
	}

	s.log.Info("checkout completed",
		zap.String("user_id", userID),
		zap.String("customer_id", session.Customer.ID),
	)
	return s.users.SetCredits(ctx, userID, userdomain.CreditsUnlimited)
}

func (s *Service) handleSubscriptionChanged(ctx context.Context, event stripe.Event) error {
	sub, userID, err := s.resolveSubscription(ctx, event)
	if err != nil || userID == "" {
		return err
	}

	status := string(sub.Status)
	if err := s.repo.UpdateStatus(ctx, s.db, sub.Customer.ID, sub.ID, status); err != nil {
		return err
	}

	// Anything not entitling the user (past_due, incomplete, paused, ...)
	// reverts the balance to the free tier.
	switch sub.Status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return s.users.SetCredits(ctx, userID, userdomain.CreditsUnlimited)
	default:
		s.log.Info("subscription not entitling, reverting to free tier",
			zap.String("user_id", userID),
			zap.String("status", status),
		)
		return s.users.SetCredits(ctx, userID, userdomain.FreeTierCredits)
	}
}

func (s *Service) handleSubscriptionEnded(ctx context.Context, event stripe.Event) error {
	sub, userID, err := s.resolveSubscription(ctx, event)
	if err != nil || userID == "" {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, s.db, sub.Customer.ID, sub.ID, "canceled"); err != nil {
		return err
	}

	s.log.Info("subscription ended", zap.String("user_id", userID))
	return s.users.SetCredits(ctx, userID, userdomain.FreeTierCredits)
}

func (s *Service) resolveSubscription(ctx context.Context, event stripe.Event) (*stripe.Subscription, string, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, "", err
	}
	if sub.Customer == nil {
		s.log.Warn("subscription event without customer", zap.String("event_id", event.ID))
		return nil, "", nil
	}

	row, err := s.repo.FindByCustomer(ctx, s.db, sub.Customer.ID)
	if err != nil {
		return nil, "", err
	}
	if row == nil {
		s.log.Warn("subscription event for unknown customer",
			zap.String("event_id", event.ID),
			zap.String("customer_id", sub.Customer.ID),
		)
		return nil, "", nil
	}
	return &sub, row.UserID, nil
}
