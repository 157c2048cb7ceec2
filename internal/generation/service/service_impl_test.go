package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reciply/reciply/internal/clock"
	"github.com/reciply/reciply/internal/config"
	"github.com/reciply/reciply/internal/generation/domain"
	"github.com/reciply/reciply/internal/layout"
	"github.com/reciply/reciply/internal/raster"
	receiptdomain "github.com/reciply/reciply/internal/receipt/domain"
	"github.com/reciply/reciply/internal/render"
	userdomain "github.com/reciply/reciply/internal/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	user       userdomain.User
	allowErr   error
	consumed   int
	consumeErr error
	remaining  int64
}

func (f *fakeUsers) EnsureUser(context.Context, string, string) (userdomain.User, error) {
	return f.user, nil
}

func (f *fakeUsers) GetByID(context.Context, string) (userdomain.User, error) {
	return f.user, nil
}

func (f *fakeUsers) CheckGenerationAllowance(context.Context, string) (userdomain.User, error) {
	if f.allowErr != nil {
		return userdomain.User{}, f.allowErr
	}
	return f.user, nil
}

func (f *fakeUsers) ConsumeCredit(context.Context, string) (int64, error) {
	f.consumed++
	if f.consumeErr != nil {
		return 0, f.consumeErr
	}
	return f.remaining, nil
}

func (f *fakeUsers) SetCredits(context.Context, string, int64) error { return nil }

func (f *fakeUsers) SetBanned(context.Context, string, bool) error { return nil }

func (f *fakeUsers) List(context.Context, userdomain.ListUserRequest) (userdomain.ListUserResponse, error) {
	return userdomain.ListUserResponse{}, nil
}

type fakeReceipts struct {
	inserted  []receiptdomain.Receipt
	insertErr error
}

func (f *fakeReceipts) Insert(_ context.Context, r *receiptdomain.Receipt) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *r)
	return nil
}

func (f *fakeReceipts) List(context.Context, string, receiptdomain.ListReceiptRequest) (receiptdomain.ListReceiptResponse, error) {
	return receiptdomain.ListReceiptResponse{}, nil
}

func (f *fakeReceipts) GetByID(context.Context, string, string, bool) (receiptdomain.Receipt, error) {
	return receiptdomain.Receipt{}, receiptdomain.ErrNotFound
}

func (f *fakeReceipts) Delete(context.Context, string, string, bool) error { return nil }

type fakeRenderer struct {
	lastLayout layout.Layout
	lastData   render.Data
	err        error
}

func (f *fakeRenderer) Render(l layout.Layout, d render.Data) (string, error) {
	f.lastLayout = l
	f.lastData = d
	if f.err != nil {
		return "", f.err
	}
	return "<html>receipt</html>", nil
}

type fakeRasterizer struct {
	err   error
	calls int
}

func (f *fakeRasterizer) Rasterize(context.Context, raster.Document) (raster.Artifacts, error) {
	f.calls++
	if f.err != nil {
		return raster.Artifacts{}, f.err
	}
	return raster.Artifacts{PDF: []byte("%PDF"), PNG: []byte("\x89PNG")}, nil
}

type putCall struct {
	bucket, key, contentType string
}

type fakeStore struct {
	puts   []putCall
	putErr error
}

func (f *fakeStore) Put(_ context.Context, bucket, key string, _ []byte, contentType string) error {
	f.puts = append(f.puts, putCall{bucket, key, contentType})
	return f.putErr
}

func (f *fakeStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://cdn.test/%s/%s", bucket, key)
}

type generationFixture struct {
	svc      domain.Service
	users    *fakeUsers
	receipts *fakeReceipts
	renderer *fakeRenderer
	raster   *fakeRasterizer
	store    *fakeStore
	clock    *clock.FakeClock
}

func setupGeneration(t *testing.T) *generationFixture {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &generationFixture{
		users:    &fakeUsers{user: userdomain.User{ID: "user-1", Credits: 3}, remaining: 2},
		receipts: &fakeReceipts{},
		renderer: &fakeRenderer{},
		raster:   &fakeRasterizer{},
		store:    &fakeStore{},
		clock:    clock.NewFakeClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)),
	}

	cfg := config.Config{RenderTimeout: 30}
	cfg.Storage.ReceiptBucket = "receipts"

	f.svc = New(Params{
		Config:     cfg,
		Log:        zap.NewNop(),
		Clock:      f.clock,
		Node:       node,
		Users:      f.users,
		Receipts:   f.receipts,
		Renderer:   f.renderer,
		Rasterizer: f.raster,
		Store:      f.store,
	})
	return f
}

func validRequest() domain.Request {
	return domain.Request{
		BusinessInfo: render.BusinessInfo{Name: "Acme"},
		Items: []render.Item{
			{Name: "Widget", Quantity: 2, Price: 10.00, Total: 20.00},
		},
		Subtotal: 20.00,
		Tax:      1.60,
		Total:    21.60,
	}
}

func TestGenerateHappyPath(t *testing.T) {
	f := setupGeneration(t)

	resp, err := f.svc.Generate(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	stamp := f.clock.Now().UnixMilli()
	assert.Equal(t, fmt.Sprintf("https://cdn.test/receipts/user-1/%d-receipt.pdf", stamp), resp.PDFURL)
	assert.Equal(t, fmt.Sprintf("https://cdn.test/receipts/user-1/%d-receipt.png", stamp), resp.PNGURL)
	assert.Equal(t, int64(2), resp.RemainingCredits)

	require.Len(t, f.store.puts, 2)
	types := map[string]string{}
	for _, p := range f.store.puts {
		assert.Equal(t, "receipts", p.bucket)
		types[p.contentType] = p.key
	}
	assert.Contains(t, types, "application/pdf")
	assert.Contains(t, types, "image/png")

	require.Len(t, f.receipts.inserted, 1)
	saved := f.receipts.inserted[0]
	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, 21.60, saved.Total)
	assert.NotZero(t, saved.ID)

	assert.Equal(t, 1, f.users.consumed)
}

func TestGenerateInsufficientCredits(t *testing.T) {
	f := setupGeneration(t)
	f.users.allowErr = userdomain.ErrInsufficientCredits

	_, err := f.svc.Generate(context.Background(), "user-1", validRequest())
	assert.ErrorIs(t, err, userdomain.ErrInsufficientCredits)
	assert.Zero(t, f.raster.calls)
	assert.Zero(t, f.users.consumed)
	assert.Empty(t, f.receipts.inserted)
}

func TestGenerateBannedAccount(t *testing.T) {
	f := setupGeneration(t)
	f.users.allowErr = userdomain.ErrAccountBanned

	_, err := f.svc.Generate(context.Background(), "user-1", validRequest())
	assert.ErrorIs(t, err, userdomain.ErrAccountBanned)
	assert.Zero(t, f.users.consumed)
}

func TestGenerateValidation(t *testing.T) {
	f := setupGeneration(t)

	req := validRequest()
	req.Items = nil
	_, err := f.svc.Generate(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrNoItems)

	req = validRequest()
	req.BusinessInfo.Name = ""
	_, err = f.svc.Generate(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrMissingBusinessInfo)

	assert.Zero(t, f.users.consumed)
}

func TestGenerateRasterFailureChargesNothing(t *testing.T) {
	f := setupGeneration(t)
	f.raster.err = raster.ErrEngineFailure

	_, err := f.svc.Generate(context.Background(), "user-1", validRequest())
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	assert.Empty(t, f.receipts.inserted)
	assert.Empty(t, f.store.puts)
	assert.Zero(t, f.users.consumed)
}

func TestGenerateStorageFailureStillCharges(t *testing.T) {
	f := setupGeneration(t)
	f.store.putErr = errors.New("connection reset")

	resp, err := f.svc.Generate(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	assert.Len(t, f.receipts.inserted, 1)
	assert.Equal(t, 1, f.users.consumed)
	assert.Equal(t, int64(2), resp.RemainingCredits)
}

func TestGeneratePersistFailureStillCharges(t *testing.T) {
	f := setupGeneration(t)
	f.receipts.insertErr = errors.New("deadlock detected")

	resp, err := f.svc.Generate(context.Background(), "user-1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, f.users.consumed)
	assert.NotEmpty(t, resp.PDFURL)
}

func TestGenerateUnlimitedBalanceReportedAsIs(t *testing.T) {
	f := setupGeneration(t)
	f.users.user.Credits = userdomain.CreditsUnlimited
	f.users.remaining = userdomain.CreditsUnlimited

	resp, err := f.svc.Generate(context.Background(), "user-1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(userdomain.CreditsUnlimited), resp.RemainingCredits)
}

func TestGenerateFallsBackToDefaultLayout(t *testing.T) {
	f := setupGeneration(t)

	// Structurally unusable layout: no columns.
	req := validRequest()
	req.Layout = &layout.Layout{Page: layout.Page{Width: 400}}

	_, err := f.svc.Generate(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), f.renderer.lastLayout)
}

func TestGenerateUsesProvidedLayout(t *testing.T) {
	f := setupGeneration(t)

	custom := layout.Default()
	custom.Page.Width = 500
	req := validRequest()
	req.Layout = &custom

	_, err := f.svc.Generate(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, 500.0, f.renderer.lastLayout.Page.Width)
}

func TestGenerateDefaultsDate(t *testing.T) {
	f := setupGeneration(t)

	_, err := f.svc.Generate(context.Background(), "user-1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "01/15/2026", f.renderer.lastData.Date)

	req := validRequest()
	req.Date = "12/31/2025"
	_, err = f.svc.Generate(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, "12/31/2025", f.renderer.lastData.Date)
}

func TestGenerateBackfillsAmounts(t *testing.T) {
	f := setupGeneration(t)

	req := domain.Request{
		BusinessInfo: render.BusinessInfo{Name: "Acme"},
		Items: []render.Item{
			{Name: "Widget", Quantity: 2, Price: 10.00},
			{Name: "Gadget", Quantity: 1, Price: 5.00},
		},
		Tax: 2.00,
	}

	_, err := f.svc.Generate(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, 20.00, f.renderer.lastData.Items[0].Total)
	assert.Equal(t, 5.00, f.renderer.lastData.Items[1].Total)
	assert.Equal(t, 25.00, f.renderer.lastData.Subtotal)
	assert.Equal(t, 27.00, f.renderer.lastData.Total)
}
