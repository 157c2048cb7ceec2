package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reciply/reciply/internal/clock"
	"github.com/reciply/reciply/internal/config"
	"github.com/reciply/reciply/internal/generation/domain"
	"github.com/reciply/reciply/internal/layout"
	"github.com/reciply/reciply/internal/metrics"
	"github.com/reciply/reciply/internal/raster"
	receiptdomain "github.com/reciply/reciply/internal/receipt/domain"
	"github.com/reciply/reciply/internal/render"
	"github.com/reciply/reciply/internal/storage"
	userdomain "github.com/reciply/reciply/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Config     config.Config
	Log        *zap.Logger
	Clock      clock.Clock
	Node       *snowflake.Node
	Users      userdomain.Service
	Receipts   receiptdomain.Service
	Renderer   render.Renderer
	Rasterizer raster.Rasterizer
	Store      storage.BlobStore
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	log           *zap.Logger
	clock         clock.Clock
	node          *snowflake.Node
	users         userdomain.Service
	receipts      receiptdomain.Service
	renderer      render.Renderer
	rasterizer    raster.Rasterizer
	store         storage.BlobStore
	metrics       *metrics.Metrics
	bucket        string
	renderTimeout time.Duration
}

func New(p Params) domain.Service {
	return &Service{
		log:           p.Log.Named("generation.service"),
		clock:         p.Clock,
		node:          p.Node,
		users:         p.Users,
		receipts:      p.Receipts,
		renderer:      p.Renderer,
		rasterizer:    p.Rasterizer,
		store:         p.Store,
		metrics:       p.Metrics,
		bucket:        p.Config.Storage.ReceiptBucket,
		renderTimeout: time.Duration(p.Config.RenderTimeout) * time.Second,
	}
}

// Generate runs the full pipeline: allowance check, render, rasterize,
// upload, persist, charge. The credit is charged once the artifacts exist,
// even when persistence or an upload failed.
func (s *Service) Generate(ctx context.Context, userID string, req domain.Request) (domain.Response, error) {
	user, err := s.users.CheckGenerationAllowance(ctx, userID)
	if err != nil {
		return domain.Response{}, err
	}

	if err := validate(req); err != nil {
		return domain.Response{}, err
	}
	normalize(&req)

	l := layout.Default()
	if req.Layout != nil && req.Layout.Valid() {
		l = *req.Layout
	}
	if req.Date == "" {
		req.Date = s.clock.Now().Format("01/02/2006")
	}

	html, err := s.renderer.Render(l, render.Data{
		BusinessInfo:  req.BusinessInfo,
		Items:         req.Items,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Total:         req.Total,
		ReceiptNumber: req.ReceiptNumber,
		Date:          req.Date,
		Notes:         req.Notes,
	})
	if err != nil {
		s.log.Error("render failed", zap.String("user_id", userID), zap.Error(err))
		return domain.Response{}, domain.ErrRenderFailed
	}

	rasterCtx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	started := s.clock.Now()
	artifacts, err := s.rasterizer.Rasterize(rasterCtx, raster.Document{HTML: html, Page: l.Page})
	s.metrics.ObserveRasterDuration(s.clock.Now().Sub(started))
	if err != nil {
		s.log.Error("rasterization failed",
			zap.String("user_id", userID),
			zap.Duration("elapsed", s.clock.Now().Sub(started)),
			zap.Error(err),
		)
		return domain.Response{}, domain.ErrRenderFailed
	}

	stamp := s.clock.Now().UnixMilli()
	pdfKey := fmt.Sprintf("%s/%d-receipt.pdf", userID, stamp)
	pngKey := fmt.Sprintf("%s/%d-receipt.png", userID, stamp)

	// Uploads run concurrently; a failed upload is logged and the pipeline
	// continues, the URL simply points at a missing object.
	g, uploadCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.store.Put(uploadCtx, s.bucket, pdfKey, artifacts.PDF, "application/pdf")
	})
	g.Go(func() error {
		return s.store.Put(uploadCtx, s.bucket, pngKey, artifacts.PNG, "image/png")
	})
	if err := g.Wait(); err != nil {
		s.log.Error("artifact upload failed", zap.String("user_id", userID), zap.Error(err))
	}

	receipt := receiptdomain.Receipt{
		ID:        s.node.Generate(),
		UserID:    userID,
		Subtotal:  req.Subtotal,
		Tax:       req.Tax,
		Total:     req.Total,
		PDFURL:    s.store.PublicURL(s.bucket, pdfKey),
		PNGURL:    s.store.PublicURL(s.bucket, pngKey),
		CreatedAt: s.clock.Now(),
	}
	receipt.LayoutJSON, _ = json.Marshal(l)
	receipt.BusinessInfoJSON, _ = json.Marshal(req.BusinessInfo)
	receipt.ItemsJSON, _ = json.Marshal(req.Items)

	if err := s.receipts.Insert(ctx, &receipt); err != nil {
		s.log.Error("receipt persistence failed",
			zap.String("user_id", userID),
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err),
		)
	}

	remaining := user.Credits
	if balance, err := s.users.ConsumeCredit(ctx, userID); err != nil {
		s.log.Error("credit charge failed", zap.String("user_id", userID), zap.Error(err))
	} else {
		remaining = balance
	}

	s.log.Info("generated receipt",
		zap.String("user_id", userID),
		zap.String("receipt_id", receipt.ID.String()),
		zap.Duration("raster_time", s.clock.Now().Sub(started)),
	)

	return domain.Response{
		PDFURL:           receipt.PDFURL,
		PNGURL:           receipt.PNGURL,
		Receipt:          receipt,
		RemainingCredits: remaining,
	}, nil
}

func validate(req domain.Request) error {
	if req.BusinessInfo.Name == "" {
		return domain.ErrMissingBusinessInfo
	}
	if len(req.Items) == 0 {
		return domain.ErrNoItems
	}
	return nil
}

// normalize backfills line totals and summary amounts the caller omitted.
func normalize(req *domain.Request) {
	var sum float64
	for i := range req.Items {
		if req.Items[i].Total == 0 {
			req.Items[i].Total = float64(req.Items[i].Quantity) * req.Items[i].Price
		}
		sum += req.Items[i].Total
	}
	if req.Subtotal == 0 {
		req.Subtotal = sum
	}
	if req.Total == 0 {
		req.Total = req.Subtotal + req.Tax
	}
}
