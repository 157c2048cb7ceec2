package raster

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const pixelsPerInch = 96.0

// Chrome rasterizes documents with a shared headless browser process. Each
// conversion runs in its own tab, so the two formats of one request proceed
// concurrently without ordering between them.
type Chrome struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
}

// NewChrome starts a headless browser allocator. The browser itself is
// launched lazily on the first conversion.
func NewChrome(log *zap.Logger) *Chrome {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Chrome{
		allocCtx: allocCtx,
		cancel:   cancel,
		log:      log.Named("raster.chrome"),
	}
}

// Close tears down the browser process.
func (c *Chrome) Close() {
	c.cancel()
}

// Rasterize produces the paginated document and the raster image for one
// rendered document. Both conversions must succeed.
func (c *Chrome) Rasterize(ctx context.Context, doc Document) (Artifacts, error) {
	var out Artifacts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pdf, err := c.printPDF(gctx, doc)
		if err != nil {
			return fmt.Errorf("%w: pdf: %v", ErrEngineFailure, err)
		}
		out.PDF = pdf
		return nil
	})
	g.Go(func() error {
		png, err := c.capturePNG(gctx, doc)
		if err != nil {
			return fmt.Errorf("%w: png: %v", ErrEngineFailure, err)
		}
		out.PNG = png
		return nil
	})
	if err := g.Wait(); err != nil {
		return Artifacts{}, err
	}
	return out, nil
}

func (c *Chrome) printPDF(ctx context.Context, doc Document) ([]byte, error) {
	tabCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		tabCtx, cancelDeadline = context.WithDeadline(tabCtx, deadline)
		defer cancelDeadline()
	}

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		setDocumentContent(doc.HTML),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(doc.Page.Width/pixelsPerInch).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func (c *Chrome) capturePNG(ctx context.Context, doc Document) ([]byte, error) {
	tabCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		tabCtx, cancelDeadline = context.WithDeadline(tabCtx, deadline)
		defer cancelDeadline()
	}

	// Width pins the receipt geometry; the screenshot grows to the full
	// content height rather than clipping at the viewport.
	width := int64(doc.Page.Width + 2*doc.Page.Padding)

	var png []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(width, 600, chromedp.EmulateScale(2)),
		chromedp.Navigate("about:blank"),
		setDocumentContent(doc.HTML),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		return nil, err
	}
	return png, nil
}

func setDocumentContent(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		frameTree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
	})
}
