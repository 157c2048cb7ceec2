package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/reciply/reciply/internal/config"
	"github.com/reciply/reciply/internal/extract/domain"
	"github.com/reciply/reciply/internal/layout"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const extractionPrompt = `Analyze this receipt image and describe its visual layout as JSON.
Respond with ONLY a JSON object, no prose, matching this shape:
{
  "page": {"width": <px, 300-800>, "padding": <px>},
  "header": {"alignment": "left|center|right", "fontSize": <px>, "fontWeight": "normal|bold", "fields": ["businessName", "businessAddress", "businessPhone", "businessEmail"], "logoPosition": "top|left|right"},
  "table": {"columns": [{"label": <string>, "width": <percent>, "alignment": "left|center|right"}], "rowHeight": <px>, "showBorders": <bool>, "headerBold": <bool>},
  "totals": {"position": "left|right", "fontSize": <px>, "fields": ["subtotal", "tax", "total"]},
  "footer": {"text": <string>, "fontSize": <px>, "alignment": "left|center|right"},
  "colors": {"primary": <hex>, "secondary": <hex>, "text": <hex>},
  "fonts": {"primary": <font name>, "secondary": <font name>}
}
Estimate sizes and colors from the image. Omit sections you cannot see.`

var supportedImageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/webp": "webp",
}

// ModelClient is the narrow slice of the generative model used here,
// split out so tests can swap in a canned responder.
type ModelClient interface {
	GenerateLayout(ctx context.Context, image []byte, subtype string) (string, error)
}

type geminiClient struct {
	client *genai.Client
	model  string
}

func (g *geminiClient) GenerateLayout(ctx context.Context, image []byte, subtype string) (string, error) {
	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx,
		genai.ImageData(subtype, image),
		genai.Text(extractionPrompt),
	)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String(), nil
}

// NewModelClient dials the generative model API. Returns nil when no API
// key is configured; the service then rejects extraction requests.
func NewModelClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (ModelClient, error) {
	if cfg.Extract.APIKey == "" {
		log.Named("extract").Warn("no extraction API key configured")
		return nil, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Extract.APIKey))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return &geminiClient{client: client, model: cfg.Extract.Model}, nil
}

type Params struct {
	fx.In

	Log   *zap.Logger
	Model ModelClient `optional:"true"`
}

type Service struct {
	log   *zap.Logger
	model ModelClient
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("extract.service"),
		model: p.Model,
	}
}

func (s *Service) ExtractLayout(ctx context.Context, image []byte, mimeType string) (layout.Layout, error) {
	subtype, ok := supportedImageTypes[mimeType]
	if !ok {
		return layout.Layout{}, domain.ErrUnsupportedImage
	}
	if s.model == nil {
		return layout.Layout{}, domain.ErrNotConfigured
	}

	text, err := s.model.GenerateLayout(ctx, image, subtype)
	if err != nil {
		s.log.Warn("layout extraction failed, using default", zap.Error(err))
		return layout.Default(), nil
	}

	var l layout.Layout
	if err := json.Unmarshal([]byte(stripFences(text)), &l); err != nil || !l.Valid() {
		s.log.Warn("unusable layout from model, using default", zap.Error(err))
		return layout.Default(), nil
	}
	return l, nil
}

// stripFences removes a markdown code fence the model often wraps its JSON
// in despite being told not to.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}
	return strings.TrimSpace(text)
}
