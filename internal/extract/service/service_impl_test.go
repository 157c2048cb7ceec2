package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/reciply/reciply/internal/extract/domain"
	"github.com/reciply/reciply/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeModel struct {
	response string
	err      error
	subtype  string
}

func (f *fakeModel) GenerateLayout(_ context.Context, _ []byte, subtype string) (string, error) {
	f.subtype = subtype
	return f.response, f.err
}

func newExtractService(model ModelClient) domain.Service {
	return New(Params{Log: zap.NewNop(), Model: model})
}

func TestExtractLayoutParsesModelOutput(t *testing.T) {
	b, err := json.Marshal(layout.Default())
	require.NoError(t, err)

	model := &fakeModel{response: string(b)}
	svc := newExtractService(model)

	l, err := svc.ExtractLayout(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), l)
	assert.Equal(t, "png", model.subtype)
}

func TestExtractLayoutStripsCodeFence(t *testing.T) {
	b, err := json.Marshal(layout.Default())
	require.NoError(t, err)

	model := &fakeModel{response: "```json\n" + string(b) + "\n```"}
	svc := newExtractService(model)

	l, err := svc.ExtractLayout(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), l)
}

func TestExtractLayoutFallsBackOnBadJSON(t *testing.T) {
	svc := newExtractService(&fakeModel{response: "sorry, I cannot read this image"})

	l, err := svc.ExtractLayout(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), l)
}

func TestExtractLayoutFallsBackOnUnusableLayout(t *testing.T) {
	svc := newExtractService(&fakeModel{response: `{"page":{"width":0}}`})

	l, err := svc.ExtractLayout(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), l)
}

func TestExtractLayoutFallsBackOnModelError(t *testing.T) {
	svc := newExtractService(&fakeModel{err: errors.New("quota exceeded")})

	l, err := svc.ExtractLayout(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), l)
}

func TestExtractLayoutRejectsUnsupportedImage(t *testing.T) {
	svc := newExtractService(&fakeModel{})

	_, err := svc.ExtractLayout(context.Background(), []byte("img"), "application/pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
}

func TestExtractLayoutWithoutModel(t *testing.T) {
	svc := newExtractService(nil)

	_, err := svc.ExtractLayout(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, stripFences("  {\"a\":1}  "))
}
