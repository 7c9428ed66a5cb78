package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/extract"
	"lekha/internal/port"
	"lekha/mocks"
)

func TestFallbackExtractor_PrimarySucceeds(t *testing.T) {
	primary := new(mocks.MockInvoiceExtractor)
	secondary := new(mocks.MockInvoiceExtractor)
	primary.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.ExtractedInvoice{SellerName: "Acme"}, nil)

	f := extract.NewFallbackExtractor(
		[]port.InvoiceExtractor{primary, secondary},
		[]string{"claude", "openai"},
	)
	out, err := f.Extract(context.Background(), port.ExtractInput{})

	require.NoError(t, err)
	assert.Equal(t, "Acme", out.SellerName)
	secondary.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestFallbackExtractor_FallsBackOnError(t *testing.T) {
	primary := new(mocks.MockInvoiceExtractor)
	secondary := new(mocks.MockInvoiceExtractor)
	primary.On("Extract", mock.Anything, mock.Anything).
		Return(nil, errors.New("boom"))
	secondary.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.ExtractedInvoice{SellerName: "Backup"}, nil)

	f := extract.NewFallbackExtractor(
		[]port.InvoiceExtractor{primary, secondary},
		[]string{"claude", "openai"},
	)
	out, err := f.Extract(context.Background(), port.ExtractInput{})

	require.NoError(t, err)
	assert.Equal(t, "Backup", out.SellerName)
}

func TestFallbackExtractor_AllFail(t *testing.T) {
	primary := new(mocks.MockInvoiceExtractor)
	secondary := new(mocks.MockInvoiceExtractor)
	primary.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("first"))
	secondary.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("second"))

	f := extract.NewFallbackExtractor(
		[]port.InvoiceExtractor{primary, secondary},
		[]string{"claude", "openai"},
	)
	out, err := f.Extract(context.Background(), port.ExtractInput{})

	assert.Nil(t, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all extraction providers failed")
	assert.Contains(t, err.Error(), "second")
}

func TestFallbackExtractor_RateLimitOpensCircuit(t *testing.T) {
	primary := new(mocks.MockInvoiceExtractor)
	secondary := new(mocks.MockInvoiceExtractor)
	primary.On("Extract", mock.Anything, mock.Anything).
		Return(nil, extract.NewRateLimitError("claude", errors.New("429"), 120)).Once()
	secondary.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.ExtractedInvoice{}, nil)

	f := extract.NewFallbackExtractor(
		[]port.InvoiceExtractor{primary, secondary},
		[]string{"claude", "openai"},
	)

	_, err := f.Extract(context.Background(), port.ExtractInput{})
	require.NoError(t, err)

	// second call: primary's circuit is open, it is skipped entirely
	_, err = f.Extract(context.Background(), port.ExtractInput{})
	require.NoError(t, err)
	primary.AssertNumberOfCalls(t, "Extract", 1)
	secondary.AssertNumberOfCalls(t, "Extract", 2)
}

func TestFallbackExtractor_AllRateLimited(t *testing.T) {
	primary := new(mocks.MockInvoiceExtractor)
	primary.On("Extract", mock.Anything, mock.Anything).
		Return(nil, extract.NewRateLimitError("claude", errors.New("429"), 30))

	f := extract.NewFallbackExtractor(
		[]port.InvoiceExtractor{primary},
		[]string{"claude"},
	)
	_, err := f.Extract(context.Background(), port.ExtractInput{})

	var rlErr *extract.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}

func TestRateLimitError_DefaultRetryAfter(t *testing.T) {
	e := extract.NewRateLimitError("claude", errors.New("429"), 0)

	assert.Equal(t, "claude", e.Provider)
	assert.Equal(t, 60.0, e.RetryAfter.Seconds())
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, extract.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, extract.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, extract.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
}
