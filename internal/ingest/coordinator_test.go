package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MeKo-Tech/claimlens/internal/config"
	"github.com/MeKo-Tech/claimlens/internal/document"
	"github.com/MeKo-Tech/claimlens/internal/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPageBlob = `--- Page 1 ---
DocuSign Envelope ID: 12AB-34CD
PART A: CLAIMANT INFORMATION
Page 1 of 11
1A. Claimant's Full Name: Maria Santos
2A. Gender: Female
12A. Policy Number: 245549351
--- Page 2 ---
PART A: CLAIMANT INFORMATION
Are you a full-time student?
1B. I am applying for:
Lost Checked Luggage X
`

func TestProcessTextBlob(t *testing.T) {
	c := NewCoordinator(config.DefaultConfig(), nil)

	result, err := c.Process(context.Background(), Input{Name: "claim.txt", Text: twoPageBlob})
	require.NoError(t, err)
	require.NotNil(t, result.Document)

	doc := result.Document
	assert.Equal(t, "WorldTrips Claimant Statement and Authorization", doc.Document.DocumentType)
	assert.Equal(t, 11, doc.Document.TotalPages, "declared page count wins over segment count")
	assert.Equal(t, "12AB-34CD", doc.Document.EnvelopeID)
	assert.False(t, doc.Document.ExtractedAt.IsZero())

	require.Len(t, doc.Pages, 2)

	first := doc.Pages[0]
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, section.PartA, first.Section)
	require.NotNil(t, first.FormFields)
	assert.Equal(t, "Maria Santos", first.FormFields["1a_claimant_full_name"])
	assert.Equal(t, "245549351", first.FormFields["12a_policy_or_certificate_number"])
	assert.Nil(t, first.Signatures)
	assert.Nil(t, first.PartB)

	second := doc.Pages[1]
	assert.Equal(t, 2, second.Page)
	assert.Equal(t, section.PartAContinued, second.Section)
	require.NotNil(t, second.PartB)
	applying, ok := second.PartB["1b_applying_for"].(document.FieldMap)
	require.True(t, ok)
	assert.Equal(t, true, applying["lost_checked_luggage"])

	// A pure text run involves no tokens.
	assert.Nil(t, result.Detections)
	assert.Zero(t, result.Confidence.TotalDetections)
}

func TestProcessTokens(t *testing.T) {
	c := NewCoordinator(config.DefaultConfig(), nil)

	tokens := []document.Token{
		{Text: "PART C: MEDICAL INFORMATION", Confidence: 0.9, Page: 2},
		{Text: "PART A: CLAIMANT INFORMATION", Confidence: 0.8, Page: 1},
		{Text: "1A. Claimant's Full Name: Maria Santos", Confidence: 0.6, Page: 1},
	}

	result, err := c.Process(context.Background(), Input{Name: "claim.pdf", Tokens: tokens})
	require.NoError(t, err)

	doc := result.Document
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, section.PartA, doc.Pages[0].Section, "token pages assemble in page order")
	assert.Equal(t, section.PartC, doc.Pages[1].Section)
	assert.Equal(t, "Maria Santos", doc.Pages[0].FormFields["1a_claimant_full_name"])

	require.NotNil(t, result.Detections)
	assert.Equal(t, 3, result.Detections.TotalDetections)
	assert.Equal(t, 3, result.Confidence.TotalDetections)
	assert.Equal(t, 1, result.Confidence.LowConfidenceCount)
	assert.InDelta(t, 0.6, result.Confidence.Min, 1e-9)
}

func TestProcessFailures(t *testing.T) {
	c := NewCoordinator(config.DefaultConfig(), nil)
	ctx := context.Background()

	// Empty input.
	_, err := c.Process(ctx, Input{Name: "empty"})
	var perr *ProcessError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "empty", perr.Input)

	// Whitespace-only text leaves nothing to segment.
	_, err = c.Process(ctx, Input{Name: "blank", Text: "   \n  "})
	require.ErrorAs(t, err, &perr)
	assert.ErrorContains(t, err, "segment")
}

func TestProcessAllIsolation(t *testing.T) {
	c := NewCoordinator(config.DefaultConfig(), nil)

	outcomes := c.ProcessAll(context.Background(), []Input{
		{Name: "bad"},
		{Name: "good", Text: twoPageBlob},
	})
	require.Len(t, outcomes, 2)

	assert.Error(t, outcomes[0].Err)
	assert.NoError(t, outcomes[1].Err)
	require.NotNil(t, outcomes[1].Result)
	assert.Len(t, outcomes[1].Result.Document.Pages, 2)
}

// fakeRecognizer synthesizes one token per page and can fail on demand.
type fakeRecognizer struct {
	failPage int
}

func (f *fakeRecognizer) RecognizePage(_ context.Context, ref string, page int) ([]document.Token, error) {
	if page == f.failPage {
		return nil, errors.New("recognition backend unavailable")
	}
	return []document.Token{{
		Text:       fmt.Sprintf("%s line %d", ref, page),
		Confidence: 0.9,
		Page:       page,
	}}, nil
}

func TestRecognizeAllOrdered(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ingest.Workers = 4
	c := NewCoordinator(cfg, &fakeRecognizer{})

	tokens, err := c.recognizeAll(context.Background(), "doc", 8)
	require.NoError(t, err)
	require.Len(t, tokens, 8)
	for i, tok := range tokens {
		assert.Equal(t, i+1, tok.Page, "tokens reassemble in page order")
	}
}

func TestRecognizeAllPageFailureAborts(t *testing.T) {
	c := NewCoordinator(config.DefaultConfig(), &fakeRecognizer{failPage: 3})

	_, err := c.recognizeAll(context.Background(), "doc", 5)
	require.Error(t, err)
	assert.ErrorContains(t, err, "page 3")
}

func TestRecognizeAllCancellation(t *testing.T) {
	c := NewCoordinator(config.DefaultConfig(), &fakeRecognizer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.recognizeAll(ctx, "doc", 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
