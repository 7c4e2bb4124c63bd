package document

import (
	"testing"
	"time"

	"github.com/MeKo-Tech/claimlens/internal/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONAbsencesAndSlots(t *testing.T) {
	doc := &StructuredDocument{
		Document: Metadata{
			DocumentType: "test form",
			TotalPages:   1,
			ExtractedAt:  time.Date(2023, 7, 9, 0, 0, 0, 0, time.UTC),
		},
		Pages: []StructuredPage{{
			Page:    1,
			Section: section.PartA,
			FormFields: FieldMap{
				"1a_claimant_full_name":   "Maria Santos",
				"10a_secondary_telephone": nil,
			},
		}},
	}

	out, err := ToJSON(doc)
	require.NoError(t, err)

	// An explicit absence serializes as null; undefined slots are omitted.
	assert.Contains(t, out, `"10a_secondary_telephone": null`)
	assert.NotContains(t, out, `"signatures"`)
	assert.NotContains(t, out, `"tables"`)

	parsed, err := FromJSON([]byte(out))
	require.NoError(t, err)
	require.Len(t, parsed.Pages, 1)
	assert.Equal(t, "Maria Santos", parsed.Pages[0].FormFields["1a_claimant_full_name"])
	assert.Nil(t, parsed.Pages[0].FormFields["10a_secondary_telephone"])
}

func TestToJSONNil(t *testing.T) {
	_, err := ToJSON(nil)
	assert.Error(t, err)

	_, err = ToJSONDetections(nil)
	assert.Error(t, err)
}

func TestPageByNumber(t *testing.T) {
	doc := &StructuredDocument{Pages: []StructuredPage{{Page: 1}, {Page: 3}}}

	require.NotNil(t, doc.PageByNumber(3))
	assert.Equal(t, 3, doc.PageByNumber(3).Page)
	assert.Nil(t, doc.PageByNumber(2))
}
