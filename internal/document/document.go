package document

import (
	"time"

	"github.com/MeKo-Tech/claimlens/internal/section"
)

// Point is a single polygon vertex in image coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Token is one recognized text fragment as delivered by the recognition
// collaborator: the text line, its confidence, a four-point bounding polygon
// and the 1-based page it was found on. Tokens are immutable once created.
type Token struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	BBox       [4]Point `json:"bbox"`
	Page       int      `json:"page"`
}

// PageText is the raw text of one physical page after segmentation.
// Page numbers are 1-based and contiguous.
type PageText struct {
	Page    int    `json:"page"`
	RawText string `json:"raw_text"`
}

// FieldMap holds extracted field values keyed by field name. Values are
// strings, booleans, nested FieldMaps, slices of items, or nil for an
// explicit absence. A rejected or missing field is always nil, never "".
type FieldMap map[string]any

// StructuredPage is the structured output for one page. Only the field map
// slots defined by the page's section are populated; the rest stay nil and
// are omitted from serialization.
type StructuredPage struct {
	Page       int             `json:"page"`
	Section    section.Section `json:"section"`
	RawText    string          `json:"raw_text"`
	FormFields FieldMap        `json:"form_fields,omitempty"`
	Signatures FieldMap        `json:"signatures,omitempty"`
	PartB      FieldMap        `json:"part_b,omitempty"`
	Tables     FieldMap        `json:"tables,omitempty"`
	ThirdParty FieldMap        `json:"third_party_payment_form,omitempty"`
}

// Metadata is document-level information attached by the coordinator.
type Metadata struct {
	DocumentType string    `json:"document_type"`
	TotalPages   int       `json:"total_pages"`
	EnvelopeID   string    `json:"envelope_id,omitempty"`
	ExtractedAt  time.Time `json:"extracted_at"`
}

// StructuredDocument is the unit of persistence: document metadata plus the
// ordered page sequence. It is assembled once per run and immutable after.
type StructuredDocument struct {
	Document Metadata         `json:"document"`
	Pages    []StructuredPage `json:"pages"`
}

// ConfidenceMetrics aggregates per-token confidences over one document run.
type ConfidenceMetrics struct {
	Average            float64 `json:"average_confidence"`
	Min                float64 `json:"min_confidence"`
	Max                float64 `json:"max_confidence"`
	TotalDetections    int     `json:"total_detections"`
	LowConfidenceCount int     `json:"low_confidence_count"`
}

// Detections is the parallel "detailed" artifact: every retained token
// verbatim, with no interpretation applied.
type Detections struct {
	ProcessedAt     time.Time `json:"processed_at"`
	TotalDetections int       `json:"total_detections"`
	Detections      []Token   `json:"detections"`
}

// PageByNumber returns the page with the given 1-based number, or nil.
func (d *StructuredDocument) PageByNumber(n int) *StructuredPage {
	for i := range d.Pages {
		if d.Pages[i].Page == n {
			return &d.Pages[i]
		}
	}
	return nil
}
