package document

import (
	"encoding/json"
	"errors"
)

// ToJSON serializes a structured document to pretty JSON.
func ToJSON(doc *StructuredDocument) (string, error) {
	if doc == nil {
		return "", errors.New("nil document")
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToJSONDetections serializes the detailed detections artifact to pretty JSON.
func ToJSONDetections(det *Detections) (string, error) {
	if det == nil {
		return "", errors.New("nil detections")
	}
	b, err := json.MarshalIndent(det, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromJSON parses a serialized structured document, as written by ToJSON.
// Used by the offline accuracy evaluator to load prediction and truth files.
func FromJSON(data []byte) (*StructuredDocument, error) {
	var doc StructuredDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
