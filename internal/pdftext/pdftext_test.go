package pdftext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPageMarkedMissingFile(t *testing.T) {
	e := New()

	_, _, err := e.ExtractPageMarked(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing.pdf")
}
