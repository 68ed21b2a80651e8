package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/receipt-extractor/constants"
	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
	"github.com/joseph-ayodele/receipt-extractor/internal/extract"
	"github.com/joseph-ayodele/receipt-extractor/internal/pipeline"
)

type stubAcquirer struct{}

func (stubAcquirer) Acquire(_ context.Context, _ string) (extract.AcquiredText, error) {
	return extract.AcquiredText{
		Content: "ACME TRADING SDN BHD\nINVOICE\nInvoice No: INV-00001\nWidget 1 5.00 5.00\nTotal 5.00\n",
		Pages:   1, SourceType: constants.PDF, Method: "pdf-text", Confidence: 1.0,
	}, nil
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestProcessDirectoryFiltersAndExtracts(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a.pdf",
		"sub/b.jpg",
		"notes.txt",     // extension not allowed
		".hidden/c.pdf", // hidden dir skipped
		".dotfile.pdf",  // hidden file skipped
	)

	pipe := pipeline.NewPipeline(stubAcquirer{}, pipeline.Config{}, nil)
	r := NewRunner(pipe, nil)
	r.Workers = 2

	results, stats, err := r.ProcessDirectory(context.Background(), root, true)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), stats.Matched)
	assert.Equal(t, uint32(2), stats.Succeeded)
	assert.Equal(t, uint32(0), stats.Failed)
	require.Len(t, results, 2)
	for _, fr := range results {
		assert.Empty(t, fr.Err)
		require.NotNil(t, fr.Result)
		assert.Equal(t, "INV-00001", fr.Key)
	}
}

func TestProcessDirectoryEmptyRoot(t *testing.T) {
	pipe := pipeline.NewPipeline(stubAcquirer{}, pipeline.Config{}, nil)
	r := NewRunner(pipe, nil)

	_, _, err := r.ProcessDirectory(context.Background(), "  ", true)
	assert.Error(t, err)
}

func TestBuildEnvelope(t *testing.T) {
	num := "INV-7"
	res := entity.ExtractionResult{
		Document:  entity.DocumentInfo{DocumentType: constants.DocTypeInvoice, DocumentNumber: &num},
		LineItems: []entity.LineItem{},
		Warnings:  []string{},
	}
	results := []FileResult{
		{Path: "a.pdf", Key: "INV-7", Result: &res},
		{Path: "b.pdf", Key: "INV-7", Result: &res}, // duplicate document number
		{Path: "c.pdf", Key: "c", Err: "text acquisition failed"},
	}

	env := BuildEnvelope(results)

	assert.False(t, env.Status, "a failed file must flip the status flag")
	assert.Equal(t, "2 out of 3 files processed", env.Message)
	require.Len(t, env.Data, 2)
	assert.Contains(t, env.Data, "INV-7")
	assert.Contains(t, env.Data, "INV-7-2")
}

func TestBuildEnvelopeAllProcessed(t *testing.T) {
	res := entity.ExtractionResult{}
	env := BuildEnvelope([]FileResult{{Path: "a.pdf", Key: "a", Result: &res}})
	assert.True(t, env.Status)
	assert.Equal(t, "1 out of 1 files processed", env.Message)
}

func TestKeyFor(t *testing.T) {
	num := "INV-9"
	res := &entity.ExtractionResult{Document: entity.DocumentInfo{DocumentNumber: &num}}
	assert.Equal(t, "INV-9", keyFor("/tmp/whatever.pdf", res))
	assert.Equal(t, "whatever", keyFor("/tmp/whatever.pdf", nil))
	assert.Equal(t, "whatever", keyFor("/tmp/whatever.pdf", &entity.ExtractionResult{}))
}
