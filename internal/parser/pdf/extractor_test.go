package pdf_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/parser/pdf"
)

type recordingEngine struct {
	name   string
	text   string
	err    error
	called bool
}

func (e *recordingEngine) Name() string { return e.name }

func (e *recordingEngine) Extract([]byte) (string, error) {
	e.called = true
	return e.text, e.err
}

type errorTableEngine struct{}

func (errorTableEngine) Extract([]byte) ([][][]string, error) {
	return nil, errors.New("no tables found")
}

var longText = strings.Repeat("invoice body line with plenty of text\n", 5)

func TestExtractPrimarySufficient(t *testing.T) {
	primary := &recordingEngine{name: "primary", text: longText}
	secondary := &recordingEngine{name: "secondary", text: "should not run"}
	e := pdf.NewExtractor(
		pdf.WithTextEngines(primary, secondary),
		pdf.WithTableEngine(errorTableEngine{}),
		pdf.WithOCR(nil),
	)

	doc, err := e.Extract(context.Background(), []byte("%PDF-fake"))
	require.NoError(t, err)
	assert.Equal(t, longText, doc.Text)
	assert.Equal(t, "primary", doc.Source)
	assert.False(t, secondary.called)
}

func TestExtractFallsBackToSecondary(t *testing.T) {
	primary := &recordingEngine{name: "primary", text: "too short"}
	secondary := &recordingEngine{name: "secondary", text: longText}
	e := pdf.NewExtractor(
		pdf.WithTextEngines(primary, secondary),
		pdf.WithTableEngine(errorTableEngine{}),
		pdf.WithOCR(nil),
	)

	doc, err := e.Extract(context.Background(), []byte("%PDF-fake"))
	require.NoError(t, err)
	assert.Equal(t, longText, doc.Text)
	assert.Equal(t, "secondary", doc.Source)
	assert.True(t, secondary.called)
}

func TestExtractPrimaryErrorIsWarned(t *testing.T) {
	primary := &recordingEngine{name: "primary", err: errors.New("broken xref")}
	secondary := &recordingEngine{name: "secondary", text: longText}
	e := pdf.NewExtractor(
		pdf.WithTextEngines(primary, secondary),
		pdf.WithTableEngine(errorTableEngine{}),
		pdf.WithOCR(nil),
	)

	doc, err := e.Extract(context.Background(), []byte("%PDF-fake"))
	require.NoError(t, err)
	assert.Equal(t, "secondary", doc.Source)

	joined := strings.Join(doc.Warnings, "\n")
	assert.Contains(t, joined, "primary")
	assert.Contains(t, joined, "broken xref")
}

func TestExtractTableFailureIsSwallowed(t *testing.T) {
	e := pdf.NewExtractor(
		pdf.WithTextEngines(&recordingEngine{name: "primary", text: longText}),
		pdf.WithTableEngine(errorTableEngine{}),
		pdf.WithOCR(nil),
	)

	doc, err := e.Extract(context.Background(), []byte("%PDF-fake"))
	require.NoError(t, err)
	assert.Empty(t, doc.Tables)
	assert.Contains(t, strings.Join(doc.Warnings, "\n"), "table extraction")
}

func TestExtractNothingRecoverable(t *testing.T) {
	e := pdf.NewExtractor(
		pdf.WithTextEngines(&recordingEngine{name: "primary", text: "   \n  "}),
		pdf.WithTableEngine(errorTableEngine{}),
		pdf.WithOCR(nil),
	)

	_, err := e.Extract(context.Background(), []byte("garbage"))
	require.Error(t, err)

	var extErr *model.ExtractionError
	assert.ErrorAs(t, err, &extErr)
}

func TestNonWhitespaceLen(t *testing.T) {
	assert.Equal(t, 0, pdf.NonWhitespaceLen(" \t\n\f\r"))
	assert.Equal(t, 7, pdf.NonWhitespaceLen("invoice"))
	assert.Equal(t, 7, pdf.NonWhitespaceLen(" a b\ncd ef g "))
}
