package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandReportsFailureAsError(t *testing.T) {
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"parse", "/nonexistent/invoice.pdf"})

	err := root.Execute()
	require.ErrorIs(t, err, errParseFailed)
	assert.Contains(t, out.String(), `"success": false`)
}

func TestPatternsCommand(t *testing.T) {
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"patterns"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "patterns")
}
