// ABOUTME: Tests for the parser registry's format-sniffing Open entry point
package heapdump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_DispatchesToNDJSONParser(t *testing.T) {
	dump := strings.Join([]string{
		`{"type":"ROOT","references":["0x1"]}`,
		`{"address":"0x1","type":"STRING","memsize":4,"value":"hi"}`,
	}, "\n")

	rg, _, err := Open(strings.NewReader(dump))
	require.NoError(t, err)
	assert.True(t, rg.HasObject(1))
}

func TestOpen_NoParserMatches(t *testing.T) {
	_, _, err := Open(strings.NewReader("this is not a heap dump"))
	assert.ErrorIs(t, err, ErrNoParser)
}
