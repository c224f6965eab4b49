package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSSE(t *testing.T) {
	t.Parallel()

	var b strings.Builder

	require.NoError(t, writeSSE(&b, "unread_count", []byte(`{"count":3}`)))

	// Frames must end in a blank line so clients can split them
	assert.Equal(t, "event: unread_count\ndata: {\"count\":3}\n\n", b.String())
}
