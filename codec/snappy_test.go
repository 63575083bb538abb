package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnappyTextRoundTrip(t *testing.T) {
	in := strings.Repeat("wide column stores love repetitive data ", 100)

	data, err := SnappyText.ToBytes(in)
	require.NoError(t, err)
	assert.Less(t, len(data), len(in))

	out, err := SnappyText.FromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSnappyTextEmpty(t *testing.T) {
	data, err := SnappyText.ToBytes("")
	require.NoError(t, err)

	out, err := SnappyText.FromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestSnappyTextRejectsGarbage(t *testing.T) {
	_, err := SnappyText.FromBytes([]byte{0xff, 0x00, 0x01})
	assert.Error(t, err)
}
