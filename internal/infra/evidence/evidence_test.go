package evidence

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comms_governance/internal/domain/communication"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestEncodePNG(t *testing.T) {
	uri, err := NewEncoder(0).Encode("poster.png", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), uri)

	e := communication.Entry{EvidenceLink: uri}
	assert.True(t, e.IsImageEvidence())
	assert.Equal(t, communication.EvidenceData, e.EvidenceKind())
}

func TestEncodeTextDropsParameters(t *testing.T) {
	uri, err := NewEncoder(0).Encode("minutes.txt", []byte("meeting minutes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:text/plain;base64,"), uri)
}

func TestEncodeLimits(t *testing.T) {
	enc := NewEncoder(8)
	_, err := enc.Encode("big.bin", bytes.Repeat([]byte{1}, 9))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = enc.Encode("empty.bin", nil)
	assert.ErrorIs(t, err, ErrEmpty)

	assert.Equal(t, int64(DefaultMaxBytes), NewEncoder(-1).MaxBytes())
}
