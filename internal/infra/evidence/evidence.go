package evidence

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes is the largest upload accepted unless configured otherwise.
const DefaultMaxBytes = 5 << 20

var (
	ErrEmpty    = errors.New("evidence file is empty")
	ErrTooLarge = errors.New("evidence file exceeds the size limit")
)

// Encoder turns uploaded proof artifacts into data URIs stored on the entry.
type Encoder struct {
	maxBytes int64
}

func NewEncoder(maxBytes int64) *Encoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Encoder{maxBytes: maxBytes}
}

func (e *Encoder) MaxBytes() int64 { return e.maxBytes }

// Encode sniffs the content type of data and returns data:<mime>;base64,<payload>.
// The file name is only used in error messages.
func (e *Encoder) Encode(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	if int64(len(data)) > e.maxBytes {
		return "", fmt.Errorf("%s (%d bytes, limit %d): %w", name, len(data), e.maxBytes, ErrTooLarge)
	}

	mime := mimetype.Detect(data).String()
	// "text/plain; charset=utf-8" keeps only the media type.
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
