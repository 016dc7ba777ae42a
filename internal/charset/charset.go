// Package charset decodes subtitle files of unknown encoding to UTF-8.
// Detection failures surface as errors; the rest of the pipeline only
// ever sees decoded text.
package charset

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Decode converts raw file bytes to a UTF-8 string. forceEncoding, when
// non-empty, names an IANA charset to use instead of detection.
func Decode(data []byte, forceEncoding string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	name := forceEncoding
	if name == "" {
		best, err := chardet.NewTextDetector().DetectBest(data)
		if err != nil {
			return "", fmt.Errorf("detecting encoding: %w", err)
		}
		name = best.Charset
	}
	if name == "UTF-8" {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	encoding, err := ianaindex.MIB.Encoding(name)
	if err != nil || encoding == nil {
		return "", fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), encoding.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return string(bytes.TrimPrefix(decoded, utf8BOM)), nil
}
