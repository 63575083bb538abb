package codec

import (
	"fmt"

	"github.com/golang/snappy"
)

// SnappyText stores text snappy-compressed. Use it for bulky values
// (JSON blobs, logs); for short strings Text is smaller and cheaper.
var SnappyText Serializer[string] = snappyTextSerializer{}

type snappyTextSerializer struct{}

func (snappyTextSerializer) ToBytes(v string) ([]byte, error) {
	return snappy.Encode(nil, []byte(v)), nil
}

func (snappyTextSerializer) FromBytes(b []byte) (string, error) {
	raw, err := snappy.Decode(nil, b)
	if err != nil {
		return "", fmt.Errorf("failed to decompress text: %w", err)
	}
	return string(raw), nil
}
