// Package encoding converts embeddings and document metadata between their
// in-memory and persisted forms.
package encoding

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidVector is returned when a vector BLOB cannot be decoded.
var ErrInvalidVector = errors.New("invalid vector data")

// EncodeVector converts a float32 slice to its BLOB representation: a plain
// sequence of little-endian IEEE-754 float32 values with no length prefix.
// The length is derived from the BLOB size on decode.
func EncodeVector(vector []float32) ([]byte, error) {
	if len(vector) == 0 {
		return nil, ErrInvalidVector
	}

	buf := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf, nil
}

// DecodeVector converts a BLOB produced by EncodeVector back to a float32
// slice.
func DecodeVector(data []byte) ([]float32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: blob length %d is not a positive multiple of 4", ErrInvalidVector, len(data))
	}

	vector := make([]float32, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vector, nil
}

// EncodeMetadata serializes document metadata to its stored JSON form.
// Nil metadata encodes to the empty string, persisted as SQL NULL.
func EncodeMetadata(metadata map[string]any) (string, error) {
	if metadata == nil {
		return "", nil
	}

	data, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(data), nil
}

// DecodeMetadata parses a stored JSON metadata string. The empty string
// decodes to nil.
func DecodeMetadata(jsonStr string) (map[string]any, error) {
	if jsonStr == "" {
		return nil, nil
	}

	var metadata map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return metadata, nil
}
