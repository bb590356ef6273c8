// Package hasher fingerprints source files so manifests can detect changes.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// HexLen is the length of a full fingerprint: 64 bits as hex.
const HexLen = 16

// Sum returns the xxHash64 of data as HexLen lower-case hex characters.
func Sum(data []byte) string {
	return format(xxhash.Sum64(data))
}

// SumReader is Sum over a stream.
func SumReader(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64()), nil
}

// SumFile streams the file at path through SumReader.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sum, err := SumReader(f)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return sum, nil
}

func format(v uint64) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, v))
}
