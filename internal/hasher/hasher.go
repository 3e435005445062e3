// Package hasher computes xxHash64 checksums used to fingerprint encoded
// images in reports and round-trip checks.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the xxHash64 of data as hex, truncated to hexLen
// characters when 0 < hexLen < 16.
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader streams r through xxHash64.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// ImageHash hashes the bytes img would be saved as, without touching disk.
// For an unmodified image this equals the hash of its source file.
func ImageHash(img *bmp.Image, hexLen int) (string, error) {
	h := xxhash.New()
	if err := bmp.Encode(h, img); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
