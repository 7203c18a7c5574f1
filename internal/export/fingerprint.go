package export

import (
	"hash/crc32"
	"strings"
)

// Fingerprint computes the storage key for an artist/title pair.
//
// The key is the CRC-32 (IEEE) of lower(artist)+lower(title) encoded as
// UTF-8, with no delimiter between the two. This matches the keys
// written by earlier exporters, so existing databases keep resolving;
// changing the concatenation would silently fork the keyspace.
//
// Distinct pairs can collide (("a","bc") and ("ab","c") share a key);
// the last write wins.
func Fingerprint(artist, title string) uint32 {
	at := strings.ToLower(artist) + strings.ToLower(title)
	return crc32.ChecksumIEEE([]byte(at))
}
