package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// MakeMap creates and returns a map[string]string containing a single key-value pair.
func MakeMap(key, value string) map[string]string {
	return map[string]string{key: value}
}

// CachedBundleName returns the on-disk file name for a bundle downloaded from url
// on behalf of sourceID: "source_<sha1(id)>_<sha1(url)>.zip". Hashing the ID keeps
// one source's names from being a prefix of another's.
func CachedBundleName(sourceID, url string) string {
	return cachePrefix(sourceID) + sha1Hex(url) + ".zip"
}

// isCachedBundleName reports whether name was produced by CachedBundleName for sourceID.
func isCachedBundleName(name, sourceID string) bool {
	rest, ok := strings.CutPrefix(name, cachePrefix(sourceID))
	if !ok {
		return false
	}
	hash, ok := strings.CutSuffix(rest, ".zip")
	if !ok || len(hash) != 2*sha1.Size {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}

func cachePrefix(sourceID string) string {
	return "source_" + sha1Hex(sourceID) + "_"
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
