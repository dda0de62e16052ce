// Package daily derives the deterministic "puzzle of the day": the same
// candidate pool and secret for every player on a given UTC date.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns HMAC(salt, date|i) folded to a uint64.
func Seed(date time.Time, salt string, i int) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.Itoa(i)))
	sum := h.Sum(nil)
	// first 8 bytes give a well-spread modulus
	return binary.BigEndian.Uint64(sum[:8])
}

// Pool deterministically picks up to size distinct words from dict.
// The pick depends only on date, salt and the order of dict.
func Pool(date time.Time, salt string, dict []string, size int) []string {
	if size > len(dict) {
		size = len(dict)
	}
	src := append([]string(nil), dict...)
	for i := 0; i < size; i++ {
		j := i + int(Seed(date, salt, i)%uint64(len(src)-i))
		src[i], src[j] = src[j], src[i]
	}
	return src[:size]
}

// SecretIndex picks the index of the day's secret within a pool of n words.
func SecretIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Seed(date, salt, -1) % uint64(n))
}

// Length picks the day's word length among the available lengths.
func Length(date time.Time, salt string, lengths []int) int {
	if len(lengths) == 0 {
		return 0
	}
	return lengths[Seed(date, salt, -2)%uint64(len(lengths))]
}
