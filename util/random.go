package util

import (
	"crypto/rand"
)

const randomStringCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n characters drawn from crypto/rand.
func RandomString(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	for i := range b {
		b[i] = randomStringCharset[int(b[i])%len(randomStringCharset)]
	}
	return string(b)
}
