package utils

import (
	rndm "math/rand"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var upperRunes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateUpperCode creates a random upper-alphanumeric string of length n.
// Used for one-time redeem codes.
func GenerateUpperCode(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = upperRunes[rndm.Intn(len(upperRunes))]
	}
	return string(b)
}
