package utils

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/spaolacci/murmur3"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword checks if the provided password matches the hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateRandomString generates a random string of given length
func GenerateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// GenerateInitialPassword returns the bootstrap password for the admin user
func GenerateInitialPassword() string {
	return GenerateRandomString(16)
}

// FindingDedupKey builds the identity key for a finding occurrence so
// re-ingesting the same weakness on the same asset updates last_seen
// instead of inserting a duplicate. CVE order does not matter.
func FindingDedupKey(assetID, pluginID, title string, cveIDs []string) string {
	cves := make([]string, len(cveIDs))
	copy(cves, cveIDs)
	sort.Strings(cves)

	h := murmur3.New64()
	h.Write([]byte(assetID))
	h.Write([]byte{0})
	h.Write([]byte(pluginID))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(title)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(cves, ",")))
	return fmt.Sprintf("%016x", h.Sum64())
}
