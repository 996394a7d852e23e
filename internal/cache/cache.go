// Package cache keeps short-lived JSON copies of provider listings on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/where"
)

const TTL = 24 * time.Hour

// GenerateKey derives a stable file name from its parts.
func GenerateKey(parts ...string) string {
	sanitized := strings.ToLower(strings.Join(parts, "\x00"))
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry for key into target. Missing, expired or corrupt entries report false.
func Read(key string, target any) bool {
	path := filepath.Join(where.Listings(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.WithField("key", key).Warnf("corrupt cache entry: %s", err)
		return false
	}
	return true
}

// Write stores data under key, replacing any previous entry atomically.
func Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return filesystem.WriteAtomic(filepath.Join(where.Listings(), key), encoded)
}

// CollectGarbage removes expired entries and returns how many were removed.
func CollectGarbage() (int, error) {
	removed := 0
	err := filesystem.API().Walk(where.Listings(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL {
			if err := filesystem.API().Remove(path); err == nil {
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// Clear removes every entry.
func Clear() error {
	return filesystem.API().RemoveAll(where.Listings())
}
