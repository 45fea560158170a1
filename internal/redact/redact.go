// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

// Package redact strips credentials from text before it reaches the
// terminal, a log line or an HTTP response.
package redact

import (
	"os"
	"strings"
	"sync"
)

// Placeholder replaces every secret occurrence.
const Placeholder = "[REDACTED]"

// minSecretLen avoids redacting short values that match ordinary words.
const minSecretLen = 4

// sensitiveEnvVars lists environment variables whose values never appear in
// output.
var sensitiveEnvVars = []string{
	"ANTHROPIC_API_KEY",
	"ANTHROPIC_AUTH_TOKEN",
	"BREACHDASH_API_KEY",
}

var (
	mu        sync.Mutex
	loaded    bool
	secrets   []string
	extraKeys []string
)

func load() {
	if loaded {
		return
	}
	secrets = nil
	for _, name := range sensitiveEnvVars {
		if v := os.Getenv(name); len(v) >= minSecretLen {
			secrets = append(secrets, v)
		}
	}
	secrets = append(secrets, extraKeys...)
	loaded = true
}

// Add registers a secret that did not come from the environment, such as a
// key read from a config file.
func Add(secret string) {
	if len(secret) < minSecretLen {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	extraKeys = append(extraKeys, secret)
	loaded = false
}

// ResetForTest forgets cached and added secrets so tests can change the
// environment between calls.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	loaded = false
	extraKeys = nil
}

// String replaces every known secret in s with Placeholder. Environment
// values are read once and cached.
func String(s string) string {
	mu.Lock()
	load()
	list := secrets
	mu.Unlock()

	for _, secret := range list {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return s
}
