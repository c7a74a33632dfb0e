// CLAUDE:SUMMARY Pluggable ID generation strategies: timestamp+counter sequences and UUIDv7.
// Package idgen provides pluggable ID generation for threadmark.
//
// Constructors across the module (evidence, audit) accept a Generator,
// making the ID strategy a startup-time decision rather than a compile-time one.
package idgen

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// Sequence returns a Generator producing "<prefix>-<unixmilli>-<n>" IDs from
// a millisecond timestamp and a monotonically incrementing counter. The
// counter is owned by the returned closure: IDs are unique for the lifetime
// of that Generator, and test isolation is a matter of constructing a fresh
// one. Increments are atomic, so the sequence stays single-writer correct
// even on a multi-threaded host.
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), n.Add(1))
	}
}

// UUIDv7 returns a Generator that produces RFC 9562 UUID v7 strings.
// Time-sortable, globally unique.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed wraps a Generator and prepends a fixed prefix to every ID.
// Useful for type-scoped identifiers (e.g. "clip-", "scan-").
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}
