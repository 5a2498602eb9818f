package usecase

import (
	"hash/fnv"
	"reflect"
)

const (
	// DiagnosticUnrecognized marks a record whose tag line is not RecordTag.
	DiagnosticUnrecognized = "unrecognized_record"
	// DiagnosticCorrupt marks a tagged record that failed parsing, validity
	// or uniqueness checks.
	DiagnosticCorrupt = "corrupt_record"

	// RecordTag introduces every persisted account record.
	RecordTag = "Account"
)

// DefaultSeed makes account-number generation reproducible across runs of
// the same binary. It is derived from the registry's type name.
var DefaultSeed = nameSeed(reflect.TypeFor[Bank]().Name())

func nameSeed(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}
