// Package store defines the persistence interfaces for vocabulary items and
// dictionary entries, along with common store errors. Implementations live
// under internal/platform and are swapped for fakes in tests.
package store
