// Package storage defines the persistence records and interfaces for the
// simulation engine.
//
// It provides a high-level abstraction for storing game runs, per-turn
// results, and operational telemetry. Implementations of these interfaces
// (sqlite, memory) live in subpackages.
//
// # Error Types
//
// The package defines common error types used across storage implementations:
//   - ErrNotFound: Indicates a requested record is missing.
package storage
