// Package cache persists cost matrices fetched by a matrix provider so that a
// repeated request for the same ordered location list skips the live fetch.
//
// Three Store implementations share one contract (read-after-write
// consistency for identical keys, ErrNotFound on a miss):
//
//   - Badger: an embedded badger/v3 key-value store, on disk or in memory.
//   - File:   one JSON document per key in a directory.
//   - Memory: a process-local map.
//
// Keys are derived with Key from the travel mode, the metric and the ordered
// location identifiers; see provider.Cached for the read-through logic.
package cache
