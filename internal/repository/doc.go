// Package repository defines the data access interfaces for inventory items.
//
// Two layers are defined here:
//
// ItemQueries is the storage capability: the five statements run against the
// items table. The sqlite subpackage provides the only implementation.
//
// ItemsRepository is what application code depends on. OfflineItemsRepository
// implements it by forwarding every call to an ItemQueries, with no
// validation, retry or caching, so that another storage backend can be
// substituted without touching callers.
//
// # Read and Write Contracts
//
// Reads are live streams: subscribers receive the current result at once and
// again after every committed change that touches it.
//
// Writes block the calling goroutine until the statement commits or fails.
// Inserting a conflicting ID, or updating or deleting a missing row, is not an
// error; the write is silently dropped.
package repository
