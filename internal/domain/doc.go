// Package domain defines the core domain types for the inventory tracker.
//
// # Core Types
//
// Item is the single persisted entity: a named stock entry with a unit price
// and a quantity on hand. An Item with a zero ID has not been persisted yet;
// the storage engine assigns the ID on insert.
//
// # Money
//
// Prices are decimal.Decimal values so that monetary amounts such as 9.99
// survive arithmetic and round trips without binary floating point drift.
//
// # Design Principles
//
// - No database or external dependencies beyond value types
// - Validation is left to callers; storage only enforces what SQLite enforces
package domain
