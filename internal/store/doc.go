// Package store provides SQLite-backed durable storage for the order ledger.
//
// The store is a small key/value namespace. Each key holds one JSON snapshot
// of a whole collection and every write replaces the snapshot outright:
//   - orders: completed orders awaiting deletion
//   - orderHistory: deleted orders with their deletion stamp
//
// Keys carry a revision that counts writes. It is a logical counter, never a
// timestamp, so two runs of the same session leave identical databases.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Open(":memory:") gives a throwaway database. The pool is capped at one
// connection, so the in-memory database lives as long as the Store.
package store
