// Package models defines the core domain types for QuickSplit.
//
// # Entities
//
//   - User: a registered account, identified by a unique username
//   - Expense: a shared cost, owned by the user who created it
//   - Split: one participant's share of an expense, owed to the creator
//   - Settlement: an immutable audit record of a debt-clearing payment
//
// Balances are derived, never stored: the ledger aggregates unpaid
// splits on demand so every read reflects the latest committed state.
//
// # Design Principles
//
// 1. **IDs are UUID strings**, generated by the storage layer on insert
// 2. **Timestamps are Unix seconds** (int64)
// 3. **Avoid circular references**: relationships use ID strings, not pointers
package models
