// Package models defines the core domain models for tripledger.
//
// # Models
//
//   - Trip: a group trip with its budget parameters
//   - Participant: a member of a trip
//   - Expense: a shared cost paid by one participant, split equally among all of them
//   - Forecast: an externally produced per-person cost estimate for a trip
//   - Category: the closed set of expense categories used for aggregation
//
// Money is carried as decimal.Decimal in the trip's base currency. Derived
// values (balances, transfers, budget snapshots) live in the calculator
// package and are never persisted.
//
// # Design Principles
//
// 1. **Immutable expenses**: an edit is a delete followed by a create
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships
// 3. **Zero means unset**: optional amounts (original amount, exchange rate) are zero when absent
package models
