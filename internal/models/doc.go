// Package models defines the core domain entities for Settlr.
//
// # Entities
//
//   - User: a registered account, identified by a unique email
//   - Group: a set of people who share expenses
//   - GroupMember: the (group, user) membership relation, unique per pair
//   - Expense: a single payment made by one member on behalf of the group
//   - ExpenseSplit: one member's share of an expense
//
// # Design Principles
//
// 1. **Ids, not pointers**: entities reference each other by int64 id, never by
// embedded object graphs, so there are no circular references and no lazy
// loading. Cross-entity reads are explicit store queries.
//
// 2. **Materialized display fields**: fields like Expense.PaidByName and
// GroupMember.UserName are populated by the store's join queries so callers
// never need a second lookup to render a row.
//
// 3. **Exact money**: all amounts are decimal.Decimal with two fractional
// digits. float64 is never used for money.
//
// 4. **Append-only ledger**: expenses and splits are never mutated after
// creation; balances are always derived from the full history.
package models
