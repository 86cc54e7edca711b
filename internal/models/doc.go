// Package models defines the core domain models for SplitEase.
//
// # Ownership
//
// Groups own their members and expenses: a Member belongs to exactly one
// Group and is never shared across groups, and an Expense references members
// of its own group only. Deleting a group removes its members, expenses and
// any notifications that reference it.
//
// # Derived vs stored data
//
// Balance is the only derived model. It is recomputed from the current
// member and expense snapshots on every read and is never persisted.
//
// # Design principles
//
//  1. Relationships use ID strings, not pointers, to avoid circular references.
//  2. Timestamps are Unix seconds, assigned by the store at creation time.
//  3. Expense participant sets are captured at creation time and are not
//     rewritten when the group's member list changes later.
package models
