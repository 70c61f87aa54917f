// Package domain defines the core wardrobe entities and their validation
// rules: categories with inheritable wear policy, clothes with a
// clean/dirty/needs-pressing lifecycle, outfits, activity logs, trips,
// preferences, and the auxiliary wash-history and audit records.
//
// Entities in this package are pure data plus validation. All persistence
// concerns live in the store package; all state transitions that span
// entities live in the service layer.
package domain
