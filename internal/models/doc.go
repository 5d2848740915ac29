// Package models defines the core domain models for Rentkeeper.
//
// # Models
//
//   - Owner: the single account that manages the records
//   - House: a rental property
//   - Tenant: a person living in a House
//   - Bill: a dated, typed charge against a House
//   - Agreement: lease text attached to a House
//
// # Design Principles
//
//  1. **Write-once records**: nothing is updated or deleted after creation
//  2. **Explicit relationships**: children carry a HouseID; there are no
//     back-reference pointers, children are loaded with query-by-house calls
//  3. **Permissive text**: bill types and agreement dates are free text,
//     conventional values are exposed as constants
package models
