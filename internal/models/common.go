// Package models defines the database-shaped representations of the core
// entities. Repositories map between these and the domain types.
package models

import "time"

// AuditFields are the audit columns shared by every table.
type AuditFields struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
}
