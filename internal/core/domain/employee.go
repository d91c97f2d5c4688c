package domain

import "time"

// Employee is a staff record together with the equipment assigned to it.
type Employee struct {
	ID           string    `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	NationalID   string    `json:"nationalId"`
	Telephone    string    `json:"telephone"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	Position     string    `json:"position"`
	Manufacturer string    `json:"manufacturer"`
	Model        string    `json:"model"`
	SerialNumber string    `json:"serialNumber"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuditAction names a recorded mutation.
type AuditAction string

const (
	AuditEmployeeCreated AuditAction = "employee.created"
	AuditEmployeeUpdated AuditAction = "employee.updated"
	AuditEmployeeDeleted AuditAction = "employee.deleted"
)

// AuditEntry records who changed what. Entries are append-only.
type AuditEntry struct {
	ID         string
	ActorID    string
	ActorRole  Role
	Action     AuditAction
	Resource   string
	ResourceID string
	At         time.Time
}
