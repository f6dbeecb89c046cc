package models

// Admin is a dashboard staff account stored under the "admin" collection.
// PasswordHash is a bcrypt hash; plaintext passwords are never persisted.
type Admin struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	LastUpdated  string `json:"lastUpdated,omitempty"`
}

// Actor identifies the admin performing a mutation. It is passed explicitly
// into every write path and stamped into lastUpdatedBy fields; nothing reads
// it from ambient state.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LastUpdatedBy is the audit stamp written alongside status mutations.
type LastUpdatedBy struct {
	AdminEmail string `json:"adminEmail"`
	UpdatedAt  string `json:"updatedAt"`
	ChangeType string `json:"changeType"`
}
