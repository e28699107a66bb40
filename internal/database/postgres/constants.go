package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced user does not exist
	PgErrorCodeForeignKeyViolation = "23503"
)

// Constraint names used to tell unique violations apart
const (
	ConstraintUsersUsername = "users_username_key"
	ConstraintUsersEmail    = "users_email_key"
)

// Query limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)
