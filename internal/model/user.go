package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Operators record production and request reprints; supervisors
// manage assignments and review the reprint queue.  The operator and
// machine short codes feed the serial number format; they may be empty for
// accounts that never record production (the formatter substitutes
// defaults).
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (OPERATOR or SUPERVISOR).
//  OperatorCode – short code stamped into serial numbers, e.g. "07".
//  MachineCode  – short code of the machine the operator runs, e.g. "M2".
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	OperatorCode string    // users.operator_code
	MachineCode  string    // users.machine_code
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Roles accepted in the `users.role` column and the JWT role claim.
const (
	RoleOperator   = "OPERATOR"
	RoleSupervisor = "SUPERVISOR"
)

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
