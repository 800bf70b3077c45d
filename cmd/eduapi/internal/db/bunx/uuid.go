package bunx

import "github.com/google/uuid"

// NewUUIDv7 generates a time-ordered UUIDv7 string for database primary keys.
// Time ordering keeps inserts append-mostly in the primary key index and works
// on both PostgreSQL and SQLite without gen_random_uuid().
//
// Panics only on catastrophic entropy failure, in which case no ID generation
// would work anyway.
func NewUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
