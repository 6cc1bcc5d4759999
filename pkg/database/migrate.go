package database

import (
	"database/sql"
	"fmt"
)

// Migrate applies schema, a script of DDL statements.
func Migrate(db *sql.DB, schema string) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
