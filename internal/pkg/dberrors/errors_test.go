package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	assert.True(t, IsDuplicateConstraintError(err, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(err, "other_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("plain"), "users_email_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, IsForeignKeyViolation(fkErr))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
	assert.False(t, IsForeignKeyViolation(nil))
}
