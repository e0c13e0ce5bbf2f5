// Package repository holds the parameterized SQL behind every API
// operation. Multi-statement workflows open explicit transactions;
// single-statement operations rely on per-statement atomicity.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrDuplicate marks a unique-constraint violation so services can map
// it to a conflict instead of leaking driver detail.
var ErrDuplicate = errors.New("duplicate key")

// requireRows enforces the envelope contract that an UPDATE or DELETE
// touching zero rows is a failure, not a silent success.
func requireRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	}
	return err
}
