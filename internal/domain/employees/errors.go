package employees

import (
	"fmt"

	"hrportal/internal/domain/records"
)

var (
	ErrNotFound                = records.ErrNotFound
	ErrDuplicateEmployeeNumber = fmt.Errorf("%w: employee number already in use", records.ErrConflict)
)
