package disciplinary

import "hrportal/internal/domain/records"

var (
	ErrNotFound     = records.ErrNotFound
	ErrInvalidState = records.ErrInvalidState
)
