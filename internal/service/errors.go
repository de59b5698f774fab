package service

import (
	"fmt"

	appErr "github.com/xxxsen/skillmatch/internal/pkg/errors"
)

var (
	ErrTooManyEntries = fmt.Errorf("too many entries: %w", appErr.ErrInvalid)
	ErrEntryTooLong   = fmt.Errorf("entry too long: %w", appErr.ErrInvalid)
)
