package commands

import (
	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/errs"
)

// markNotFound applies the business sentinel only when the repository
// reported a missing row; any other failure surfaces as a database error.
func markNotFound(err error, sentinel error) error {
	return markKind(err, infra.KindNotFound, sentinel)
}

// markDuplicate applies the business sentinel only when the repository
// reported a unique-key conflict.
func markDuplicate(err error, sentinel error) error {
	return markKind(err, infra.KindDuplicateKey, sentinel)
}

func markKind(err error, kind infra.RepositoryErrorKind, sentinel error) error {
	if infra.IsKind(err, kind) {
		return errs.Mark(err, sentinel)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
