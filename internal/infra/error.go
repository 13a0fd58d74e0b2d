package infra

import (
	"errors"

	"lastbite/internal/pkg/errs"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds. KindDBFailure marks transient storage
// failures (retry the whole operation); the others map to caller-actionable
// domain outcomes.
const (
	KindNotFound        RepositoryErrorKind = "NOT_FOUND"
	KindInactive        RepositoryErrorKind = "INACTIVE"
	KindInsufficientQty RepositoryErrorKind = "INSUFFICIENT_QTY"
	KindConflict        RepositoryErrorKind = "CONFLICT"
	KindDuplicateKey    RepositoryErrorKind = "DUPLICATE_KEY"
	KindDBFailure       RepositoryErrorKind = "DB_FAILURE"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr wraps a low-level storage error with a kind; omitted kind
// defaults to KindDBFailure.
func WrapRepoErr(msg string, err error, kinds ...RepositoryErrorKind) error {
	kind := KindDBFailure
	if len(kinds) > 0 {
		kind = kinds[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
