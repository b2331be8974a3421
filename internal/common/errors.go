package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., username or team slug already exists
	ErrInternalServer = errors.New("internal server error")
	ErrGone           = errors.New("this endpoint has been retired")

	// Attempt validation failures. The messages are part of the API contract;
	// clients match on them.
	ErrUnknownTrack     = errors.New("Sorry, we don't know anything about that language track.")
	ErrUnknownExercise  = errors.New("Sorry, we can't find that exercise in this track.")
	ErrDuplicateAttempt = errors.New("This attempt is a duplicate of the previous one.")

	// Unsubmit rejection reasons. Evaluated in a fixed order: existence,
	// completion, nits, age.
	ErrNothingToUnsubmit = errors.New("there is no submission to unsubmit")
	ErrSubmissionDone    = errors.New("the submission has already been marked done")
	ErrSubmissionHasNits = errors.New("the submission has outstanding nits")
	ErrSubmissionTooOld  = errors.New("the submission is too old to unsubmit")
)

// HTTPStatusFromError maps domain errors to HTTP status codes. Unsubmit
// failures split into resource-absence (404) and policy-forbidden (403) so
// callers can tell "nothing to undo" from "not allowed to undo".
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch {
	case errors.Is(err, ErrUnknownTrack),
		errors.Is(err, ErrUnknownExercise),
		errors.Is(err, ErrDuplicateAttempt),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNothingToUnsubmit), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSubmissionDone),
		errors.Is(err, ErrSubmissionHasNits),
		errors.Is(err, ErrSubmissionTooOld),
		errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrGone):
		return http.StatusGone
	}

	// pgx unique violations surface as conflicts.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
