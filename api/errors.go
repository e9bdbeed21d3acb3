package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/zkgov/ballotbox/log"
	"github.com/zkgov/ballotbox/voting"
)

// Error is used by handler functions to wrap errors, assigning a unique error code
// and also specifying which HTTP Status should be used.
type Error struct {
	Err        error
	Code       int
	HTTPstatus int
}

// MarshalJSON returns a JSON containing Err.Error() and Code. Field HTTPstatus is ignored.
//
// Example output: {"error":"proposal not found","code":40001}
func (e Error) MarshalJSON() ([]byte, error) {
	// This anon struct is needed to actually include the error string,
	// since it wouldn't be marshaled otherwise. (json.Marshal doesn't call Err.Error())
	return json.Marshal(
		struct {
			Err  string `json:"error"`
			Code int    `json:"code"`
		}{
			Err:  e.Err.Error(),
			Code: e.Code,
		})
}

// Error returns the message contained inside the Error.
func (e Error) Error() string {
	return e.Err.Error()
}

// Write serializes a JSON msg using Error.Err and Error.Code
// and writes it to the response with Error.HTTPstatus.
func (e Error) Write(w http.ResponseWriter) {
	msg, err := json.Marshal(e)
	if err != nil {
		log.Warn(err)
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	if log.Level() == log.LogLevelDebug {
		log.Debugw("API error response", "error", e.Error(), "code", e.Code, "httpStatus", e.HTTPstatus)
	}
	// set the content type to JSON
	w.Header().Set("Content-Type", "application/json")
	http.Error(w, string(msg), e.HTTPstatus)
}

// Withf returns a copy of Error with the Sprintf formatted string appended at the end of e.Err
func (e Error) Withf(format string, args ...any) Error {
	return Error{
		Err:        fmt.Errorf("%w: %v", e.Err, fmt.Sprintf(format, args...)),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
	}
}

// With returns a copy of Error with the string appended at the end of e.Err
func (e Error) With(s string) Error {
	return Error{
		Err:        fmt.Errorf("%w: %v", e.Err, s),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
	}
}

// WithErr returns a copy of Error with err.Error() appended at the end of e.Err
func (e Error) WithErr(err error) Error {
	return Error{
		Err:        fmt.Errorf("%w: %v", e.Err, err.Error()),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
	}
}

// fromDomainError maps a voting core error to its coded API error. Order
// matters: the more specific sentinels are checked before their category.
func fromDomainError(err error) Error {
	switch {
	case errors.Is(err, voting.ErrNotFound):
		return ErrResourceNotFound.WithErr(err)
	case errors.Is(err, voting.ErrVotingClosed):
		return ErrVotingClosed
	case errors.Is(err, voting.ErrDuplicateNullifier):
		return ErrDuplicateNullifier
	case errors.Is(err, voting.ErrQuorumNotMet):
		return ErrQuorumNotMet.WithErr(err)
	case errors.Is(err, voting.ErrInvalidState):
		return ErrInvalidProposalState.WithErr(err)
	case errors.Is(err, voting.ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, voting.ErrValidation):
		return ErrInvalidInput.WithErr(err)
	}
	return ErrGenericInternalServerError.WithErr(err)
}
