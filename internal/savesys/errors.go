package savesys

import (
	"errors"
	"fmt"
)

// Reason tags why a Save failed.
type Reason string

const (
	ReasonNilSnapshot Reason = "nil_snapshot"
	ReasonCreateDir   Reason = "create_dir"
	ReasonEncode      Reason = "encode"
	ReasonWrite       Reason = "write"
	ReasonReplace     Reason = "replace"
)

// SaveError is the failure result of Store.Save. The previous save file is
// untouched whenever a SaveError is returned.
type SaveError struct {
	Reason Reason
	Path   string
	Err    error
}

func (e *SaveError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("save %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("save %s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// ReasonOf returns the Reason carried by err, or "" when err is not a
// SaveError.
func ReasonOf(err error) Reason {
	var se *SaveError
	if errors.As(err, &se) {
		return se.Reason
	}
	return ""
}

var (
	errEmptySave   = errors.New("save file decoded to an empty record")
	errMissingData = errors.New("save envelope has no data")
	errForeignSave = errors.New("save file has no known game fields")
)
