package errormgr

import "strings"

type Stage string

const (
	Probe   Stage = "probe"
	Publish Stage = "publish"
	Export  Stage = "export"
	Account Stage = "account"
)

// ErrorMgr keeps the errors a run recovered from.
type ErrorMgr interface {
	StoreError(err error)
	GetErrors() []error
}

// _ErrorMgr is the implementation of ErrorMgr.
type _ErrorMgr struct {
	errorArray []error
}

// Error is a non-fatal failure tied to the stage of the run that produced it.
type Error struct {
	Stage       Stage
	Destination string
	Message     string
}

func (e Error) Error() string {
	parts := []string{}
	if e.Stage != "" {
		parts = append(parts, "Stage: "+string(e.Stage))
	}
	if e.Destination != "" {
		parts = append(parts, "Destination: "+e.Destination)
	}
	if e.Message != "" {
		parts = append(parts, "Message: "+e.Message)
	}
	if len(parts) == 0 {
		return "unknown error"
	}
	return strings.Join(parts, ", ")
}

// NewErrorMgr creates a new instance of ErrorMgr.
func NewErrorMgr() ErrorMgr {
	return &_ErrorMgr{
		errorArray: make([]error, 0),
	}
}

// StoreError keeps err; nil is ignored.
func (em *_ErrorMgr) StoreError(err error) {
	if err == nil {
		return
	}
	em.errorArray = append(em.errorArray, err)
}

// GetErrors returns all stored errors.
func (em *_ErrorMgr) GetErrors() []error {
	return em.errorArray
}
