package errormgr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	assertion := assert.New(t)
	em := NewErrorMgr()
	assertion.Len(em.GetErrors(), 0)

	err := Error{
		Stage:       Publish,
		Destination: "arn:aws:sns:us-east-1:123456789012:sec-ops",
		Message:     "AuthorizationError",
	}
	em.StoreError(err)
	em.StoreError(nil)
	em.StoreError(errors.New("plain error"))

	emImpl := em.(*_ErrorMgr)
	assertion.Equal(2, len(emImpl.errorArray))
	assertion.Equal(err, emImpl.errorArray[0])

	var stored Error
	assertion.True(errors.As(em.GetErrors()[0], &stored))
	assertion.Equal(Publish, stored.Stage)
}

func TestErrorMessage(t *testing.T) {
	assertion := assert.New(t)

	fullError := Error{
		Stage:       Probe,
		Destination: "arn:aws:sns:us-east-1:123456789012:sec-ops",
		Message:     "NotFound",
	}
	assertion.Equal("Stage: probe, Destination: arn:aws:sns:us-east-1:123456789012:sec-ops, Message: NotFound", fullError.Error())

	partialError := Error{
		Stage:   Export,
		Message: "NoSuchBucket",
	}
	assertion.Equal("Stage: export, Message: NoSuchBucket", partialError.Error())

	assertion.Equal("unknown error", Error{}.Error())
}
