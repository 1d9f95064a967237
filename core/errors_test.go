package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerErrorDefaultMessage(t *testing.T) {
	err := NewCustomerError(ErrKeyEmailAlreadyExists, nil)

	assert.Equal(t, "The email address provided is already in use.", err.Error())
	assert.True(t, err.IsErrorType(ErrKeyEmailAlreadyExists))
}

func TestNewCustomerErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCustomerError(ErrKeyDirectoryUnavailable, cause)

	assert.Equal(t, "The customer directory could not be reached.: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestNewCustomerErrorCustomMessage(t *testing.T) {
	err := NewCustomerError(ErrKeyCustomerCreationFailed, nil, "disk full")

	assert.Equal(t, "disk full", err.Error())
}

func TestNewCustomerErrorUnknownKey(t *testing.T) {
	err := NewCustomerError(CustomerErrorType("ErrNope"), nil)

	assert.Equal(t, "An unknown error occurred", err.Message)
}

func TestAsCustomerErrorFindsWrapped(t *testing.T) {
	inner := NewCustomerError(ErrKeyTemplateNotFound, nil)
	wrapped := fmt.Errorf("build: %w", inner)

	found := AsCustomerError(wrapped)
	require.NotNil(t, found)
	assert.Same(t, inner, found)
	assert.True(t, IsCustomerError(wrapped))
	assert.Equal(t, ErrKeyTemplateNotFound, ErrorKind(wrapped))
}

func TestErrorKindOutsideTaxonomy(t *testing.T) {
	assert.Nil(t, AsCustomerError(nil))
	assert.False(t, IsCustomerError(errors.New("plain")))
	assert.Equal(t, ErrKeyUnknown, ErrorKind(errors.New("plain")))
}
