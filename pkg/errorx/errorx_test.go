package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeErrorWrapping(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(cause, CodeDBError, "create group")

	assert.Equal(t, "create group: disk on fire", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeDBError, GetCode(err))

	// codes survive further fmt wrapping
	outer := fmt.Errorf("handler: %w", err)
	assert.Equal(t, CodeDBError, GetCode(outer))
	assert.True(t, Is(outer, CodeDBError))
	assert.False(t, Is(outer, CodeCacheError))
}

func TestGetCodeFallsBackToServerBusy(t *testing.T) {
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("plain")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(CodeNotFound, "missing")))
	assert.True(t, IsNotFound(New(CodeGroupNotFound, "missing group")))
	assert.True(t, IsNotFound(New(CodeMemberNotFound, "missing member")))
	assert.False(t, IsNotFound(New(CodeBusy, "busy")))
	assert.False(t, IsNotFound(nil))
}
