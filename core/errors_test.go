package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	err := Error(EMISSING, "font %s not found", "Clarendon")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "font Clarendon not found", UserMessage(err))
	assert.Equal(t, "[122] font Clarendon not found", err.Error())
}

func TestWrapError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := WrapError(cause, ERASTER, "cannot load glyph %d", 7)
	assert.Equal(t, ERASTER, Code(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "[125] cannot load glyph 7: unexpected EOF", err.Error())
	//
	outer := fmt.Errorf("rendering: %w", WrapError(err, EINVALID, "giving up"))
	assert.Equal(t, EINVALID, Code(outer), "outermost code wins")
	assert.Equal(t, "giving up", UserMessage(outer))
	assert.Equal(t, "not found", UserMessage(ErrorWithCode(nil, EMISSING)))
	assert.Equal(t, "internal error", UserMessage(errors.New("plain")))
}
