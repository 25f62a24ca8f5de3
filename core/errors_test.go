package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	err := Error(EINVALID, "meta file is broken")
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "meta file is broken", UserMessage(err))
	wrapped := fmt.Errorf("loading: %w", err)
	assert.Equal(t, EINVALID, Code(wrapped), "code should survive wrapping")
}

func TestIOError(t *testing.T) {
	_, err := os.Stat("/does/not/exist/anywhere")
	e := IOError(err, "cannot stat %s", "x")
	assert.Equal(t, EMISSING, Code(e))
	assert.True(t, errors.Is(e, os.ErrNotExist))
	e = IOError(errors.New("disk full"), "cannot write")
	assert.Equal(t, EIO, Code(e))
}

func TestUserErrorOutput(t *testing.T) {
	var buf bytes.Buffer
	FprintUserError(&buf, WrapError(nil, EMISSING, "meta.json not found"))
	assert.Equal(t, "[122] meta.json not found\n", buf.String())
	buf.Reset()
	FprintUserError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}
