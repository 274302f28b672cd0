package helpers

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	ok := NewResult("reply", nil)
	v, err := ok.Value()
	assert.Equal(t, "reply", v)
	assert.NoError(t, err)
	assert.True(t, ok.Ok())

	boom := errors.New("boom")
	failed := NewResult("", boom)
	assert.False(t, failed.Ok())
	assert.Equal(t, boom, failed.Error())
}
