package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLocale("en-US")

	assert.Equal("line 12 'nop' bad", From("line %d '%v' %v", 12, "nop", "bad"))
	assert.Equal("0x02 at 0xfffd", From("0x%02x at 0x%04x", 2, 0xfffd))
}

func TestSetLocale_Default(t *testing.T) {
	assert := assert.New(t)

	SetLocale()
	defaulted := Language()

	SetLocale("en-US")
	assert.Equal(Language(), defaulted)
}
