package strprofile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat2(t *testing.T) {
	assert.Equal(t, "3.14", formatFloat2(3.14159))
	assert.Equal(t, "0.00", formatFloat2(0))
	assert.Equal(t, "10.00", formatFloat2(10))
}
