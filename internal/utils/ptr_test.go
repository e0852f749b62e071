package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, int64(5), Coalesce(nil, Ptr(int64(0)), Ptr(int64(5)), Ptr(int64(7))))
	assert.Equal(t, int64(0), Coalesce[int64](nil, nil))
	assert.Equal(t, "a", Coalesce(Ptr("a"), Ptr("b")))
}

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil("   "))
	assert.Nil(t, StringOrNil(""))
	if s := StringOrNil(" 2025-03-22 "); assert.NotNil(t, s) {
		assert.Equal(t, "2025-03-22", *s)
	}
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, 0, OrZero[int](nil))
	assert.Equal(t, 3, OrZero(Ptr(3)))
}
