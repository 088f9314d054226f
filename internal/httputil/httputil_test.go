package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOperationMethod(t *testing.T) {
	for _, m := range OperationMethods {
		assert.True(t, IsOperationMethod(m), m)
	}
	for _, key := range []string{"parameters", "summary", "description", "servers", "x-owner", "POST", "$ref"} {
		assert.False(t, IsOperationMethod(key), key)
	}
}

func TestIsSuccessStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, true},
		{204, true},
		{301, true},
		{399, true},
		{400, false},
		{404, false},
		{500, false},
		{0, false},
		{99, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSuccessStatus(tt.code), "status %d", tt.code)
	}
}
