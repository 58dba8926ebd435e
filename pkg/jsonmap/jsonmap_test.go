package jsonmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromMapHandlesNil(t *testing.T) {
	val := FromMap(nil)
	require.NotNil(t, val)
	require.Empty(t, val)
}

func TestRoundTrip(t *testing.T) {
	in := map[string]interface{}{"channel": "email", "attempts": 3}
	out := ToMap(FromMap(in))
	require.Equal(t, in, out)
}
