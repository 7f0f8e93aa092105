package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeTextRemovesNulAndControls(t *testing.T) {
	require.Equal(t, "abcd\n\txy", SanitizeText("ab\x00cd\x01\x02\n\txy"))
	require.Equal(t, "", SanitizeText(""))
}

func TestSanitizeTextDropsInvalidUTF8(t *testing.T) {
	require.Equal(t, "fracción", SanitizeText(" frac\xffción\x7f "))
}
