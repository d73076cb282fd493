package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/installd/switchboard/pkg/errors"
	"github.com/installd/switchboard/pkg/locale"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"posix form", "de_DE", "de_DE"},
		{"bcp47 form", "de-DE", "de_DE"},
		{"language only", "cs", "cs"},
		{"english us", "en_US", "en_US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locale.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "no!such", "123_456"} {
		_, err := locale.Normalize(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, locale.Valid("en_US"))
	assert.False(t, locale.Valid("!!"))
}
