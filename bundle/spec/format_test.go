package spec_test

import (
	"errors"
	"testing"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for value, want := range map[string]spec.Format{
		"":          spec.FormatUnknown,
		"auto":      spec.FormatUnknown,
		"legacy":    spec.FormatLegacy,
		"1000":      spec.FormatLegacy,
		"1001":      spec.FormatLegacy,
		"1002":      spec.FormatLegacy,
		"0":         spec.FormatUnknown,
		"Compact":   spec.FormatCompactV2,
		"compactv2": spec.FormatCompactV2,
		"1003":      spec.FormatCompactV2,
		"1004":      spec.FormatCompactV2,
	} {
		got, err := spec.ParseFormat(value)
		require.NoError(t, err, value)
		require.Equal(t, want, got, value)
	}

	for _, value := range []string{"bogus", "-5", "10.03"} {
		_, err := spec.ParseFormat(value)
		require.Truef(t, errors.Is(err, spec.ErrInvalidFormat), "%q: %v", value, err)
	}

	require.Equal(t, 1000, spec.FormatLegacy.Version())
	require.Equal(t, 1003, spec.FormatCompactV2.Version())
	require.Equal(t, "compactv2", spec.FormatCompactV2.String())
}
