package cipherlab

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClasses(t *testing.T) {
	cfg := NewConfigurationError("P10", "entry %d is %d", 6, 11)
	require.ErrorIs(t, cfg, ErrConfiguration)
	require.NotErrorIs(t, cfg, ErrDomain)
	require.Equal(t, "configuration: table P10: entry 6 is 11", cfg.Error())

	dom := NewDomainError("plaintext", "expected %d bits, got %d", 8, 7)
	require.ErrorIs(t, dom, ErrDomain)
	require.Equal(t, "domain: plaintext: expected 8 bits, got 7", dom.Error())

	var lm error = &LengthMismatchError{Left: 8, Right: 4}
	require.ErrorIs(t, lm, ErrLengthMismatch)
	require.Equal(t, "length mismatch: 8 bits vs 4 bits", lm.Error())
}

func TestErrorClassesSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("round 1: %w", fmt.Errorf("EP: %w", NewConfigurationError("", "entry 1 is 9")))
	require.ErrorIs(t, err, ErrConfiguration)

	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "entry 1 is 9", ce.Reason)
	require.Equal(t, "configuration: entry 1 is 9", ce.Error())
}

func TestKind(t *testing.T) {
	require.Equal(t, "", Kind(nil))
	require.Equal(t, "configuration", Kind(NewConfigurationError("IP", "x")))
	require.Equal(t, "length_mismatch", Kind(fmt.Errorf("w: %w", &LengthMismatchError{})))
	require.Equal(t, "domain", Kind(NewDomainError("", "x")))
	require.Equal(t, "internal", Kind(errors.New("boom")))
}
