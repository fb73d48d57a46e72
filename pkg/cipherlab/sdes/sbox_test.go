package sdes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab"
)

func TestSBoxLookup(t *testing.T) {
	tables := DefaultTables()

	// Outer bits 1,1 select row 3; inner bits 0,1 select column 1.
	out, err := tables.S0.Lookup(MustParseBits("1011"))
	require.NoError(t, err)
	require.Equal(t, "01", out.String())

	out, err = tables.S1.Lookup(MustParseBits("0110"))
	require.NoError(t, err)
	require.Equal(t, "11", out.String())
}

// TestSBoxIndexDomain walks every 4-bit input and checks the selectors stay
// in range and agree with the outer/inner split.
func TestSBoxIndexDomain(t *testing.T) {
	box := DefaultTables().S0
	for v := 0; v < 16; v++ {
		in := byteToBits(uint8(v))[4:]
		row, col, err := box.Index(in)
		require.NoError(t, err)
		require.GreaterOrEqual(t, row, 0)
		require.LessOrEqual(t, row, 3)
		require.GreaterOrEqual(t, col, 0)
		require.LessOrEqual(t, col, 3)
		require.Equal(t, int(in[0])*2+int(in[3]), row)
		require.Equal(t, int(in[1])*2+int(in[2]), col)

		out, err := box.Lookup(in)
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.Equal(t, uint64(box[row][col]), out.Uint())
	}
}

func TestSBoxLookupRejectsWrongWidth(t *testing.T) {
	_, err := DefaultTables().S0.Lookup(MustParseBits("101"))
	require.ErrorIs(t, err, cipherlab.ErrDomain)
}

func TestParseSBox(t *testing.T) {
	box, err := ParseSBox("S0", [][]string{
		{"01", "00", "11", "10"},
		{"11", "10", "01", "00"},
		{"00", "10", "01", "11"},
		{"11", "01", "11", "10"},
	})
	require.NoError(t, err)
	require.Equal(t, DefaultTables().S0, box)
	require.Equal(t, "11", box.Strings()[3][2])
}

func TestParseSBoxRejectsMalformed(t *testing.T) {
	good := DefaultTables().S1.Strings()

	tests := map[string][][]string{
		"three rows":   good[:3],
		"short row":    {good[0], good[1], good[2], good[3][:3]},
		"long cell":    {good[0], good[1], good[2], {"101", "01", "00", "11"}},
		"non binary":   {good[0], good[1], good[2], {"1x", "01", "00", "11"}},
		"empty cell":   {good[0], good[1], good[2], {"", "01", "00", "11"}},
		"missing grid": nil,
	}
	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSBox("S1", rows)
			require.ErrorIs(t, err, cipherlab.ErrConfiguration)

			var ce *cipherlab.ConfigurationError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, "S1", ce.Table)
		})
	}
}
