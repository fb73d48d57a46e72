package sdes

import (
	"slices"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab"
)

// Tables is the full parameter set of the cipher. Callers own the value; the
// package reads it and never writes to it.
type Tables struct {
	// P10 permutes the 10-bit key. Entries are in [1, 10].
	P10 []int
	// P8 selects 8 of the 10 shifted key bits to form a subkey.
	P8 []int
	// IP is the initial permutation; it must be a bijection on [1, 8].
	IP []int
	// EP expands the 4-bit right half to 8 bits. Entries are in [1, 4].
	EP []int
	// P4 permutes the combined S-box output; a bijection on [1, 4].
	P4 []int
	S0 SBox
	S1 SBox
}

// DefaultTables returns the textbook S-DES tables. Each call returns fresh
// slices, so callers may modify the result.
func DefaultTables() *Tables {
	return &Tables{
		P10: []int{3, 5, 2, 7, 4, 10, 1, 9, 8, 6},
		P8:  []int{6, 3, 7, 4, 8, 5, 10, 9},
		IP:  []int{2, 6, 3, 1, 4, 8, 5, 7},
		EP:  []int{4, 1, 2, 3, 2, 3, 4, 1},
		P4:  []int{2, 4, 3, 1},
		S0: SBox{
			{1, 0, 3, 2},
			{3, 2, 1, 0},
			{0, 2, 1, 3},
			{3, 1, 3, 2},
		},
		S1: SBox{
			{0, 1, 2, 3},
			{2, 0, 1, 3},
			{3, 0, 1, 0},
			{2, 1, 0, 3},
		},
	}
}

// Clone returns a deep copy of t.
func (t *Tables) Clone() *Tables {
	if t == nil {
		return nil
	}
	return &Tables{
		P10: slices.Clone(t.P10),
		P8:  slices.Clone(t.P8),
		IP:  slices.Clone(t.IP),
		EP:  slices.Clone(t.EP),
		P4:  slices.Clone(t.P4),
		S0:  t.S0,
		S1:  t.S1,
	}
}

// Validate checks the shape and range of every table. It returns a
// ConfigurationError naming the first offending table.
func (t *Tables) Validate() error {
	if t == nil {
		return errNilTables()
	}
	if err := t.validateKeySchedule(); err != nil {
		return err
	}
	if err := checkBijection("IP", t.IP, BlockSize); err != nil {
		return err
	}
	if err := t.validateRound(); err != nil {
		return err
	}
	return nil
}

// IPInverse derives the inverse of the initial permutation.
func (t *Tables) IPInverse() ([]int, error) {
	if t == nil {
		return nil, errNilTables()
	}
	if err := checkBijection("IP", t.IP, BlockSize); err != nil {
		return nil, err
	}
	return InverseTable(t.IP)
}

func (t *Tables) validateKeySchedule() error {
	if err := checkLength("P10", t.P10, KeySize); err != nil {
		return err
	}
	if err := checkTableRange("P10", t.P10, KeySize); err != nil {
		return err
	}
	if err := checkLength("P8", t.P8, SubkeySize); err != nil {
		return err
	}
	return checkTableRange("P8", t.P8, KeySize)
}

func (t *Tables) validateRound() error {
	if err := checkLength("EP", t.EP, SubkeySize); err != nil {
		return err
	}
	if err := checkTableRange("EP", t.EP, HalfSize); err != nil {
		return err
	}
	if err := checkBijection("P4", t.P4, HalfSize); err != nil {
		return err
	}
	if err := t.S0.validate("S0"); err != nil {
		return err
	}
	return t.S1.validate("S1")
}

func checkLength(name string, table []int, want int) error {
	if len(table) != want {
		return cipherlab.NewConfigurationError(name, "expected %d entries, got %d", want, len(table))
	}
	return nil
}

func errNilTables() error {
	return cipherlab.NewConfigurationError("", "tables are nil")
}
