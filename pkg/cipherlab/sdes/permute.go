package sdes

import "github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab"

// Permute builds a new sequence from bits by reading the 1-indexed source
// positions listed in table: out[i] = bits[table[i]-1]. The output has
// len(table) bits, so the same call handles compressing (P8), expanding (EP)
// and reordering (IP) tables.
func Permute(bits Bits, table []int) (Bits, error) {
	if err := checkTableRange("", table, len(bits)); err != nil {
		return nil, err
	}
	out := make(Bits, len(table))
	for i, pos := range table {
		out[i] = bits[pos-1]
	}
	return out, nil
}

// InverseTable returns the table that undoes table, i.e. inv[table[i]-1] = i+1.
// table must be a bijection on [1, len(table)].
func InverseTable(table []int) ([]int, error) {
	if err := checkBijection("", table, len(table)); err != nil {
		return nil, err
	}
	inv := make([]int, len(table))
	for i, pos := range table {
		inv[pos-1] = i + 1
	}
	return inv, nil
}

func checkTableRange(name string, table []int, domain int) error {
	if len(table) == 0 {
		return cipherlab.NewConfigurationError(name, "table is empty")
	}
	for i, pos := range table {
		if pos < 1 || pos > domain {
			return cipherlab.NewConfigurationError(name, "entry %d is %d, outside [1, %d]", i+1, pos, domain)
		}
	}
	return nil
}

func checkBijection(name string, table []int, domain int) error {
	if len(table) != domain {
		return cipherlab.NewConfigurationError(name, "expected %d entries, got %d", domain, len(table))
	}
	if err := checkTableRange(name, table, domain); err != nil {
		return err
	}
	seen := make([]bool, domain)
	for i, pos := range table {
		if seen[pos-1] {
			return cipherlab.NewConfigurationError(name, "entry %d repeats position %d", i+1, pos)
		}
		seen[pos-1] = true
	}
	return nil
}
