package sdes_test

import (
	"fmt"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/sdes"
)

func ExampleEncryptString() {
	res, err := sdes.EncryptString("10111101", "1010000010", sdes.DefaultTables())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("K1:", res.K1)
	fmt.Println("K2:", res.K2)
	fmt.Println("ciphertext:", res.Output)
	// Output:
	// K1: 10100100
	// K2: 01000011
	// ciphertext: 01110101
}

func ExampleDecryptString() {
	res, err := sdes.DecryptString("01110101", "1010000010", sdes.DefaultTables())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Output)
	// Output: 10111101
}
