// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - saes is a command line workbench for simplified AES: single
// block, multiple and CBC encryption plus a meet-in-the-middle attack on
// double encryption.
package main

import "github.com/bgallie/saes/cmd"

func main() {
	cmd.Execute()
}
