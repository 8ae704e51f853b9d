// This program provides a command line tool for working with a ledger file
// directly or against a running node.
package main

import "github.com/ardanlabs/ledger/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
