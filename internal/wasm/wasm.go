// Package main parses and formats a SQL date literal in order to test WASM
// compilation.
package main

import (
	"fmt"
	"time"

	"github.com/theory/sqldate"
)

func main() {
	codec := sqldate.NewCodec()

	// Parse a DATETIME literal.
	v, _ := codec.Parse("2016-03-05 14:09:07", time.UTC)

	// Show the query literal.
	//nolint:forbidigo
	fmt.Printf("%s\n", codec.Format(v, time.UTC))
}
