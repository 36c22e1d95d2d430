// Command admissionctl is the operator CLI for the admission advisor: schema
// migration, demo data, context-block inspection and access tokens.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
