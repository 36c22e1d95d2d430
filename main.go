package main

import (
	"fmt"
	"os"

	"github.com/tuyensinh/admission-advisor/app"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		fmt.Fprintln(os.Stderr, "admission-advisor:", err)
		os.Exit(1)
	}
}
