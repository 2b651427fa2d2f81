package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/tokenrule/cmd/tokenrule"
	"github.com/arthur-debert/tokenrule/pkg/style"
)

func main() {
	rootCmd := tokenrule.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		r := style.NewRenderer(style.ColorEnabled(os.Stderr))
		fmt.Fprintln(os.Stderr, r.RenderError(err))
		os.Exit(1)
	}
}
