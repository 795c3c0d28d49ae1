package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/sarif2xccdf/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config resolution so a broken config file still allows this.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			fmt.Fprint(a.stdout, version.String())
		},
	}
}
