package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/amethyst-mc/amethyst/internal/pkg/java"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the amethyst build and the Minecraft protocol it speaks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeVersion(cmd.OutOrStdout(), version)
	},
}

func writeVersion(w io.Writer, v string) error {
	if v == "" {
		v = "dev"
	}

	_, err := fmt.Fprintf(w, "amethyst %s (Minecraft %s, protocol %d)\n", v, java.VersionName, java.ProtocolVersion)
	return err
}
