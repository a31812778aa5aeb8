package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/amethyst-mc/amethyst/internal/pkg/config"
)

var (
	defaultsCmd = &cobra.Command{
		Use:   "defaults",
		Short: "Prints the built-in default config",
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := config.Defaults()
			if err != nil {
				return err
			}

			bb, err := yaml.Marshal(data)
			if err != nil {
				return err
			}

			fmt.Print(string(bb))
			return nil
		},
	}
)
