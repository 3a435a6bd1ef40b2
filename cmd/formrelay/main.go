// Command formrelay serves the Boubli Club contact relay and submits the
// club's forms from a terminal.
package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/boubliclub/formrelay/pkg/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "formrelay",
		Short: "Boubli Club form relay",
		Long: `formrelay runs the contact form mail relay and can submit the contact
and recruitment forms from the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if envFile == "" {
				return nil
			}
			return config.LoadEnv(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load variables from this .env file")

	root.AddCommand(newServeCmd(), newSendCmd())
	return root
}
