package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/voca/internal/cli"
	"codeberg.org/snonux/voca/internal/processor"
)

func main() {
	flags := cli.NewFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.CreateRootCommand(flags, cli.Actions{
		Study: func(cmd *cobra.Command, args []string) error {
			return processor.NewProcessor(flags).RunStudy(cmd.Context())
		},
		Next: func(cmd *cobra.Command, args []string) error {
			return processor.NewProcessor(flags).RunOnce(cmd.Context())
		},
		Words: func(cmd *cobra.Command, args []string) error {
			return processor.NewProcessor(flags).ListWords()
		},
		Models: func(cmd *cobra.Command, args []string) error {
			return processor.NewProcessor(flags).ListModels(cmd.Context())
		},
	})

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
