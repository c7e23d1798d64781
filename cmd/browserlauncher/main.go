package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"browserlauncher/internal/cli"
	"browserlauncher/internal/config"
	"browserlauncher/internal/envfile"
	"browserlauncher/internal/setup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var envPath string
	var verbose bool

	root := &cobra.Command{
		Use:   "browserlauncher",
		Short: "One-click browser automation with LLM provider auto-selection",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetLevel(logrus.WarnLevel)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("🚀 Browser Automation Launcher")
			fmt.Println(strings.Repeat("=", 50))

			if err := envfile.Load(envPath); err != nil {
				return err
			}
			if created, err := envfile.WriteDefault(envPath); err != nil {
				return err
			} else if created {
				fmt.Printf("Created %s — add your API key there for full functionality.\n", envPath)
			}

			menu := cli.NewMenu(os.Stdin, os.Stdout, envPath)
			return menu.Run(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&envPath, "env-file", envfile.DefaultPath, "path to the credentials file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd(&envPath))
	root.AddCommand(newSetupCmd(&envPath))

	return root
}

func newRunCmd(envPath *string) *cobra.Command {
	var startURL string

	cmd := &cobra.Command{
		Use:   "run <task>",
		Short: "Run a single natural-language automation task and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.Join(args, " ")
			result, err := cli.RunTask(cmd.Context(), task, startURL, *envPath)
			if err != nil {
				return err
			}
			fmt.Printf("Result: %s\n", result)
			return nil
		},
	}

	cmd.Flags().StringVar(&startURL, "start-url", "", "open this page first and keep the task on its site")

	return cmd
}

func newSetupCmd(envPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Install the browser, write the credentials template, and verify the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = envfile.Load(*envPath)
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			results := setup.NewRunner(setup.DefaultSteps(*envPath, cfg)).Run(cmd.Context())
			if failed := setup.Failed(results); failed > 0 {
				return fmt.Errorf("setup finished with %d failed step(s)", failed)
			}
			fmt.Println("🎉 Setup complete!")
			return nil
		},
	}
}
