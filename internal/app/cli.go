// Package app wires configuration, logging, the journal, the Telegram bot
// and the interactive shell into the claritybot command.
package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version is reported by --version and the status command.
const Version = "1.0.0"

func Main() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "claritybot",
		Short: "Run the Clarity Telegram bot and its terminal",
		Long: strings.TrimSpace(`
Run the Clarity Telegram bot and an interactive terminal.

The bot answers /botinfo and /developerinfo. The terminal runs its own
commands (type "help") and forwards anything else to the system shell.

Settings come from, in increasing precedence: built-in defaults, a .env
file, a TOML config file and environment variables:
  BOT_TOKEN          Telegram bot token (the bot is skipped when empty)
  DEVELOPER_NAME     name shown by /developerinfo
  DEVELOPER_CONTACT  link shown by /developerinfo
  DATABASE_PATH      sqlite journal (default: ./clarity.db)
  LOG_LEVEL          debug, info, warn or error
  CLARITY_CONFIG     config file path (default: ~/.config/claritybot/config.toml)
`),
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			return Run(cmd.Context(), *opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.ConfigFile, "config", "", "TOML config file (or set CLARITY_CONFIG)")
	flags.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file; ignored when missing")
	flags.BoolVar(&opts.NoShell, "no-shell", false, "Run the bot without the interactive terminal")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.DBPath, "db", "", "sqlite journal path (overrides DATABASE_PATH)")

	return root
}
