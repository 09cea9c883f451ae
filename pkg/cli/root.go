package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsconfig/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	logLevel   string
	logFormat  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wsconfig",
	Short: "wsconfig resolves SOAP client configurations and installs their handler chains",
	Long: `wsconfig reads jaxws-config client configurations (XML or YAML), resolves
them by name and installs their pre and post handler chains around the
handlers already present on a client binding.

Configurations are read from a file given with -f, or from the server
configuration directory set by WSCONFIG_CONFIG_DIR.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Main())
}

// Main runs the root command and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// SetBuildInfo records the build metadata shown by --version.
func SetBuildInfo(version, commit, date string) {
	Version, Commit, BuildDate = version, commit, date
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("wsconfig %s (commit %s, built %s)\n", Version, Commit, BuildDate))
}

// newLogger builds the command logger from the persistent flags. Logs go to
// stderr so that stdout stays parseable.
func newLogger(cmd *cobra.Command) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Format: logging.ParseFormat(logFormat),
		Output: cmd.ErrOrStderr(),
	})
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("wsconfig %s (commit %s, built %s)\n", Version, Commit, BuildDate))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
