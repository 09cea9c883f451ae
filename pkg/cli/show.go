package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsconfig/pkg/config"
)

var showConfigFile string

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a resolved client configuration",
	Long: `Resolve a client configuration by name and print it as YAML.

Without -f the configuration is looked up in the server configuration
directory (WSCONFIG_CONFIG_DIR).`,
	Example: `  wsconfig show -f client-config.xml Audited-Client
  WSCONFIG_CONFIG_DIR=./conf wsconfig show Audited-Client`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver(showConfigFile, newLogger(cmd))
		if err != nil {
			return err
		}
		cc, err := r.helper.ReadConfig(r.resource, args[0])
		if err != nil {
			return err
		}

		data, err := config.ToYAML(&config.Root{ClientConfigs: []*config.ClientConfig{cc}})
		if err != nil {
			return err
		}
		return printResult(cmd, cc, func() {
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		})
	},
}

func init() {
	showCmd.Flags().StringVarP(&showConfigFile, "config", "f", "", "Configuration file (XML or YAML)")
	rootCmd.AddCommand(showCmd)
}
