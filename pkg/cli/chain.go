package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsconfig/pkg/binding"
	"github.com/getmockd/wsconfig/pkg/cli/internal/output"
	"github.com/getmockd/wsconfig/pkg/client"
	"github.com/getmockd/wsconfig/pkg/handler"
)

var (
	chainConfigFile string
	chainBinding    string
	chainEndpoint   []string
)

// chainEntry is one row of the chain listing.
type chainEntry struct {
	Position int    `json:"position"`
	Group    string `json:"group"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
}

var chainCmd = &cobra.Command{
	Use:   "chain NAME",
	Short: "Print the handler chain a client configuration installs",
	Long: `Install the named client configuration on a binding and print the
resulting handler chain. Handlers given with --handler stand in for the
handlers an application already put on the binding; the configuration's
pre handlers are placed before them and its post handlers after them.`,
	Example: `  wsconfig chain -f client-config.xml Audited-Client
  wsconfig chain -f client-config.xml --binding soap12 --handler logging Audited-Client`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bindingID, err := parseBinding(chainBinding)
		if err != nil {
			return err
		}
		r, err := newResolver(chainConfigFile, newLogger(cmd))
		if err != nil {
			return err
		}

		existing, err := r.endpointHandlers(chainEndpoint)
		if err != nil {
			return err
		}
		port := client.NewPort("", bindingID)
		port.Binding().SetHandlerChain(existing)

		if err := r.helper.SetConfigHandlers(port, r.resource, args[0]); err != nil {
			return err
		}

		entries := describeChain(port.Binding().HandlerChain())
		return printResult(cmd, entries, func() {
			w := output.Table(cmd.OutOrStdout())
			fmt.Fprintf(w, "# binding %s (%s)\n", bindingID, binding.ProtocolToken(bindingID))
			fmt.Fprintln(w, "POS\tGROUP\tKIND\tNAME")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Position, e.Group, e.Kind, e.Name)
			}
			_ = w.Flush()
		})
	},
}

func describeChain(chain []handler.Handler) []chainEntry {
	entries := make([]chainEntry, len(chain))
	for i, h := range chain {
		group := "endpoint"
		if t, ok := h.(handler.Tagged); ok && t.Tag().Config {
			group = "post"
			if t.Tag().Pre {
				group = "pre"
			}
		}
		entries[i] = chainEntry{
			Position: i + 1,
			Group:    group,
			Kind:     handler.Classify(h).String(),
			Name:     handler.Name(h),
		}
	}
	return entries
}

func init() {
	chainCmd.Flags().StringVarP(&chainConfigFile, "config", "f", "", "Configuration file (XML or YAML)")
	chainCmd.Flags().StringVarP(&chainBinding, "binding", "b", "soap11", "Binding alias or ID")
	chainCmd.Flags().StringSliceVar(&chainEndpoint, "handler", nil, "Handler class already on the binding (repeatable)")
	rootCmd.AddCommand(chainCmd)
}
