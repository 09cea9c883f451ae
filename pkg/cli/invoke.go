package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/getmockd/wsconfig/pkg/client"
	"github.com/getmockd/wsconfig/pkg/handlers"
)

var (
	invokeConfigFile string
	invokeConfigName string
	invokeBinding    string
	invokeAction     string
	invokeGuard      string
	invokeTimeout    time.Duration
)

var invokeCmd = &cobra.Command{
	Use:   "invoke URL PAYLOAD",
	Short: "Send a payload through a configured client port",
	Long: `Send the XML payload in PAYLOAD (a file, or - for stdin) to the endpoint
at URL and print the reply envelope. With --name the client configuration
is resolved and its handler chains are installed on the port first.`,
	Example: `  wsconfig invoke -f client-config.xml --name Audited-Client http://localhost:8080/orders order.xml
  wsconfig invoke --guard 'XPath("id") != ""' http://localhost:8080/orders order.xml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bindingID, err := parseBinding(invokeBinding)
		if err != nil {
			return err
		}
		payload, err := readPayload(cmd, args[1])
		if err != nil {
			return err
		}

		logger := newLogger(cmd)
		opts := []client.PortOption{
			client.WithLogger(logger),
			client.WithSOAPAction(invokeAction),
		}
		if invokeGuard != "" {
			opts = append(opts, client.WithProperty(handlers.PropGuard, invokeGuard))
		}
		port := client.NewPort(args[0], bindingID, opts...)

		if invokeConfigName != "" {
			r, err := newResolver(invokeConfigFile, logger)
			if err != nil {
				return err
			}
			if err := r.helper.SetConfigHandlers(port, r.resource, invokeConfigName); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		if invokeTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, invokeTimeout)
			defer cancel()
		}

		reply, err := port.Invoke(ctx, payload)
		var fault *client.FaultError
		if err != nil && !errors.As(err, &fault) {
			return err
		}
		if reply != nil {
			fmt.Fprintln(cmd.OutOrStdout(), reply.String())
		}
		return err
	},
}

func readPayload(cmd *cobra.Command, name string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if name == "-" {
		if _, err := doc.ReadFrom(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
	} else {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
		if err := doc.ReadFromBytes(data); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("payload has no root element")
	}
	return root, nil
}

func init() {
	invokeCmd.Flags().StringVarP(&invokeConfigFile, "config", "f", "", "Configuration file (XML or YAML)")
	invokeCmd.Flags().StringVarP(&invokeConfigName, "name", "n", "", "Client configuration to install")
	invokeCmd.Flags().StringVarP(&invokeBinding, "binding", "b", "soap11", "Binding alias or ID")
	invokeCmd.Flags().StringVar(&invokeAction, "action", "", "SOAP action")
	invokeCmd.Flags().StringVar(&invokeGuard, "guard", "", "Payload guard expression (payload-guard handler)")
	invokeCmd.Flags().DurationVar(&invokeTimeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.AddCommand(invokeCmd)
}
