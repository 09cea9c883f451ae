// Package cli implements the wsconfig command line.
//
// Commands:
//
//	show      print a resolved client configuration
//	chain     print the handler chain a configuration installs on a binding
//	validate  validate configuration files
//	invoke    send a payload through a configured client port
//
// A configuration is resolved from the file given with -f, or from the
// server configuration directory (WSCONFIG_CONFIG_DIR) when -f is absent.
package cli
