// Package server provides the server-wide web-service configuration: the
// published host and ports used to rewrite endpoint addresses, and the
// registry of named client and endpoint configs that clients fall back to
// when they do not name a configuration file.
//
// Settings come from WSCONFIG_* environment variables:
//
//	WSCONFIG_HOST                 published host (default jbossws.undefined.host)
//	WSCONFIG_PORT                 HTTP port (default 8080)
//	WSCONFIG_SECURE_PORT          HTTPS port (default 8443)
//	WSCONFIG_MODIFY_SOAP_ADDRESS  rewrite endpoint addresses (default true)
//	WSCONFIG_TEMP_DIR, WSCONFIG_DATA_DIR
//	WSCONFIG_CONFIG_DIR           directory of client/endpoint config files
//	WSCONFIG_CONFIG_PATTERN       doublestar pattern below the config dir
//
// A Factory hands out the Config. Outside a managed server there is none and
// the factory is nil or returns nil.
package server
