// Package configurer applies named client configurations to client ports.
//
// A Helper resolves a configuration by name, either from a configuration
// file in its resource filesystem or from the server configuration
// registry, and installs the configured handler chains on the port's
// binding:
//
//	helper := configurer.New(configurer.Options{
//	    Resources: os.DirFS("/etc/wsconfig"),
//	    Loader:    appHandlers,
//	    Provider:  classloading.StaticProvider{Loader: frameworkHandlers},
//	    Logger:    logger,
//	})
//	err := helper.SetConfigHandlers(port, "client-config.xml", "Audited-Client")
//
// The resulting chain is always
//
//	[pre handlers] + [handlers already on the binding] + [post handlers]
//
// Handlers installed from a configuration are tagged, so applying a
// configuration again replaces them instead of adding a second copy.
//
// Handler chains filtered by protocol binding only apply when the binding's
// token (##SOAP11_HTTP, ##SOAP12_HTTP, ...) is listed. Port and service
// name patterns and handler init params are accepted but not applied; each
// occurrence is logged.
package configurer
