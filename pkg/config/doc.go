// Package config provides the client and endpoint configuration model and
// its file formats.
//
// A configuration file holds named client configs and endpoint configs.
// Each config carries properties plus pre and post handler chains:
//   - Root: the parsed file, looked up by config name
//   - ClientConfig / EndpointConfig: a named CommonConfig
//   - HandlerChain: handlers plus optional protocol-binding, port-name and
//     service-name filters
//   - Handler: a handler name, the registered class name, and init params
//
// # File Formats
//
// XML files follow the jaxws-config layout:
//
//	<jaxws-config xmlns="urn:jboss:jbossws-jaxws-config:4.0"
//	              xmlns:javaee="http://java.sun.com/xml/ns/javaee">
//	  <client-config>
//	    <config-name>Audited-Client</config-name>
//	    <pre-handler-chains>
//	      <javaee:handler-chain>
//	        <javaee:protocol-bindings>##SOAP11_HTTP</javaee:protocol-bindings>
//	        <javaee:handler>
//	          <javaee:handler-name>Log</javaee:handler-name>
//	          <javaee:handler-class>logging</javaee:handler-class>
//	        </javaee:handler>
//	      </javaee:handler-chain>
//	    </pre-handler-chains>
//	  </client-config>
//	</jaxws-config>
//
// YAML files use the same model and are checked against an embedded JSON
// schema before decoding:
//
//	clientConfigs:
//	  - name: Audited-Client
//	    preHandlerChains:
//	      - protocolBindings: "##SOAP11_HTTP"
//	        handlers:
//	          - name: Log
//	            class: logging
//
// Parse detects the format from the first non-blank byte.
//
// # Directories
//
// DirectoryLoader merges every file matching a doublestar pattern under a
// directory into one Root. Validate reports semantic problems such as
// duplicate config names and unknown protocol-binding tokens.
package config
