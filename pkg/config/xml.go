package config

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// XML element names of the jaxws-config layout. Namespace prefixes are
// ignored when matching.
const (
	xmlRoot               = "jaxws-config"
	xmlClientConfig       = "client-config"
	xmlEndpointConfig     = "endpoint-config"
	xmlConfigName         = "config-name"
	xmlProperty           = "property"
	xmlPropertyName       = "property-name"
	xmlPropertyValue      = "property-value"
	xmlPreHandlerChains   = "pre-handler-chains"
	xmlPostHandlerChains  = "post-handler-chains"
	xmlHandlerChain       = "handler-chain"
	xmlProtocolBindings   = "protocol-bindings"
	xmlPortNamePattern    = "port-name-pattern"
	xmlServiceNamePattern = "service-name-pattern"
	xmlHandler            = "handler"
	xmlHandlerName        = "handler-name"
	xmlHandlerClass       = "handler-class"
	xmlInitParam          = "init-param"
	xmlParamName          = "param-name"
	xmlParamValue         = "param-value"
	xmlDescription        = "description"
	xmlSOAPRole           = "soap-role"
	xmlSOAPHeader         = "soap-header"
)

// ParseXML parses a jaxws-config document. Non UTF-8 encodings declared in
// the XML prolog are decoded.
func ParseXML(data []byte) (*Root, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyFile
	}
	if root.Tag != xmlRoot {
		return nil, fmt.Errorf("%w: root element must be %s, got %s", ErrInvalidXML, xmlRoot, root.Tag)
	}

	cfg := &Root{}
	for _, e := range root.SelectElements(xmlClientConfig) {
		cfg.ClientConfigs = append(cfg.ClientConfigs, &ClientConfig{CommonConfig: parseCommonXML(e)})
	}
	for _, e := range root.SelectElements(xmlEndpointConfig) {
		cfg.EndpointConfigs = append(cfg.EndpointConfigs, &EndpointConfig{CommonConfig: parseCommonXML(e)})
	}
	return cfg, nil
}

func parseCommonXML(e *etree.Element) CommonConfig {
	c := CommonConfig{Name: childText(e, xmlConfigName)}

	for _, p := range e.SelectElements(xmlProperty) {
		if c.Properties == nil {
			c.Properties = make(map[string]string)
		}
		c.Properties[childText(p, xmlPropertyName)] = childText(p, xmlPropertyValue)
	}

	if pre := e.SelectElement(xmlPreHandlerChains); pre != nil {
		c.PreHandlerChains = parseChainsXML(pre)
	}
	if post := e.SelectElement(xmlPostHandlerChains); post != nil {
		c.PostHandlerChains = parseChainsXML(post)
	}
	return c
}

func parseChainsXML(e *etree.Element) []*HandlerChain {
	var chains []*HandlerChain
	for _, hc := range e.SelectElements(xmlHandlerChain) {
		chain := &HandlerChain{
			ID:                 hc.SelectAttrValue("id", ""),
			PortNamePattern:    childText(hc, xmlPortNamePattern),
			ServiceNamePattern: childText(hc, xmlServiceNamePattern),
			ProtocolBindings:   childText(hc, xmlProtocolBindings),
		}
		for _, h := range hc.SelectElements(xmlHandler) {
			chain.Handlers = append(chain.Handlers, parseHandlerXML(h))
		}
		chains = append(chains, chain)
	}
	return chains
}

func parseHandlerXML(e *etree.Element) *Handler {
	h := &Handler{
		Name:  childText(e, xmlHandlerName),
		Class: childText(e, xmlHandlerClass),
	}
	for _, p := range e.SelectElements(xmlInitParam) {
		h.InitParams = append(h.InitParams, InitParam{
			Name:        childText(p, xmlParamName),
			Value:       childText(p, xmlParamValue),
			Description: childText(p, xmlDescription),
		})
	}
	for _, r := range e.SelectElements(xmlSOAPRole) {
		h.SOAPRoles = append(h.SOAPRoles, strings.TrimSpace(r.Text()))
	}
	for _, s := range e.SelectElements(xmlSOAPHeader) {
		h.SOAPHeaders = append(h.SOAPHeaders, strings.TrimSpace(s.Text()))
	}
	return h
}

func childText(e *etree.Element, tag string) string {
	c := e.SelectElement(tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}
