package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_XML(t *testing.T) {
	root, err := LoadFile(filepath.Join("testdata", "jaxws-client-config.xml"))
	require.NoError(t, err)

	require.Len(t, root.ClientConfigs, 2)
	require.Len(t, root.EndpointConfigs, 1)

	cc := root.ClientConfigByName("Audited-Client")
	require.NotNil(t, cc)
	assert.Equal(t, map[string]string{"timeout": "30s"}, cc.Properties)

	require.Len(t, cc.PreHandlerChains, 2)
	first := cc.PreHandlerChains[0]
	assert.Equal(t, "pre-soap11", first.ID)
	assert.Equal(t, "##SOAP11_HTTP ##SOAP11_HTTP_MTOM", first.ProtocolBindings)
	require.Len(t, first.Handlers, 1)
	assert.Equal(t, "Message ID", first.Handlers[0].Name)
	assert.Equal(t, "message-id", first.Handlers[0].Class)

	second := cc.PreHandlerChains[1]
	assert.True(t, second.HasNameFilter())
	assert.Equal(t, "ns1:Echo*", second.PortNamePattern)
	assert.Equal(t, []InitParam{{Name: "level", Value: "debug"}}, second.Handlers[0].InitParams)
	assert.Equal(t, []string{"urn:audit"}, second.Handlers[0].SOAPRoles)

	require.Len(t, cc.PostHandlerChains, 1)
	assert.Equal(t, "payload-guard", cc.PostHandlerChains[0].Handlers[0].Class)

	assert.NotNil(t, root.EndpointConfigByName("Standard-Endpoint"))
	assert.Nil(t, root.EndpointConfigByName("Audited-Client"))
}

func TestLoadFile_XMLAndYAMLAgree(t *testing.T) {
	fromXML, err := LoadFile(filepath.Join("testdata", "jaxws-client-config.xml"))
	require.NoError(t, err)
	fromYAML, err := LoadFile(filepath.Join("testdata", "client-config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, fromXML, fromYAML)
}

func TestLoadFile_Latin1(t *testing.T) {
	root, err := LoadFile(filepath.Join("testdata", "latin1-config.xml"))
	require.NoError(t, err)
	require.Len(t, root.ClientConfigs, 1)
	assert.Equal(t, "Café", root.ClientConfigs[0].Name)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.xml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = LoadFile("testdata")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	_, err = LoadFile(empty)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"broken xml", `<jaxws-config attr=>`, ErrInvalidXML},
		{"wrong xml root", `<beans/>`, ErrInvalidXML},
		{"broken yaml", "clientConfigs: [", ErrInvalidYAML},
		{"unknown yaml key", "clientConfig:\n  - name: x\n", ErrSchema},
		{"missing class", "clientConfigs:\n  - name: x\n    preHandlerChains:\n      - handlers:\n          - name: h\n", ErrSchema},
		{"non-string property", "clientConfigs:\n  - name: x\n    properties:\n      retries: 3\n", ErrSchema},
		{"blank", "\n\t ", ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_SchemaMessageNamesLocation(t *testing.T) {
	_, err := ParseYAML([]byte("clientConfigs:\n  - name: x\n    preHandlerChains:\n      - handlers:\n          - name: h\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/clientConfigs/0/preHandlerChains/0/handlers/0")
}

func TestParseYAML_SchemaChecksDecodedDocument(t *testing.T) {
	doc := "clientConfigs:\n  - name: x\n    properties:\n      timeout: \"30\"\n    postHandlerChains:\n      - protocolBindings: \"##SOAP11_HTTP\"\n        handlers:\n          - name: h\n            class: logging\n"
	root, err := ParseYAML([]byte(doc))
	require.NoError(t, err)
	cfg := root.ClientConfigByName("x")
	require.NotNil(t, cfg)
	assert.Equal(t, "30", cfg.Properties["timeout"])

	err = validateSchema(map[string]any{"clientConfigs": []any{map[string]any{"name": 7}}})
	assert.ErrorIs(t, err, ErrSchema)
}

func TestParse_BOM(t *testing.T) {
	doc := "\xEF\xBB\xBF<jaxws-config><client-config><config-name>bom</config-name></client-config></jaxws-config>"
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.NotNil(t, root.ClientConfigByName("bom"))
}

func TestToYAML_RoundTrip(t *testing.T) {
	root, err := LoadFile(filepath.Join("testdata", "jaxws-client-config.xml"))
	require.NoError(t, err)

	data, err := ToYAML(root)
	require.NoError(t, err)

	again, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, root, again)
}

func TestRoot_NilSafe(t *testing.T) {
	var root *Root
	assert.Nil(t, root.ClientConfigByName("x"))
	assert.Nil(t, root.EndpointConfigByName("x"))
}

func TestDirectoryLoader(t *testing.T) {
	xmlDoc, err := os.ReadFile(filepath.Join("testdata", "jaxws-client-config.xml"))
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"a/clients.xml":        {Data: xmlDoc},
		"b/nested/extra.yaml":  {Data: []byte("clientConfigs:\n  - name: Extra-Client\n")},
		"b/broken.yml":         {Data: []byte("clientConfigs: [")},
		"notes.txt":            {Data: []byte("ignored")},
		"c/endpoint-only.yaml": {Data: []byte("endpointConfigs:\n  - name: Other-Endpoint\n")},
	}

	loader := &DirectoryLoader{Path: "configs", FS: fsys}
	result, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"a/clients.xml", "b/broken.yml", "b/nested/extra.yaml", "c/endpoint-only.yaml"}, result.Files)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "configs/b/broken.yml", result.Errors[0].Path)
	assert.ErrorIs(t, &result.Errors[0], ErrInvalidYAML)

	assert.NotNil(t, result.Root.ClientConfigByName("Audited-Client"))
	assert.NotNil(t, result.Root.ClientConfigByName("Extra-Client"))
	assert.NotNil(t, result.Root.EndpointConfigByName("Other-Endpoint"))
}

func TestDirectoryLoader_Pattern(t *testing.T) {
	fsys := fstest.MapFS{
		"x/one.yaml": {Data: []byte("clientConfigs:\n  - name: One\n")},
		"two.yaml":   {Data: []byte("clientConfigs:\n  - name: Two\n")},
	}

	loader := &DirectoryLoader{FS: fsys, Pattern: "x/*.yaml"}
	files, err := loader.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"x/one.yaml"}, files)

	loader.Pattern = "[unclosed"
	_, err = loader.Discover()
	assert.Error(t, err)
}

func TestDirectoryLoader_MissingDirectory(t *testing.T) {
	_, err := NewDirectoryLoader(filepath.Join(t.TempDir(), "nope")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory not found")
}
