package wfs

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delta10/wfs-client/internal/ows"
)

const capabilities100 = `<WFS_Capabilities version="1.0.0" xmlns="http://www.opengis.net/wfs">
	<Service>
		<Name>Test Server</Name>
		<Title>Test WFS</Title>
		<Abstract>A server for tests</Abstract>
		<Keywords>wfs test</Keywords>
		<OnlineResource>https://example.com/wfs</OnlineResource>
		<Fees>NONE</Fees>
		<AccessConstraints>NONE</AccessConstraints>
	</Service>
	<FeatureTypeList>
		<FeatureType>
			<Name>topo:roads</Name>
			<Title>Roads</Title>
			<Abstract>Road network</Abstract>
			<Keywords>roads</Keywords>
		</FeatureType>
		<FeatureType>
			<Name>topo:rivers</Name>
			<Title>Rivers</Title>
			<Abstract>River network</Abstract>
			<Keywords>rivers</Keywords>
		</FeatureType>
	</FeatureTypeList>
</WFS_Capabilities>`

const capabilities110 = `<wfs:WFS_Capabilities version="1.1.0"
	xmlns:wfs="http://www.opengis.net/wfs"
	xmlns:ows="http://www.opengis.net/ows"
	xmlns:xlink="http://www.w3.org/1999/xlink">
	<ows:ServiceIdentification>
		<ows:Title>Test WFS</ows:Title>
		<ows:Abstract>A server for tests</ows:Abstract>
		<ows:Keywords>
			<ows:Keyword>wfs</ows:Keyword>
			<ows:Keyword>test</ows:Keyword>
		</ows:Keywords>
		<ows:ServiceType>WFS</ows:ServiceType>
		<ows:Fees>NONE</ows:Fees>
		<ows:AccessConstraints>NONE</ows:AccessConstraints>
	</ows:ServiceIdentification>
	<ows:ServiceProvider>
		<ows:ProviderName>Delta10</ows:ProviderName>
		<ows:ProviderSite xlink:href="https://example.com/wfs"/>
	</ows:ServiceProvider>
	<wfs:FeatureTypeList>
		<wfs:FeatureType>
			<wfs:Name>topo:roads</wfs:Name>
			<wfs:Title>Roads</wfs:Title>
			<wfs:Abstract>Road network</wfs:Abstract>
			<ows:Keywords><ows:Keyword>roads</ows:Keyword></ows:Keywords>
		</wfs:FeatureType>
		<wfs:FeatureType>
			<wfs:Name>topo:rivers</wfs:Name>
			<wfs:Title>Rivers</wfs:Title>
			<wfs:Abstract>River network</wfs:Abstract>
			<ows:Keywords><ows:Keyword>rivers</ows:Keyword></ows:Keywords>
		</wfs:FeatureType>
	</wfs:FeatureTypeList>
</wfs:WFS_Capabilities>`

const capabilities200 = `<wfs:WFS_Capabilities version="2.0.0"
	xmlns:wfs="http://www.opengis.net/wfs/2.0"
	xmlns:ows="http://www.opengis.net/ows/1.1"
	xmlns:xlink="http://www.w3.org/1999/xlink">
	<ows:ServiceIdentification>
		<ows:Title>Test WFS</ows:Title>
		<ows:Abstract>A server for tests</ows:Abstract>
		<ows:Keywords>
			<ows:Keyword>wfs</ows:Keyword>
			<ows:Keyword>test</ows:Keyword>
		</ows:Keywords>
		<ows:ServiceType>WFS</ows:ServiceType>
		<ows:Fees>NONE</ows:Fees>
		<ows:AccessConstraints>NONE</ows:AccessConstraints>
	</ows:ServiceIdentification>
	<ows:ServiceProvider>
		<ows:ProviderName>Delta10</ows:ProviderName>
		<ows:ProviderSite xlink:href="https://example.com/wfs"/>
	</ows:ServiceProvider>
	<wfs:FeatureTypeList>
		<wfs:FeatureType>
			<wfs:Name>topo:roads</wfs:Name>
			<wfs:Title>Roads</wfs:Title>
			<wfs:Abstract>Road network</wfs:Abstract>
			<ows:Keywords><ows:Keyword>roads</ows:Keyword></ows:Keywords>
		</wfs:FeatureType>
	</wfs:FeatureTypeList>
</wfs:WFS_Capabilities>`

func mapDocument(t *testing.T, version, body string) map[string]any {
	t.Helper()

	bundle, ok := Bundle(version)
	require.True(t, ok)

	document, err := xmlquery.Parse(strings.NewReader(body))
	require.NoError(t, err)

	object, err := bundle.Build(ows.RootElement(document), "Main")
	require.NoError(t, err)

	return object
}

func TestSupportedVersionsAreSortedAscending(t *testing.T) {
	assert.Equal(t, []string{"1.0.0", "1.1.0", "2.0.0"}, SupportedVersions())
}

func TestBundleLookup(t *testing.T) {
	for _, version := range SupportedVersions() {
		bundle, ok := Bundle(version)
		require.True(t, ok, version)

		for _, name := range []string{"Main", "Service", "FeatureType"} {
			assert.Contains(t, bundle.Schemas, name, version)
		}

		assert.NotEmpty(t, bundle.Formats, version)
	}

	_, ok := Bundle("0.0.7")
	assert.False(t, ok)
	assert.Nil(t, Formats("0.0.7"))
}

func TestMapCapabilities100(t *testing.T) {
	object := mapDocument(t, "1.0.0", capabilities100)

	service := object["service"].(map[string]any)
	assert.Equal(t, "Test Server", service["name"])
	assert.Equal(t, "Test WFS", service["title"])
	assert.Equal(t, "wfs test", service["keywords"])
	assert.Equal(t, "https://example.com/wfs", service["location"])
	assert.Equal(t, "NONE", service["fees"])
	assert.Equal(t, "NONE", service["accessConstraints"])

	featureTypes := object["featureTypes"].([]any)
	require.Len(t, featureTypes, 2)

	roads := featureTypes[0].(map[string]any)
	rivers := featureTypes[1].(map[string]any)
	assert.Equal(t, "topo:roads", roads["name"])
	assert.Equal(t, "roads", roads["keywords"])
	assert.Equal(t, "topo:rivers", rivers["name"])
	assert.Equal(t, "rivers", rivers["keywords"])
}

func TestMapCapabilities110(t *testing.T) {
	object := mapDocument(t, "1.1.0", capabilities110)

	service := object["service"].(map[string]any)
	assert.Equal(t, "WFS", service["name"])
	assert.Equal(t, "Test WFS", service["title"])
	assert.Equal(t, []any{"wfs", "test"}, service["keywords"])
	assert.Equal(t, "https://example.com/wfs", service["location"])

	featureTypes := object["featureTypes"].([]any)
	require.Len(t, featureTypes, 2)

	roads := featureTypes[0].(map[string]any)
	assert.Equal(t, "topo:roads", roads["name"])
	assert.Equal(t, []any{"roads"}, roads["keywords"])
}

func TestMapCapabilities200(t *testing.T) {
	object := mapDocument(t, "2.0.0", capabilities200)

	service := object["service"].(map[string]any)
	assert.Equal(t, "Test WFS", service["title"])
	assert.Equal(t, []any{"wfs", "test"}, service["keywords"])

	featureTypes := object["featureTypes"].([]any)
	require.Len(t, featureTypes, 1)
	assert.Equal(t, "Roads", featureTypes[0].(map[string]any)["title"])
}

func TestMapEmptyFeatureTypeList(t *testing.T) {
	object := mapDocument(t, "1.0.0", `<WFS_Capabilities version="1.0.0" xmlns="http://www.opengis.net/wfs">
		<Service><Name>Empty</Name></Service>
	</WFS_Capabilities>`)

	featureTypes, ok := object["featureTypes"].([]any)
	require.True(t, ok)
	assert.Empty(t, featureTypes)
}
