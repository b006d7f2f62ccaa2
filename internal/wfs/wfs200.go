package wfs

import "github.com/delta10/wfs-client/internal/mapper"

// WFS 2.0.0 matches the 1.1.0 document shape but under new namespace URIs.
var wfs200 = &mapper.Bundle{
	Namespaces: map[string]string{
		"wfs":   "http://www.opengis.net/wfs/2.0",
		"ows":   "http://www.opengis.net/ows/1.1",
		"xlink": "http://www.w3.org/1999/xlink",
	},
	Schemas: map[string]mapper.Schema{
		"Main": {
			{Selector: ".", Key: "service", Schema: "Service"},
			{Selector: "wfs:FeatureTypeList/wfs:FeatureType", Key: "featureTypes", Multi: true, Schema: "FeatureType"},
		},
		"Service": {
			{Selector: "ows:ServiceIdentification/ows:ServiceType", Key: "name"},
			{Selector: "ows:ServiceIdentification/ows:Title", Key: "title"},
			{Selector: "ows:ServiceIdentification/ows:Abstract", Key: "abstract"},
			{Selector: "ows:ServiceIdentification/ows:Keywords/ows:Keyword", Key: "keywords", Multi: true},
			{Selector: "ows:ServiceProvider/ows:ProviderSite/@xlink:href", Key: "location"},
			{Selector: "ows:ServiceIdentification/ows:Fees", Key: "fees"},
			{Selector: "ows:ServiceIdentification/ows:AccessConstraints", Key: "accessConstraints"},
		},
		"FeatureType": {
			{Selector: "wfs:Name", Key: "name"},
			{Selector: "wfs:Title", Key: "title"},
			{Selector: "wfs:Abstract", Key: "abstract"},
			{Selector: "ows:Keywords/ows:Keyword", Key: "keywords", Multi: true},
		},
	},
	Formats: map[string]string{
		"application/gml+xml; version=3.2": "GML 3.2",
		"json":                             "GeoJSON",
		"csv":                              "Comma-separated values",
	},
}
