package wfs

import "github.com/delta10/wfs-client/internal/mapper"

// WFS 1.0.0 keeps all service metadata in the wfs namespace. Keywords are a
// single whitespace-separated string, and the service location is the text
// content of OnlineResource.
var wfs100 = &mapper.Bundle{
	Namespaces: map[string]string{
		"wfs": "http://www.opengis.net/wfs",
	},
	Schemas: map[string]mapper.Schema{
		"Main": {
			{Selector: "wfs:Service", Key: "service", Schema: "Service"},
			{Selector: "wfs:FeatureTypeList/wfs:FeatureType", Key: "featureTypes", Multi: true, Schema: "FeatureType"},
		},
		"Service": {
			{Selector: "wfs:Name", Key: "name"},
			{Selector: "wfs:Title", Key: "title"},
			{Selector: "wfs:Abstract", Key: "abstract"},
			{Selector: "wfs:Keywords", Key: "keywords"},
			{Selector: "wfs:OnlineResource", Key: "location"},
			{Selector: "wfs:Fees", Key: "fees"},
			{Selector: "wfs:AccessConstraints", Key: "accessConstraints"},
		},
		"FeatureType": {
			{Selector: "wfs:Name", Key: "name"},
			{Selector: "wfs:Title", Key: "title"},
			{Selector: "wfs:Abstract", Key: "abstract"},
			{Selector: "wfs:Keywords", Key: "keywords"},
		},
	},
	Formats: map[string]string{
		"GML2":      "GML 2.1.2",
		"SHAPE-ZIP": "Zipped shapefile",
		"CSV":       "Comma-separated values",
	},
}
