package wfs

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// ExceptionReport is the OWS exception document returned by 1.1.0 and
// 2.0.0 servers. The element tags carry no namespace so the same type
// decodes both the ows and ows/1.1 variants.
type ExceptionReport struct {
	XMLName    xml.Name    `xml:"ExceptionReport"`
	Version    string      `xml:"version,attr"`
	Exceptions []Exception `xml:"Exception"`
}

type Exception struct {
	Code    string   `xml:"exceptionCode,attr"`
	Locator string   `xml:"locator,attr"`
	Texts   []string `xml:"ExceptionText"`
}

// ServiceExceptionReport is the WFS 1.0.0 exception document.
type ServiceExceptionReport struct {
	XMLName    xml.Name           `xml:"ServiceExceptionReport"`
	Version    string             `xml:"version,attr"`
	Exceptions []ServiceException `xml:"ServiceException"`
}

type ServiceException struct {
	Code    string `xml:"code,attr"`
	Locator string `xml:"locator,attr"`
	Text    string `xml:",chardata"`
}

// exceptionMessage renders the first exception of an error response body
// into a short message, or "" when the body is not an exception document.
func exceptionMessage(body []byte) string {
	var report ExceptionReport
	if err := xml.Unmarshal(body, &report); err == nil && len(report.Exceptions) > 0 {
		exception := report.Exceptions[0]
		if len(exception.Texts) > 0 {
			return fmt.Sprintf("%s: %s", exception.Code, strings.TrimSpace(exception.Texts[0]))
		}

		return exception.Code
	}

	var legacy ServiceExceptionReport
	if err := xml.Unmarshal(body, &legacy); err == nil && len(legacy.Exceptions) > 0 {
		exception := legacy.Exceptions[0]
		if text := strings.TrimSpace(exception.Text); text != "" {
			if exception.Code != "" {
				return fmt.Sprintf("%s: %s", exception.Code, text)
			}

			return text
		}

		return exception.Code
	}

	return ""
}
