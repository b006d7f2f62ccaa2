package wfs

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/delta10/wfs-client/internal/config"
	"github.com/delta10/wfs-client/internal/ows"
	"github.com/delta10/wfs-client/internal/utils"
)

const defaultTimeout = 25 * time.Second

// reservedParams are set by the client itself and cannot be overridden by
// configured extra query parameters.
var reservedParams = []string{"service", "request", "version"}

// Client talks to one WFS server. The protocol version is negotiated on
// the first capabilities call and reused for the lifetime of the client;
// configuring an explicit version skips negotiation entirely. A client
// holds one HTTP connection pool shared across all its requests and is
// safe for concurrent use.
type Client struct {
	server     config.Server
	httpClient *http.Client
	negotiator *ows.Negotiator

	mu      sync.Mutex
	version string
}

// NewClient builds a client from a configured server entry.
func NewClient(server config.Server) (*Client, error) {
	tlsConfig := &tls.Config{}
	if server.Auth.TLS.RootCertificates != "" {
		rootCertificates, err := os.ReadFile(server.Auth.TLS.RootCertificates)
		if err != nil {
			return nil, fmt.Errorf("could not retrieve root certs for server: %w", err)
		}

		roots := x509.NewCertPool()
		if !roots.AppendCertsFromPEM(rootCertificates) {
			return nil, errors.New("could not load root certs for server")
		}

		tlsConfig.RootCAs = roots
	}

	if server.Auth.TLS.Certificate != "" && server.Auth.TLS.Key != "" {
		cert, err := tls.LoadX509KeyPair(server.Auth.TLS.Certificate, server.Auth.TLS.Key)
		if err != nil {
			return nil, fmt.Errorf("could not load TLS keypair for server: %w", err)
		}

		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	timeout := defaultTimeout
	if server.TimeoutSeconds > 0 {
		timeout = time.Duration(server.TimeoutSeconds) * time.Second
	}

	client := &Client{
		server: server,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{TLSClientConfig: tlsConfig},
		},
	}

	if server.Version != "" {
		if _, ok := Bundle(server.Version); !ok {
			return nil, fmt.Errorf("unsupported protocol version configured: %s", server.Version)
		}

		client.version = server.Version
	}

	negotiator, err := ows.NewNegotiator(client, capabilitiesRoot, SupportedVersions())
	if err != nil {
		return nil, err
	}
	client.negotiator = negotiator

	return client, nil
}

// IssueCapabilitiesRequest performs one GetCapabilities round trip for the
// given version candidate and returns the parsed response document.
// Transport failures, non-200 responses and malformed XML are returned as
// errors; any well-formed 200 response is handed back as a document, even
// when it is not a capabilities document.
func (c *Client) IssueCapabilitiesRequest(ctx context.Context, version string) (*xmlquery.Node, error) {
	serverURL, err := url.Parse(c.server.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse server URL: %w", err)
	}

	query := serverURL.Query()
	for key, value := range c.server.QueryParams {
		if utils.StringInSlice(strings.ToLower(key), reservedParams) {
			continue
		}

		query.Set(key, value)
	}
	query.Set("service", "WFS")
	query.Set("request", "GetCapabilities")
	query.Set("version", version)
	serverURL.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not construct capabilities request: %w", err)
	}

	for headerKey, headerValue := range c.server.Auth.Header {
		request.Header.Set(headerKey, utils.EnvSubst(headerValue))
	}

	if c.server.Auth.Basic.Username != "" && c.server.Auth.Basic.Password != "" {
		request.SetBasicAuth(c.server.Auth.Basic.Username, utils.EnvSubst(c.server.Auth.Basic.Password))
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("could not fetch capabilities response: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read capabilities response: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, statusError(response.StatusCode, body, request.Header.Get("Authorization"))
	}

	document, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not parse capabilities response: %w", err)
	}

	return document, nil
}

// GetCapabilities fetches the server's capabilities document and maps it
// into the version-independent representation: a "service" object and a
// "featureTypes" list.
func (c *Client) GetCapabilities(ctx context.Context) (map[string]any, error) {
	version, document, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	bundle, ok := Bundle(version)
	if !ok {
		return nil, fmt.Errorf("no schema bundle for protocol version %s", version)
	}

	root := ows.RootElement(document)
	if root == nil {
		return nil, errors.New("capabilities response has no root element")
	}

	return bundle.Build(root, "Main")
}

// Version returns the pinned or negotiated protocol version, or the empty
// string before the first capabilities call resolves one.
func (c *Client) Version() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.version
}

// ResultFormats returns the known result-format codes for the resolved
// protocol version.
func (c *Client) ResultFormats() map[string]string {
	return Formats(c.Version())
}

func (c *Client) fetch(ctx context.Context) (string, *xmlquery.Node, error) {
	c.mu.Lock()
	version := c.version
	c.mu.Unlock()

	if version != "" {
		document, err := c.IssueCapabilitiesRequest(ctx, version)
		return version, document, err
	}

	version, document, err := c.negotiator.Negotiate(ctx, c.negotiator.Latest())
	if err != nil {
		return "", nil, err
	}

	c.mu.Lock()
	c.version = version
	c.mu.Unlock()

	return version, document, nil
}

func statusError(statusCode int, body []byte, authorization string) error {
	message := fmt.Sprintf("server returned status %d", statusCode)
	if detail := exceptionMessage(body); detail != "" {
		message = fmt.Sprintf("%s: %s", message, detail)
	}

	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		if hint := bearerTokenHint(authorization, time.Now()); hint != "" {
			message = fmt.Sprintf("%s (%s)", message, hint)
		}
	}

	return errors.New(message)
}

var _ ows.Issuer = (*Client)(nil)
