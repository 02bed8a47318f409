package internal

import (
	"context"
	"crypto/tls"
	"fmt"
	"ima/config"
	"ima/entity"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// HTTPSTransport posts field sets to the merchant handler over mutually authenticated TLS.
type HTTPSTransport struct {
	url        string
	httpClient *http.Client
}

// NewTransport configures the transport from the merchant section of the configuration.
// Peer verification is off unless VerifyPeer is set, in which case only the configured
// CA file is trusted.
func NewTransport(conf *config.Config) (*HTTPSTransport, error) {
	if conf.Merchant.MerchantHandler == "" {
		return nil, fmt.Errorf("merchant handler not configured")
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !conf.Merchant.VerifyPeer,
	}
	if conf.Merchant.CertPath != "" {
		cert, err := LoadClientCertificate(conf.Merchant.CertPath, conf.Merchant.KeyPath, conf.Merchant.Password)
		if err != nil {
			return nil, fmt.Errorf("client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	if conf.Merchant.VerifyPeer {
		pool, err := LoadCertPool(conf.CAPath())
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}

	return NewHTTPSTransport(conf.Merchant.MerchantHandler, tlsConfig, conf.Merchant.Timeout), nil
}

// NewHTTPSTransport creates a transport with connection pooling and a request timeout.
func NewHTTPSTransport(url string, tlsConfig *tls.Config, timeout time.Duration) *HTTPSTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPSTransport{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig:     tlsConfig,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (t *HTTPSTransport) URL() string {
	return t.url
}

// Send posts the fields as a form and returns the response body untouched.
// Any failure, including a non-2xx status, is a *TransportError.
func (t *HTTPSTransport) Send(ctx context.Context, fields *entity.Fields) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, strings.NewReader(fields.Encode()))
	if err != nil {
		return "", &TransportError{URL: t.url, cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := t.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{URL: t.url, cause: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", &TransportError{URL: t.url, StatusCode: response.StatusCode, cause: fmt.Errorf("read response body: %w", err)}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", &TransportError{URL: t.url, StatusCode: response.StatusCode, cause: fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body)))}
	}
	return string(body), nil
}
