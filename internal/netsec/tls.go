// Package netsec builds the TLS configuration shared by the REST client and
// the event channel when talking to self-hosted backends.
package netsec

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
)

// ClientTLSConfig returns the client-side TLS configuration. caFile, when
// set, names a PEM bundle trusted instead of the system roots, for dev
// deployments running on self-signed certificates. insecure disables
// verification entirely and wins over caFile.
func ClientTLSConfig(caFile string, insecure bool) (*tls.Config, error) {
	conf := &tls.Config{MinVersion: tls.VersionTLS12}
	if insecure {
		conf.InsecureSkipVerify = true
		return conf, nil
	}
	caFile = strings.TrimSpace(caFile)
	if caFile == "" {
		return conf, nil
	}
	pemBytes, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemBytes) {
		return nil, fmt.Errorf("no certificates found in %s", caFile)
	}
	conf.RootCAs = pool
	return conf, nil
}
