package internal

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"github.com/youmark/pkcs8"
	"os"
	"strings"
)

// LoadClientCertificate reads a PEM certificate chain and its private key.
// The key may be a PKCS#8 "ENCRYPTED PRIVATE KEY", a legacy encrypted PEM block,
// or unencrypted. When keyPath is empty the key is looked up in the certificate file.
func LoadClientCertificate(certPath, keyPath, password string) (tls.Certificate, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("read certificate: %w", err)
	}
	keyPEM := certPEM
	if keyPath != "" && keyPath != certPath {
		keyPEM, err = os.ReadFile(keyPath)
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("read key: %w", err)
		}
	}

	var cert tls.Certificate
	for rest := certPEM; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type == "CERTIFICATE" {
			cert.Certificate = append(cert.Certificate, block.Bytes)
		}
	}
	if len(cert.Certificate) == 0 {
		return tls.Certificate{}, fmt.Errorf("no certificate found in %s", certPath)
	}
	cert.Leaf, err = x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("parse certificate: %w", err)
	}

	cert.PrivateKey, err = decodePrivateKey(keyPEM, []byte(password))
	if err != nil {
		return tls.Certificate{}, err
	}
	if !keyMatches(cert.Leaf.PublicKey, cert.PrivateKey) {
		return tls.Certificate{}, fmt.Errorf("private key does not match certificate %s", certPath)
	}
	return cert, nil
}

func decodePrivateKey(data, password []byte) (crypto.PrivateKey, error) {
	for rest := data; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, errors.New("no private key found")
		}
		if !strings.HasSuffix(block.Type, "PRIVATE KEY") {
			continue
		}

		if block.Type == "ENCRYPTED PRIVATE KEY" {
			key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
			if err != nil {
				return nil, fmt.Errorf("decrypt pkcs8 key: %w", err)
			}
			return key, nil
		}

		der := block.Bytes
		// legacy "Proc-Type: 4,ENCRYPTED" block
		if x509.IsEncryptedPEMBlock(block) {
			var err error
			der, err = x509.DecryptPEMBlock(block, password)
			if err != nil {
				return nil, fmt.Errorf("decrypt pem key: %w", err)
			}
		}
		return parsePlainKey(block.Type, der)
	}
}

func parsePlainKey(blockType string, der []byte) (crypto.PrivateKey, error) {
	switch blockType {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(der)
	case "EC PRIVATE KEY":
		return x509.ParseECPrivateKey(der)
	default:
		return x509.ParsePKCS8PrivateKey(der)
	}
}

func keyMatches(public crypto.PublicKey, private crypto.PrivateKey) bool {
	signer, ok := private.(crypto.Signer)
	if !ok {
		return false
	}
	pub, ok := signer.Public().(interface{ Equal(crypto.PublicKey) bool })
	return ok && pub.Equal(public)
}

// LoadCertPool builds a pool trusting only the certificates in path.
func LoadCertPool(path string) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("no certificate found in %s", path)
	}
	return pool, nil
}
