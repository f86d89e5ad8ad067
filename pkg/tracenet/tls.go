package tracenet

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"

	"xlate/pkg/xerr"
)

// selfSignedServerTLSConfig generates an ephemeral ECDSA certificate
// for QUIC's mandatory TLS. A trace sidecar is a local debug
// attachment with no peer-identity requirement, so this accepts any
// client certificate rather than verifying one against a known peer
// set.
func selfSignedServerTLSConfig() (*tls.Config, error) {
	cert, err := generateSelfSignedCert()
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{"xlate-tracenet"},
		MinVersion:   tls.VersionTLS13,
	}, nil
}

func selfSignedClientTLSConfig() (*tls.Config, error) {
	return &tls.Config{
		InsecureSkipVerify: true, // see package doc: no peer-identity requirement
		NextProtos:         []string{"xlate-tracenet"},
		MinVersion:         tls.VersionTLS13,
	}, nil
}

func generateSelfSignedCert() (tls.Certificate, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, xerr.Wrap(err, "tracenet: generate key")
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, xerr.Wrap(err, "tracenet: generate serial")
	}
	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: "xlate-tracenet"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &priv.PublicKey, priv)
	if err != nil {
		return tls.Certificate{}, xerr.Wrap(err, "tracenet: create certificate")
	}
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: priv}, nil
}
