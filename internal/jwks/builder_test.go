package jwks_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dropDatabas3/firmajuan/internal/jwks"
)

// newTestCert genera un certificado self-signed RSA en PEM para tests.
func newTestCert(t *testing.T, cn string) ([]byte, *rsa.PrivateKey) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), priv
}

func TestBuildDocument_X5tMatchesSHA1OfDER(t *testing.T) {
	certPEM, _ := newTestCert(t, "merchant-signing")

	doc, err := jwks.BuildDocument(certPEM)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(doc.Keys) != 1 {
		t.Fatalf("expected exactly one key, got %d", len(doc.Keys))
	}
	key := doc.Keys[0]

	// x5c contiene el DER; x5t debe ser SHA-1 de esos mismos bytes
	der, err := base64.StdEncoding.DecodeString(key.X5c[0])
	if err != nil {
		t.Fatalf("decode x5c: %v", err)
	}
	sum := sha1.Sum(der)
	want := base64.RawURLEncoding.EncodeToString(sum[:])
	if key.X5t != want {
		t.Fatalf("x5t mismatch: got %s want %s", key.X5t, want)
	}

	if key.Kty != "RSA" || key.Use != "sig" || key.Alg != "RS256" {
		t.Fatalf("unexpected key metadata: %+v", key)
	}
}

func TestBuildDocument_KIDDeterministic(t *testing.T) {
	certPEM, _ := newTestCert(t, "merchant-signing")

	doc1, err := jwks.BuildDocument(certPEM)
	if err != nil {
		t.Fatalf("build 1: %v", err)
	}
	doc2, err := jwks.BuildDocument(certPEM)
	if err != nil {
		t.Fatalf("build 2: %v", err)
	}
	if doc1.Keys[0].KID != doc2.Keys[0].KID {
		t.Fatalf("kid not deterministic: %s vs %s", doc1.Keys[0].KID, doc2.Keys[0].KID)
	}
	if doc1.Keys[0].X5t != doc2.Keys[0].X5t {
		t.Fatalf("x5t not deterministic")
	}
}

func TestBuildDocument_DifferentCertsDifferentFingerprints(t *testing.T) {
	certA, _ := newTestCert(t, "cert-a")
	certB, _ := newTestCert(t, "cert-b")

	docA, err := jwks.BuildDocument(certA)
	if err != nil {
		t.Fatalf("build a: %v", err)
	}
	docB, err := jwks.BuildDocument(certB)
	if err != nil {
		t.Fatalf("build b: %v", err)
	}
	if docA.Keys[0].X5t == docB.Keys[0].X5t {
		t.Fatalf("distinct certs produced same x5t")
	}
	if docA.Keys[0].KID == docB.Keys[0].KID {
		t.Fatalf("distinct keys produced same kid")
	}
}

func TestBuildKey_PublicKeyRoundTrip(t *testing.T) {
	certPEM, priv := newTestCert(t, "roundtrip")

	doc, err := jwks.BuildDocument(certPEM)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	pub, err := doc.Keys[0].PublicKey()
	if err != nil {
		t.Fatalf("public key: %v", err)
	}
	if pub.N.Cmp(priv.PublicKey.N) != 0 || pub.E != priv.PublicKey.E {
		t.Fatalf("reconstructed public key does not match original")
	}
}

func TestParseCertificate_Errors(t *testing.T) {
	if _, err := jwks.ParseCertificate([]byte("not pem at all")); err == nil {
		t.Fatalf("expected error for garbage input")
	}

	// Bloque PEM válido pero del tipo incorrecto
	block := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: []byte{0x01}})
	if _, err := jwks.ParseCertificate(block); err == nil {
		t.Fatalf("expected error for non-certificate block")
	}
}

func TestBuildFromFile_WritesPrettyJSON(t *testing.T) {
	certPEM, _ := newTestCert(t, "file-build")
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	outPath := filepath.Join(dir, "jwks.json")

	if err := os.WriteFile(certPath, certPEM, 0644); err != nil {
		t.Fatalf("write cert: %v", err)
	}

	doc, err := jwks.BuildFromFile(certPath, outPath)
	if err != nil {
		t.Fatalf("build from file: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var parsed jwks.Document
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed.Keys[0].KID != doc.Keys[0].KID {
		t.Fatalf("written document differs from returned document")
	}
}

func TestBuildFromFile_NoPartialOutputOnBadCert(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	outPath := filepath.Join(dir, "jwks.json")

	if err := os.WriteFile(certPath, []byte("garbage"), 0644); err != nil {
		t.Fatalf("write cert: %v", err)
	}

	if _, err := jwks.BuildFromFile(certPath, outPath); err == nil {
		t.Fatalf("expected error for bad certificate")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("partial output written on failure")
	}
}

func TestBuildFromFile_MissingCert(t *testing.T) {
	dir := t.TempDir()

	_, err := jwks.BuildFromFile(filepath.Join(dir, "missing.pem"), filepath.Join(dir, "jwks.json"))
	if !errors.Is(err, jwks.ErrIO) {
		t.Fatalf("expected ErrIO for missing certificate, got %v", err)
	}
}
