package token_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math/big"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/firmajuan/internal/jwks"
	tokenx "github.com/dropDatabas3/firmajuan/internal/token"
)

// stubSource implementa keysource.SecretSource en memoria.
type stubSource struct {
	priv *rsa.PrivateKey
	doc  *jwks.Document
	raw  []byte
	err  error
}

func (s *stubSource) PrivateKey(context.Context) (*rsa.PrivateKey, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.priv, nil
}

func (s *stubSource) Document(context.Context) (*jwks.Document, []byte, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.doc, s.raw, nil
}

// newSigningMaterial genera clave + certificado y arma el documento JWKS.
func newSigningMaterial(t *testing.T) (*rsa.PrivateKey, *jwks.Document, []byte) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "token-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	doc, err := jwks.BuildDocument(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	raw, _ := json.MarshalIndent(doc, "", "  ")
	return priv, doc, raw
}

func strptr(s string) *string { return &s }

func TestIssue_RoundTrip(t *testing.T) {
	priv, doc, raw := newSigningMaterial(t)
	issuer := tokenx.NewIssuer(&stubSource{priv: priv, doc: doc, raw: raw}, tokenx.IdentityPolicy{AllowDefaults: true})

	issued, err := issuer.Issue(context.Background(), tokenx.IssueRequest{
		UserID: strptr("u1"),
		BotID:  strptr("b1"),
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if issued.TokenType != "Bearer" {
		t.Fatalf("token_type: got %s", issued.TokenType)
	}
	if issued.ExpiresIn != "7d" {
		t.Fatalf("expires_in: got %s", issued.ExpiresIn)
	}

	wantKID, _ := doc.ActiveKID()
	if issued.Header.KID != wantKID {
		t.Fatalf("header kid %s != document kid %s", issued.Header.KID, wantKID)
	}
	if issued.Header.Alg != "RS256" {
		t.Fatalf("header alg: got %s", issued.Header.Alg)
	}

	parsed, err := jwtv5.Parse(issued.Token, issuer.Keyfunc(),
		jwtv5.WithValidMethods([]string{"RS256"}),
		jwtv5.WithIssuer(tokenx.DefaultIssuer),
		jwtv5.WithAudience(tokenx.DefaultAudience),
	)
	if err != nil || !parsed.Valid {
		t.Fatalf("expected valid token, err=%v", err)
	}

	claims := parsed.Claims.(jwtv5.MapClaims)
	if claims["user_id"] != "u1" || claims["bot_id"] != "b1" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims["jti"] == "" || claims["jti"] == nil {
		t.Fatalf("missing jti claim")
	}

	// exp ~ 7 días desde ahora, con tolerancia de segundos
	exp := int64(claims["exp"].(float64))
	want := time.Now().Add(7 * 24 * time.Hour).Unix()
	if diff := exp - want; diff < -10 || diff > 10 {
		t.Fatalf("exp off by %d seconds", diff)
	}
}

func TestIssue_DefaultsApplied(t *testing.T) {
	priv, doc, raw := newSigningMaterial(t)
	issuer := tokenx.NewIssuer(&stubSource{priv: priv, doc: doc, raw: raw}, tokenx.IdentityPolicy{AllowDefaults: true})

	issued, err := issuer.Issue(context.Background(), tokenx.IssueRequest{})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if issued.Claims["user_id"] != tokenx.DefaultUserID {
		t.Fatalf("user_id: got %v want %s", issued.Claims["user_id"], tokenx.DefaultUserID)
	}
	if issued.Claims["bot_id"] != tokenx.DefaultBotID {
		t.Fatalf("bot_id: got %v want %s", issued.Claims["bot_id"], tokenx.DefaultBotID)
	}
}

func TestIssue_ExplicitEmptyRejected(t *testing.T) {
	priv, doc, raw := newSigningMaterial(t)
	issuer := tokenx.NewIssuer(&stubSource{priv: priv, doc: doc, raw: raw}, tokenx.IdentityPolicy{AllowDefaults: true})

	_, err := issuer.Issue(context.Background(), tokenx.IssueRequest{
		UserID: strptr(""),
		BotID:  strptr("b1"),
	})
	if !errors.Is(err, tokenx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestIssue_DefaultsDisabled(t *testing.T) {
	priv, doc, raw := newSigningMaterial(t)
	issuer := tokenx.NewIssuer(&stubSource{priv: priv, doc: doc, raw: raw}, tokenx.IdentityPolicy{AllowDefaults: false})

	if _, err := issuer.Issue(context.Background(), tokenx.IssueRequest{}); !errors.Is(err, tokenx.ErrValidation) {
		t.Fatalf("expected ErrValidation with defaults disabled, got %v", err)
	}

	// Con ambos campos presentes sí emite
	if _, err := issuer.Issue(context.Background(), tokenx.IssueRequest{
		UserID: strptr("u1"),
		BotID:  strptr("b1"),
	}); err != nil {
		t.Fatalf("expected success with explicit identity, got %v", err)
	}
}

func TestIssue_KeyUnavailable(t *testing.T) {
	issuer := tokenx.NewIssuer(&stubSource{err: errors.New("boom")}, tokenx.IdentityPolicy{AllowDefaults: true})

	_, err := issuer.Issue(context.Background(), tokenx.IssueRequest{})
	if !errors.Is(err, tokenx.ErrKeyUnavailable) {
		t.Fatalf("expected ErrKeyUnavailable, got %v", err)
	}
}

func TestIssue_ForeignKeyFailsVerification(t *testing.T) {
	// Documento publicado de la clave A, firma con la clave B:
	// la verificación contra el documento debe fallar.
	_, docA, rawA := newSigningMaterial(t)
	privB, _, _ := newSigningMaterial(t)

	issuer := tokenx.NewIssuer(&stubSource{priv: privB, doc: docA, raw: rawA}, tokenx.IdentityPolicy{AllowDefaults: true})
	issued, err := issuer.Issue(context.Background(), tokenx.IssueRequest{})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parsed, err := jwtv5.Parse(issued.Token, issuer.Keyfunc(), jwtv5.WithValidMethods([]string{"RS256"}))
	if err == nil && parsed.Valid {
		t.Fatalf("token signed with foreign key verified against published document")
	}
}

func TestTTLLabel(t *testing.T) {
	cases := []struct {
		ttl  time.Duration
		want string
	}{
		{7 * 24 * time.Hour, "7d"},
		{24 * time.Hour, "1d"},
		{90 * time.Minute, "1h30m0s"},
	}
	for _, c := range cases {
		if got := tokenx.TTLLabel(c.ttl); got != c.want {
			t.Fatalf("TTLLabel(%v): got %s want %s", c.ttl, got, c.want)
		}
	}
}
