package keysource

import (
	"context"
	"crypto/rsa"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dropDatabas3/firmajuan/internal/jwks"
)

// DefaultCacheTTL es el TTL por defecto del material cacheado.
// El material cambia solo en re-aprovisionamiento, así que un TTL corto
// alcanza para recoger cambios sin releer en cada request.
const DefaultCacheTTL = time.Minute

const (
	cacheKeyPrivate  = "private_key"
	cacheKeyDocument = "document"
)

type cachedDocument struct {
	doc *jwks.Document
	raw []byte
}

// CachedSource decora cualquier SecretSource con un cache TTL en memoria.
// Los errores no se cachean: una fuente que falla se reintenta en la
// siguiente llamada.
type CachedSource struct {
	inner SecretSource
	cache *gocache.Cache
}

// NewCachedSource envuelve inner con un cache de TTL dado (0 usa el default).
func NewCachedSource(inner SecretSource, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// PrivateKey implementa SecretSource.
func (s *CachedSource) PrivateKey(ctx context.Context) (*rsa.PrivateKey, error) {
	if v, ok := s.cache.Get(cacheKeyPrivate); ok {
		return v.(*rsa.PrivateKey), nil
	}
	key, err := s.inner.PrivateKey(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeyPrivate, key)
	return key, nil
}

// Document implementa SecretSource.
func (s *CachedSource) Document(ctx context.Context) (*jwks.Document, []byte, error) {
	if v, ok := s.cache.Get(cacheKeyDocument); ok {
		cd := v.(cachedDocument)
		return cd.doc, cd.raw, nil
	}
	doc, raw, err := s.inner.Document(ctx)
	if err != nil {
		return nil, nil, err
	}
	s.cache.SetDefault(cacheKeyDocument, cachedDocument{doc: doc, raw: raw})
	return doc, raw, nil
}
