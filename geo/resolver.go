package geo

import (
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// Resolver maps a location name to the short code a map renderer keys its
// regions by.
type Resolver interface {
	// Resolve returns the code of name and whether it was found.
	Resolve(name string) (string, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (string, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string) (string, bool) {
	return f(name)
}

// MapResolver resolves names from a fixed table. Lookups ignore case and
// surrounding space.
type MapResolver map[string]string

var _ Resolver = MapResolver(nil)

// NewMapResolver builds a MapResolver from a name to code table.
func NewMapResolver(table map[string]string) MapResolver {
	m := make(MapResolver, len(table))
	for name, code := range table {
		m[normalizeName(name)] = code
	}

	return m
}

// Resolve implements Resolver.
func (m MapResolver) Resolve(name string) (string, bool) {
	code, ok := m[normalizeName(name)]
	return code, ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ChainResolver asks each resolver in turn and returns the first hit.
type ChainResolver []Resolver

// Resolve implements Resolver.
func (c ChainResolver) Resolve(name string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if code, ok := r.Resolve(name); ok {
			return code, true
		}
	}

	return "", false
}

// countryLookup is the subset of *geoip2.Reader used by GeoIPResolver.
type countryLookup interface {
	Country(ip net.IP) (*geoip2.Country, error)
}

// GeoIPResolver resolves IP address values to ISO 3166-1 alpha-3 country
// codes through a MaxMind country database, matching the codes world and
// Europe maps are keyed by. The database reports alpha-2 codes, which are
// converted with Alpha3. Values that are not IP addresses are not found.
type GeoIPResolver struct {
	db     countryLookup
	closer func() error
}

var _ Resolver = (*GeoIPResolver)(nil)

// OpenGeoIP opens a GeoLite2/GeoIP2 country database.
//
// The returned resolver holds the database open; call Close when done.
func OpenGeoIP(path string) (*GeoIPResolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}

	return &GeoIPResolver{db: db, closer: db.Close}, nil
}

// Resolve implements Resolver.
func (g *GeoIPResolver) Resolve(name string) (string, bool) {
	ip := net.ParseIP(strings.TrimSpace(name))
	if ip == nil {
		return "", false
	}

	rec, err := g.db.Country(ip)
	if err != nil || rec == nil || rec.Country.IsoCode == "" {
		return "", false
	}

	return Alpha3(rec.Country.IsoCode)
}

// Close releases the database.
func (g *GeoIPResolver) Close() error {
	if g.closer == nil {
		return nil
	}

	return g.closer()
}
