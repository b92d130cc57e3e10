// Package domain holds the endpoint value registered by clients and handed
// out to proxies.
package domain

import (
	"cmp"
	"fmt"
	"net/netip"
	"regexp"
	"strconv"

	"facilitator/service"
)

// Family is the address family of an endpoint host.
type Family int

const (
	// FamilyUnspec means the family is not known yet and is inferred from the host literal.
	FamilyUnspec Family = iota
	FamilyIPv4
	FamilyIPv6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return "unspec"
	}
}

// Endpoint is a normalized numeric (host, port) pair.
// Host is always a canonical IP literal, IPv6 without brackets.
type Endpoint struct {
	Host   string
	Port   int
	Family Family
}

// Key identifies an endpoint for deduplication. Family is not part of it.
type Key struct {
	Host string
	Port int
}

// Key returns the deduplication key of e.
func (e Endpoint) Key() Key {
	return Key{Host: e.Host, Port: e.Port}
}

// Equal reports whether e and other name the same (host, port) pair.
func (e Endpoint) Equal(other Endpoint) bool {
	return e.Key() == other.Key()
}

// String renders e as "HOST:PORT" or "[HOST]:PORT".
func (e Endpoint) String() string {
	return FormatHostPort(e.Host, e.Port)
}

// Compare orders endpoints by host string, then by port.
func Compare(a, b Endpoint) int {
	if c := cmp.Compare(a.Host, b.Host); c != 0 {
		return c
	}
	return cmp.Compare(a.Port, b.Port)
}

// FormatHostPort renders host and port the way registrations are handed out:
// ":PORT" for an empty host, "[HOST]:PORT" when host is a numeric IPv6
// literal and "HOST:PORT" otherwise. Host does not need to come from Parse.
func FormatHostPort(host string, port int) string {
	if host == "" {
		return ":" + strconv.Itoa(port)
	}
	if addr, err := netip.ParseAddr(host); err == nil && addr.Is6() {
		return fmt.Sprintf("[%s]:%d", host, port)
	}
	return fmt.Sprintf("%s:%d", host, port)
}

var (
	bracketedSpec = regexp.MustCompile(`^\[(.+)\]:(\d*)$`)
	plainSpec     = regexp.MustCompile(`^(.*):(\d*)$`)
)

// specMatch is the outcome of matching a spec against the address grammar.
type specMatch struct {
	host   string
	port   string
	family Family
}

func matchSpec(spec string) (specMatch, bool) {
	if m := bracketedSpec.FindStringSubmatch(spec); m != nil {
		return specMatch{host: m[1], port: m[2], family: FamilyIPv6}, true
	}
	if m := plainSpec.FindStringSubmatch(spec); m != nil {
		family := FamilyUnspec
		if m[1] != "" {
			family = FamilyIPv4
		}
		return specMatch{host: m[1], port: m[2], family: family}, true
	}
	return specMatch{}, false
}

// Parse parses an address specification of the form "[HOST]:PORT" or
// "HOST:PORT". An empty HOST falls back to defaultHost and an empty PORT to
// defaultPort; pass "" and 0 for no default. Bracketed hosts must be IPv6
// literals, non-empty unbracketed hosts must be IPv4 literals and a host
// taken from defaultHost may be either. No name resolution is performed.
//
// Returns an address_syntax error when the spec matches neither form or a
// host or port is still missing after applying defaults, and an
// address_resolution error when the host or port is not a numeric literal
// of the required family.
func Parse(spec string, defaultHost string, defaultPort int) (Endpoint, error) {
	m, ok := matchSpec(spec)
	if !ok {
		return Endpoint{}, service.NewAddressSyntaxError(fmt.Sprintf("bad address specification %q", spec), nil)
	}

	if m.host == "" {
		m.host = defaultHost
	}
	if m.port == "" && defaultPort != 0 {
		m.port = strconv.Itoa(defaultPort)
	}
	if m.host == "" || m.port == "" {
		return Endpoint{}, service.NewAddressSyntaxError(fmt.Sprintf("bad address specification %q", spec), nil)
	}

	return resolve(m)
}

// resolve validates a matched host and port as a numeric literal pair and
// returns it in canonical form.
func resolve(m specMatch) (Endpoint, error) {
	addr, err := netip.ParseAddr(m.host)
	if err != nil {
		return Endpoint{}, resolutionError(m, err)
	}

	family := FamilyIPv4
	if addr.Is6() {
		family = FamilyIPv6
	}
	if m.family != FamilyUnspec && m.family != family {
		return Endpoint{}, resolutionError(m, fmt.Errorf("not an %s literal", m.family))
	}

	port, err := strconv.ParseUint(m.port, 10, 16)
	if err != nil {
		return Endpoint{}, resolutionError(m, err)
	}
	if port == 0 {
		return Endpoint{}, resolutionError(m, fmt.Errorf("port out of range"))
	}

	return Endpoint{Host: addr.String(), Port: int(port), Family: family}, nil
}

func resolutionError(m specMatch, err error) error {
	return service.NewAddressResolutionError(fmt.Sprintf("bad host or port %q %q", m.host, m.port), err)
}
