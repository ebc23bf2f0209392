package transport

import (
	"context"
	"net"
	"net/url"

	"github.com/cockroachdb/errors"
)

// ErrUnsafeURL is returned when a URL is refused because RejectUnsafeURLs is set.
var ErrUnsafeURL = errors.New("unsafe url")

// safePorts are the only explicit ports allowed for unsafe-URL checks.
var safePorts = map[string]bool{"": true, "80": true, "443": true, "8080": true}

// ValidateURL checks that a URL is safe to request from a server-side context: http or https only,
// no credentials, a common port and a host that does not resolve to a loopback, private, unspecified
// or link-local address.
func ValidateURL(ctx context.Context, resolver *net.Resolver, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to parse url"), ErrUnsafeURL)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return errors.Wrapf(ErrUnsafeURL, "scheme %q", u.Scheme)
	case u.User != nil:
		return errors.Wrap(ErrUnsafeURL, "credentials in url")
	case u.Hostname() == "":
		return errors.Wrap(ErrUnsafeURL, "missing host")
	case !safePorts[u.Port()]:
		return errors.Wrapf(ErrUnsafeURL, "port %s", u.Port())
	}

	host := u.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		addrs, err := resolver.LookupIPAddr(ctx, host)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "failed to resolve %q", host), ErrUnsafeURL)
		}
		for _, a := range addrs {
			ips = append(ips, a.IP)
		}
	}

	for _, ip := range ips {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
			ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return errors.Wrapf(ErrUnsafeURL, "host %q resolves to %s", host, ip)
		}
	}

	return nil
}
