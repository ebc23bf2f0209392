package transport

import (
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// EnvPrefix prefixes every environment variable read by [ParseEnv].
const EnvPrefix = "WPHTTP_"

const (
	// DefaultTimeout applies when Options.Timeout is zero.
	DefaultTimeout = 5 * time.Second
	// DefaultRedirection applies when Options.Redirection is zero.
	DefaultRedirection = 5
)

// Options is the configuration bag handed to the transport with every call. The zero value is usable:
// requests block, responses are decompressed and TLS certificates are verified. The core never
// interprets these values, it only passes them through.
//
//	| Field              | Env (WPHTTP_ prefix)  | Bag key              |
//	|--------------------|-----------------------|----------------------|
//	| Timeout            | TIMEOUT               | timeout (seconds)    |
//	| Redirection        | REDIRECTION           | redirection          |
//	| UserAgent          | USER_AGENT            | user-agent           |
//	| RejectUnsafeURLs   | REJECT_UNSAFE_URLS    | reject_unsafe_urls   |
//	| NonBlocking        | NON_BLOCKING          | blocking (inverted)  |
//	| Compress           | COMPRESS              | compress             |
//	| NoDecompress       | NO_DECOMPRESS         | decompress (inverted)|
//	| InsecureSkipVerify | INSECURE_SKIP_VERIFY  | sslverify (inverted) |
//	| SSLCertificates    | SSLCERTIFICATES       | sslcertificates      |
//	| Stream             | STREAM                | stream               |
//	| Filename           | FILENAME              | filename             |
//	| LimitResponseSize  | LIMIT_RESPONSE_SIZE   | limit_response_size  |
type Options struct {
	// Timeout bounds the whole exchange. Zero means DefaultTimeout.
	Timeout time.Duration `env:"TIMEOUT"`
	// Redirection is the maximum number of redirects to follow. Zero means DefaultRedirection, a
	// negative value disables following.
	Redirection int `env:"REDIRECTION"`
	// UserAgent is sent when the request carries no User-Agent header.
	UserAgent string `env:"USER_AGENT"`
	// RejectUnsafeURLs refuses non-http(s) URLs, URLs with credentials, uncommon ports and hosts that
	// resolve to loopback, private or link-local addresses.
	RejectUnsafeURLs bool `env:"REJECT_UNSAFE_URLS"`
	// NonBlocking dispatches in the background and returns immediately.
	NonBlocking bool `env:"NON_BLOCKING"`
	// Compress gzips the request body.
	Compress bool `env:"COMPRESS"`
	// NoDecompress disables transparent response decompression.
	NoDecompress bool `env:"NO_DECOMPRESS"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `env:"INSECURE_SKIP_VERIFY"`
	// SSLCertificates is the path of a PEM bundle used as root CAs.
	SSLCertificates string `env:"SSLCERTIFICATES"`
	// Stream writes the response body to Filename, or a temporary file when Filename is empty.
	Stream bool `env:"STREAM"`
	// Filename is the destination when streaming.
	Filename string `env:"FILENAME"`
	// LimitResponseSize caps the number of body bytes read. Zero means no limit.
	LimitResponseSize int64 `env:"LIMIT_RESPONSE_SIZE"`
}

// EffectiveTimeout returns the timeout with the default applied.
func (o Options) EffectiveTimeout() time.Duration {
	if o.Timeout == 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// EffectiveRedirection returns the redirect limit with the default applied. A negative result means
// redirects are not followed.
func (o Options) EffectiveRedirection() int {
	if o.Redirection == 0 {
		return DefaultRedirection
	}
	return o.Redirection
}

// ParseEnv reads Options from WPHTTP_* environment variables.
func ParseEnv() (Options, error) {
	var o Options
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return o, errors.Wrap(err, "failed to parse environment")
	}
	return o, nil
}

// invertedKeys maps bag keys whose meaning is negated in Options.
var invertedKeys = map[string]string{
	"blocking":   "NON_BLOCKING",
	"decompress": "NO_DECOMPRESS",
	"sslverify":  "INSECURE_SKIP_VERIFY",
}

// FromMap reads Options from a plain key-value bag using the transport's option keys, such as
// "timeout" or "user-agent". Unknown keys are ignored. A timeout without a unit is read as seconds and
// a redirection of 0 disables following redirects.
func FromMap(bag map[string]string) (Options, error) {
	environ := make(map[string]string, len(bag))
	for k, v := range bag {
		lk := strings.ToLower(k)
		if inv, ok := invertedKeys[lk]; ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Options{}, errors.Wrapf(err, "invalid value for %q", k)
			}
			environ[inv] = strconv.FormatBool(!b)
			continue
		}

		switch lk {
		case "timeout":
			if secs, err := strconv.ParseFloat(v, 64); err == nil {
				v = time.Duration(secs * float64(time.Second)).String()
			}
		case "redirection":
			// in the bag zero means "do not follow", in Options it means the default
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n == 0 {
				v = "-1"
			}
		}

		environ[strings.ToUpper(strings.ReplaceAll(k, "-", "_"))] = v
	}

	var o Options
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return o, errors.Wrap(err, "failed to parse options")
	}
	return o, nil
}
