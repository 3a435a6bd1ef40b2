package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boubliclub/formrelay/pkg/clientip"
)

func TestResolverIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resolver   *clientip.Resolver
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			resolver:   clientip.New(),
			remoteAddr: "203.0.113.7:5555",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "cloudflare header first",
			resolver:   clientip.New(clientip.DefaultHeaders...),
			remoteAddr: "10.0.0.1:80",
			headers: map[string]string{
				"CF-Connecting-IP": "198.51.100.2",
				"X-Forwarded-For":  "198.51.100.3",
			},
			want: "198.51.100.2",
		},
		{
			name:       "forwarded list skips garbage",
			resolver:   clientip.New(clientip.DefaultHeaders...),
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "unknown, 198.51.100.4, 10.0.0.2"},
			want:       "198.51.100.4",
		},
		{
			name:       "invalid header falls back",
			resolver:   clientip.New(clientip.DefaultHeaders...),
			remoteAddr: "192.0.2.9:1234",
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			want:       "192.0.2.9",
		},
		{
			name:       "ipv6 remote",
			resolver:   clientip.New(),
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "ipv4 mapped ipv6 unmapped",
			resolver:   clientip.New(clientip.DefaultHeaders...),
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "::ffff:192.0.2.10"},
			want:       "192.0.2.10",
		},
		{
			name:       "bare remote addr",
			resolver:   clientip.New(),
			remoteAddr: "192.0.2.11",
			want:       "192.0.2.11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.resolver.IP(r))
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1"
	r.Header.Set("X-Real-IP", "198.51.100.9")

	assert.Equal(t, "192.0.2.1", clientip.NewFromConfig(clientip.Config{}).IP(r))
	assert.Equal(t, "198.51.100.9", clientip.NewFromConfig(clientip.Config{TrustProxyHeaders: true}).IP(r))
	assert.Equal(t, "192.0.2.1", clientip.NewFromConfig(clientip.Config{
		TrustProxyHeaders: true,
		Headers:           []string{"X-Client"},
	}).IP(r))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.New().Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.77:999"
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "192.0.2.77", got)
}
