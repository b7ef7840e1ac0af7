package statsd

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		metric string
		global Tags
		local  Tags
		want   string
	}{
		{
			name:   "prefixed with tags",
			prefix: "jokeboard",
			metric: "auth.login",
			global: Tags{"env": "prod", " service ": " web "},
			local:  Tags{"result": " success ", "": "ignored", "env": "stage"},
			want:   "jokeboard.auth.login:1|c|#env:stage,result:success,service:web",
		},
		{
			name:   "no prefix or tags",
			metric: "http.requests",
			want:   "http.requests:1|c",
		},
		{
			name:   "sanitised name",
			prefix: "jokeboard",
			metric: " http/requests..total ",
			want:   "jokeboard.http_requests.total:1|c",
		},
		{
			name:   "empty name",
			prefix: "jokeboard",
			metric: "  ",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatLine(tt.prefix, tt.metric, "1", "c", tt.global, tt.local))
		})
	}
}

func TestCleanTagsCopies(t *testing.T) {
	t.Parallel()

	original := Tags{"env": "prod", "": "ignored"}
	cloned := cleanTags(original)
	cloned["env"] = "stage"

	assert.Equal(t, "prod", original["env"])
	assert.NotContains(t, cloned, "")
}

func TestClientWritesLines(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	c := &Client{prefix: "jokeboard", global: Tags{"env": "test"}, conn: clientConn}
	require.True(t, c.Enabled())

	got := make(chan string, 2)
	go func() {
		buf := make([]byte, 256)
		for range 2 {
			n, err := peerConn.Read(buf)
			if err != nil {
				return
			}
			got <- string(buf[:n])
		}
	}()

	c.Count("auth.login", 1, Tags{"result": "success"})
	c.Timing("http.request.duration", 1500*time.Microsecond, nil)

	assert.Equal(t, "jokeboard.auth.login:1|c|#env:test,result:success", <-got)
	assert.Equal(t, "jokeboard.http.request.duration:1.5|ms|#env:test", <-got)

	require.NoError(t, c.Close())
	assert.False(t, c.Enabled())
	require.NoError(t, c.Close())
	// Dropped silently after close.
	c.Count("auth.login", 1, nil)
}

func TestNilAndDisabledClients(t *testing.T) {
	t.Parallel()

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	require.NoError(t, nilClient.Close())
	nilClient.Count("x", 1, nil)

	c, err := NewClient(Config{Enabled: true, Address: "   "})
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	c, err = NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	Discard.Count("x", 1, nil)
	Discard.Timing("x", time.Second, nil)
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "statsd dial"))
}

func TestNewClientUDP(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	c, err := NewClient(Config{Enabled: true, Address: pc.LocalAddr().String(), Prefix: ".jokeboard."})
	require.NoError(t, err)
	defer c.Close()
	require.True(t, c.Enabled())

	c.Count("auth.logout", 3, nil)

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 256)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "jokeboard.auth.logout:3|c", string(buf[:n]))
}
