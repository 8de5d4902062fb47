package paperwave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions_Defaults(t *testing.T) {
	cfg := defaultClientOptions()
	assert.Equal(t, 15*time.Second, cfg.timeout)
	assert.Equal(t, "paperwave-go", cfg.userAgent)
	assert.Empty(t, cfg.authToken)
	require.NotNil(t, cfg.encoder)
}

func TestClientOptions_Setters(t *testing.T) {
	enc := &JSONEncoder{}
	cfg := defaultClientOptions()
	for _, opt := range []ClientOption{
		ClientTimeout(2 * time.Second),
		ClientAuthToken("tok-123"),
		ClientUserAgent("workspace-ui/1.4"),
		ClientEncoder(enc),
	} {
		opt(cfg)
	}
	assert.Equal(t, 2*time.Second, cfg.timeout)
	assert.Equal(t, "tok-123", cfg.authToken)
	assert.Equal(t, "workspace-ui/1.4", cfg.userAgent)
	assert.Same(t, enc, cfg.encoder.(*JSONEncoder))
}

func TestClientOptions_IgnoreInvalid(t *testing.T) {
	cfg := defaultClientOptions()
	ClientTimeout(0)(cfg)
	ClientTimeout(-time.Second)(cfg)
	ClientUserAgent("")(cfg)
	ClientEncoder(nil)(cfg)
	assert.Equal(t, 15*time.Second, cfg.timeout)
	assert.Equal(t, "paperwave-go", cfg.userAgent)
	require.NotNil(t, cfg.encoder)
}

func TestTrackerConfig_Defaults(t *testing.T) {
	cli := NewClient("http://127.0.0.1:9")
	defer cli.Close()

	tr := NewTracker(cli, TrackerConfig{})
	assert.Equal(t, 3*time.Second, tr.cfg.PollInterval)
	assert.Equal(t, 500*time.Millisecond, tr.cfg.BurstWarmup)
	assert.Equal(t, time.Second, tr.cfg.BurstInterval)
	assert.Equal(t, 30, tr.cfg.BurstAttempts)
	require.NotNil(t, tr.log)
	require.NotNil(t, tr.notify)
}

func TestTrackerConfig_Overrides(t *testing.T) {
	cli := NewClient("http://127.0.0.1:9")
	defer cli.Close()

	n := &recordingNotifier{}
	tr := NewTracker(cli, TrackerConfig{
		PollInterval:  time.Minute,
		BurstWarmup:   time.Millisecond,
		BurstInterval: 10 * time.Millisecond,
		BurstAttempts: 3,
		Notifier:      n,
	})
	assert.Equal(t, time.Minute, tr.cfg.PollInterval)
	assert.Equal(t, time.Millisecond, tr.cfg.BurstWarmup)
	assert.Equal(t, 10*time.Millisecond, tr.cfg.BurstInterval)
	assert.Equal(t, 3, tr.cfg.BurstAttempts)
	assert.Same(t, n, tr.notify.(*recordingNotifier))
}
