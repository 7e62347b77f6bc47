package hotresque_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aura-studio/hotresque"
)

func TestParseConfig(t *testing.T) {
	cfg, err := hotresque.ParseConfig([]byte(`
addr: redis.internal:6380
username: worker
password: s3cret
db: 2
namespace: resque
serializer: msgpack
`))
	require.NoError(t, err)
	require.Equal(t, &hotresque.Config{
		Addr:       "redis.internal:6380",
		Username:   "worker",
		Password:   "s3cret",
		DB:         2,
		Namespace:  "resque",
		Serializer: "msgpack",
	}, cfg)

	ro := cfg.RedisOptions()
	require.Equal(t, "redis.internal:6380", ro.Addr)
	require.Equal(t, "worker", ro.Username)
	require.Equal(t, "s3cret", ro.Password)
	require.Equal(t, 2, ro.DB)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := hotresque.ParseConfig([]byte("{}"))
	require.NoError(t, err)
	require.Equal(t, "localhost:6379", cfg.Addr)

	_, err = hotresque.ParseConfig([]byte("addr: [unterminated"))
	require.Error(t, err)
}

func TestConfig_Options_UnknownSerializer(t *testing.T) {
	cfg := &hotresque.Config{Serializer: "pickle"}
	_, err := cfg.Options()
	require.ErrorIs(t, err, hotresque.ErrUnknownSerializer)

	_, err = hotresque.OpenConfig(cfg, "jobs")
	require.ErrorIs(t, err, hotresque.ErrUnknownSerializer)
}

// TestOpenConfig_FromFile verifies a queue dialed from a YAML file talks to the configured
// server under the configured namespace.
func TestOpenConfig_FromFile(t *testing.T) {
	s, _ := newTestRedis(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "hotresque.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: "+s.Addr()+"\nnamespace: resque\nserializer: raw\n"), 0o600))

	cfg, err := hotresque.LoadConfig(path)
	require.NoError(t, err)

	q, err := hotresque.OpenConfig(cfg, "queue:migrations")
	require.NoError(t, err)
	defer func() { _ = q.Close() }()

	require.Equal(t, "resque:queue:migrations", q.Key())
	require.NoError(t, q.Put(ctx, "hello"))

	got, err := s.List("resque:queue:migrations")
	require.NoError(t, err)
	require.Equal(t, []string{"hello"}, got)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := hotresque.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
