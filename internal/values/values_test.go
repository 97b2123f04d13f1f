package values_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/asm386/internal/values"
)

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "patch.yaml", []byte("values: [16, 0x20, -1, 0xFFFFFFFF]\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "patch.json", []byte(`{"values": [1, 2]}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "patch.toml", []byte("values = [16, 0x20, -1]\n"), 0o644))

	got, err := values.Load(fs, "patch.yaml")
	require.NoError(t, err)
	assert.Equal(t, []int32{16, 32, -1, -1}, got)

	got, err = values.Load(fs, "patch.json")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, got)

	got, err = values.Load(fs, "patch.toml")
	require.NoError(t, err)
	assert.Equal(t, []int32{16, 32, -1}, got)
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "big.yaml", []byte("values: [0x100000000]\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "bad.toml", []byte("values = [\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("values: {a: 1}\n"), 0o644))

	_, err := values.Load(fs, "big.yaml")
	require.ErrorIs(t, err, values.ErrRange)

	_, err = values.Load(fs, "bad.toml")
	require.Error(t, err)

	_, err = values.Load(fs, "bad.yaml")
	require.Error(t, err)

	_, err = values.Load(fs, "missing.yaml")
	require.Error(t, err)
}

func TestParseList(t *testing.T) {
	got, err := values.ParseList([]string{"16", " 0x20", "-1", "0b11", "0xFFFFFFFF"})
	require.NoError(t, err)
	assert.Equal(t, []int32{16, 32, -1, 3, -1}, got)

	_, err = values.ParseList([]string{"ten"})
	require.Error(t, err)

	_, err = values.ParseList([]string{"-0x80000001"})
	require.ErrorIs(t, err, values.ErrRange)
}

func TestToInt32(t *testing.T) {
	for in, want := range map[int64]int32{0: 0, -2147483648: -2147483648, 2147483647: 2147483647, 4294967295: -1} {
		got, err := values.ToInt32(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, in := range []int64{-2147483649, 4294967296} {
		_, err := values.ToInt32(in)
		require.ErrorIs(t, err, values.ErrRange)
	}
}
