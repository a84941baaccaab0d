package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	prev := version
	version = v
	t.Cleanup(func() { version = prev })
}

func TestGetVersion_StripsPrefix(t *testing.T) {
	withVersion(t, "v1.4.2")
	assert.Equal(t, "1.4.2", GetVersion())
}

func TestSemver(t *testing.T) {
	withVersion(t, "2.0.0-rc.1")
	v, err := Semver()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v.Major())
	assert.Equal(t, "rc.1", v.Prerelease())
	assert.False(t, IsRelease())

	withVersion(t, "1.0.0")
	assert.True(t, IsRelease())

	withVersion(t, "not-a-version")
	_, err = Semver()
	require.Error(t, err)
	assert.False(t, IsRelease())
}

func TestDefaultVersionParses(t *testing.T) {
	_, err := Semver()
	require.NoError(t, err)
}

func TestInfo(t *testing.T) {
	withVersion(t, "1.2.3")
	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.True(t, info.Release)
	assert.Contains(t, info.String(), "dataexplorer v1.2.3")
	assert.NotContains(t, info.String(), "development build")
}

func TestInfo_MarksDevelopmentBuild(t *testing.T) {
	withVersion(t, "0.3.0-dev")
	info := Get()
	assert.False(t, info.Release)
	assert.Contains(t, info.String(), "[development build]")
}

func TestUserAgent(t *testing.T) {
	tests := []struct {
		ver  string
		want string
	}{
		{"1.2.3", "dataexplorer/1.2.3"},
		{"v1.2.3", "dataexplorer/1.2.3"},
		{"0.1.0-dev", "dataexplorer/0.1.0-dev (development build)"},
		{"garbage", "dataexplorer/garbage (development build)"},
	}
	for _, tt := range tests {
		t.Run(tt.ver, func(t *testing.T) {
			assert.Equal(t, tt.want, UserAgent(tt.ver))
		})
	}
}
