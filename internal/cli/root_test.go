package cli_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/api/apitest"
	"github.com/rshade/dataexplorer/internal/cli"
	"github.com/rshade/dataexplorer/internal/config"
)

// isolate points HOME and the working directory at temp dirs and clears
// DATAEXPLORER_* variables so no local config leaks into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{
		config.EnvAPIURL, config.EnvAPITimeout, config.EnvLogLevel, config.EnvPageSize, config.EnvProjectDir,
	} {
		t.Setenv(name, "")
	}
	t.Chdir(t.TempDir())
}

// execute runs the root command against srv and returns stdout and stderr.
func execute(t *testing.T, srv *apitest.Server, args ...string) (string, string, error) {
	t.Helper()
	isolate(t)

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("1.2.3")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if srv != nil {
		args = append([]string{"--api-url", srv.URL}, args...)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Metadata(t *testing.T) {
	cmd := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "dataexplorer", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)

	for _, name := range []string{"api-url", "timeout", "config", "debug"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"browse", "list", "departments", "roles", "seed", "health", "cache", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PrintsFirstPageWhenNotATerminal(t *testing.T) {
	srv := apitest.NewServer(t)

	out, _, err := execute(t, srv)
	require.NoError(t, err)

	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, srv.Users()[0].Email)
	assert.Contains(t, out, "Showing 1 to 10 of 57 results (page 1 of 6)")
	assert.Equal(t, 1, srv.Hits("/users/"))
}

func TestBrowseCmd_Plain(t *testing.T) {
	srv := apitest.NewServer(t)

	out, _, err := execute(t, srv, "browse", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 1 to 10 of 57 results")
}

func TestBrowseCmd_InvalidSeedCount(t *testing.T) {
	srv := apitest.NewServer(t)

	_, _, err := execute(t, srv, "browse", "--seed-count", "0")
	require.ErrorIs(t, err, api.ErrInvalidSeedCount)
	assert.Zero(t, srv.Hits("/users/"))
}

func TestRootCmd_FlagOverrides(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "non-http api url",
			args:    []string{"--api-url", "ftp://example.com", "health"},
			wantErr: config.ErrInvalidAPIURL,
		},
		{
			name:    "unparseable timeout",
			args:    []string{"--timeout", "soon", "health"},
			wantMsg: "--timeout",
		},
		{
			name:    "zero timeout",
			args:    []string{"--timeout", "0", "health"},
			wantErr: config.ErrInvalidTimeout,
		},
		{
			name:    "missing explicit config",
			args:    []string{"--config", "/nonexistent/config.yaml", "health"},
			wantMsg: "loading config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, nil, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRootCmd_EnvPageSize(t *testing.T) {
	srv := apitest.NewServer(t)
	isolate(t)
	t.Setenv(config.EnvPageSize, "25")

	var out bytes.Buffer
	cmd := cli.NewRootCmd("1.2.3")
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--api-url", srv.URL, "list"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Showing 1 to 25 of 57 results (page 1 of 3)")
}

func TestRootCmd_UnreachableAPI(t *testing.T) {
	srv := apitest.NewServer(t)
	url := srv.URL
	srv.Close()

	_, _, err := execute(t, nil, "--api-url", url, "--timeout", "2s", "health")
	require.Error(t, err)

	var netErr *api.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, strings.HasPrefix(api.UserMessage(err), "Unable to reach the data API"))
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dataexplorer v")

	out, _, err = execute(t, nil, "version", "--short")
	require.NoError(t, err)
	assert.NotContains(t, out, "dataexplorer")
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestRootCmd_UserAgent(t *testing.T) {
	srv := apitest.NewServer(t)

	_, _, err := execute(t, srv, "health")
	require.NoError(t, err)

	reqs := srv.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "dataexplorer/1.2.3", reqs[0].UserAgent)
}

func TestRootCmd_UserAgentMarksDevelopmentBuild(t *testing.T) {
	isolate(t)
	srv := apitest.NewServer(t)

	cmd := cli.NewRootCmd("0.2.0-dev")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--api-url", srv.URL, "health"})
	require.NoError(t, cmd.Execute())

	reqs := srv.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "dataexplorer/0.2.0-dev (development build)", reqs[0].UserAgent)
}

func TestVersionCmd_IgnoresBrokenConfig(t *testing.T) {
	_, _, err := execute(t, nil, "--config", "/nonexistent/config.yaml", "version")
	require.NoError(t, err)
}

func TestHealthCmd(t *testing.T) {
	srv := apitest.NewServer(t)

	out, _, err := execute(t, srv, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "healthy")
}

func TestHealthCmd_Unhealthy(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Fail("/health/", 200, `{"status":"degraded"}`)

	_, _, err := execute(t, srv, "health")
	require.ErrorIs(t, err, cli.ErrUnhealthy)
	assert.Contains(t, err.Error(), "degraded")
}

func TestCacheClearCmd(t *testing.T) {
	srv := apitest.NewServer(t)

	out, _, err := execute(t, srv, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Cache cleared\n", out)
	assert.Equal(t, 1, srv.Hits("/cache/"))
}

func TestOptionsCmds(t *testing.T) {
	srv := apitest.NewServer(t)

	out, _, err := execute(t, srv, "departments")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Engineering", "Finance", "HR", "IT", "Marketing", "Operations", "Sales"},
		strings.Fields(out))

	out, _, err = execute(t, srv, "roles", "--output", "json")
	require.NoError(t, err)
	var roles []string
	require.NoError(t, json.Unmarshal([]byte(out), &roles))
	assert.Equal(t, []string{"Director", "Intern", "Junior", "Lead", "Manager", "Mid-level", "Senior"}, roles)
}

func TestOptionsCmd_Failure(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.FailWithDetail("/roles/", 503, "Roles are unavailable")

	_, _, err := execute(t, srv, "roles")
	require.Error(t, err)
	assert.Equal(t, "Roles are unavailable", api.UserMessage(err))
}
