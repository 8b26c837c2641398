// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/z5labs/embedweave/weaving"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validWeavers = `<Weavers>
  <Costura CreateTemporaryAssemblies='true' IncludeAssemblies='Serilog'>
    <Unmanaged64Assemblies>
      Native64
    </Unmanaged64Assemblies>
  </Costura>
</Weavers>`

func expectedValid() weaving.Configuration {
	cfg := weaving.NewDefaultConfiguration()
	cfg.CreateTemporaryAssemblies = true
	cfg.IncludeAssemblies = []string{"Serilog"}
	cfg.Unmanaged64Assemblies = []string{"Native64"}
	return cfg
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := writeTestFile(t, dir, "valid.xml", validWeavers)
	conflict := writeTestFile(t, dir, "conflict.xml", `<Costura IncludeAssemblies='Bar' ExcludeAssemblies='Foo'/>`)
	badBool := writeTestFile(t, dir, "bool.xml", `<Costura DisableCleanup='foo'/>`)

	t.Run("will succeed", func(t *testing.T) {
		t.Run("if every file is valid", func(t *testing.T) {
			stdout, stderr, err := run(t, "validate", "--log-format", "json", valid, valid)
			require.NoError(t, err)
			require.Equal(t, ExitSuccess, ExitCode(err))
			require.Equal(t, "ok   "+valid+"\nok   "+valid+"\n", stdout)

			lines := strings.Split(strings.TrimSpace(stderr), "\n")
			require.Len(t, lines, 2)
			for _, line := range lines {
				var record map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &record))
				require.Equal(t, "embedding configuration is valid", record["msg"])
				require.Equal(t, valid, record["path"])
				require.Equal(t, []any{"Serilog"}, record["include"])
			}
		})
	})

	t.Run("will fail with ExitInvalidConfig", func(t *testing.T) {
		t.Run("if any file is invalid", func(t *testing.T) {
			stdout, stderr, err := run(t, "validate", "-j", "1", valid, conflict, badBool)
			require.Error(t, err)
			require.Equal(t, ExitInvalidConfig, ExitCode(err))

			require.Equal(t, "ok   "+valid+"\nFAIL "+conflict+"\nFAIL "+badBool+"\n", stdout)
			require.ErrorIs(t, err, weaving.ErrIncludeExcludeConflict)

			var perr weaving.ParseBoolError
			require.ErrorAs(t, err, &perr)
			require.Contains(t, err.Error(), "Could not parse 'DisableCleanup' from 'foo'.")
			require.Contains(t, stderr, "invalid embedding configuration")
		})

		t.Run("if every file is invalid", func(t *testing.T) {
			stdout, _, err := run(t, "validate", "-j", "2", conflict, badBool, conflict)
			require.Equal(t, ExitInvalidConfig, ExitCode(err))
			require.Equal(t, "FAIL "+conflict+"\nFAIL "+badBool+"\nFAIL "+conflict+"\n", stdout)

			joined, ok := err.(interface{ Unwrap() []error })
			require.True(t, ok)
			require.Len(t, joined.Unwrap(), 3)
		})

		t.Run("if a file does not exist", func(t *testing.T) {
			_, _, err := run(t, "validate", filepath.Join(dir, "missing.xml"))
			require.Equal(t, ExitInvalidConfig, ExitCode(err))
		})

		t.Run("if the weaver element is missing", func(t *testing.T) {
			_, _, err := run(t, "validate", "--weaver", "Embed", valid)
			require.Equal(t, ExitInvalidConfig, ExitCode(err))
		})
	})

	t.Run("will fail with ExitUsage", func(t *testing.T) {
		testCases := []struct {
			name string
			args []string
		}{
			{name: "if no file is given", args: []string{"validate"}},
			{name: "if jobs is zero", args: []string{"validate", "--jobs", "0", valid}},
			{name: "if a flag is unknown", args: []string{"validate", "--strict", valid}},
			{name: "if the log level is unknown", args: []string{"validate", "--log-level", "loud", valid}},
			{name: "if the log format is unknown", args: []string{"validate", "--log-format", "xml", valid}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := run(t, tc.args...)
				require.Error(t, err)
				require.Equal(t, ExitUsage, ExitCode(err))
			})
		}
	})
}

func TestLogLevel(t *testing.T) {
	dir := t.TempDir()
	valid := writeTestFile(t, dir, "valid.xml", validWeavers)

	t.Run("will read the level from the environment", func(t *testing.T) {
		t.Setenv(LogLevelEnv, "error")

		_, stderr, err := run(t, "validate", valid)
		require.NoError(t, err)
		require.Empty(t, stderr)
	})

	t.Run("will prefer the flag over the environment", func(t *testing.T) {
		t.Setenv(LogLevelEnv, "error")

		_, stderr, err := run(t, "validate", "--log-level", "info", valid)
		require.NoError(t, err)
		require.Contains(t, stderr, "embedding configuration is valid")
	})

	t.Run("will reject an invalid environment level", func(t *testing.T) {
		t.Setenv(LogLevelEnv, "loud")

		_, _, err := run(t, "validate", valid)
		require.Equal(t, ExitUsage, ExitCode(err))
	})
}

func TestShow(t *testing.T) {
	dir := t.TempDir()
	valid := writeTestFile(t, dir, "valid.xml", validWeavers)

	t.Run("will print json by default", func(t *testing.T) {
		stdout, _, err := run(t, "show", valid)
		require.NoError(t, err)

		var cfg weaving.Configuration
		require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
		if diff := cmp.Diff(expectedValid(), cfg); diff != "" {
			t.Errorf("unexpected configuration (-want +got):\n%s", diff)
		}
		require.Contains(t, stdout, `"IncludeDebugSymbols": true`)
	})

	t.Run("will print yaml", func(t *testing.T) {
		stdout, _, err := run(t, "show", "--format", "yaml", valid)
		require.NoError(t, err)

		var cfg weaving.Configuration
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
		if diff := cmp.Diff(expectedValid(), cfg); diff != "" {
			t.Errorf("unexpected configuration (-want +got):\n%s", diff)
		}
	})

	t.Run("will write toml to a file", func(t *testing.T) {
		out := filepath.Join(dir, "embedding.toml")

		stdout, _, err := run(t, "show", "-f", "toml", "-o", out, valid)
		require.NoError(t, err)
		require.Empty(t, stdout)

		var cfg weaving.Configuration
		_, err = toml.DecodeFile(out, &cfg)
		require.NoError(t, err)
		if diff := cmp.Diff(expectedValid(), cfg); diff != "" {
			t.Errorf("unexpected configuration (-want +got):\n%s", diff)
		}
	})

	t.Run("will keep the original message of a conflict", func(t *testing.T) {
		conflict := writeTestFile(t, dir, "conflict.xml", `<Weavers><Costura IncludeAssemblies='Bar' ExcludeAssemblies='Foo'/></Weavers>`)

		stdout, _, err := run(t, "show", conflict)
		require.Empty(t, stdout)
		require.Equal(t, ExitInvalidConfig, ExitCode(err))
		require.Contains(t, err.Error(), "Either configure IncludeAssemblies OR ExcludeAssemblies, not both.")
	})

	t.Run("will reject an unknown format", func(t *testing.T) {
		_, _, err := run(t, "show", "--format", "ini", valid)
		require.Equal(t, ExitUsage, ExitCode(err))
	})

	t.Run("will require exactly one file", func(t *testing.T) {
		_, _, err := run(t, "show", valid, valid)
		require.Equal(t, ExitUsage, ExitCode(err))
	})
}

func TestRootCommand(t *testing.T) {
	t.Run("will fail with ExitUsage", func(t *testing.T) {
		testCases := []struct {
			name string
			args []string
		}{
			{name: "if the command is unknown", args: []string{"valdate", "FodyWeavers.xml"}},
			{name: "if no command is given", args: []string{}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := run(t, tc.args...)
				require.Error(t, err)
				require.Equal(t, ExitUsage, ExitCode(err))
			})
		}
	})

	t.Run("will print help", func(t *testing.T) {
		stdout, _, err := run(t, "--help")
		require.NoError(t, err)
		require.Contains(t, stdout, "validate")
		require.Contains(t, stdout, "show")
	})
}

func TestExitCode(t *testing.T) {
	require.Equal(t, ExitSuccess, ExitCode(nil))
	require.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
	require.Equal(t, ExitUsage, ExitCode(UsageError(errors.New("bad flag"))))
	require.Equal(t, "bad flag", UsageError(errors.New("bad flag")).Error())
}
