package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/testit/config"
	"github.com/s0up4200/testit/testit"
)

type seenRequest struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	Body        string
}

// fakeTestIT serves canned answers per "METHOD path" and records requests
type fakeTestIT struct {
	*httptest.Server

	mu      sync.Mutex
	seen    []seenRequest
	answers map[string]string
}

func newFakeTestIT(t *testing.T, answers map[string]string) *fakeTestIT {
	t.Helper()
	f := &fakeTestIT{answers: answers}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.seen = append(f.seen, seenRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(body),
		})
		f.mu.Unlock()

		if r.Header.Get("Authorization") != "PrivateToken secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		answer, ok := f.answers[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"title":"Not Found"}`))
			return
		}
		w.Write([]byte(answer))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeTestIT) requests() []seenRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]seenRequest(nil), f.seen...)
}

func writeConfig(t *testing.T, url string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
testit:
  url: ` + url + `
  token: secret
logging:
  level: error
filter:
  presets:
    flaky: isFlaky
concurrency: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const autoTestsJSON = `[
  {"id":"a1","name":"Login works","isFlaky":true,"labels":[{"name":"smoke"}]},
  {"id":"a2","name":"Logout works","isFlaky":false,"labels":[{"name":"smoke"}]},
  {"id":"a3","name":"Checkout","isFlaky":true,"labels":[]}
]`

func TestAutoTestsList(t *testing.T) {
	srv := newFakeTestIT(t, map[string]string{"GET /api/v2/autoTests": autoTestsJSON})
	cfgPath := writeConfig(t, srv.URL)

	out, err := runCLI(t, "--config", cfgPath, "autotests", "list",
		"--project-id", "P1", "--take", "50", "--label", "smoke", "--param", "includeSteps=true",
		"--preset", "flaky", "--filter", `hasLabel("smoke")`)
	require.NoError(t, err)

	reqs := srv.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "projectId=P1&labels=smoke&includeSteps=true&Take=50", reqs[0].Query)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0]["id"])
}

func TestAutoTestsListErrors(t *testing.T) {
	srv := newFakeTestIT(t, map[string]string{"GET /api/v2/autoTests": autoTestsJSON})
	cfgPath := writeConfig(t, srv.URL)

	_, err := runCLI(t, "--config", cfgPath, "autotests", "list", "--preset", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter not found")

	_, err = runCLI(t, "--config", cfgPath, "autotests", "list", "--filter", "isFlaky and (")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter")

	_, err = runCLI(t, "--config", cfgPath, "autotests", "list", "--param", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")

	assert.Empty(t, srv.requests(), "invalid input never reaches the server")
}

func TestProjectsListYAML(t *testing.T) {
	srv := newFakeTestIT(t, map[string]string{
		"GET /api/v2/projects": `[{"id":"p1","name":"Demo","isDeleted":false}]`,
	})
	cfgPath := writeConfig(t, srv.URL)

	out, err := runCLI(t, "--config", cfgPath, "-o", "yaml", "projects", "list", "--name", "Demo", "--deleted=false")
	require.NoError(t, err)

	reqs := srv.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "isDeleted=false&projectName=Demo", reqs[0].Query)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Demo", got[0]["name"])
}

func TestWorkItemsGet(t *testing.T) {
	srv := newFakeTestIT(t, map[string]string{
		"GET /api/v2/workItems/w1": `{"id":"w1","name":"First"}`,
		"GET /api/v2/workItems/w2": `{"id":"w2","name":"Second"}`,
		"GET /api/v2/workItems/w3": `{"id":"w3","name":"Third"}`,
	})
	cfgPath := writeConfig(t, srv.URL)

	out, err := runCLI(t, "--config", cfgPath, "workitems", "get", "w3", "w1", "w2", "--version", "2")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "w3", got[0]["id"])
	assert.Equal(t, "w1", got[1]["id"])
	assert.Equal(t, "w2", got[2]["id"])

	for _, r := range srv.requests() {
		assert.Equal(t, "versionNumber=2", r.Query)
	}

	_, err = runCLI(t, "--config", cfgPath, "workitems", "get", "w1", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work item missing")
}

func TestAttachments(t *testing.T) {
	png := "\x89PNG\r\n\x1a\n-binary-"
	srv := newFakeTestIT(t, map[string]string{
		"POST /api/v2/attachments":                  `{"id":"att-1"}`,
		"POST /api/v2/testResults/r1/attachments":   `{"id":"att-2"}`,
		"GET /api/v2/testResults/r1/attachments/a1": png,
	})
	cfgPath := writeConfig(t, srv.URL)

	file := filepath.Join(t.TempDir(), "screen.png")
	require.NoError(t, os.WriteFile(file, []byte("image"), 0o600))

	t.Run("upload standalone", func(t *testing.T) {
		out, err := runCLI(t, "--config", cfgPath, "attachments", "upload", file)
		require.NoError(t, err)
		assert.Contains(t, out, "att-1")
	})

	t.Run("upload to test result", func(t *testing.T) {
		out, err := runCLI(t, "--config", cfgPath, "attachments", "upload", file, "--test-result", "r1")
		require.NoError(t, err)
		assert.Contains(t, out, "att-2")

		reqs := srv.requests()
		last := reqs[len(reqs)-1]
		assert.True(t, strings.HasPrefix(last.ContentType, "multipart/form-data"))
		assert.Contains(t, last.Body, "screen.png")
	})

	t.Run("upload missing file", func(t *testing.T) {
		before := len(srv.requests())
		_, err := runCLI(t, "--config", cfgPath, "attachments", "upload", filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, testit.ErrFileNotFound)
		assert.Len(t, srv.requests(), before)
	})

	t.Run("download to file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.png")
		_, err := runCLI(t, "--config", cfgPath, "attachments", "download", "r1", "a1",
			"--width", "64", "--resize", "Crop", "--out", target)
		require.NoError(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, png, string(data))

		reqs := srv.requests()
		assert.Equal(t, "Width=64&ResizeOption=Crop", reqs[len(reqs)-1].Query)
	})

	t.Run("download rejects resize mode", func(t *testing.T) {
		_, err := runCLI(t, "--config", cfgPath, "attachments", "download", "r1", "a1", "--resize", "Stretch")
		assert.ErrorIs(t, err, testit.ErrUnsupportedValue)
	})
}

func TestTestRuns(t *testing.T) {
	srv := newFakeTestIT(t, map[string]string{
		"POST /api/v2/testRuns/tr1/start":    ``,
		"POST /api/v2/testRuns/tr1/stop":     ``,
		"POST /api/v2/testRuns/tr1/complete": ``,
	})
	cfgPath := writeConfig(t, srv.URL)

	for _, action := range []string{"start", "stop", "complete"} {
		out, err := runCLI(t, "--config", cfgPath, "testruns", action, "tr1")
		require.NoError(t, err)
		assert.Contains(t, out, "Test run tr1: "+action)
	}

	reqs := srv.requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "/api/v2/testRuns/tr1/complete", reqs[2].Path)
	assert.Equal(t, "null", reqs[2].Body)

	_, err := runCLI(t, "--config", cfgPath, "testruns", "start", "unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start test run unknown")
}

func TestCall(t *testing.T) {
	srv := newFakeTestIT(t, map[string]string{
		"GET /api/v2/projects":        `[{"id":"p1"}]`,
		"POST /api/v2/sections/rename": `{"id":"s1","name":"Renamed"}`,
	})
	cfgPath := writeConfig(t, srv.URL)

	out, err := runCLI(t, "--config", cfgPath, "call", "get", "/api/v2/projects", "--query", "?Take=5&Skip=1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1"}]`, out)

	bodyFile := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(bodyFile, []byte(`{"id":"s1","name":"Renamed"}`), 0o600))
	out, err = runCLI(t, "--config", cfgPath, "call", "POST", "/api/v2/sections/rename", "--body", "@"+bodyFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed")

	reqs := srv.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "Take=5&Skip=1", reqs[0].Query)
	assert.JSONEq(t, `{"id":"s1","name":"Renamed"}`, reqs[1].Body)
	assert.Equal(t, "application/json", reqs[1].ContentType)

	out, err = runCLI(t, "--config", cfgPath, "call", "GET", "/api/v2/nothing")
	var apiErr *testit.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Contains(t, out, "Not Found")

	_, err = runCLI(t, "--config", cfgPath, "call", "PATCH", "/api/v2/projects")
	assert.ErrorIs(t, err, testit.ErrUnsupportedMethod)

	_, err = runCLI(t, "--config", cfgPath, "call", "POST", "/api/v2/projects", "--body", "{not json")
	assert.ErrorIs(t, err, testit.ErrInvalidBody)
}

func TestTestCommand(t *testing.T) {
	srv := newFakeTestIT(t, map[string]string{"GET /api/v2/projects": `[]`})

	out, err := runCLI(t, "--config", writeConfig(t, srv.URL), "test")
	require.NoError(t, err)
	assert.Contains(t, out, "Connection successful")

	badToken := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(badToken, []byte("testit:\n  url: "+srv.URL+"\n  token: wrong\n"), 0o600))
	_, err = runCLI(t, "--config", badToken, "test")
	var apiErr *testit.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
}

func TestConfigErrors(t *testing.T) {
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")

	_, err = runCLI(t, "--config", writeConfig(t, "http://localhost"), "-o", "xml", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestCatalogCommands(t *testing.T) {
	// No config is needed to browse the catalogue
	out, err := runCLI(t, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "WorkItemPostModel\n")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 31)

	out, err = runCLI(t, "catalog", "show", "WorkItemPostModel")
	require.NoError(t, err)
	assert.Contains(t, out, `"entityTypeName"`)
	assert.Contains(t, out, "priority: Lowest, Low, Medium, High, Highest")

	out, err = runCLI(t, "-o", "yaml", "catalog", "show", "SectionRenameModel")
	require.NoError(t, err)
	var shape map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &shape))
	assert.Contains(t, shape, "name")

	out, err = runCLI(t, "catalog", "show", "CustomAttributeModel", "--enums")
	require.NoError(t, err)
	var enums map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &enums))
	assert.Equal(t, []string{"string", "datetime", "options", "user", "multipleOptions"}, enums["type"])

	_, err = runCLI(t, "catalog", "show", "Nope")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2024-01-01")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "testit 1.2.3 (commit abc123, built 2024-01-01)\n", out)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"a=1", "b=x=y", "a=2", "a=3", "c="})
	require.NoError(t, err)
	assert.Equal(t, testit.Params{
		"a": []string{"1", "2", "3"},
		"b": "x=y",
		"c": "",
	}, params)

	_, err = parseParams([]string{"=v"})
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"}, io.Discard)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}

	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	logger.Info().Str("k", "v").Msg("hello")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])

	buf.Reset()
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true}, &buf)
	logger.Info().Msg("plain")
	assert.NotContains(t, buf.String(), "\x1b[", "no color when not writing to a terminal")
}
