package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommandPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestAgendaRendersDaySlots(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	stdout, _, err := executeCLI(t, home, "agenda", "--day", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Run Sheet")
	assert.Contains(t, stdout, "day 1")
	assert.Contains(t, stdout, "slots: 2")
	assert.Contains(t, stdout, "Opening")
	assert.Contains(t, stdout, "Keynote")
	assert.Contains(t, stdout, "09.00 - 10.00")
}

func TestAgendaJSONOutput(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	stdout, _, err := executeCLI(t, home, "agenda", "--day", "1", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Slots\"")
	assert.Contains(t, stdout, "\"Opening\"")
}

func TestAgendaRejectsDayOutsideEvent(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	_, _, err := executeCLI(t, home, "agenda", "--day", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the event span")
}

func TestAgendaAllDaysGroupsByDate(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	stdout, _, err := executeCLI(t, home, "agenda", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "day 1")
	assert.Contains(t, stdout, "day 2")
	assert.Contains(t, stdout, "Opening")
	assert.Contains(t, stdout, "Retro")
}

func TestEndRecordsSessionAndPersistsLedger(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	stdout, _, err := executeCLI(t, home, "end", "slot-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ended \"Opening\"")
	assert.Contains(t, stdout, "AP")

	data, err := os.ReadFile(filepath.Join(home, ".runsheet", "ledger.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "slot-1")
}

func TestEndShowsSpinnerMessage(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{endDelay: 200 * time.Millisecond})
	defer server.Close()
	home := testHome(t, server.URL)

	_, stderr, err := executeCLI(t, home, "end", "slot-1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Ending session \"Opening\"")
}

func TestEndRollsBackWhenBackendRejects(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{endStatus: http.StatusInternalServerError})
	defer server.Close()
	home := testHome(t, server.URL)

	_, _, err := executeCLI(t, home, "end", "slot-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agenda service unavailable")

	// The rejected end must leave no trace behind.
	_, statErr := os.Stat(filepath.Join(home, ".runsheet", "ledger.toml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEndUnknownSlot(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	_, _, err := executeCLI(t, home, "end", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot not found")
}

func TestUndoRemovesRecordedEnd(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	_, _, err := executeCLI(t, home, "end", "slot-1")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "undo", "slot-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed end record for slot slot-1")

	data, err := os.ReadFile(filepath.Join(home, ".runsheet", "ledger.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "slot-1")
}

func TestUndoWithoutRecordedEnd(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	_, _, err := executeCLI(t, home, "undo", "slot-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no session end recorded")
}

func TestNowJSONOutput(t *testing.T) {
	server := newAgendaBackend(t, agendaBackendConfig{})
	defer server.Close()
	home := testHome(t, server.URL)

	stdout, _, err := executeCLI(t, home, "now", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Slots\"")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func testHome(t *testing.T, backendURL string) string {
	t.Helper()
	t.Setenv("RUNSHEET_API_BASE_URL", backendURL)

	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))
	return home
}

func writeConfigFixture(home string) error {
	configDir := filepath.Join(home, ".runsheet")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := `[event]
id = "evt-1"
start_date = "2025-07-26"
days = 2
timezone = "UTC"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}

type agendaBackendConfig struct {
	endStatus int
	endDelay  time.Duration
}

// newAgendaBackend serves a fixed two-day agenda. Day selection happens
// client-side by date, so the list handler returns everything.
func newAgendaBackend(t *testing.T, cfg agendaBackendConfig) *httptest.Server {
	t.Helper()

	slots := `[
		{"id":"slot-1","eventId":"evt-1","start":"2025-07-26T09:00:00Z","end":"2025-07-26T10:00:00Z","activity":"Opening","personincharge":"Mai"},
		{"id":"slot-2","eventId":"evt-1","start":"2025-07-26T10:00:00Z","end":"2025-07-26T11:00:00Z","activity":"Keynote","personincharge":"Arthit"},
		{"id":"slot-3","eventId":"evt-1","start":"2025-07-27T09:00:00Z","end":"2025-07-27T10:00:00Z","activity":"Retro","personincharge":"Mai"}
	]`

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodGet && r.URL.Path == "/api/agenda" {
			_, _ = fmt.Fprint(w, slots)
			return
		}

		if r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/api/agenda/") {
			if cfg.endDelay > 0 {
				time.Sleep(cfg.endDelay)
			}
			if cfg.endStatus != 0 {
				w.WriteHeader(cfg.endStatus)
				return
			}

			slotID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/agenda/"), "/end")
			_, _ = fmt.Fprintf(w, `{"id":"%s","eventId":"evt-1","start":"2025-07-26T09:00:00Z","end":"2025-07-26T10:00:00Z","activity":"Opening","actualEndTime":"%s"}`,
				slotID, time.Now().UTC().Format(time.RFC3339))
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
}
