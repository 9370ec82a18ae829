package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daviddao/chronology/pkg/clock"
	"github.com/daviddao/chronology/pkg/store"
)

// nopClose keeps the shared test store open across commands.
type nopClose struct{ store.StoreInterface }

func (nopClose) Close() error { return nil }

type testApp struct {
	*app
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	t.Setenv("CHRONO_DB", dbPath)
	t.Setenv("CHRONO_CALENDAR", "ISO")
	t.Setenv("CHRONO_ZONE", "UTC")
	t.Setenv("CHRONO_DEBUG", "false")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	a.cfg = Config{DB: dbPath, Calendar: "ISO", Zone: "UTC"}
	a.clock = clock.Fixed(1675123200000)
	a.openStore = func(string) (store.StoreInterface, error) { return nopClose{s}, nil }
	return &testApp{app: a, out: &out, errOut: &errOut}
}

// run executes one command line on a fresh command tree.
func (ta *testApp) run(args ...string) (string, error) {
	ta.out.Reset()
	ta.jsonOut = false
	root := newRootCmd(ta.app)
	root.SetArgs(args)
	err := root.Execute()
	return ta.out.String(), err
}

func (ta *testApp) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := ta.run(args...)
	if err != nil {
		t.Fatalf("chrono %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// --- parseInstant tests ---

func TestParseInstant(t *testing.T) {
	ta := newTestApp(t)
	tests := []struct {
		in   string
		want int64
	}{
		{"now", 1675123200000},
		{"1675123200000", 1675123200000},
		{"-1", -1},
		{"2023-01-31", 1675123200000},
		{"2023-01-31T10:00", 1675159200000},
		{"2023-01-31T10:00:00.5", 1675159200500},
		{"2023-01-31T10:00:00+01:00", 1675155600000},
		{"2023-01-31T10:00:00Z", 1675159200000},
	}
	for _, tt := range tests {
		d, err := ta.parseInstant(tt.in)
		if err != nil {
			t.Fatalf("parseInstant(%q): %v", tt.in, err)
		}
		if d.Millis() != tt.want {
			t.Fatalf("parseInstant(%q): got %d, want %d", tt.in, d.Millis(), tt.want)
		}
	}
}

func TestParseInstant_Rejects(t *testing.T) {
	ta := newTestApp(t)
	for _, in := range []string{"yesterday", "2023-02-30", "2023-1-31", "@missing"} {
		if _, err := ta.parseInstant(in); err == nil {
			t.Fatalf("parseInstant(%q): expected error", in)
		}
	}
}

func TestParseFieldType_IgnoresCase(t *testing.T) {
	got, err := parseFieldType("MONTHOFYEAR")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name() != "monthOfYear" {
		t.Fatalf("got %s, want monthOfYear", got.Name())
	}
	if _, err := parseFieldType("fortnight"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

// --- config tests ---

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("CHRONO_CALENDAR", "Julian")
	t.Setenv("CHRONO_ZONE", "Europe/Paris")
	t.Setenv("CHRONO_DEBUG", "true")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Calendar != "Julian" || cfg.Zone != "Europe/Paris" || !cfg.Debug {
		t.Fatalf("loadConfig: got %+v", cfg)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	ta := newTestApp(t)
	out := ta.mustRun(t, "--zone", "America/New_York", "add", "2023-01-31T10:00", "PT0S")
	if out != "2023-01-31T10:00:00.000-05:00\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDebugLogsToStderr(t *testing.T) {
	ta := newTestApp(t)
	ta.mustRun(t, "--debug", "add", "0", "PT1S")
	if !strings.Contains(ta.errOut.String(), "msg=config") {
		t.Fatalf("expected config debug line, got %q", ta.errOut.String())
	}
}

// --- field command tests ---

func TestShow(t *testing.T) {
	ta := newTestApp(t)
	out := ta.mustRun(t, "show", "1675123200000")
	for _, want := range []string{
		"2023-01-31T00:00:00.000Z",
		"chronology  ISO[UTC]",
		"millis      1,675,123,200,000",
		"dayOfWeek",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestGet(t *testing.T) {
	ta := newTestApp(t)
	out := ta.mustRun(t, "get", "2023-01-31", "dayOfMonth")
	if out != "dayOfMonth = 31  [1..31], 0 ms into the unit\n" {
		t.Fatalf("got %q", out)
	}
}

func TestGet_JSON(t *testing.T) {
	ta := newTestApp(t)
	out := ta.mustRun(t, "--json", "get", "2024-02-10", "dayOfMonth")
	var got struct {
		Field string `json:"field"`
		Value int    `json:"value"`
		Max   int    `json:"max"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got.Field != "dayOfMonth" || got.Value != 10 || got.Max != 29 {
		t.Fatalf("got %+v", got)
	}
}

func TestGet_UnknownField(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.run("get", "0", "fortnight")
	if err == nil || !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestSet(t *testing.T) {
	ta := newTestApp(t)
	out := ta.mustRun(t, "set", "2023-01-31T08:15", "monthOfYear", "2")
	if out != "2023-02-28T08:15:00.000Z\n" {
		t.Fatalf("got %q", out)
	}
}

func TestSet_IntoGapFails(t *testing.T) {
	ta := newTestApp(t)
	if _, err := ta.run("-z", "America/New_York", "set", "2023-03-12T01:30", "hourOfDay", "2"); err == nil {
		t.Fatal("expected error setting a wall time inside the spring-forward gap")
	}
}

func TestRoll(t *testing.T) {
	ta := newTestApp(t)
	if out := ta.mustRun(t, "roll", "2023-01-31", "monthOfYear", "13"); out != "2024-02-29T00:00:00.000Z\n" {
		t.Fatalf("roll: got %q", out)
	}
	if out := ta.mustRun(t, "roll", "--wrap", "2023-01-31", "monthOfYear", "11"); out != "2023-12-31T00:00:00.000Z\n" {
		t.Fatalf("roll --wrap: got %q", out)
	}
}

func TestRound(t *testing.T) {
	ta := newTestApp(t)
	if out := ta.mustRun(t, "round", "2023-01-31T17:45:12.345", "hourOfDay"); out != "2023-01-31T17:00:00.000Z\n" {
		t.Fatalf("floor: got %q", out)
	}
	if out := ta.mustRun(t, "round", "--mode", "ceiling", "2023-01-31T17:45:12.345", "hourOfDay"); out != "2023-01-31T18:00:00.000Z\n" {
		t.Fatalf("ceiling: got %q", out)
	}
	if _, err := ta.run("round", "--mode", "sideways", "0", "hourOfDay"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestZoneTransitions(t *testing.T) {
	ta := newTestApp(t)
	out := ta.mustRun(t, "-z", "America/New_York", "zone", "2023-03-01")
	want := "America/New_York -05:00 at 2023-03-01T00:00:00.000-05:00\n" +
		"  -> -04:00 from 2023-03-12T03:00:00.000-04:00\n" +
		"  -> -05:00 from 2023-11-05T01:00:00.000-05:00\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

// --- period command tests ---

func TestAdd_MonthEndClamps(t *testing.T) {
	ta := newTestApp(t)
	if out := ta.mustRun(t, "add", "2023-01-31", "P1M"); out != "2023-02-28T00:00:00.000Z\n" {
		t.Fatalf("got %q", out)
	}
	if out := ta.mustRun(t, "add", "--times", "-2", "2023-01-31", "P1D"); out != "2023-01-29T00:00:00.000Z\n" {
		t.Fatalf("--times -2: got %q", out)
	}
}

func TestBetween(t *testing.T) {
	ta := newTestApp(t)
	out := ta.mustRun(t, "between", "2023-01-31", "2023-03-01")
	if !strings.HasPrefix(out, "P1M1D\n") || !strings.Contains(out, "2,505,600,000 ms") {
		t.Fatalf("got %q", out)
	}
	out = ta.mustRun(t, "between", "-t", "days", "2023-01-31", "2023-03-01")
	if !strings.HasPrefix(out, "P29D\n") {
		t.Fatalf("--type days: got %q", out)
	}
	if _, err := ta.run("between", "-t", "Fortnights", "0", "1"); err == nil {
		t.Fatal("expected error for unknown period type")
	}
}

func TestNormalize(t *testing.T) {
	ta := newTestApp(t)
	if out := ta.mustRun(t, "normalize", "PT25H"); out != "P1DT1H  (90,000,000 ms)\n" {
		t.Fatalf("got %q", out)
	}
	if _, err := ta.run("normalize", "P1M"); err == nil {
		t.Fatal("expected error normalizing an imprecise period")
	}
}

// --- store command tests ---

func TestSaveAndReuseLabel(t *testing.T) {
	ta := newTestApp(t)
	if out := ta.mustRun(t, "save", "launch", "2023-01-31T10:00"); out != "saved launch = 2023-01-31T10:00:00.000Z\n" {
		t.Fatalf("save: got %q", out)
	}
	if out := ta.mustRun(t, "add", "@launch", "PT2H"); out != "2023-01-31T12:00:00.000Z\n" {
		t.Fatalf("add @launch: got %q", out)
	}
	if out := ta.mustRun(t, "list"); !strings.Contains(out, "launch") || !strings.Contains(out, "stamps (1)") {
		t.Fatalf("list: got %q", out)
	}
	ta.mustRun(t, "rm", "launch")
	_, err := ta.run("rm", "launch")
	if err == nil || !strings.Contains(err.Error(), `no saved instant named "launch"`) {
		t.Fatalf("second rm: got %v", err)
	}
}

func TestSavedStampKeepsItsZone(t *testing.T) {
	ta := newTestApp(t)
	ta.mustRun(t, "-z", "Europe/London", "save", "tea", "2023-07-01T16:00")
	// Read back under a different configured zone.
	out := ta.mustRun(t, "-z", "Asia/Tokyo", "add", "@tea", "PT0S")
	if out != "2023-07-01T16:00:00.000+01:00\n" {
		t.Fatalf("got %q", out)
	}
}

func TestSavePeriod_ReportsEqualValues(t *testing.T) {
	ta := newTestApp(t)
	ta.mustRun(t, "save-period", "a", "P1D")
	out := ta.mustRun(t, "save-period", "b", "P1D")
	if !strings.Contains(out, "same value as [a]") {
		t.Fatalf("got %q", out)
	}
	// A different type is a different value.
	out = ta.mustRun(t, "save-period", "-t", "Days", "c", "P1D")
	if strings.Contains(out, "same value") {
		t.Fatalf("typed period should not match: %q", out)
	}
	list := ta.mustRun(t, "list")
	if !strings.Contains(list, "periods (3)") {
		t.Fatalf("list: got %q", list)
	}
	ta.mustRun(t, "rm", "--period", "c")
}

func TestDiff(t *testing.T) {
	ta := newTestApp(t)
	if out := ta.mustRun(t, "diff", "2023-01-31", "2023-03-30", "monthOfYear"); out != "1\n" {
		t.Fatalf("months: got %q", out)
	}
	if out := ta.mustRun(t, "diff", "2020-03-01", "2023-02-28", "year"); out != "2\n" {
		t.Fatalf("years: got %q", out)
	}
	if out := ta.mustRun(t, "diff", "2023-01-01", "2023-12-31T23:59", "secondOfMinute"); out != "31,535,940\n" {
		t.Fatalf("seconds: got %q", out)
	}
}
