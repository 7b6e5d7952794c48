package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"acme-insurance/tarifa/pkg/audit"
	"acme-insurance/tarifa/pkg/cli"
)

const validInput = `{"holder": "OTHER", "occasionalDriver": "SI", "prevInsurance_years": "3", "prevInsurance_exists": "NO"}`

const expectedXML = `<?xml version="1.0" encoding="UTF-8"?>
<TarificacionThirdPartyRequest>
  <Datos>
    <DatosGenerales>
      <CondPpalEsTomador>N</CondPpalEsTomador>
      <ConductorUnico>N</ConductorUnico>
      <FecCot>2024-03-07T09:05:03</FecCot>
      <AnosSegAnte>3</AnosSegAnte>
      <NroCondOca>1</NroCondOca>
      <SeguroEnVigor>N</SeguroEnVigor>
    </DatosGenerales>
  </Datos>
</TarificacionThirdPartyRequest>
`

// setup points the CLI at a fresh storage root with a fixed clock and
// returns the root.
func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("TARIFA_STORAGE_ROOT", dir)
	t.Setenv("TARIFA_CLOCK_TIMEZONE", "UTC")
	t.Setenv("TARIFA_AUDIT_ENABLED", "false")

	orig := now
	now = func() time.Time { return time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC) }
	t.Cleanup(func() { now = orig })

	return dir
}

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// runCLI executes the root command with fresh flag values.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cfgFile, verbose = "", false
	generateFlags.stdout = false
	auditFlags.limit, auditFlags.offset = 20, 0
	auditFlags.outcome, auditFlags.format = "", "text"
	auditFlags.since, auditFlags.olderThan, auditFlags.maxRecords = 0, 0, 0

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerate_Success(t *testing.T) {
	dir := setup(t)
	writeInput(t, dir, "applicant.json", validInput)

	stdout, stderr, err := runCLI(t, "generate", "applicant.json")
	if err != nil {
		t.Fatalf("generate failed: %v (stderr: %s)", err, stderr)
	}
	if cli.ExitCode(err) != 0 {
		t.Errorf("exit code = %d, want 0", cli.ExitCode(err))
	}

	want := "Insurance request XML generated successfully at: insurance_request.xml\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "insurance_request.xml"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if diff := cmp.Diff(expectedXML, string(data)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_ExplicitOutput(t *testing.T) {
	dir := setup(t)
	writeInput(t, dir, "applicant.json", validInput)

	stdout, _, err := runCLI(t, "generate", "applicant.json", "quote.xml")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.HasSuffix(stdout, "at: quote.xml\n") {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "quote.xml")); err != nil {
		t.Errorf("quote.xml not written: %v", err)
	}
}

func TestGenerate_Stdout(t *testing.T) {
	dir := setup(t)
	writeInput(t, dir, "applicant.json", validInput)

	stdout, _, err := runCLI(t, "generate", "applicant.json", "--stdout")
	if err != nil {
		t.Fatalf("generate --stdout failed: %v", err)
	}
	if diff := cmp.Diff(expectedXML, stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, "insurance_request.xml")); !errors.Is(err, os.ErrNotExist) {
		t.Error("--stdout must not write the output file")
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name       string
		input      string // empty means the input file is missing
		wantStderr string
	}{
		{
			name:       "missing input",
			wantStderr: "File not found: applicant.json\n",
		},
		{
			name:       "malformed JSON",
			input:      `{"holder": `,
			wantStderr: "Invalid JSON format.\n",
		},
		{
			name:       "scalar",
			input:      `"OTHER"`,
			wantStderr: "Invalid JSON format.\n",
		},
		{
			name:  "array",
			input: `["OTHER"]`,
			wantStderr: "Invalid input data.\n" +
				"  - holder: is required\n" +
				"  - occasionalDriver: is required\n" +
				"  - prevInsurance_years: is required\n" +
				"  - prevInsurance_exists: is required\n",
		},
		{
			name:  "invalid fields",
			input: `{"holder": "OTHER", "occasionalDriver": "si", "prevInsurance_years": 1.5}`,
			wantStderr: "Invalid input data.\n" +
				"  - occasionalDriver: must be one of SI, NO\n" +
				"  - prevInsurance_years: must be an integer\n" +
				"  - prevInsurance_exists: is required\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setup(t)
			if tt.input != "" {
				writeInput(t, dir, "applicant.json", tt.input)
			}

			stdout, stderr, err := runCLI(t, "generate", "applicant.json")
			if err == nil {
				t.Fatal("expected error")
			}
			if code := cli.ExitCode(err); code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !cli.IsReported(err) {
				t.Error("operator message should mark the error as reported")
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if diff := cmp.Diff(tt.wantStderr, stderr); diff != "" {
				t.Errorf("stderr mismatch (-want +got):\n%s", diff)
			}
			if _, err := os.Stat(filepath.Join(dir, "insurance_request.xml")); !errors.Is(err, os.ErrNotExist) {
				t.Error("no output may be written on failure")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	dir := setup(t)
	writeInput(t, dir, "good.json", validInput)
	writeInput(t, dir, "bad.json", `{}`)

	stdout, _, err := runCLI(t, "validate", "good.json")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if stdout != "Input data is valid: good.json\n" {
		t.Errorf("stdout = %q", stdout)
	}

	_, stderr, err := runCLI(t, "validate", "bad.json")
	if cli.ExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", cli.ExitCode(err))
	}
	if !strings.HasPrefix(stderr, "Invalid input data.\n") || strings.Count(stderr, "is required") != 4 {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
}

func TestAudit(t *testing.T) {
	dir := setup(t)
	t.Setenv("TARIFA_AUDIT_ENABLED", "true")
	t.Setenv("TARIFA_AUDIT_PATH", filepath.Join(dir, "data", "audit.db"))
	writeInput(t, dir, "applicant.json", validInput)

	if _, _, err := runCLI(t, "generate", "applicant.json"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	runCLI(t, "generate", "missing.json")

	stdout, _, err := runCLI(t, "audit", "list", "--format", "json")
	if err != nil {
		t.Fatalf("audit list failed: %v", err)
	}

	var records []audit.Record
	if err := json.Unmarshal([]byte(stdout), &records); err != nil {
		t.Fatalf("audit list output is not JSON: %v\n%s", err, stdout)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(records))
	}
	outcomes := []string{records[0].Outcome, records[1].Outcome}
	if !cmp.Equal(outcomes, []string{"not_found", "success"}) && !cmp.Equal(outcomes, []string{"success", "not_found"}) {
		t.Errorf("unexpected outcomes %v", outcomes)
	}

	stdout, _, err = runCLI(t, "audit", "list", "--outcome", "success")
	if err != nil {
		t.Fatalf("audit list failed: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(stdout), "\n"); len(lines) != 2 || !strings.HasPrefix(lines[0], "STARTED") {
		t.Errorf("unexpected text listing:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, "audit", "prune", "--max-records", "1")
	if err != nil {
		t.Fatalf("audit prune failed: %v", err)
	}
	if stdout != "Pruned 1 audit records.\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestAudit_Disabled(t *testing.T) {
	setup(t)

	_, _, err := runCLI(t, "audit", "list")
	var configErr *cli.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *cli.ConfigError, got %v", err)
	}
	if cli.ExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", cli.ExitCode(err))
	}
}

func TestAudit_BadFormat(t *testing.T) {
	setup(t)

	if _, _, err := runCLI(t, "audit", "list", "--format", "junit"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestConfigFile(t *testing.T) {
	dir := setup(t)
	writeInput(t, dir, "applicant.json", validInput)

	cfgPath := filepath.Join(dir, "tarifa.yaml")
	writeInput(t, dir, "tarifa.yaml", "output:\n  default_file: custom.xml\n  indent: \"\"\n")

	stdout, _, err := runCLI(t, "--config", cfgPath, "generate", "applicant.json")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.HasSuffix(stdout, "at: custom.xml\n") {
		t.Errorf("unexpected stdout %q", stdout)
	}

	data, err := os.ReadFile(filepath.Join(dir, "custom.xml"))
	if err != nil {
		t.Fatalf("custom.xml not written: %v", err)
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Errorf("expected compact document, got:\n%s", data)
	}
}

func TestConfigFile_Invalid(t *testing.T) {
	dir := setup(t)
	writeInput(t, dir, "tarifa.yaml", "clock:\n  timezone: Mars/Olympus\n")

	_, _, err := runCLI(t, "--config", filepath.Join(dir, "tarifa.yaml"), "generate", "applicant.json")
	var configErr *cli.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *cli.ConfigError, got %v", err)
	}
}

func TestUsageError(t *testing.T) {
	setup(t)

	_, _, err := runCLI(t, "generate")
	if err == nil {
		t.Fatal("expected error for missing input argument")
	}
	if cli.ExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", cli.ExitCode(err))
	}
}
