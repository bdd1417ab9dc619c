package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/footprint/internal/adapters/http/api"
	service "github.com/okian/footprint/internal/app"
	"github.com/okian/footprint/internal/cli"
	"github.com/okian/footprint/internal/domain/impact"
	"github.com/okian/footprint/internal/domain/model"
	"github.com/okian/footprint/pkg/logger"
)

const foodYAML = "menuType: mixed\nmealsServed: 1000\n"

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// run executes the root command with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEstimate_JSON(t *testing.T) {
	out, err := run(t, foodYAML, "estimate", "--facet", "food", "--output", "json")
	require.NoError(t, err)

	var est model.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, "food", est.Facet)
	assert.InDelta(t, 1945, est.Result.EstimatedMassKg, 1e-9)
	assert.NotEmpty(t, est.ID)
	assert.Empty(t, est.Trace)
}

func TestEstimate_Table(t *testing.T) {
	path := writeFile(t, "food.yaml", foodYAML)
	out, err := run(t, "", "estimate", "-f", "food", "--file", path, "--label", "gala", "--explain")
	require.NoError(t, err)

	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "1,945 kg CO2e")
	assert.Contains(t, out, "gala")
	assert.Contains(t, out, "Leverage points")
	assert.Contains(t, out, "Equivalent to driving")
	assert.Contains(t, out, "normalize")
}

func TestEstimate_ConfigOverrides(t *testing.T) {
	cfg := writeFile(t, "footprint.yaml", "emission_factors:\n  food:\n    red_meat: 0\n")
	out, err := run(t, foodYAML, "estimate", "--facet", "food", "--config", cfg, "-o", "json")
	require.NoError(t, err)

	var est model.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.InDelta(t, 845, est.Result.EstimatedMassKg, 1e-9)
}

func TestEstimate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing facet flag", []string{"estimate"}, `required flag(s) "facet" not set`},
		{"unknown facet", []string{"estimate", "--facet", "fireworks"}, "unknown facet"},
		{"unknown output", []string{"estimate", "--facet", "food", "-o", "xml"}, "unknown output format"},
		{"missing file", []string{"estimate", "--facet", "food", "--file", "/does/not/exist.yaml"}, "read input"},
		{"missing config", []string{"estimate", "--facet", "food", "--config", "/does/not/exist.yaml"}, "load"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, foodYAML, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFacets(t *testing.T) {
	out, err := run(t, "", "facets", "-o", "json")
	require.NoError(t, err)

	var cats []impact.Catalogue
	require.NoError(t, json.Unmarshal([]byte(out), &cats))
	require.Len(t, cats, 5)
	assert.Equal(t, "audience", cats[0].Facet)

	out, err = run(t, "", "facets")
	require.NoError(t, err)
	assert.Contains(t, out, "food (per meal, driven by menuType)")
	assert.Contains(t, out, "mealsServed")
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.New(service.WithWorkerCount(2))
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

const batchYAML = `items:
  - facet: food
    label: catering
    input:
      menuType: mixed
      mealsServed: 1000
  - facet: fireworks
`

func TestBatch_WaitsForCompletion(t *testing.T) {
	srv := startServer(t)

	out, err := run(t, batchYAML, "batch", "--url", srv.URL, "--poll-interval", "10ms", "-o", "json")
	require.NoError(t, err)

	var b model.Batch
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, model.StatusCompleted, b.Status)
	assert.Equal(t, 2, b.Processed)
	assert.Equal(t, 1, b.Failed)
	assert.InDelta(t, 1945, b.TotalMassKg, 1e-9)
	require.NotNil(t, b.Outcomes[0].Estimate)
	assert.Equal(t, "catering", b.Outcomes[0].Estimate.Label)

	out, err = run(t, batchYAML, "batch", "--url", srv.URL, "--poll-interval", "10ms")
	require.NoError(t, err)
	assert.Contains(t, out, "completed, 2/2 processed, 1 failed, 1,945 kg CO2e")
}

func TestBatch_IdempotencyKey(t *testing.T) {
	srv := startServer(t)
	args := []string{"batch", "--url", srv.URL, "--idempotency-key", "sweep-1", "--no-wait", "-o", "json"}

	out, err := run(t, batchYAML, args...)
	require.NoError(t, err)
	var first service.BatchReceipt
	require.NoError(t, json.Unmarshal([]byte(out), &first))
	assert.False(t, first.Duplicate)

	out, err = run(t, batchYAML, args...)
	require.NoError(t, err)
	var second service.BatchReceipt
	require.NoError(t, json.Unmarshal([]byte(out), &second))
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.ID, second.ID)
}

func TestBatch_ServerError(t *testing.T) {
	srv := startServer(t)
	items := strings.Repeat("  - facet: food\n", 501)

	_, err := run(t, "items:\n"+items, "batch", "--url", srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrServer)
	assert.Contains(t, err.Error(), "413")
}

func TestBatch_InvalidFile(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not yaml", "items: [", "parse batch file"},
		{"no items", "items: []\n", "no items"},
		{"missing facet", "items:\n  - label: x\n", "item 0: missing facet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.input, "batch", "--url", "http://127.0.0.1:1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
