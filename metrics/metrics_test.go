package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/verify"
)

func sample(t *testing.T) *assign.Assignment {
	t.Helper()

	a, err := assign.FromRecords([]assign.Record{
		{Word: "do", Code: "a", Tier: format.Tier1},
		{Word: "zebra", Code: "aa", Tier: format.Tier2},
		{Word: "yak", Code: "at", Tier: format.Tier2},
		{Word: "wolf", Code: "bbb", Tier: format.Tier3},
	})
	require.NoError(t, err)

	return a
}

func space(t *testing.T) *codespace.Space {
	t.Helper()

	s, err := codespace.NewSpace(codespace.DefaultExclusionSet())
	require.NoError(t, err)

	return s
}

func TestRecorder_ObserveAssignment(t *testing.T) {
	r := NewRecorder()
	r.ObserveAssignment(sample(t), space(t))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.assigned.WithLabelValues("1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.assigned.WithLabelValues("2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.assigned.WithLabelValues("3")))

	assert.Equal(t, 36.0, testutil.ToFloat64(r.capacity.WithLabelValues("1")))
	assert.Equal(t, 620.0, testutil.ToFloat64(r.capacity.WithLabelValues("2")))
	assert.Equal(t, 8000.0, testutil.ToFloat64(r.capacity.WithLabelValues("3")))

	assert.InDelta(t, 2.0/620.0, testutil.ToFloat64(r.utilization.WithLabelValues("2")), 1e-12)
	assert.Equal(t, 3, testutil.CollectAndCount(r.utilization))
}

func TestRecorder_ObserveReport(t *testing.T) {
	r := NewRecorder()
	report := verify.CheckAssignment(sample(t), codespace.DefaultExclusionSet())
	require.False(t, report.OK())

	r.ObserveReport(report)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.violations.WithLabelValues("excluded")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.violations.WithLabelValues("collision")))
	assert.Equal(t, len(verify.Kinds), testutil.CollectAndCount(r.violations))
}

func TestRecorder_ObserveRun(t *testing.T) {
	r := NewRecorder()
	finished := time.Unix(1_760_000_000, 0)

	r.ObserveRun(1500*time.Millisecond, finished)

	assert.Equal(t, 1.5, testutil.ToFloat64(r.duration))
	assert.Equal(t, 1_760_000_000.0, testutil.ToFloat64(r.lastRun))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveAssignment(sample(t), space(t))
	r.ObserveReport(verify.CheckAssignment(sample(t), codespace.DefaultExclusionSet()))

	path := filepath.Join(t.TempDir(), "zqx.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `zqx_codes_assigned{tier="2"} 2`)
	assert.Contains(t, out, `zqx_code_space_capacity{tier="3"} 8000`)
	assert.Contains(t, out, `zqx_invariant_violations{kind="excluded"} 1`)
	assert.Contains(t, out, "# HELP zqx_code_space_utilization_ratio")
}

func TestRecorder_Registry(t *testing.T) {
	r := NewRecorder()
	r.ObserveAssignment(sample(t), space(t))

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "zqx_codes_assigned")
	assert.Contains(t, names, "zqx_code_space_capacity")
}

func TestTierLabel(t *testing.T) {
	assert.Equal(t, "1", tierLabel(format.Tier1))
	assert.Equal(t, "unknown", tierLabel(format.Tier(9)))
}
