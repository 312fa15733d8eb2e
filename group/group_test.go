package group

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	lie "github.com/rmera/golie"
	"github.com/rmera/golie/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var labels = []string{"[EELEC]", "[EVDW]", "[ETOTAL]"}

func writeFile(Te *testing.T, dir, name, content string) string {
	p := filepath.Join(dir, name)
	require.NoError(Te, os.WriteFile(p, []byte(content), 0644))
	return p
}

// Two tables with 3 rows in total, plus one that doesn't match.
func fixture(Te *testing.T) string {
	dir := Te.TempDir()
	writeFile(Te, dir, "A_FE_104.csv", "# LIE STATISTICS - A_FE_104.csv\n#---\nFrame,LIE_00001[EELEC],LIE_00001[EVDW],[ETOTAL]\n1,-10,-2,-12\n2,-12,-3,-15\n")
	writeFile(Te, dir, "B_FE_104.csv", "Frame,LIE_00001[EELEC],LIE_00001[EVDW],[ETOTAL]\n1,-11,-2.5,-13.5\n")
	writeFile(Te, dir, "C_GA_104.csv", "Frame,LIE_00001[EELEC],LIE_00001[EVDW],[ETOTAL]\n1,-100,-20,-120\n")
	return dir
}

func feConfig() query.Config {
	return query.Config{Name: "Fe-104", Required: []string{"104"}, Alternatives: [][]string{{"FE"}}}
}

func TestAggregateEndToEnd(Te *testing.T) {
	dir := fixture(Te)
	files, err := Aggregate(dir, []query.Config{feConfig()}, nil)
	require.NoError(Te, err)
	require.Contains(Te, files, "Fe-104")
	out := files["Fe-104"]
	assert.Equal(Te, filepath.Join(dir, "AND-104_OR1-FE"+Suffix), out)

	T, err := lie.ReadTableFile(out)
	require.NoError(Te, err)
	assert.Equal(Te, 3, T.Len())

	stats, err := lie.ReadStatsFile(out, labels, nil)
	require.NoError(Te, err)
	assert.InDelta(Te, -11.0, stats["[EELEC]"].Mean, 1e-9)
	//sample standard deviation (n-1); the population value would be 0.8165
	assert.InDelta(Te, 1.0, stats["[EELEC]"].Std, 1e-9)
	assert.InDelta(Te, -2.5, stats["[EVDW]"].Mean, 1e-9)
	assert.InDelta(Te, -13.5, stats["[ETOTAL]"].Mean, 1e-9)

	b, err := os.ReadFile(out)
	require.NoError(Te, err)
	assert.Contains(Te, string(b), "# GROUP: Fe-104\n# Applied Criteria: AND: (104) | OR GROUPS: (FE) | NOT: ()\n"+lie.Divider+"\n# STATS: ")
}

func TestOrderIndependence(Te *testing.T) {
	dir := fixture(Te)
	files, err := Candidates(dir)
	require.NoError(Te, err)
	g1, err := Build(feConfig(), files, nil)
	require.NoError(Te, err)
	rev := []string{files[2], files[1], files[0]}
	g2, err := Build(feConfig(), rev, nil)
	require.NoError(Te, err)
	require.Equal(Te, len(g1.Stats), len(g2.Stats))
	for i := range g1.Stats {
		for _, p := range [][2]float64{{g1.Stats[i].Mean, g2.Stats[i].Mean}, {g1.Stats[i].Std, g2.Stats[i].Std}} {
			assert.InEpsilon(Te, p[0], p[1], 1e-9, g1.Stats[i].Label)
		}
	}
	//rows follow the order of the input list
	assert.Equal(Te, []string{files[1], files[0]}, g2.Files)
}

func TestEmptyMatch(Te *testing.T) {
	dir := fixture(Te)
	c := query.Config{Name: "nothing", Required: []string{"XYZ"}}
	files, err := Aggregate(dir, []query.Config{c, feConfig()}, nil)
	require.NoError(Te, err)
	assert.NotContains(Te, files, "nothing")
	assert.Contains(Te, files, "Fe-104")
	_, err = os.Stat(filepath.Join(dir, c.Label()+Suffix))
	assert.True(Te, os.IsNotExist(err))

	cand, _ := Candidates(dir)
	_, err = Build(c, cand, nil)
	assert.True(Te, lie.IsKind(err, lie.ConfigurationMiss))
}

func TestRerunIgnoresOutputs(Te *testing.T) {
	dir := fixture(Te)
	_, err := Aggregate(dir, []query.Config{feConfig()}, nil)
	require.NoError(Te, err)
	files, err := Aggregate(dir, []query.Config{feConfig()}, nil)
	require.NoError(Te, err)
	T, err := lie.ReadTableFile(files["Fe-104"])
	require.NoError(Te, err)
	assert.Equal(Te, 3, T.Len(), "aggregated tables must not be aggregated again")
}

func TestSchemaMismatch(Te *testing.T) {
	dir := Te.TempDir()
	writeFile(Te, dir, "X_FE_104.csv", "Frame,Other\n1,2\n")
	writeFile(Te, dir, "Y_FE_104.csv", "Frame,LIE_00001[EELEC]\n1,-4\n2,-6\n")
	writeFile(Te, dir, "Z_FE_104.csv", "Frame,LIE_00001[EELEC]\n")
	out := Te.TempDir()
	files, err := Aggregate(dir, []query.Config{feConfig()}, &Options{OutDir: out})
	require.NoError(Te, err)
	require.Contains(Te, files, "Fe-104")
	assert.Equal(Te, out, filepath.Dir(files["Fe-104"]))
	stats, err := lie.ReadStatsFile(files["Fe-104"], labels, nil)
	require.NoError(Te, err)
	assert.Len(Te, stats, 1)
	assert.InDelta(Te, -5.0, stats["[EELEC]"].Mean, 1e-9)

	only := Te.TempDir()
	writeFile(Te, only, "X_FE_104.csv", "Frame,Other\n1,2\n")
	cand, _ := Candidates(only)
	_, err = Build(feConfig(), cand, nil)
	assert.True(Te, lie.IsKind(err, lie.SchemaMismatch))
}

func TestSingleRowStd(Te *testing.T) {
	dir := Te.TempDir()
	writeFile(Te, dir, "B_FE_104.csv", "Frame,LIE_00001[EELEC],LIE_00001[EVDW],[ETOTAL]\n1,-11,-2.5,-13.5\n")
	files, err := Aggregate(dir, []query.Config{feConfig()}, nil)
	require.NoError(Te, err)
	stats, err := lie.ReadStatsFile(files["Fe-104"], labels, nil)
	require.NoError(Te, err)
	assert.True(Te, math.IsNaN(stats["[EELEC]"].Std))
	assert.InDelta(Te, -11.0, stats["[EELEC]"].Mean, 1e-9)
}

func TestNoTables(Te *testing.T) {
	files, err := Aggregate(Te.TempDir(), []query.Config{feConfig()}, nil)
	require.NoError(Te, err)
	assert.Empty(Te, files)
}
