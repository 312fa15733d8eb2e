package lie

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatsRoundTrip(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "t.csv")
	T := &Table{Header: []string{FrameCol, ElecCol}, Records: [][]string{{"1", "2"}}}
	stats := []LabeledStat{{Label: "[EELEC]", Stat: Stat{Mean: 12.3456, Std: 0.7891}}}
	if err := WriteWithHeader(name, GroupHeader("G", "AND: () | OR GROUPS:  | NOT: ()", stats), T); err != nil {
		Te.Fatal(err)
	}
	got, err := ReadStatsFile(name, []string{"[EELEC]", "[EVDW]"}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(got) != 1 {
		Te.Fatalf("only [EELEC] should be found, got %v", got)
	}
	if math.Abs(got["[EELEC]"].Mean-12.3456) > 5e-5 || math.Abs(got["[EELEC]"].Std-0.7891) > 5e-5 {
		Te.Errorf("round trip failed: %+v", got["[EELEC]"])
	}
	T2, err := ReadTableFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if T2.Len() != 1 || T2.Header[1] != ElecCol {
		Te.Errorf("table under the header damaged: %+v", T2)
	}
}

func TestHeaderText(Te *testing.T) {
	stats := []LabeledStat{
		{Label: "[EELEC]", Stat: Stat{Mean: -11, Std: 1}},
		{Label: "[EVDW]", Stat: Stat{Mean: -2.5, Std: math.NaN()}},
	}
	want := "# LIE STATISTICS - a.csv\n" + Divider + "\n# METADATA: [EELEC] Mean = -11.0000 | [EELEC] Std = 1.0000 | [EVDW] Mean = -2.5000 | [EVDW] Std = nan\n" + Divider + "\n"
	if got := FileHeader("/some/dir/a.csv", stats).String(); got != want {
		Te.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// The reader must stop at the column header, even if some row
// looks like metadata.
func TestReadStatsStopsAtData(Te *testing.T) {
	in := "Frame,[EELEC]\n# STATS: [EELEC] Mean = 1.0000 | [EELEC] Std = 1.0000\n"
	_, err := ReadStats(strings.NewReader(in), []string{"[EELEC]"}, "x", nil)
	if !IsKind(err, SchemaMismatch) {
		Te.Errorf("expected a SchemaMismatch, got %v", err)
	}
	in = "# GROUP: x\n# METADATA: [EELEC] Mean = 1.5000 | [EELEC] Std = bad\nFrame\n"
	got, err := ReadStats(strings.NewReader(in), []string{"[EELEC]"}, "x", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := got["[EELEC]"]; ok {
		Te.Error("a label without a valid std should be left out")
	}
}

func TestAttach(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "a.csv")
	body := "Frame,LIE_00001[EELEC]\n1,-3\n"
	if err := os.WriteFile(name, []byte(body), 0600); err != nil {
		Te.Fatal(err)
	}
	h := FileHeader(name, []LabeledStat{{Label: "[EELEC]", Stat: Stat{Mean: -3, Std: math.NaN()}}})
	if err := h.Attach(name); err != nil {
		Te.Fatal(err)
	}
	b, _ := os.ReadFile(name)
	if string(b) != h.String()+body {
		Te.Errorf("unexpected content:\n%s", b)
	}
	info, _ := os.Stat(name)
	if info.Mode().Perm() != 0600 {
		Te.Errorf("permissions not kept: %v", info.Mode().Perm())
	}
}
