package lie

import (
	"math"
	"strings"
	"testing"
)

func TestDescribe(Te *testing.T) {
	s := Describe([]float64{-10, -12, -11})
	if s.N != 3 || math.Abs(s.Mean+11) > 1e-12 || math.Abs(s.Std-1) > 1e-12 {
		Te.Errorf("wrong statistics: %+v", s)
	}
	s = Describe([]float64{-10, math.NaN(), -12})
	if s.N != 2 || math.Abs(s.Mean+11) > 1e-12 {
		Te.Errorf("NaNs should be skipped: %+v", s)
	}
	s = Describe([]float64{3})
	if s.Mean != 3 || !math.IsNaN(s.Std) {
		Te.Errorf("one value should give a NaN std: %+v", s)
	}
	s = Describe(nil)
	if !math.IsNaN(s.Mean) || !math.IsNaN(s.Std) || s.N != 0 {
		Te.Errorf("no values should give NaNs: %+v", s)
	}
}

func TestFormatStat(Te *testing.T) {
	cases := map[float64]string{
		12.3456:     "12.3456",
		-11:         "-11.0000",
		0.81649658:  "0.8165",
		math.NaN():  "nan",
		math.Inf(1): "inf",
		2.00005:     "2.0000",
		1.00005:     "1.0001",
		-11.00005:   "-11.0000",
	}
	for v, want := range cases {
		if got := FormatStat(v); got != want {
			Te.Errorf("FormatStat(%v) = %s, want %s", v, got, want)
		}
	}
	for _, s := range []string{"12.3456", "-0.7891", "nan", "-inf"} {
		v, err := ParseStat(s)
		if err != nil {
			Te.Error(err)
		}
		if FormatStat(v) != s {
			Te.Errorf("%s doesn't survive a round trip: %s", s, FormatStat(v))
		}
	}
	if _, err := ParseStat("abc"); err == nil {
		Te.Error("ParseStat should fail with non-numbers")
	}
}

func TestTableStats(Te *testing.T) {
	T, err := ReadTable(strings.NewReader("Frame,[EELEC],LIE_00001[EVDW]\n1,-1,-2\n2,-3,-4\n"))
	if err != nil {
		Te.Fatal(err)
	}
	st := TableStats(T, EnergyColumns, "test", nil)
	if len(st) != 2 {
		Te.Fatalf("expected 2 columns (one by its short name), got %d", len(st))
	}
	if st[0].Label != "[EELEC]" || st[0].Mean != -2 || st[1].Label != "[EVDW]" || st[1].Mean != -3 {
		Te.Errorf("wrong statistics: %+v", st)
	}
	if !HasAny(T, EnergyColumns) {
		Te.Error("HasAny should find the columns")
	}
	if HasAny(T, []StatColumn{{"a", "b"}}) {
		Te.Error("HasAny found columns that aren't there")
	}
}
