package lie

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestReadTableSkipsHeader(Te *testing.T) {
	in := "# GROUP: x\n" + Divider + "\n# STATS: [EELEC] Mean = 1.0000 | [EELEC] Std = nan\n" + Divider + "\nFrame, [EELEC]\n1,2\n2,\n"
	T, err := ReadTable(strings.NewReader(in))
	if err != nil {
		Te.Fatal(err)
	}
	if T.Len() != 2 || T.Index("[EELEC]") != 1 {
		Te.Fatalf("wrong table: %+v", T)
	}
	d, ok := T.Floats("[EELEC]")
	if !ok || d[0] != 2 || !math.IsNaN(d[1]) {
		Te.Errorf("wrong values: %v", d)
	}
	if _, ok := T.Floats("[EVDW]"); ok {
		Te.Error("Floats found a missing column")
	}
}

func TestConcat(Te *testing.T) {
	a := &Table{Header: []string{"Frame", "A"}, Records: [][]string{{"1", "a1"}}}
	b := &Table{Header: []string{"Frame", "B"}, Records: [][]string{{"1", "b1"}, {"2", "b2"}}}
	c := Concat(a, b, a)
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		Te.Fatal(err)
	}
	want := "Frame,A,B\n1,a1,\n1,,b1\n2,,b2\n1,a1,\n"
	if buf.String() != want {
		Te.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
	if Concat().Len() != 0 {
		Te.Error("empty concatenation should be empty")
	}
}
