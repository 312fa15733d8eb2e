package query

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hemConfig() Config {
	return Config{
		Name:         "Fe-FeGa_ARG_HEM",
		Required:     []string{"HW"},
		Alternatives: [][]string{{"_FE_", "_FEGA_"}, {"104", "844"}, {"1481", "1483"}},
	}
}

func TestMatches(Te *testing.T) {
	c := Config{Required: []string{"HW"}, Alternatives: [][]string{{"_FE_", "_FEGA_"}, {"104", "844"}}}
	assert.True(Te, c.Matches("HW_FE_104.csv"))
	assert.False(Te, c.Matches("HW_GA_104.csv"))
	assert.True(Te, c.Matches("HW_FE_104_BAD.csv"))
	assert.True(Te, c.Matches("hw_fe_844.CSV"), "matching must be case-insensitive")
	assert.False(Te, c.Matches("_FE_104.csv"), "required term missing")
	c.Excluded = []string{"bad"}
	assert.False(Te, c.Matches("HW_FE_104_BAD.csv"))
	assert.True(Te, Matches("HW_FE_844.csv", c))
}

func TestMatchesRealNames(Te *testing.T) {
	c := hemConfig()
	cases := map[string]bool{
		"_FE_lie_I_104_O_1481_BP_HW.csv":   true,
		"_FEGA_lie_I_844_O_1483_BP_HW.csv": true,
		"_FE_lie_I_104_O_1482_BP_HW.csv":   false,
		"_GA_lie_I_104_O_1481_BP_HW.csv":   false,
		"_FE_lie_I_104_O_1481_BP_HH.csv":   false,
		"_FE_lie_I_107_O_1481_BP_HW.csv":   false,
	}
	for name, want := range cases {
		assert.Equal(Te, want, c.Matches(name), name)
	}
}

func TestEmptyClauses(Te *testing.T) {
	assert.True(Te, Config{}.Matches("anything.csv"))
	assert.False(Te, Config{Alternatives: [][]string{{}}}.Matches("anything.csv"), "an empty group can't be satisfied")
}

func TestFilter(Te *testing.T) {
	names := []string{"b_FE_104_HW.csv", "a_GA_104_HW.csv", "c_FE_844_HW.csv"}
	c := Config{Required: []string{"HW"}, Alternatives: [][]string{{"_FE_"}}}
	assert.Equal(Te, []string{"b_FE_104_HW.csv", "c_FE_844_HW.csv"}, Filter(names, c))
	assert.Empty(Te, Filter(names, Config{Required: []string{"nope"}}))
}

func TestLabel(Te *testing.T) {
	c := hemConfig()
	assert.Equal(Te, "AND-HW_OR1-_FE___FEGA__OR2-104_844_OR3-1481_1483", c.Label())
	long := Config{
		Required:     []string{"a b", "c.d"},
		Alternatives: [][]string{{"x", "y", "z"}},
		Excluded:     []string{"n1", "n2", "n3"},
	}
	assert.Equal(Te, "AND-a_b_c_d_OR1-x_y_etc_NOT-n1_n2_etc", long.Label())
	assert.Equal(Te, EmptyLabel, Config{}.Label())
}

func TestLabelDeterministic(Te *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	configs := []Config{
		hemConfig(),
		{Required: []string{"ñ/é", "$"}, Excluded: []string{"a:b"}},
		{Alternatives: [][]string{{"(1)", "[2]"}, {"x y"}}},
	}
	for _, c := range configs {
		first := c.Label()
		assert.Equal(Te, first, c.Label())
		assert.Regexp(Te, safe, first)
	}
	renamed := hemConfig()
	renamed.Name = "something else"
	assert.Equal(Te, hemConfig().Label(), renamed.Label(), "the label must not depend on the name")
}

func TestCriteria(Te *testing.T) {
	c := Config{Required: []string{"HW"}, Alternatives: [][]string{{"_FE_", "_FEGA_"}, {"104", "844"}}}
	assert.Equal(Te, "AND: (HW) | OR GROUPS: (_FE_ OR _FEGA_) AND (104 OR 844) | NOT: ()", c.Criteria())
}
