package cpptraj

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	lie "github.com/rmera/golie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScript(Te *testing.T) {
	I := DefaultInput()
	var b strings.Builder
	require.NoError(Te, I.Write(&b))
	s := b.String()
	assert.True(Te, strings.HasPrefix(s, "parm system_hmass.prmtop\ntrajin unified_traj.dcd\n"))
	assert.Contains(Te, s, "#M1\nlie :104 :1481 out _FE_lie_I_104_O_1481_BP_HW.dat\nlie :104 :1482 out _FE_lie_I_104_O_1482_BP_HW.dat\n")
	assert.Contains(Te, s, "lie :1010 :1484 out _FE_lie_I_1010_O_1484_BP_HH.dat\n")
	assert.True(Te, strings.HasSuffix(s, "run\nquit\n"))
	assert.Equal(Te, 16, strings.Count(s, "\nlie :"))
	out := I.Outputs()
	require.Len(Te, out, 16)
	for _, v := range out {
		p, err := lie.ParsePair(v)
		assert.NoError(Te, err)
		assert.Contains(Te, v, "lie_I_"+strconv.Itoa(p.Inner)+"_O_"+strconv.Itoa(p.Outer))
	}
}

func TestWriteNeedsTopology(Te *testing.T) {
	I := &Input{Trajin: []string{"a.dcd"}}
	err := I.Write(new(strings.Builder))
	assert.True(Te, lie.IsKind(err, lie.MissingInput))
}

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	fake := filepath.Join(dir, "fakecpptraj")
	require.NoError(Te, os.WriteFile(fake, []byte("#!/bin/sh\nprintf '%s\\n' \"$*\"\n"), 0755))
	H := NewHandle()
	H.SetCommand(fake)
	H.SetDir(dir)
	H.SetName("pairs")
	require.NoError(Te, H.BuildInput(DefaultInput()))
	_, err := os.Stat(filepath.Join(dir, "pairs.in"))
	require.NoError(Te, err)
	require.NoError(Te, H.Run(context.Background()))
	out, err := os.ReadFile(filepath.Join(dir, "pairs.out"))
	require.NoError(Te, err)
	assert.Equal(Te, "-i pairs.in\n", string(out))

	H.SetCommand("golie-no-such-cpptraj")
	err = H.Run(context.Background())
	assert.True(Te, lie.IsKind(err, lie.MissingInput))
}
