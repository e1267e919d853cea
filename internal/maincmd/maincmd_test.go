package maincmd_test

import (
	"bytes"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylph-lang/sylph/internal/maincmd"
	"github.com/sylph-lang/sylph/lang/resolver"
)

func TestResolveFixture_AnnotatesSwitchDemo(t *testing.T) {
	var out bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out}

	chunk, err := maincmd.ResolveFixture(stdio, 0, "testdata/switch.yaml")
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.Contains(t, out.String(), "Switch(3 cases, default=true)")
}

func TestCompileFixture_PrintsSwitchDispatchTrace(t *testing.T) {
	var out bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out}

	err := maincmd.CompileFixture(stdio, resolver.Mode(0), "testdata/switch.yaml")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "--- switch #0 ---")
	assert.Contains(t, out.String(), "tableswitch [1,3]")
}

func TestCmd_Main_CompileCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{"sylph", "compile", "testdata/switch.yaml"}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.Success, code)
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "--- switch #0 ---")
}
