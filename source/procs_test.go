package source

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcs_LoadIncludesSelf(t *testing.T) {
	p := &Procs{}
	items, err := p.Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, items)

	self := int32(os.Getpid())
	found := false
	var prev int32 = -1
	for _, it := range items {
		pr := it.(Process)
		assert.Greater(t, pr.PID, prev)
		prev = pr.PID
		if pr.PID == self {
			found = true
		}
	}
	assert.True(t, found)

	again, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Greater(t, again[0].(Process).ContentVersion(), items[0].(Process).ContentVersion())
}

func TestProcess_KeyDistinguishesReusedPID(t *testing.T) {
	a := Process{PID: 42, Created: 1000}
	b := Process{PID: 42, Created: 2000}
	assert.Equal(t, "42-1000", a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestProcessItems_SortedByPID(t *testing.T) {
	items := processItems([]Process{{PID: 30}, {PID: 4}, {PID: 17}})
	var pids []int32
	for _, it := range items {
		pids = append(pids, it.(Process).PID)
	}
	assert.Equal(t, []int32{4, 17, 30}, pids)
}

func TestProcess_RenderWrapsCommandLine(t *testing.T) {
	p := Process{PID: 1, Name: "worker", Cmdline: "worker --flag-one --flag-two --flag-three --flag-four"}
	assert.Equal(t, 1, len(splitNonEmpty(Process{PID: 1, Name: "init"}.Render(80))))
	assert.Greater(t, len(splitNonEmpty(p.Render(20))), len(splitNonEmpty(p.Render(200))))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "3.0 MiB", formatBytes(3<<20))
}
