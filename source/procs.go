package source

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/miosa/osa-vlist/model"
	"github.com/miosa/osa-vlist/style"
)

const defaultProcInterval = 2 * time.Second

// Procs is the live process table. Processes come and go between refreshes,
// so the list length changes and the viewer re-anchors on what it shows.
type Procs struct {
	Every time.Duration
	gen   atomic.Int64
}

func (p *Procs) Name() string { return "procs" }

func (p *Procs) Interval() time.Duration {
	if p.Every <= 0 {
		return defaultProcInterval
	}
	return p.Every
}

// Load snapshots every running process, ordered by PID. Processes that exit
// while being inspected are skipped.
func (p *Procs) Load(ctx context.Context) ([]model.Item, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	gen := int(p.gen.Add(1))

	rows := make([]Process, 0, len(procs))
	for _, pr := range procs {
		name, err := pr.NameWithContext(ctx)
		if err != nil {
			continue
		}
		created, _ := pr.CreateTimeWithContext(ctx)
		cmdline, _ := pr.CmdlineWithContext(ctx)
		cpuPct, _ := pr.CPUPercentWithContext(ctx)
		user, _ := pr.UsernameWithContext(ctx)

		var rss uint64
		if mi, _ := pr.MemoryInfoWithContext(ctx); mi != nil {
			rss = mi.RSS
		}
		rows = append(rows, Process{
			PID:     pr.Pid,
			Created: created,
			Name:    name,
			User:    user,
			Cmdline: cmdline,
			CPU:     cpuPct,
			RSS:     rss,
			version: gen,
		})
	}
	return processItems(rows), nil
}

func processItems(rows []Process) []model.Item {
	slices.SortFunc(rows, func(a, b Process) int { return cmp.Compare(a.PID, b.PID) })
	items := make([]model.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	return items
}

// Process is one row of the process table.
type Process struct {
	PID     int32
	Created int64 // ms since epoch; disambiguates reused PIDs
	Name    string
	User    string
	Cmdline string
	CPU     float64
	RSS     uint64

	version int
}

func (p Process) ID() string { return fmt.Sprintf("%d-%d", p.PID, p.Created) }

// ContentVersion changes on every refresh so CPU and memory figures re-render.
func (p Process) ContentVersion() int { return p.version }

func (p Process) Render(width int) string {
	name := style.ProcName
	if p.CPU >= 50 {
		name = style.ProcHot
	}
	head := lipgloss.NewStyle().MaxWidth(width).Render(
		name.Render(p.Name) + style.ItemMeta.Render(
			fmt.Sprintf("  pid %d  %s  cpu %.1f%%  rss %s", p.PID, p.User, p.CPU, formatBytes(p.RSS))))
	if p.Cmdline == "" || p.Cmdline == p.Name {
		return head
	}
	return head + "\n" + style.ProcCmd.Width(max(width, 3)).Render(p.Cmdline)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
