package monitor

import (
	"fmt"
	"strings"

	"github.com/pterodash/pterodash/internal/ui"
)

// render draws the full dashboard frame.
func (m Model) render() string {
	width := m.width
	if width <= 0 {
		width = BreakpointCompact
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(width))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(ErrorBannerStyle.Render(ui.SymbolFail + " " + m.errMsg))
		b.WriteString("\n")
	}

	if !m.haveStats {
		b.WriteString(m.renderWaiting())
	} else {
		b.WriteString(m.renderMetrics(width))
	}

	if m.ShowFooter() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render(m.server.Name)
	id := MutedStyle.Render("(" + m.server.Identifier + ")")
	badge := StateBadge(string(m.power))

	age := ""
	if secs := m.SecondsSinceUpdate(); secs > 0 {
		age = MutedStyle.Render(fmt.Sprintf("updated %ds ago", secs))
	}

	left := title + " " + id + "  " + badge
	if age == "" {
		return left
	}
	return left + "  " + age
}

// renderWaiting shows the connecting animation until the first stats push.
func (m Model) renderWaiting() string {
	if m.ended {
		return MutedStyle.Render("  session ended") + "\n"
	}
	return "  " + m.ConnectingSpinner() + " " +
		LabelStyle.Render("waiting for telemetry from "+m.server.Name) +
		MutedStyle.Render(" ("+m.state.String()+")") + "\n"
}

// renderMetrics draws the CPU, memory, disk and network sections.
func (m Model) renderMetrics(width int) string {
	layout := m.LayoutMode()
	sectionWidth := width
	if sectionWidth > 100 {
		sectionWidth = 100
	}
	graphWidth := sectionWidth - 30
	if graphWidth < 10 {
		graphWidth = 10
	}

	hist := m.sess.History()
	interval := m.refresh.Seconds()

	var b strings.Builder

	// CPU
	cpu := m.stats.CPUPercent
	b.WriteString(SectionHeader("CPU", ui.FormatPercent(cpu), sectionWidth))
	b.WriteString("\n")
	b.WriteString(SectionContentLine(ProgressBar(20, cpu), sectionWidth))
	b.WriteString("\n")
	if layout != LayoutMinimal {
		b.WriteString(SectionContentLine(ui.RenderPercentSparkline(hist.CPU(), graphWidth), sectionWidth))
		b.WriteString("\n")
	}
	b.WriteString(SectionFooter(sectionWidth))
	b.WriteString("\n")

	// Memory
	memValue := ui.FormatMemory(m.stats.MemoryBytes, m.stats.MemoryLimitBytes)
	b.WriteString(SectionHeader("Memory", memValue, sectionWidth))
	b.WriteString("\n")
	memPercent := 0.0
	if m.stats.MemoryLimitBytes > 0 {
		memPercent = float64(m.stats.MemoryBytes) / float64(m.stats.MemoryLimitBytes) * 100
	}
	b.WriteString(SectionContentLine(ProgressBar(20, memPercent), sectionWidth))
	b.WriteString("\n")
	if layout != LayoutMinimal {
		b.WriteString(SectionContentLine(ui.RenderRateSparkline(hist.Memory(), graphWidth), sectionWidth))
		b.WriteString("\n")
	}
	b.WriteString(SectionFooter(sectionWidth))
	b.WriteString("\n")

	// Disk
	b.WriteString(SectionHeader("Disk", ui.FormatBytes(m.stats.DiskBytes), sectionWidth))
	b.WriteString("\n")
	b.WriteString(SectionFooter(sectionWidth))
	b.WriteString("\n")

	// Network
	rx := hist.NetworkRx()
	tx := hist.NetworkTx()
	rxNow := 0.0
	txNow := 0.0
	if len(rx) > 0 {
		rxNow = rx[len(rx)-1]
	}
	if len(tx) > 0 {
		txNow = tx[len(tx)-1]
	}
	netValue := "↓ " + ui.FormatRate(rxNow, interval) + "  ↑ " + ui.FormatRate(txNow, interval)
	b.WriteString(SectionHeader("Network", netValue, sectionWidth))
	b.WriteString("\n")
	if layout != LayoutMinimal {
		b.WriteString(SectionContentLine(LabelStyle.Render("in  ")+ui.RenderRateSparkline(rx, graphWidth), sectionWidth))
		b.WriteString("\n")
		b.WriteString(SectionContentLine(LabelStyle.Render("out ")+ui.RenderRateSparkline(tx, graphWidth), sectionWidth))
		b.WriteString("\n")
	}
	b.WriteString(SectionFooter(sectionWidth))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderFooter() string {
	if m.ended {
		return FooterStyle.Render("q quit")
	}
	return FooterStyle.Render("q quit · session " + m.state.String())
}
