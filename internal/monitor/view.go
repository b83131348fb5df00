package monitor

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("sysmon | refresh %ds | q to quit",
		int(m.opts.Refresh.Seconds()))))
	b.WriteString("\n\n")

	if m.sample == nil {
		b.WriteString(mutedStyle.Render("collecting…"))
		b.WriteString("\n")
		return b.String()
	}

	if m.opts.CPU {
		m.renderCPU(&b)
	}
	if m.opts.Memory {
		m.renderMemory(&b)
	}
	if m.opts.Network {
		m.renderNetwork(&b)
	}
	if m.opts.Top {
		m.renderProcesses(&b)
	}

	return b.String()
}

func (m Model) renderCPU(b *strings.Builder) {
	cpu := m.sample.CPU

	b.WriteString(sectionStyle.Render("CPU"))
	b.WriteString("\n")
	if cpu.Model != "" {
		detail := cpu.Model
		if cpu.Cores > 0 {
			detail = fmt.Sprintf("%s (%d cores)", cpu.Model, cpu.Cores)
		}
		b.WriteString(mutedStyle.Render(detail))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n",
		UsageBar(cpu.Percent),
		metricStyle(cpu.Percent).Render(fmt.Sprintf("%5.1f%%", cpu.Percent))))
}

func (m Model) renderMemory(b *strings.Builder) {
	memStats := m.sample.Memory

	pct := 0.0
	if memStats.TotalMB > 0 {
		pct = float64(memStats.UsedMB) / float64(memStats.TotalMB) * 100
	}

	b.WriteString(sectionStyle.Render("Memory"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		UsageBar(pct),
		metricStyle(pct).Render(fmt.Sprintf("%5.1f%%", pct))))
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n\n",
		labelStyle.Render("used"), valueStyle.Render(formatMB(memStats.UsedMB)),
		labelStyle.Render("free"), valueStyle.Render(formatMB(memStats.FreeMB)),
		labelStyle.Render("total"), valueStyle.Render(formatMB(memStats.TotalMB))))
}

func (m Model) renderNetwork(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Network"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n\n",
		labelStyle.Render("↓ rx"), valueStyle.Render(formatRate(m.rxRate)),
		labelStyle.Render("↑ tx"), valueStyle.Render(formatRate(m.txRate))))
}

func (m Model) renderProcesses(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Top processes"))
	b.WriteString("\n")
	if len(m.sample.Processes) == 0 {
		b.WriteString(mutedStyle.Render("no process data"))
		b.WriteString("\n\n")
		return
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%7s %6s %6s  %s", "PID", "CPU%", "MEM%", "COMMAND")))
	b.WriteString("\n")
	for _, p := range m.sample.Processes {
		b.WriteString(fmt.Sprintf("%7d %s %6.1f  %s\n",
			p.PID,
			metricStyle(p.CPU).Render(fmt.Sprintf("%6.1f", p.CPU)),
			p.Memory,
			p.Command))
	}
	b.WriteString("\n")
}

// formatMB renders a mebibyte count, switching to GB past a gigabyte.
func formatMB(mb int) string {
	if mb >= 1024 {
		return fmt.Sprintf("%.1f GB", float64(mb)/1024)
	}
	return fmt.Sprintf("%d MB", mb)
}

// formatRate renders a bytes-per-second rate with a binary-unit suffix.
func formatRate(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= 1024*1024*1024:
		return fmt.Sprintf("%.1f GB/s", bytesPerSec/(1024*1024*1024))
	case bytesPerSec >= 1024*1024:
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/(1024*1024))
	case bytesPerSec >= 1024:
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/1024)
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
}
