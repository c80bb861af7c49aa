package status

import (
	"fmt"
	"strings"

	"dwmstatus/internal/system"
)

// Template picks the status line layout
type Template int

const (
	// TemplateFull shows ram, cpu, swap, load, battery and time
	TemplateFull Template = iota
	// TemplateCompact drops swap and shows cpu with one decimal
	TemplateCompact
)

// ParseTemplate maps a config name to a Template
func ParseTemplate(name string) (Template, error) {
	switch name {
	case "full", "":
		return TemplateFull, nil
	case "compact":
		return TemplateCompact, nil
	default:
		return TemplateFull, fmt.Errorf("unknown template %q", name)
	}
}

func (t Template) String() string {
	if t == TemplateCompact {
		return "compact"
	}
	return "full"
}

// Fields are the sampled values of one tick
type Fields struct {
	RAM        float64 // percent
	CPU        float64 // percent
	Swap       float64 // percent
	Load       system.LoadAverages
	Battery    float64 // percent, only shown when HasBattery
	HasBattery bool
	Time       string
}

// Compose renders f as a single status line. The battery segment is
// present iff f.HasBattery.
func Compose(f Fields, tmpl Template) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[ram: %.0f%% :: ", f.RAM)
	if tmpl == TemplateCompact {
		fmt.Fprintf(&b, "cpu: %.1f%% :: ", f.CPU)
	} else {
		fmt.Fprintf(&b, "cpu: %d%% :: swap: %.0f%% :: ", int(f.CPU), f.Swap)
	}
	fmt.Fprintf(&b, "load: %s :: ", f.Load)
	if f.HasBattery {
		fmt.Fprintf(&b, "bat: %.0f%% :: ", f.Battery)
	}
	b.WriteString(f.Time)
	b.WriteByte(']')

	return b.String()
}
