package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/typeb/pkg/domain"
)

// Overlay highlights the path one letter takes through the machine.
type Overlay struct {
	Class     domain.Class
	Direction domain.Direction
}

// GenerateMermaid produces a Mermaid flowchart of the signal path for the given
// settings. Switch nodes are labelled with their 1-based position and, for the
// twenties, their speed. Shapes:
// - Keyboard / Printer: ((Circle))
// - Plugboard: [/Parallelogram/]
// - Switches: [[Subroutine]]
func GenerateMermaid(s domain.Settings, overlay *Overlay) string {
	dir := domain.Encipher
	if overlay != nil {
		dir = overlay.Direction
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	plug := "straight"
	if s.Plugboard != "" {
		plug = s.Plugboard
	}
	sb.WriteString("    kbd((\"Keyboard\"))\n")
	sb.WriteString(fmt.Sprintf("    plug_in[/\"Plugboard<br/>%s\"/]\n", plug))
	sb.WriteString(fmt.Sprintf("    sixes[[\"Sixes @ %d\"]]\n", s.Positions.Sixes+1))
	for i := 0; i < 3; i++ {
		sb.WriteString(fmt.Sprintf("    tw%d[[\"Twenties #%d %s @ %d\"]]\n",
			i+1, i+1, roleOf(s.Speeds, i+1), s.Positions.Twenties[i]+1))
	}
	sb.WriteString("    plug_out[/\"Plugboard\"/]\n")
	sb.WriteString("    out((\"Printer\"))\n")

	sb.WriteString("    kbd --> plug_in\n")
	sb.WriteString("    plug_in -- \"AEIOUY\" --> sixes\n")
	sb.WriteString("    sixes --> plug_out\n")

	chain := []string{"tw1", "tw2", "tw3"}
	if dir == domain.Decipher {
		chain = []string{"tw3", "tw2", "tw1"}
	}
	sb.WriteString(fmt.Sprintf("    plug_in -- \"20 others\" --> %s\n", chain[0]))
	sb.WriteString(fmt.Sprintf("    %s --> %s\n", chain[0], chain[1]))
	sb.WriteString(fmt.Sprintf("    %s --> %s\n", chain[1], chain[2]))
	sb.WriteString(fmt.Sprintf("    %s --> plug_out\n", chain[2]))
	sb.WriteString("    plug_out --> out\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) so the highlight reads on light and dark themes.
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")
		active := []string{"kbd", "plug_in", "plug_out", "out"}
		if overlay.Class == domain.ClassSixes {
			active = append(active, "sixes")
		} else {
			active = append(active, chain...)
		}
		sb.WriteString(fmt.Sprintf("    class %s active;\n", strings.Join(active, ",")))
	}

	return sb.String()
}

func roleOf(sp domain.Speeds, switchNo int) string {
	for _, r := range []domain.Role{domain.RoleFast, domain.RoleMedium, domain.RoleSlow} {
		if sp.Switch(r) == switchNo {
			return "(" + r.String() + ")"
		}
	}
	return ""
}
