package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/typeb/internal/presentation/graph"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func pearlSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.Positions = domain.Positions{Sixes: 8, Twenties: [3]int{0, 23, 5}}
	s.Speeds = domain.Speeds{Fast: 2, Medium: 3, Slow: 1}
	return s
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.Overlay
		contains []string
		absent   []string
	}{
		{
			name: "Labels",
			contains: []string{
				"sixes[[\"Sixes @ 9\"]]",
				"tw1[[\"Twenties #1 (slow) @ 1\"]]",
				"tw2[[\"Twenties #2 (fast) @ 24\"]]",
				"tw3[[\"Twenties #3 (medium) @ 6\"]]",
				"plug_in[/\"Plugboard<br/>straight\"/]",
			},
			absent: []string{"classDef"},
		},
		{
			name:     "Encipher Chain",
			overlay:  &graph.Overlay{Class: domain.ClassTwenties, Direction: domain.Encipher},
			contains: []string{"--> tw1\n", "tw1 --> tw2", "tw2 --> tw3", "tw3 --> plug_out", "class kbd,plug_in,plug_out,out,tw1,tw2,tw3 active;"},
		},
		{
			name:     "Decipher Chain",
			overlay:  &graph.Overlay{Class: domain.ClassTwenties, Direction: domain.Decipher},
			contains: []string{"--> tw3\n", "tw3 --> tw2", "tw2 --> tw1", "tw1 --> plug_out"},
		},
		{
			name:     "Sixes Highlight",
			overlay:  &graph.Overlay{Class: domain.ClassSixes},
			contains: []string{"class kbd,plug_in,plug_out,out,sixes active;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(pearlSettings(), tt.overlay)
			assert.True(t, strings.HasPrefix(got, "graph LR\n"))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, no := range tt.absent {
				assert.NotContains(t, got, no)
			}
		})
	}
}
