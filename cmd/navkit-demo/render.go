package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/odvcencio/navkit/pkg/mutate"
	"github.com/odvcencio/navkit/pkg/navigator"
	"github.com/odvcencio/navkit/pkg/navtree"
	"github.com/odvcencio/navkit/pkg/transition"
)

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FD7FF"}).
			Bold(true)
	destStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5F5F00", Dark: "#D7D75F"})
	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FFF5F"}).
			Bold(true)
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"})
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true)
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#8700AF", Dark: "#D787FF"})
)

// renderSnapshot draws the tree with the active path highlighted, plus
// the transition phase when a gesture or animation is in flight.
func renderSnapshot(snap navigator.Snapshot) string {
	var b strings.Builder

	onActivePath := make(map[string]bool)
	for _, n := range navtree.ActivePath(snap.Tree) {
		onActivePath[n.Key()] = true
	}

	renderNode(&b, snap.Tree, "", onActivePath)

	state := snap.Transition
	if state.Phase != transition.Idle {
		b.WriteString(phaseStyle.Render(
			fmt.Sprintf("[%s progress=%.2f]", state.Phase, state.Progress)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNode(b *strings.Builder, n navtree.Node, indent string, active map[string]bool) {
	marker := "  "
	style := keyStyle
	if active[n.Key()] {
		marker = "* "
		style = activeStyle
	}

	switch n := n.(type) {
	case *navtree.Screen:
		label := ""
		if n.Destination() != nil {
			label = " " + destStyle.Render(n.Destination().Kind())
		}
		fmt.Fprintf(b, "%s%s%s%s\n", indent, marker, style.Render(n.Key()), label)

	case *navtree.Stack:
		suffix := ""
		if n.ScopeKey() != "" {
			suffix = dimStyle.Render(" scope=" + n.ScopeKey())
		}
		fmt.Fprintf(b, "%s%s%s stack%s\n", indent, marker, style.Render(n.Key()), suffix)
		for _, child := range n.Children() {
			renderNode(b, child, indent+"  ", active)
		}

	case *navtree.Tab:
		fmt.Fprintf(b, "%s%s%s tab active=%d\n", indent, marker, style.Render(n.Key()), n.ActiveIndex())
		for _, stack := range n.Stacks() {
			renderNode(b, stack, indent+"  ", active)
		}

	case *navtree.Pane:
		fmt.Fprintf(b, "%s%s%s pane focus=%s\n", indent, marker, style.Render(n.Key()), n.ActiveRole())
		for _, role := range n.Roles() {
			slot, _ := n.Slot(role)
			fmt.Fprintf(b, "%s  %s\n", indent, dimStyle.Render(string(role)))
			renderNode(b, slot.Stack, indent+"    ", active)
		}
	}
}

func backKindName(kind mutate.BackResultKind) string {
	switch kind {
	case mutate.BackHandled:
		return "handled"
	case mutate.BackDelegateToSystem:
		return "delegate to system"
	case mutate.BackCannotHandle:
		return "cannot handle"
	default:
		return "unknown"
	}
}
