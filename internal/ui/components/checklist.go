package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/conjugo/internal/ui/theme"
)

// CheckItem is one toggleable entry of a CheckList.
type CheckItem struct {
	Label   string
	Value   string
	Checked bool
}

// CheckList is a titled list of toggleable options.
type CheckList struct {
	Title string
	Items []CheckItem
}

// NewCheckList creates a check list with every value checked. labels maps a
// value to its display label; values without a label are shown as is.
func NewCheckList(title string, values []string, labels map[string]string) CheckList {
	items := make([]CheckItem, len(values))
	for i, v := range values {
		label := v
		if l, ok := labels[v]; ok && l != "" {
			label = l
		}
		items[i] = CheckItem{Label: label, Value: v, Checked: true}
	}
	return CheckList{Title: title, Items: items}
}

// Toggle flips the item at index i. Out-of-range indexes are ignored.
func (c *CheckList) Toggle(i int) {
	if i < 0 || i >= len(c.Items) {
		return
	}
	c.Items[i].Checked = !c.Items[i].Checked
}

// SetAll checks or unchecks every item.
func (c *CheckList) SetAll(checked bool) {
	for i := range c.Items {
		c.Items[i].Checked = checked
	}
}

// Values returns the values of the checked items, in list order.
func (c CheckList) Values() []string {
	var out []string
	for _, it := range c.Items {
		if it.Checked {
			out = append(out, it.Value)
		}
	}
	return out
}

// Len returns the number of items.
func (c CheckList) Len() int { return len(c.Items) }

// View renders the list. cursor is the index of the focused item, or -1
// when the list does not hold the focus.
func (c CheckList) View(cursor int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	s := titleStyle.Render(c.Title) + "\n"

	for i, it := range c.Items {
		prefix := "  "
		if i == cursor {
			prefix = "▸ "
		}
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		line := prefix + box + " " + it.Label

		switch {
		case i == cursor:
			s += theme.Selected.Render(line) + "\n"
		case it.Checked:
			s += theme.Unselected.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		}
	}

	return s
}
