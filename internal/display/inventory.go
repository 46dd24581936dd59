package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-stash/internal/container"
	"github.com/pixil98/go-stash/internal/item"
)

// DefaultLineTemplate renders one stack of an inventory listing.
const DefaultLineTemplate = `{{ .Name | default .Id }}{{ if gt .Count 1 }} ({{ .Count }}){{ end }}` +
	`{{ with .Owner }} [owned by {{ . }}]{{ end }}, {{ printf "%.2f" .Weight }}`

var templateFuncs = sprig.TxtFuncMap()

// StackLine is the data available to a line template.
type StackLine struct {
	Id         string
	Name       string
	Kind       string
	InstanceId string
	Count      int
	Weight     float64
	Condition  int
	Charge     int
	Owner      string
	Faction    string
}

// InventoryFormatter renders the contents of a store as text, one line per
// stack, grouped under a heading per kind.
type InventoryFormatter struct {
	line *template.Template
}

// NewInventoryFormatter parses lineTmpl, a text/template with sprig
// functions executed against a StackLine.
func NewInventoryFormatter(lineTmpl string) (*InventoryFormatter, error) {
	tmpl, err := template.New("line").Funcs(templateFuncs).Parse(lineTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &InventoryFormatter{line: tmpl}, nil
}

var defaultFormatter = func() *InventoryFormatter {
	f, err := NewInventoryFormatter(DefaultLineTemplate)
	if err != nil {
		panic(err)
	}
	return f
}()

// FormatInventory renders the stacks of s selected by mask with the
// default line template.
func FormatInventory(s *container.Store, mask item.Mask) (string, error) {
	return defaultFormatter.Format(s, mask)
}

// Format renders the stacks of s selected by mask. Every entry is wrapped to
// DefaultWidth and indented under its heading.
func (f *InventoryFormatter) Format(s *container.Store, mask item.Mask) (string, error) {
	var lines []string
	var weight float64
	heading := item.Kind(-1)

	for st := range s.All(mask) {
		if st.Kind() != heading {
			heading = st.Kind()
			lines = append(lines, Heading(heading.String()))
		}

		line, err := f.render(st)
		if err != nil {
			return "", fmt.Errorf("rendering %q: %w", st.Id(), err)
		}
		lines = append(lines, WrapEntry(line))
		weight += st.Weight()
	}

	if len(lines) == 0 {
		lines = append(lines, WrapEntry("Nothing"))
	}
	if mask == item.MaskAll {
		weight = s.Weight()
	}
	lines = append(lines, fmt.Sprintf("Total weight: %.2f", weight))

	return strings.Join(lines, "\n"), nil
}

func (f *InventoryFormatter) render(st *container.Stack) (string, error) {
	data := StackLine{
		Id:         st.Id().String(),
		Kind:       st.Kind().String(),
		InstanceId: st.InstanceId,
		Count:      st.Count(),
		Weight:     st.Weight(),
		Condition:  st.Condition(),
		Charge:     st.Charge(),
		Owner:      st.Owner.String(),
		Faction:    st.Faction.String(),
	}
	if base := st.Base(); base != nil {
		data.Name = base.Name
	}

	var buf bytes.Buffer
	if err := f.line.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
