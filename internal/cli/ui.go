package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/tburdett/owl2json/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(format, path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path) + " " + StyleDim.Render("("+format+")"))
}

func printKeyValue(key, value string) {
	fmt.Println("  " + styleKey.Render(key) + " " + value)
}

// =============================================================================
// Conversion Summary
// =============================================================================

// printResult summarizes a finished conversion: tree shape, then the files
// written in the order the formats were requested.
func printResult(result *pipeline.Result, opts pipeline.Options) {
	printSuccess("Wrote %s", StyleTitle.Render(result.Root.Name))

	o, s := result.Ontology, result.BuildStats
	printKeyValue("classes", StyleNumber.Render(strconv.Itoa(o.ClassCount())))
	printKeyValue("labelled", StyleNumber.Render(strconv.Itoa(len(o.ClassLabels()))))
	printKeyValue("nodes", StyleNumber.Render(strconv.Itoa(s.Nodes)))
	printKeyValue("size", StyleNumber.Render(strconv.Itoa(result.Root.Size)))
	printKeyValue("depth", StyleNumber.Render(strconv.Itoa(result.Root.Depth())))
	if result.MinSize > 0 {
		printKeyValue("min size", StyleNumber.Render(strconv.Itoa(result.MinSize)))
	}
	if s.Wrapped {
		printDetail("%d root classes wrapped under the ontology IRI", s.Roots)
	}
	if s.BackEdges > 0 {
		printWarning("%d subclass edges dropped to break cycles", s.BackEdges)
	}
	if s.Grouped > 0 {
		printDetail("%d small classes folded into %d \"Other\" nodes", s.Grouped, s.Aggregates)
	}

	for _, f := range opts.Formats {
		if path, ok := result.Files[f]; ok {
			printFile(f, path)
		}
	}
}
