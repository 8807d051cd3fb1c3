package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dtex/internal/tokens"
)

// Format renders an extraction result in the requested output format.
func Format(res *tokens.ExtractionResult, format string) (string, error) {
	switch strings.ToLower(format) {
	case "text":
		return formatText(res), nil
	case "markdown":
		return formatMarkdown(res), nil
	case "json":
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal result: %w", err)
		}
		return string(b), nil
	case "csv":
		return formatCSV(res)
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatText(res *tokens.ExtractionResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Design tokens for %s\n", res.URL)
	fmt.Fprintf(&sb, "Extracted at %s\n\n", res.ExtractedAt.Format("2006-01-02 15:04:05 MST"))

	if res.Logo != nil {
		fmt.Fprintf(&sb, "Logo: %s", res.Logo.URL)
		if res.Logo.Alt != "" {
			fmt.Fprintf(&sb, " (%s)", res.Logo.Alt)
		}
		sb.WriteString("\n\n")
	}

	if res.Colors != nil {
		fmt.Fprintf(&sb, "Palette (%d colors):\n", len(res.Colors.Palette))
		for _, e := range res.Colors.Palette {
			fmt.Fprintf(&sb, "  %s  x%-5d %-6s %s\n", e.Color, e.Count, e.Confidence, e.Context)
		}
		if len(res.Colors.Semantic) > 0 {
			sb.WriteString("Semantic:\n")
			for _, role := range semanticOrder {
				if c, ok := res.Colors.Semantic[role]; ok {
					fmt.Fprintf(&sb, "  %-10s %s\n", role, c)
				}
			}
		}
		sb.WriteString("\n")
	}

	if res.Typography != nil {
		fmt.Fprintf(&sb, "Typography (%d styles):\n", len(res.Typography.Styles))
		for _, s := range res.Typography.Styles {
			fmt.Fprintf(&sb, "  %s %s/%s weight %s  x%d %s\n", s.Family, s.Size, s.LineHeight, s.Weight, s.Count, s.Confidence)
		}
		sb.WriteString("\n")
	}

	if res.Spacing != nil {
		sb.WriteString("Spacing: ")
		sb.WriteString(joinDimensions(res.Spacing.CommonValues))
		sb.WriteString("\n")
	}
	if res.BorderRadius != nil {
		sb.WriteString("Border radius: ")
		sb.WriteString(joinDimensions(res.BorderRadius.Values))
		sb.WriteString("\n")
	}
	if res.Borders != nil && len(res.Borders.Combinations) > 0 {
		sb.WriteString("Borders:\n")
		for _, c := range res.Borders.Combinations {
			fmt.Fprintf(&sb, "  %s %s %s  x%d\n", c.Width, c.Style, c.Color, c.Count)
		}
	}
	if res.Shadows != nil {
		sb.WriteString("Shadows:\n")
		for _, s := range res.Shadows.Shadows {
			fmt.Fprintf(&sb, "  %s  x%d %s\n", s.Shadow, s.Count, s.Confidence)
		}
	}

	return sb.String()
}

var semanticOrder = []string{"primary", "background", "text", "accent", "link"}

func formatMarkdown(res *tokens.ExtractionResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Design tokens: %s\n\n", res.URL)
	fmt.Fprintf(&sb, "Extracted at %s\n\n", res.ExtractedAt.Format("2006-01-02 15:04:05 MST"))

	if res.Logo != nil && res.Logo.URL != "" {
		fmt.Fprintf(&sb, "![logo](%s)\n\n", res.Logo.URL)
	}

	if res.Colors != nil {
		sb.WriteString("## Colors\n\n")
		writeTable(&sb,
			[]string{"Color", "Count", "Confidence", "Context"},
			func(w func(...string)) {
				for _, e := range res.Colors.Palette {
					w(e.Color, strconv.Itoa(e.Count), string(e.Confidence), e.Context)
				}
			})
		if len(res.Colors.Semantic) > 0 {
			sb.WriteString("### Semantic\n\n")
			writeTable(&sb, []string{"Role", "Color"}, func(w func(...string)) {
				for _, role := range semanticOrder {
					if c, ok := res.Colors.Semantic[role]; ok {
						w(role, c)
					}
				}
			})
		}
	}

	if res.Typography != nil {
		sb.WriteString("## Typography\n\n")
		writeTable(&sb,
			[]string{"Family", "Size", "Weight", "Line height", "Count", "Confidence"},
			func(w func(...string)) {
				for _, s := range res.Typography.Styles {
					w(s.Family, s.Size, s.Weight, s.LineHeight, strconv.Itoa(s.Count), string(s.Confidence))
				}
			})
	}

	if res.Spacing != nil {
		sb.WriteString("## Spacing\n\n")
		writeDimensionTable(&sb, res.Spacing.CommonValues)
	}
	if res.BorderRadius != nil {
		sb.WriteString("## Border radius\n\n")
		writeDimensionTable(&sb, res.BorderRadius.Values)
	}
	if res.Borders != nil && len(res.Borders.Combinations) > 0 {
		sb.WriteString("## Borders\n\n")
		writeTable(&sb, []string{"Width", "Style", "Color", "Count"}, func(w func(...string)) {
			for _, c := range res.Borders.Combinations {
				w(c.Width, c.Style, c.Color, strconv.Itoa(c.Count))
			}
		})
	}
	if res.Shadows != nil {
		sb.WriteString("## Shadows\n\n")
		writeTable(&sb, []string{"Shadow", "Count", "Confidence"}, func(w func(...string)) {
			for _, s := range res.Shadows.Shadows {
				w(s.Shadow, strconv.Itoa(s.Count), string(s.Confidence))
			}
		})
	}

	return sb.String()
}

// writeTable emits a standard markdown table: header row, separator, then
// whatever rows the callback writes.
func writeTable(sb *strings.Builder, headers []string, rows func(w func(...string))) {
	sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	rows(func(cells ...string) {
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	})
	sb.WriteString("\n")
}

func writeDimensionTable(sb *strings.Builder, values []tokens.DimensionValue) {
	writeTable(sb, []string{"Value", "Count", "Confidence"}, func(w func(...string)) {
		for _, v := range values {
			w(v.Value, strconv.Itoa(v.Count), string(v.Confidence))
		}
	})
}

func joinDimensions(values []tokens.DimensionValue) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%s(x%d)", v.Value, v.Count))
	}
	return strings.Join(parts, " ")
}

// formatCSV flattens every token into category/name/value/count/confidence rows.
func formatCSV(res *tokens.ExtractionResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"category", "name", "value", "count", "confidence"})

	if res.Logo != nil {
		_ = w.Write([]string{"logo", res.Logo.Kind, res.Logo.URL, "1", ""})
	}
	if res.Colors != nil {
		for _, e := range res.Colors.Palette {
			_ = w.Write([]string{"color", e.Context, e.Color, strconv.Itoa(e.Count), string(e.Confidence)})
		}
		for _, role := range semanticOrder {
			if c, ok := res.Colors.Semantic[role]; ok {
				_ = w.Write([]string{"semantic", role, c, "", ""})
			}
		}
	}
	if res.Typography != nil {
		for _, s := range res.Typography.Styles {
			value := strings.Join([]string{s.Family, s.Size, s.Weight, s.LineHeight}, " / ")
			_ = w.Write([]string{"typography", s.Context, value, strconv.Itoa(s.Count), string(s.Confidence)})
		}
	}
	if res.Spacing != nil {
		for _, v := range res.Spacing.CommonValues {
			_ = w.Write([]string{"spacing", "", v.Value, strconv.Itoa(v.Count), string(v.Confidence)})
		}
	}
	if res.BorderRadius != nil {
		for _, v := range res.BorderRadius.Values {
			_ = w.Write([]string{"borderRadius", "", v.Value, strconv.Itoa(v.Count), string(v.Confidence)})
		}
	}
	if res.Borders != nil {
		for _, c := range res.Borders.Combinations {
			value := c.Width + " " + c.Style + " " + c.Color
			_ = w.Write([]string{"border", "", value, strconv.Itoa(c.Count), ""})
		}
	}
	if res.Shadows != nil {
		for _, s := range res.Shadows.Shadows {
			_ = w.Write([]string{"shadow", "", s.Shadow, strconv.Itoa(s.Count), string(s.Confidence)})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.String(), nil
}
