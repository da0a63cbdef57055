package content

import (
	"fmt"
	"strconv"
	"strings"
)

// ThemeCSS generates the site stylesheet from a theme section in
// content-tree form: CSS custom properties on :root plus overrides for the
// utility classes the pages use. A nil or empty theme yields the empty
// string, which resets any previously applied theme.
func ThemeCSS(theme map[string]any) string {
	if theme == nil {
		return ""
	}
	primary, _ := theme["primaryColor"].(string)
	secondary, _ := theme["secondaryColor"].(string)
	fontFamily, _ := theme["fontFamily"].(string)
	headingFont, _ := theme["headingFont"].(string)

	if primary == "" && secondary == "" && fontFamily == "" && headingFont == "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(":root {\n")
	if primary != "" {
		fmt.Fprintf(&b, "  --dynamic-primary: %s;\n", primary)
		if r, g, bl, ok := hexToRGB(primary); ok {
			fmt.Fprintf(&b, "  --dynamic-primary-rgb: %d, %d, %d;\n", r, g, bl)
		}
	}
	if secondary != "" {
		fmt.Fprintf(&b, "  --dynamic-secondary: %s;\n", secondary)
		if r, g, bl, ok := hexToRGB(secondary); ok {
			fmt.Fprintf(&b, "  --dynamic-secondary-rgb: %d, %d, %d;\n", r, g, bl)
		}
	}
	if fontFamily != "" {
		fmt.Fprintf(&b, "  --dynamic-font-body: %s;\n", fontFamily)
	}
	if headingFont != "" {
		fmt.Fprintf(&b, "  --dynamic-font-heading: %s;\n", headingFont)
	}
	b.WriteString("}\n")

	if primary != "" {
		gradientEnd := secondary
		if gradientEnd == "" {
			gradientEnd = primary
		}
		fmt.Fprintf(&b, `
button.bg-primary,
a.bg-primary {
  background-color: %[1]s !important;
}
.text-primary {
  color: %[1]s !important;
}
.border-primary {
  border-color: %[1]s !important;
}
.text-gradient {
  background: linear-gradient(to right, %[1]s, %[2]s, %[1]s) !important;
  -webkit-background-clip: text !important;
  background-clip: text !important;
}
`, primary, gradientEnd)
	}

	if secondary != "" {
		fmt.Fprintf(&b, `
button.bg-secondary,
.bg-secondary {
  background-color: %[1]s !important;
}
.text-secondary {
  color: %[1]s !important;
}
.border-secondary {
  border-color: %[1]s !important;
}
`, secondary)
	}

	if fontFamily != "" {
		fmt.Fprintf(&b, `
body {
  font-family: var(--dynamic-font-body, %s), sans-serif;
}
`, fontFamily)
	}

	if headingFont != "" {
		fmt.Fprintf(&b, `
h1, h2, h3, h4, h5, h6 {
  font-family: var(--dynamic-font-heading, %s), sans-serif !important;
}
`, headingFont)
	}

	return b.String()
}

// hexToRGB parses a #rrggbb color string.
func hexToRGB(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseInt(hex[0:2], 16, 0)
	gv, err2 := strconv.ParseInt(hex[2:4], 16, 0)
	bv, err3 := strconv.ParseInt(hex[4:6], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return int(rv), int(gv), int(bv), true
}
