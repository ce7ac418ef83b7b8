package enrich

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.trai.ch/zerr"
)

// ingredientEntry matches the start of an ingredient object literal keyed by
// name, in either quoted or bare-identifier form:
//
//	'blackberry': {
//	blackberry: {
var ingredientEntry = regexp.MustCompile(`(?m)^\s*(?:'([^']+)'|"([^"]+)"|([\w$]+))\s*:\s*\{`)

var profileKey = regexp.MustCompile(`nutritionalProfile\s*:\s*\{`)

// ScanIngredients extracts the ingredient names declared in a data file.
// Only keys one brace level deep count: those are the entries of the
// exported ingredient map, not nested properties like elementalProperties.
func ScanIngredients(content string) []string {
	var names []string
	depth := 0

	for _, line := range strings.Split(content, "\n") {
		if depth == 1 {
			if m := ingredientEntry.FindStringSubmatch(line); m != nil {
				name := m[1]
				if name == "" {
					name = m[2]
				}
				if name == "" {
					name = m[3]
				}
				names = append(names, name)
			}
		}
		depth += braceDelta(line)
	}

	return names
}

// braceDelta is the net brace count of one line, ignoring braces inside
// strings and line comments.
func braceDelta(line string) int {
	delta := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return delta
			}
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

// HasProfileData reports whether the ingredient's nutritionalProfile literal
// already carries data. Missing or empty literals count as unenriched.
func HasProfileData(content, ingredient string) bool {
	literal, _, _, err := findProfileLiteral(content, ingredient)
	if err != nil {
		return false
	}
	inner := strings.TrimSpace(literal[strings.Index(literal, "{")+1 : strings.LastIndex(literal, "}")])
	return inner != ""
}

// RewriteProfile replaces the ingredient's nutritionalProfile object literal
// with the fetched profile, preserving the entry's indentation.
func RewriteProfile(content, ingredient string, profile domain.NutritionProfile) (string, error) {
	_, start, end, err := findProfileLiteral(content, ingredient)
	if err != nil {
		return "", err
	}

	indent := lineIndent(content, start)
	return content[:start] + renderProfile(profile, indent) + content[end:], nil
}

// findProfileLiteral locates the balanced nutritionalProfile {...} literal
// inside the named ingredient's entry. It returns the literal text and its
// [start, end) offsets within content.
func findProfileLiteral(content, ingredient string) (string, int, int, error) {
	entryStart := findEntry(content, ingredient)
	if entryStart < 0 {
		return "", 0, 0, zerr.With(domain.ErrProfileLiteralNotFound, "ingredient", ingredient)
	}

	entryEnd := balancedEnd(content, strings.Index(content[entryStart:], "{")+entryStart)
	if entryEnd < 0 {
		return "", 0, 0, zerr.With(domain.ErrProfileLiteralNotFound, "ingredient", ingredient)
	}

	entry := content[entryStart:entryEnd]
	loc := profileKey.FindStringIndex(entry)
	if loc == nil {
		return "", 0, 0, zerr.With(domain.ErrProfileLiteralNotFound, "ingredient", ingredient)
	}

	braceStart := entryStart + loc[1] - 1
	braceEnd := balancedEnd(content, braceStart)
	if braceEnd < 0 {
		return "", 0, 0, zerr.With(domain.ErrProfileLiteralNotFound, "ingredient", ingredient)
	}

	start := entryStart + loc[0]
	return content[start:braceEnd], start, braceEnd, nil
}

func findEntry(content, ingredient string) int {
	for _, form := range []string{
		"'" + ingredient + "'",
		`"` + ingredient + `"`,
		ingredient,
	} {
		for _, m := range ingredientEntry.FindAllStringIndex(content, -1) {
			match := content[m[0]:m[1]]
			if strings.Contains(match, form+":") || strings.Contains(match, form+" :") {
				return m[0]
			}
		}
	}
	return -1
}

// balancedEnd returns the offset just past the brace that closes the object
// opened at openBrace, skipping braces inside strings.
func balancedEnd(content string, openBrace int) int {
	if openBrace < 0 || openBrace >= len(content) || content[openBrace] != '{' {
		return -1
	}

	depth := 0
	var quote byte
	for i := openBrace; i < len(content); i++ {
		c := content[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func lineIndent(content string, offset int) string {
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	line := content[lineStart:offset]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// renderProfile prints the profile as a TypeScript object literal. Field
// order matches the web app's data files so diffs stay reviewable.
func renderProfile(p domain.NutritionProfile, indent string) string {
	inner := indent + "  "
	var sb strings.Builder
	sb.WriteString("nutritionalProfile: {\n")

	fields := []struct {
		key   string
		value float64
	}{
		{"calories", p.Calories},
		{"protein", p.Protein},
		{"carbohydrates", p.Carbohydrates},
		{"fat", p.Fat},
		{"fiber", p.Fiber},
		{"sugar", p.Sugar},
		{"sodium", p.Sodium},
		{"potassium", p.Potassium},
		{"calcium", p.Calcium},
		{"iron", p.Iron},
		{"magnesium", p.Magnesium},
		{"vitaminC", p.VitaminC},
		{"vitaminA", p.VitaminA},
		{"vitaminK", p.VitaminK},
		{"folate", p.Folate},
	}
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("%s%s: %s,\n", inner, f.key, formatNumber(f.value)))
	}
	if p.Source != "" {
		sb.WriteString(fmt.Sprintf("%ssource: '%s',\n", inner, p.Source))
	}

	sb.WriteString(indent + "}")
	return sb.String()
}

// formatNumber prints values the way the data files do: integers bare,
// fractions with their significant digits.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
