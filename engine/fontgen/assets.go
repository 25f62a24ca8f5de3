package fontgen

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/core/locate/resources"
	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/mailgun/raymond/v2"
	"golang.org/x/net/html"
)

// unicodeHex formats a codepoint as lower-case hex digits. Template data may
// hand it over as any kind of number.
func unicodeHex(cp interface{}) string {
	switch n := cp.(type) {
	case int:
		return strconv.FormatInt(int64(n), 16)
	case int32:
		return strconv.FormatInt(int64(n), 16)
	case int64:
		return strconv.FormatInt(n, 16)
	case float64:
		return strconv.FormatInt(int64(n), 16)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return strconv.FormatInt(int64(i), 16)
		}
		return n
	}
	return fmt.Sprint(cp)
}

// codepointMap maps icon names to codepoints. Templates iterate it in
// codepoint order.
type codepointMap map[string]int

func (m codepointMap) names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]] != m[names[j]] {
			return m[names[i]] < m[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// eachHelper replaces the built-in #each block helper, which walks maps in
// random order. Codepoint maps are walked by codepoint, other maps by key.
func eachHelper(context interface{}, options *raymond.Options) interface{} {
	if !raymond.IsTrue(context) {
		return options.Inverse()
	}
	var out strings.Builder
	iterate := func(n, i int, key, value interface{}) {
		frame := options.NewDataFrame()
		frame.Set("index", i)
		frame.Set("key", key)
		frame.Set("first", i == 0)
		frame.Set("last", i == n-1)
		out.WriteString(options.FnCtxData(value, frame))
	}
	if cps, ok := context.(codepointMap); ok {
		names := cps.names()
		for i, name := range names {
			iterate(len(names), i, name, cps[name])
		}
		return out.String()
	}
	val := reflect.ValueOf(context)
	switch val.Kind() {
	case reflect.Array, reflect.Slice:
		for i := 0; i < val.Len(); i++ {
			iterate(val.Len(), i, i, val.Index(i).Interface())
		}
	case reflect.Map:
		keys := val.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for i, k := range keys {
			iterate(len(keys), i, k.Interface(), val.MapIndex(k).Interface())
		}
	default:
		return options.FnWith(context)
	}
	return out.String()
}

// templateContext builds the data handed to the CSS and HTML templates.
func templateContext(opts *Options, icons []icon, fontSrc string) map[string]interface{} {
	codepoints := make(codepointMap, len(icons))
	glyphs := make([]map[string]interface{}, 0, len(icons))
	for _, ic := range icons {
		hex := unicodeHex(ic.codepoint)
		codepoints[ic.name] = ic.codepoint
		glyphs = append(glyphs, map[string]interface{}{
			"name":       ic.name,
			"prefix":     opts.Prefix,
			"codepoint":  ic.codepoint,
			"hex":        hex,
			"cssContent": `\` + hex,
		})
	}
	return map[string]interface{}{
		"name":        opts.Name,
		"prefix":      opts.Prefix,
		"version":     opts.Version,
		"description": opts.Description,
		"fontSrc":     fontSrc,
		"assets": map[string]string{
			"ttf":  opts.Name + ".ttf",
			"css":  opts.Name + ".css",
			"html": opts.Name + ".html",
		},
		"codepoints": codepoints,
		"glyphs":     glyphs,
	}
}

func render(t resources.Template, ctx map[string]interface{}) (string, error) {
	tpl, err := raymond.Parse(t.Source)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "cannot parse template %s (%s)", t.Name, t.Origin)
	}
	tpl.RegisterHelper("each", eachHelper)
	tpl.RegisterHelper("unicodeHex", unicodeHex)
	tpl.RegisterHelper("codepoint", unicodeHex)
	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "cannot render template %s (%s)", t.Name, t.Origin)
	}
	return out, nil
}

// checkCSS parses the rendered style sheet and returns the number of
// selectors carrying a 'content' declaration.
func checkCSS(source string) (int, error) {
	sheet, err := parser.Parse(source)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "rendered style sheet is not valid CSS")
	}
	return countContentRules(sheet.Rules), nil
}

func countContentRules(rules []*css.Rule) int {
	n := 0
	for _, r := range rules {
		if r.Kind == css.AtRule {
			n += countContentRules(r.Rules)
			continue
		}
		for _, d := range r.Declarations {
			if d.Property == "content" {
				n += len(r.Selectors)
				break
			}
		}
	}
	return n
}

var previewEntries = cascadia.MustCompile("[data-codepoint]")

// checkHTML parses the rendered preview page and returns the number of
// elements tagged with a codepoint.
func checkHTML(source string) (int, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "rendered preview is not valid HTML")
	}
	return len(previewEntries.MatchAll(doc)), nil
}
