// Package catalog defines the transactional email templates that sestmpl provisions.
package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Template is a single email template definition.
// Placeholder tokens such as {{preferredName}} are left untouched; they are
// substituted by SES at send time.
type Template struct {
	Name    string `yaml:"name"    json:"name"`
	Subject string `yaml:"subject" json:"subject"`
	HTML    string `yaml:"html"    json:"html"`
	Text    string `yaml:"text"    json:"text"`
}

// Catalog is an ordered set of templates with unique names.
type Catalog []Template

// file is the on-disk YAML layout of a catalog.
type file struct {
	Templates []Template `yaml:"templates"`
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// Placeholders returns the distinct placeholder identifiers used by the
// template, in the order they first appear across subject, HTML and text.
func (t Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, part := range []string{t.Subject, t.HTML, t.Text} {
		for _, m := range placeholderRe.FindAllStringSubmatch(part, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				names = append(names, m[1])
			}
		}
	}
	return names
}

// Names returns the template names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, t := range c {
		names[i] = t.Name
	}
	return names
}

// Find returns the template with the given name.
func (c Catalog) Find(name string) (Template, bool) {
	for _, t := range c {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Select returns the named templates in catalog order.
// With no names it returns the whole catalog.
func (c Catalog) Select(names ...string) (Catalog, error) {
	if len(names) == 0 {
		return c, nil
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := c.Find(name); !ok {
			return nil, fmt.Errorf("unknown template: %s", name)
		}
		want[name] = true
	}
	var selected Catalog
	for _, t := range c {
		if want[t.Name] {
			selected = append(selected, t)
		}
	}
	return selected, nil
}

// Validate checks every template and returns all problems found as one error.
func (c Catalog) Validate() error {
	var result *multierror.Error
	seen := make(map[string]int)

	for i, t := range c {
		label := fmt.Sprintf("template #%d", i+1)
		if t.Name == "" {
			result = multierror.Append(result, fmt.Errorf("%s: name is required", label))
		} else {
			label = fmt.Sprintf("template %q", t.Name)
			if first, dup := seen[t.Name]; dup {
				result = multierror.Append(result, fmt.Errorf("%s: duplicate name (first defined at #%d)", label, first+1))
			} else {
				seen[t.Name] = i
			}
		}
		if strings.TrimSpace(t.Subject) == "" {
			result = multierror.Append(result, fmt.Errorf("%s: subject is required", label))
		}
		if strings.TrimSpace(t.HTML) == "" && strings.TrimSpace(t.Text) == "" {
			result = multierror.Append(result, fmt.Errorf("%s: html or text body is required", label))
		}
		for _, part := range []struct{ field, value string }{
			{"subject", t.Subject}, {"html", t.HTML}, {"text", t.Text},
		} {
			if strings.Count(part.value, "{{") != strings.Count(part.value, "}}") {
				result = multierror.Append(result, fmt.Errorf("%s: unbalanced placeholder braces in %s", label, part.field))
			}
		}
	}

	return result.ErrorOrNil()
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("parsing catalog: no templates defined")
	}
	return Catalog(f.Templates), nil
}

// LoadFile reads and validates a YAML catalog from path.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return c, nil
}
