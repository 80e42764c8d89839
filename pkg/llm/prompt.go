package llm

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const contextPlaceholder = "{context}"

const systemPrompt = `You are a financial news editor. Summarize the material you are given for a retail investor.

Rules:
1. Neutral, calm tone. No urgency words, no ALL CAPS.
2. Keep all facts: numbers, names, dates, percentages.
3. At most five short sentences, plain text, no markdown.
4. Do not speculate beyond the material.`

type Template struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

type templateFile struct {
	Prompts []Template `yaml:"prompts"`
}

// LoadTemplates reads the prompt list from a YAML file of the form
//
//	prompts:
//	  - name: short
//	    template: "Summarize: {context}"
//
// Entries keep their file order. A missing file, an empty list or a blank
// template is a configuration error.
func LoadTemplates(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNoTemplates, path)
		}
		return nil, fmt.Errorf("llm: failed to read %s: %w", path, err)
	}

	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrConfig, path, err)
	}

	if len(f.Prompts) == 0 {
		return nil, fmt.Errorf("%w: %s has no prompts", ErrNoTemplates, path)
	}
	// Templates are selected by position, so a blank entry cannot be skipped.
	for i, p := range f.Prompts {
		if strings.TrimSpace(p.Template) == "" {
			return nil, fmt.Errorf("%w: %s: prompt %d (%q) has an empty template", ErrConfig, path, i, p.Name)
		}
	}
	return f.Prompts, nil
}

// RenderTemplate substitutes {context}. Templates without the placeholder get
// the input appended after a blank line.
func RenderTemplate(template, input string) string {
	if strings.Contains(template, contextPlaceholder) {
		return strings.ReplaceAll(template, contextPlaceholder, input)
	}
	return strings.TrimRight(template, "\n") + "\n\n" + input
}
