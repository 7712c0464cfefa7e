package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var requiredKeys = []string{
	"brand", "audience", "updatedAt", "headline", "offer",
	"youtube", "instagram", "buttons", "contact",
}

var validateCmd = &cobra.Command{
	Use:   "validate [content-file]",
	Short: "Check that a written content file is structurally valid",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		} else {
			cfg, err := LoadConfig(settingsPath)
			if err != nil {
				return &exitError{code: exitFatal, err: err}
			}
			path = cfg.Settings.OutputPath
		}

		problems, err := ValidateFile(path)
		if err != nil {
			return &exitError{code: exitFatal, err: err}
		}
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintln(cmd.ErrOrStderr(), "✗", p)
			}
			return &exitError{code: exitFatal, err: fmt.Errorf("%s: %d problem(s)", path, len(problems))}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓", path, "is valid")
		return nil
	},
}

// ValidateFile reads a content file and returns every structural problem found
func ValidateFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ValidateContent(data)
}

// ValidateContent checks the raw JSON of a content document
func ValidateContent(data []byte) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}

	var problems []string
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			problems = append(problems, "missing key "+key)
		}
	}
	for _, key := range []string{"buttons", "contact"} {
		if v, ok := raw[key]; ok && strings.TrimSpace(string(v)) == "null" {
			problems = append(problems, key+" is null")
		}
	}

	var doc OutputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return append(problems, "invalid field types: "+err.Error()), nil
	}
	return append(problems, validateDocument(doc)...), nil
}

func validateDocument(doc OutputDocument) []string {
	var problems []string

	for _, f := range []struct{ name, value string }{
		{"brand", doc.Brand},
		{"audience", doc.Audience},
		{"headline", doc.Headline},
		{"offer", doc.Offer},
	} {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, f.name+" is empty")
		}
	}
	if _, err := time.Parse(time.RFC3339, doc.UpdatedAt); err != nil {
		problems = append(problems, "updatedAt is not an ISO-8601 timestamp")
	}

	expected := map[string]string{}
	if doc.YouTube != nil && doc.YouTube.URL != "" {
		expected["YouTube"] = doc.YouTube.URL
	}
	if doc.Instagram != nil && doc.Instagram.URL != "" {
		expected["Instagram"] = doc.Instagram.URL
	}

	seen := map[string]bool{}
	for _, b := range doc.Buttons {
		if seen[b.Label] {
			problems = append(problems, "duplicate button "+b.Label)
			continue
		}
		seen[b.Label] = true

		href, ok := expected[b.Label]
		switch {
		case !ok:
			problems = append(problems, "button "+b.Label+" has no matching platform item")
		case href != b.Href:
			problems = append(problems, "button "+b.Label+" does not link to the platform item")
		}
	}
	for _, label := range []string{"YouTube", "Instagram"} {
		if _, ok := expected[label]; ok && !seen[label] {
			problems = append(problems, "missing button "+label)
		}
	}

	if len(doc.Contact) == 0 {
		problems = append(problems, "contact list is empty")
	}
	for _, c := range doc.Contact {
		if c.Label == "" || c.Href == "" {
			problems = append(problems, "contact entry with empty label or href")
		}
	}

	return problems
}
