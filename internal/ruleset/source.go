package ruleset

// source.go — rule-table ingestion.
//
// Rule tables arrive either as tab-separated exports (the shape produced by
// "publish to web" spreadsheet endpoints) or as YAML files. Load fetches
// from a URL or reads from disk and picks the parser by extension.

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Column headers expected in tabular rule sources.
const (
	colRuleNumber = "Rule Number"
	colLogic      = "Logic"
	colProperty   = "Property Name"
	colPredicate  = "Predicate"
	colValue      = "Value"
	colMessage    = "Message"
	colSeverity   = "Report Severity"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Load reads a rule table from a URL (http/https) or a local file path.
// Sources ending in .yaml or .yml parse as YAML; everything else parses as
// tab-separated values.
func Load(src string) (*Set, error) {
	var data []byte
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := httpClient.Get(src)
		if err != nil {
			return nil, fmt.Errorf("fetch rules: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch rules: %s returned %s", src, resp.Status)
		}
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("fetch rules: %w", err)
		}
	} else {
		var err error
		data, err = os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read rules: %w", err)
		}
	}

	switch strings.ToLower(path.Ext(src)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseTSV(strings.NewReader(string(data)))
	}
}

// ParseTSV parses a tab-separated rule table. The first record is the
// header; cells under absent columns read as empty. Unknown predicate
// keywords fail the parse.
func ParseTSV(r io.Reader) (*Set, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse rules: empty table")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	cell := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	_, hasMessage := col[colMessage]
	_, hasSeverity := col[colSeverity]

	set := &Set{HasMetadata: hasMessage && hasSeverity}
	for _, record := range records[1:] {
		row := Row{
			RuleNumber: cell(record, colRuleNumber),
			Logic:      cell(record, colLogic),
			Property:   cell(record, colProperty),
			Predicate:  cell(record, colPredicate),
			Value:      cell(record, colValue),
			Message:    cell(record, colMessage),
			Severity:   cell(record, colSeverity),
		}
		if row.RuleNumber == "" && row.Property == "" && row.Predicate == "" {
			continue // blank spreadsheet row
		}
		set.Rules = append(set.Rules, row)
	}

	if err := set.validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// ParseYAML parses a YAML rule file of the form:
//
//	rules:
//	  - rule_number: "1"
//	    logic: WHERE
//	    property: category
//	    predicate: equals
//	    value: Walls
//	    message: ...
//	    severity: Warning
//
// YAML sources always carry the metadata fields, so HasMetadata is true.
func ParseYAML(data []byte) (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	set.HasMetadata = true
	if err := set.validate(); err != nil {
		return nil, err
	}
	return &set, nil
}
