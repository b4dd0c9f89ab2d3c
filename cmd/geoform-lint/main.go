package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chimdiadi/go-geoform/pkg/form"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint form definition files for broken geocoding wiring.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"definitions/freight-quote.yaml"}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(path string) ([]violation, error) {
	def, err := form.LoadDefinitionFile(path)
	if err != nil {
		return nil, err
	}

	var result []violation
	if strings.TrimSpace(def.Name) == "" {
		result = append(result, violation{file: path, location: "definition", message: "name is empty"})
	}

	for _, field := range def.Fields {
		ac, ok := form.AutocompleteFor(field)
		if !ok {
			continue
		}
		loc := "fields." + field.Name
		if !form.IsAutocomplete(field) {
			result = append(result, violation{
				file:     path,
				location: loc,
				message:  "endpoint metadata without the " + form.MetaAutocomplete + " marker",
			})
		}
		result = append(result, lintAutocomplete(path, loc, def, field, ac)...)
	}

	return result, nil
}

func lintAutocomplete(file, loc string, def *form.Definition, field form.Field, ac form.Autocomplete) []violation {
	var result []violation

	if strings.TrimSpace(ac.Endpoint.URL) == "" {
		result = append(result, violation{
			file:     file,
			location: loc + " > geo.endpoint.url",
			message:  "endpoint url is empty",
		})
	}

	if ac.LatField == ac.LonField {
		result = append(result, violation{
			file:     file,
			location: loc,
			message:  fmt.Sprintf("latitude and longitude both target %q", ac.LatField),
		})
	}

	result = append(result, lintCoordinate(file, loc, "geo.latField", def, ac.LatField)...)
	result = append(result, lintCoordinate(file, loc, "geo.lonField", def, ac.LonField)...)

	if !selfTokenBound(ac.Endpoint.DynamicParams) {
		result = append(result, violation{
			file:     file,
			location: loc + " > geo.endpoint.dynamicParams",
			message:  "no dynamic param carries the typed text (" + form.SelfToken + ")",
		})
	}

	result = append(result, lintPositiveInt(file, loc, field, form.MetaMinChars)...)
	result = append(result, lintPositiveInt(file, loc, field, form.MetaQuietMs)...)

	return result
}

func lintCoordinate(file, loc, key string, def *form.Definition, name string) []violation {
	target := def.Field(name)
	if target == nil {
		return []violation{{
			file:     file,
			location: loc + " > " + key,
			message:  fmt.Sprintf("coordinate field %q is not defined", name),
		}}
	}

	var result []violation
	if target.Type != form.FieldTypeNumber && target.Type != form.FieldTypeInteger {
		result = append(result, violation{
			file:     file,
			location: loc + " > " + key,
			message:  fmt.Sprintf("coordinate field %q is %s, want number", name, target.Type),
		})
	}
	if !hasRangeRules(*target) {
		result = append(result, violation{
			file:     file,
			location: loc + " > " + key,
			message:  fmt.Sprintf("coordinate field %q has no min/max rules", name),
		})
	}
	return result
}

func lintPositiveInt(file, loc string, field form.Field, key string) []violation {
	raw, ok := field.Metadata[key]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return []violation{{
			file:     file,
			location: loc + " > " + key,
			message:  fmt.Sprintf("%s must be a positive integer, got %q", key, raw),
		}}
	}
	return nil
}

func hasRangeRules(f form.Field) bool {
	var hasMin, hasMax bool
	for _, rule := range f.Rules {
		switch rule.Kind {
		case form.RuleMin:
			hasMin = true
		case form.RuleMax:
			hasMax = true
		}
	}
	return hasMin && hasMax
}

func selfTokenBound(params map[string]string) bool {
	for _, value := range params {
		if value == form.SelfToken {
			return true
		}
	}
	return false
}
