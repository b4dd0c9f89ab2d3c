package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/renderers/tui"
)

func runPick(ctx context.Context, args []string, logger *zap.SugaredLogger) error {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	definition := fs.String("definition", "", "form definition YAML (embedded freight quote when empty)")
	field := fs.String("field", "", "autocomplete field to drive (first one when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	def, err := loadDefinition(*definition)
	if err != nil {
		return err
	}

	client, err := newGeoapifyClient()
	if err != nil {
		return err
	}

	var options []tui.Option
	if *field != "" {
		options = append(options, tui.WithField(*field))
	}
	picker, err := tui.NewPicker(client, options...)
	if err != nil {
		return err
	}

	rec := form.NewRecord(nil, nil)
	chosen, err := picker.Run(ctx, def, rec)
	if err != nil {
		return err
	}
	logger.Infow("origin selected", "label", chosen.Label, "lat", chosen.Lat, "lon", chosen.Lon)

	out, err := json.MarshalIndent(rec.Values(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
