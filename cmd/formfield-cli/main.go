package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	formfield "github.com/goliatone/go-formfield"
	"github.com/goliatone/go-formfield/components/timezones"
	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/model"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/renderers/bubble"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

const (
	timezoneFormat = "timezone"
	fetchTimeout   = 30 * time.Second
)

type options struct {
	source     string
	schema     string
	configPath string
	valuesPath string
	ui         string
	format     string
	output     string
}

func main() {
	var opts options
	flag.StringVar(&opts.source, "source", "", "OpenAPI document path or URL")
	flag.StringVar(&opts.schema, "schema", "", "component schema or operationId to edit")
	flag.StringVar(&opts.configPath, "config", "", "widget configuration file (YAML or JSON)")
	flag.StringVar(&opts.valuesPath, "values", "", "JSON file with initial values")
	flag.StringVar(&opts.ui, "ui", "survey", "interface: survey or bubble")
	flag.StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.Parse()

	if opts.source == "" || opts.schema == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := run(ctx, opts)
	if err != nil {
		log.Fatalf("formfield: %v", err)
	}
	if opts.output == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		log.Fatalf("formfield: write output: %v", err)
	}
	fmt.Printf("Values written to %s\n", opts.output)
}

func run(ctx context.Context, opts options) ([]byte, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	values, err := loadValues(opts.valuesPath)
	if err != nil {
		return nil, err
	}
	form, factory, err := prepare(ctx, opts.source, opts.schema, cfg)
	if err != nil {
		return nil, err
	}

	format := tui.OutputFormat(opts.format)
	switch strings.ToLower(opts.ui) {
	case "bubble":
		collected, err := bubble.Run(ctx, form, values, factory)
		if err != nil {
			return nil, err
		}
		return tui.Encode(collected, format)
	case "survey", "":
		renderer := tui.New(tui.WithFactory(factory), tui.WithOutputFormat(format))
		return renderer.Render(ctx, form, tui.RenderOptions{Values: values})
	default:
		return nil, fmt.Errorf("unknown ui %q", opts.ui)
	}
}

// prepare loads the schema, builds and decorates the form and returns a
// factory that knows the form's option sources.
func prepare(ctx context.Context, location, name string, cfg *config.Config) (model.FormModel, *widgets.Factory, error) {
	src, err := pkgopenapi.SourceFor(location)
	if err != nil {
		return model.FormModel{}, nil, err
	}
	schema, err := formfield.LoadSchema(ctx, formfield.NewLoader(pkgopenapi.WithHTTPFallback(fetchTimeout)), formfield.NewParser(), src, name)
	if err != nil {
		return model.FormModel{}, nil, err
	}
	form, err := model.NewBuilder().Build(name, schema)
	if err != nil {
		return model.FormModel{}, nil, err
	}

	registry := widgets.NewRegistry()
	registry.Register(widgets.WidgetAsyncSelect, 110, func(f model.Field) bool {
		return strings.EqualFold(f.Format, timezoneFormat)
	})
	if err := model.Decorate(&form, config.NewDecorator(cfg), registry); err != nil {
		return model.FormModel{}, nil, err
	}

	factoryOpts := []widgets.Option{widgets.WithRegistry(registry), widgets.WithConfig(cfg)}
	zones := timezones.NewSource()
	model.Walk(form.Fields, func(f model.Field) bool {
		if strings.EqualFold(f.Format, timezoneFormat) {
			factoryOpts = append(factoryOpts, widgets.WithSource(f.Path, zones))
		}
		return true
	})
	return form, widgets.NewFactory(factoryOpts...), nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open values: %w", err)
	}
	defer f.Close()
	return decodeValues(f)
}

func decodeValues(r io.Reader) (map[string]any, error) {
	var values map[string]any
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}
