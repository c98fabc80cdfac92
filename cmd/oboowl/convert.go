package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/oboowl/config"
	"github.com/c360studio/oboowl/convert"
	"github.com/c360studio/oboowl/export"
	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/pipeline"
	obowatcher "github.com/c360studio/oboowl/processor/obo-watcher"
	"github.com/c360studio/oboowl/storage"
	"github.com/spf13/cobra"
)

type convertFlags struct {
	outDir          string
	format          string
	sqlitePath      string
	defaultOntology string
	idSpaces        map[string]string
	equivalentXrefs []string
	watch           bool
}

func convertCmd(g *globalFlags) *cobra.Command {
	f := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [files, directories or globs...]",
		Short: "Convert OBO documents to OWL",
		Long: `Convert translates each input document and writes one output file per
input. Directories are searched for *.obo files; globs support **.

A document whose conversion fails is not written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup()
			if err != nil {
				return err
			}
			f.apply(cfg)
			return runConvert(cmd.Context(), cfg, logger, args, f.watch)
		},
	}

	cmd.Flags().StringVarP(&f.outDir, "out", "o", "", "Output directory (default: next to each input)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format ("+strings.Join(export.Formats(), ", ")+")")
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite", "", "Also store results in this SQLite database")
	cmd.Flags().StringVar(&f.defaultOntology, "default-ontology", "", "Ontology name for documents without an ontology tag")
	cmd.Flags().StringToStringVar(&f.idSpaces, "idspace", nil, "Id space IRI prefixes (NS=IRI,...)")
	cmd.Flags().StringSliceVar(&f.equivalentXrefs, "equivalent-xref", nil, "Xref namespaces treated as equivalent relations")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Re-convert inputs when they change")

	return cmd
}

// apply overrides cfg with the flags that were set.
func (f *convertFlags) apply(cfg *config.Config) {
	cfg.Merge(&config.Config{
		Conversion: config.ConversionConfig{
			DefaultOntology:        f.defaultOntology,
			IDSpaces:               f.idSpaces,
			EquivalentXrefPrefixes: f.equivalentXrefs,
		},
		Output: config.OutputConfig{
			Format:    f.format,
			Directory: f.outDir,
		},
		Storage: config.StorageConfig{
			SQLitePath: f.sqlitePath,
		},
	})
}

func runConvert(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string, watch bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format, ok := export.ParseFormat(cfg.Output.Format)
	if !ok {
		return fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, cfg.Output.Format)
	}

	inputs, err := expandInputs(args, cfg.Watch.Extensions)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input documents match %s", strings.Join(args, " "))
	}

	var opts []pipeline.Option
	opts = append(opts, pipeline.WithLogger(logger))
	if cfg.Storage.SQLitePath != "" {
		store, err := storage.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, pipeline.WithStore(store))
	}

	p, err := pipeline.New(convert.New(converterOptions(cfg, logger)...), format, opts...)
	if err != nil {
		return err
	}

	var failed []string
	for _, path := range inputs {
		if err := convertFile(ctx, p, path, cfg.Output.Directory, logger); err != nil {
			logger.Error("Conversion failed", "path", path, "error", err)
			failed = append(failed, path)
		}
	}

	if watch {
		return watchInputs(ctx, cfg, p, args, logger)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d documents failed: %s", len(failed), len(inputs), strings.Join(failed, ", "))
	}
	return nil
}

// convertFile converts one document and writes the result. Nothing is
// written when conversion fails.
func convertFile(ctx context.Context, p *pipeline.Pipeline, path, outDir string, logger *slog.Logger) error {
	doc, err := obo.ParseFile(path)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res, err := p.Run(ctx, pipeline.OntologyName(doc, base), doc)
	if err != nil {
		return err
	}

	out := outputPath(path, outDir, p.Format())
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(res.Output), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("Converted document",
		"input", path,
		"output", out,
		"ontology", string(res.Report.OntologyIRI),
		"axioms", res.Report.AxiomCount(),
		"skipped", res.Report.SkippedCount(),
		"errors", res.Report.Errors)
	return nil
}

// outputPath places the converted file in outDir, or next to the input
// when outDir is empty.
func outputPath(input, outDir string, format export.Format) string {
	info, _ := export.GetFormatInfo(format)
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + info.Extension
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(outDir, name)
}

// expandInputs resolves files, directories and doublestar globs into a
// sorted, duplicate-free list of document paths.
func expandInputs(args, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".obo"}
	}
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			for _, ext := range extensions {
				matches, err := doublestar.FilepathGlob(filepath.Join(arg, "**", "*"+ext))
				if err != nil {
					return nil, fmt.Errorf("search %s: %w", arg, err)
				}
				for _, m := range matches {
					add(m)
				}
			}
		case err == nil:
			add(arg)
		case errors.Is(err, os.ErrNotExist) && doublestar.ValidatePathPattern(arg) && strings.ContainsAny(arg, "*?[{"):
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("expand %s: %w", arg, err)
			}
			for _, m := range matches {
				add(m)
			}
		default:
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
	}
	sort.Strings(out)
	return out, nil
}

func watchInputs(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, args []string, logger *slog.Logger) error {
	var roots []string
	for _, arg := range args {
		if _, err := os.Stat(arg); err == nil {
			roots = append(roots, arg)
			continue
		}
		// Watch the static prefix of a glob.
		base, _ := doublestar.SplitPattern(filepath.ToSlash(arg))
		roots = append(roots, filepath.FromSlash(base))
	}

	w, err := obowatcher.New(obowatcher.Config{
		Debounce:   cfg.Watch.Debounce,
		Extensions: cfg.Watch.Extensions,
	}, roots, logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for event := range w.Events() {
		if event.Operation == obowatcher.OpDelete {
			logger.Info("Document removed", "path", event.Path)
			continue
		}
		if err := convertFile(ctx, p, event.Path, cfg.Output.Directory, logger); err != nil {
			logger.Error("Conversion failed", "path", event.Path, "error", err)
		}
	}
	logger.Info("Watcher stopped")
	return nil
}
