package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vivaneiona/formdata"
)

type flags struct {
	fields     []string
	fieldsFile string
	files      []string
	galleries  []string
	headers    []string
	out        string
	explain    bool
	format     string
	boundary   string
	template   string
	sniff      bool
	url        string
	noColor    bool
}

func newRootCmd(cfg Config) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "formpost [url]",
		Short: "Build and send multipart/form-data requests",
		Long: `formpost assembles a multipart/form-data body from fields and files.

The body is POSTed to the given URL (or FORMPOST_URL), written to a file
with --out, or described with --explain.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.url = args[0]
			} else {
				f.url = cfg.URL
			}
			return run(cmd, cfg, f)
		},
	}

	fl := cmd.Flags()
	fl.StringArrayVar(&f.fields, "field", nil, "text field as key=value (repeatable)")
	fl.StringVar(&f.fieldsFile, "fields", "", "YAML or JSON file with a flat mapping of fields")
	fl.StringArrayVar(&f.files, "file", nil, "file part as key=path (repeatable)")
	fl.StringArrayVar(&f.galleries, "gallery", nil, "file collection as key=path1,path2 (repeatable)")
	fl.StringArrayVar(&f.headers, "header", nil, "extra request header as Name=value (repeatable)")
	fl.StringVarP(&f.out, "out", "o", "", "write the body to this path instead of sending it")
	fl.BoolVar(&f.explain, "explain", false, "print the body layout and exit")
	fl.StringVar(&f.format, "format", string(formdata.FormatText), "layout format for --explain: text or json")
	fl.StringVar(&f.boundary, "boundary", "", "use a fixed boundary")
	fl.StringVar(&f.template, "name-template", "", "filename template, e.g. '{{ key }}-{{ index }}{{ extension }}'")
	fl.BoolVar(&f.sniff, "sniff", false, "detect missing content types from file data")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colored log output")

	return cmd
}

func newLogger(w io.Writer, level string, noColor bool) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})), nil
}

func (f *flags) builderOptions() []func(*formdata.Options) {
	var opts []func(*formdata.Options)
	if f.boundary != "" {
		opts = append(opts, formdata.WithBoundary(f.boundary))
	}
	if f.template != "" {
		opts = append(opts, formdata.WithFilenameTemplate(f.template))
	}
	if f.sniff {
		opts = append(opts, formdata.WithContentSniffing())
	}
	return opts
}

func run(cmd *cobra.Command, cfg Config, f *flags) error {
	log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, f.noColor)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	fields, err := collectFields(f.fieldsFile, f.fields)
	if err != nil {
		return err
	}
	files, err := collectFiles(ctx, f.files, f.galleries)
	if err != nil {
		return err
	}
	log.Debug("Collected input", "fields", len(fields), "file_keys", files.Len())

	builder := formdata.NewWithLogger(log, f.builderOptions()...)
	stdout := cmd.OutOrStdout()

	if f.explain {
		layout, err := builder.Explain(fields, files)
		if err != nil {
			return err
		}
		out, err := layout.Format(formdata.FormatType(f.format))
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, out)
		return nil
	}

	body, err := builder.Build(fields, files)
	if err != nil {
		return err
	}

	if f.out != "" {
		if err := os.WriteFile(f.out, body.Data, 0o644); err != nil {
			return fmt.Errorf("write body: %w", err)
		}
		log.Info("Wrote body", "path", f.out, "bytes", body.ContentLength())
		fmt.Fprintf(stdout, "Content-Type: %s\n", body.ContentType())
		return nil
	}

	if f.url == "" {
		return formdata.ErrNoURL
	}

	clientOpts := []formdata.ClientOption{
		formdata.WithClientLogger(log),
		formdata.WithRetry(cfg.Retries, cfg.Backoff),
	}
	for _, h := range f.headers {
		k, v, err := parseAssignment(h)
		if err != nil {
			return fmt.Errorf("--header: %w", err)
		}
		clientOpts = append(clientOpts, formdata.WithHeader(k, v))
	}

	resp, err := formdata.NewClient(clientOpts...).Send(ctx, http.MethodPost, f.url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	log.Info("Request completed", "status", resp.Status, "bytes", body.ContentLength())
	if _, err := io.Copy(stdout, resp.Body); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return nil
}
