package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/bootstrap"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

type rootOptions struct {
	tenantID string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Herramienta de operación del motor de cotizaciones",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.tenantID, "tenant", "", "tenant dueño de la cotización")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "tiempo máximo de la operación")
	_ = root.MarkPersistentFlagRequired("tenant")

	root.AddCommand(
		newHydrateCmd(opts),
		newSaveCmd(opts),
		newAnomaliesCmd(opts),
		newPDFCmd(opts),
		newCatalogCmd(opts),
	)
	return root
}

// withEngine carga configuración, conecta y ejecuta fn con un contexto acotado.
func withEngine(opts *rootOptions, fn func(ctx context.Context, e *bootstrap.Engine) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "quotectl"})

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	e, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(ctx, e)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newHydrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hydrate <quote-id>",
		Short: "Carga la cotización y muestra el formulario normalizado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(opts, func(ctx context.Context, e *bootstrap.Engine) error {
				s, err := e.Sessions.Open(ctx, args[0], opts.tenantID)
				if err != nil {
					return err
				}
				defer func() { _ = e.Sessions.Close(s.ID, opts.tenantID) }()
				select {
				case <-s.VersionsDone():
				case <-ctx.Done():
					return ctx.Err()
				}
				return printJSON(cmd.OutOrStdout(), s.State())
			})
		},
	}
}

func newSaveCmd(opts *rootOptions) *cobra.Command {
	var file, quoteID string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Guarda un formulario JSON de forma atómica",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := readForm(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return withEngine(opts, func(ctx context.Context, e *bootstrap.Engine) error {
				res, err := e.Save.Save(ctx, quoting.SaveInput{Form: form, QuoteID: quoteID, TenantID: opts.tenantID})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "archivo con el formulario (- para stdin)")
	cmd.Flags().StringVar(&quoteID, "quote-id", "", "id de la cotización a actualizar (vacío crea una nueva)")
	return cmd
}

func readForm(stdin io.Reader, file string) (quote.QuoteForm, error) {
	var form quote.QuoteForm
	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return form, fmt.Errorf("abrir formulario: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&form); err != nil {
		return form, fmt.Errorf("leer formulario: %w", err)
	}
	return form, nil
}

func newAnomaliesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "anomalies <quote-id>",
		Short: "Muestra los conteos de la última versión sin registrar nada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(opts, func(ctx context.Context, e *bootstrap.Engine) error {
				a, err := e.Anomalies.Inspect(ctx, args[0], opts.tenantID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), a)
			})
		},
	}
}

func newPDFCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pdf <quote-id>",
		Short: "Exporta la cotización a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(opts, func(ctx context.Context, e *bootstrap.Engine) error {
				b, name, err := e.PDF.DownloadQuotePDF(ctx, opts.tenantID, args[0])
				if err != nil {
					return err
				}
				if out == "" {
					out = name
				}
				if err := os.WriteFile(out, b, 0o644); err != nil {
					return fmt.Errorf("escribir %s: %w", out, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "archivo de salida (por defecto cotizacion_<número>.pdf)")
	return cmd
}

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "catalog <kind>",
		Short:     "Lista un catálogo de referencia o CRM",
		Args:      cobra.ExactArgs(1),
		ValidArgs: catalogKindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := entity.ParseCatalogKind(args[0])
			if !ok {
				return fmt.Errorf("catálogo desconocido %q", args[0])
			}
			return withEngine(opts, func(ctx context.Context, e *bootstrap.Engine) error {
				entries, err := e.Catalogs.List(ctx, kind, opts.tenantID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), entries)
			})
		},
	}
}

func catalogKindNames() []string {
	out := make([]string, 0, len(entity.CatalogKinds))
	for _, k := range entity.CatalogKinds {
		out = append(out, string(k))
	}
	return out
}
