package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/Shreyas191/nyc-transit-hub/internal/common"
	"github.com/Shreyas191/nyc-transit-hub/internal/transit"
)

const (
	defaultConfigPath = "config/transit-ctl.dev.toml"
	defaultServerURL  = "http://localhost:8080"
)

// CtlConfig is the TOML file read through --toml.
type CtlConfig struct {
	Catalog string `toml:"catalog"`
	Server  string `toml:"server" validate:"omitempty,url"`
}

type TransitCtlApp struct {
	ConfigPath  string
	CatalogPath string
	ServerURL   string
	HTTPClient  *http.Client

	catalog *transit.Catalog
}

func Execute() error {
	app := &TransitCtlApp{}
	rootCmd := NewRootCmd(app)
	return rootCmd.Execute()
}

func NewRootCmd(app *TransitCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "transit-ctl",
		Short:         "CLI tool used to inspect the NYC Transit Hub catalog and feeds",
		Version:       common.Version + " (" + common.GitCommit + ")",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"toml",
		defaultConfigPath,
		"Path to configuration file",
	)
	cmd.PersistentFlags().StringVar(
		&app.CatalogPath,
		"catalog",
		"",
		"Catalog YAML file, empty for the embedded mock data",
	)
	cmd.PersistentFlags().StringVar(
		&app.ServerURL,
		"server",
		defaultServerURL,
		"Base URL of a running transit-web",
	)

	cmd.AddCommand(NewStationsCmd(app))
	cmd.AddCommand(NewTrainsCmd(app))
	cmd.AddCommand(NewLinesCmd(app))
	cmd.AddCommand(NewArrivalsCmd(app))
	cmd.AddCommand(NewFeedCmd(app))
	cmd.AddCommand(NewHealthCmd(app))

	return cmd
}

// loadConfig fills unset flags from the TOML file. A missing file is only
// an error when --toml was given explicitly.
func (app *TransitCtlApp) loadConfig(cmd *cobra.Command) error {
	cfg := CtlConfig{Catalog: app.CatalogPath, Server: app.ServerURL}
	if _, err := toml.DecodeFile(app.ConfigPath, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) || cmd.Flags().Changed("toml") {
			return fmt.Errorf("load %s: %w", app.ConfigPath, err)
		}
	}

	if !cmd.Flags().Changed("catalog") {
		app.CatalogPath = cfg.Catalog
	}
	if !cmd.Flags().Changed("server") {
		app.ServerURL = cfg.Server
	}

	if err := validator.New().Var(app.ServerURL, "required,url"); err != nil {
		return fmt.Errorf("invalid server url %q: %w", app.ServerURL, err)
	}

	if app.HTTPClient == nil {
		app.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return nil
}

func (app *TransitCtlApp) Catalog() (*transit.Catalog, error) {
	if app.catalog != nil {
		return app.catalog, nil
	}
	catalog, err := transit.LoadOrDefault(app.CatalogPath)
	if err != nil {
		return nil, err
	}
	app.catalog = catalog
	return catalog, nil
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}
