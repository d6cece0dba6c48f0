package transit_web

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/Shreyas191/nyc-transit-hub/internal/common"
)

type MapConfig struct {
	CenterLat   float64 `toml:"center_lat" validate:"gte=-90,lte=90"`
	CenterLng   float64 `toml:"center_lng" validate:"gte=-180,lte=180"`
	Zoom        int     `toml:"zoom" validate:"gte=1,lte=19"`
	TileURL     string  `toml:"tile_url" validate:"required,contains={z}"`
	Attribution string  `toml:"attribution"`
	LeafletURL  string  `toml:"leaflet_url" validate:"required,url"`
}

// ConfigFile mirrors the TOML layout accepted by -toml.
type ConfigFile struct {
	Listen      string    `toml:"listen"`
	Telemetry   string    `toml:"telemetry"`
	Pprof       bool      `toml:"pprof"`
	Catalog     string    `toml:"catalog"`
	CORSOrigins []string  `toml:"cors_origins"`
	Map         MapConfig `toml:"map"`
}

type Config struct {
	Version        bool
	TomlConfigPath string
	EnvFile        string

	ListenAddress    string   `validate:"required,hostname_port"`
	TelemetryAddress string   `validate:"omitempty,hostname_port"`
	Pprof            bool     // serve /debug/pprof/ on the telemetry listener
	CatalogPath      string   // empty serves the embedded catalog
	CORSOrigins      []string `validate:"dive,url"`
	Map              MapConfig
}

func DefaultConfig() Config {
	return Config{
		EnvFile:          ".env",
		ListenAddress:    ":8080",
		TelemetryAddress: ":9091",
		CORSOrigins:      []string{"http://localhost:5173"},
		Map: MapConfig{
			CenterLat:   40.730610,
			CenterLng:   -73.986623,
			Zoom:        13,
			TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
			LeafletURL:  "https://unpkg.com/leaflet@1.9.4/dist",
		},
	}
}

func LoadConfigFromToml(path string, cfg *Config) error {
	file := ConfigFile{
		Listen:      cfg.ListenAddress,
		Telemetry:   cfg.TelemetryAddress,
		Pprof:       cfg.Pprof,
		Catalog:     cfg.CatalogPath,
		CORSOrigins: cfg.CORSOrigins,
		Map:         cfg.Map,
	}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return err
	}

	cfg.ListenAddress = file.Listen
	cfg.TelemetryAddress = file.Telemetry
	cfg.Pprof = file.Pprof
	cfg.CatalogPath = file.Catalog
	cfg.CORSOrigins = file.CORSOrigins
	cfg.Map = file.Map
	return nil
}

func applyEnv(cfg *Config) error {
	if value, ok := os.LookupEnv("TRANSIT_LISTEN_ADDR"); ok {
		cfg.ListenAddress = value
	}
	if value, ok := os.LookupEnv("TRANSIT_TELEMETRY_ADDR"); ok {
		cfg.TelemetryAddress = value
	}
	if value, ok := os.LookupEnv("TRANSIT_CATALOG"); ok {
		cfg.CatalogPath = value
	}
	if value, ok := os.LookupEnv("TRANSIT_CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(value)
	}
	if value, ok := os.LookupEnv("TRANSIT_TILE_URL"); ok {
		cfg.Map.TileURL = value
	}
	if value, ok := os.LookupEnv("TRANSIT_MAP_ZOOM"); ok {
		zoom, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TRANSIT_MAP_ZOOM %q: %w", value, err)
		}
		cfg.Map.Zoom = zoom
	}
	return nil
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseArgs resolves configuration with precedence defaults < TOML file < environment < flags.
func ParseArgs(programName string, args []string, errOut io.Writer) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errOut, "Options")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.Version, "version", false, "Prints CLI version")
	fs.StringVar(&cfg.TomlConfigPath, "toml", "", "Configuration file")
	fs.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "Optional .env file loaded into the environment")

	listen := fs.String("listen", "", "Address the website listens on (default "+cfg.ListenAddress+")")
	telemetry := fs.String("telemetry", "", "Address for /metrics and pprof, empty to disable (default "+cfg.TelemetryAddress+")")
	catalog := fs.String("catalog", "", "Path to a catalog YAML file replacing the embedded mock data")
	pprof := fs.Bool("pprof", false, "Serve /debug/pprof/ on the telemetry listener")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Version {
		fmt.Fprintf(errOut, "%s: version %s (%s)\n", programName, common.Version, common.GitCommit)
		return cfg, flag.ErrHelp
	}

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", cfg.EnvFile, err)
		}
	}

	if cfg.TomlConfigPath != "" {
		if err := LoadConfigFromToml(cfg.TomlConfigPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("LoadConfigFromToml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.ListenAddress = *listen
		case "telemetry":
			cfg.TelemetryAddress = *telemetry
		case "catalog":
			cfg.CatalogPath = *catalog
		case "pprof":
			cfg.Pprof = *pprof
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func Main(programName string, args []string, out, errOut io.Writer) int {
	cfg, err := ParseArgs(programName, args, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "Error:", err)
		return -1
	}

	common.InitLogging(out)
	return Run(cfg)
}
