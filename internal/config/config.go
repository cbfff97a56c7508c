package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/tokenledger/tokend/internal/core/application"
	"github.com/tokenledger/tokend/internal/core/ports"
	"github.com/tokenledger/tokend/internal/infrastructure/db"
	eventbussink "github.com/tokenledger/tokend/internal/infrastructure/event-sink/eventbus"
	inmemorysink "github.com/tokenledger/tokend/internal/infrastructure/event-sink/inmemory"
	"github.com/urfave/cli/v2"
)

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return fmt.Sprintf("%v", types)
}

func (t supportedType) supports(typeStr string) bool {
	_, ok := t[typeStr]
	return ok
}

var (
	supportedDbs = supportedType{
		"badger": {},
		"sqlite": {},
	}
	supportedEventSinks = supportedType{
		"inmemory": {},
		"eventbus": {},
	}
)

type Config struct {
	Datadir       string
	DbType        string
	DbDir         string
	EventSinkType string
	LogLevel      int

	repo      ports.RepoManager
	sink      ports.EventSink
	assetSvc  *application.AssetService
	uniqueSvc *application.UniqueAssetService
}

func (c *Config) String() string {
	json, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

var (
	defaultDatadir       = dataDir()
	defaultDbType        = "badger"
	defaultEventSinkType = "eventbus"
	defaultLogLevel      = 4
)

// env returns a list of strings prefixed with `TOKEND_`.
// This is used as a syntax sugar for defining env vars.
func env(values ...string) []string {
	envs := make([]string, len(values))

	for i, value := range values {
		envs[i] = fmt.Sprintf("TOKEND_%s", value)
	}

	return envs
}

var (
	Datadir = &cli.StringFlag{
		Usage: "Directory to store data",
		Name:  "datadir", EnvVars: env("DATADIR"),
		Value: defaultDatadir,
	}

	LogLevel = &cli.IntFlag{
		Usage: "Logging level (0-6, where 6 is trace)",
		Name:  "log-level", EnvVars: env("LOG_LEVEL"),
		Value: defaultLogLevel,
	}

	DbType = &cli.StringFlag{
		Usage: "Database type (badger, sqlite)",
		Name:  "db-type", EnvVars: env("DB_TYPE"),
		Value: defaultDbType,
	}

	EventSinkType = &cli.StringFlag{
		Usage: "Event sink type (eventbus, inmemory)",
		Name:  "event-sink-type", EnvVars: env("EVENT_SINK_TYPE"),
		Value: defaultEventSinkType,
	}
)

func LoadConfig(c *cli.Context) (*Config, error) {
	if err := initDatadir(c); err != nil {
		return nil, fmt.Errorf("failed to create datadir: %s", err)
	}

	dbPath := filepath.Join(c.String(Datadir.Name), "db")

	return &Config{
		Datadir:       c.String(Datadir.Name),
		DbType:        c.String(DbType.Name),
		DbDir:         dbPath,
		EventSinkType: c.String(EventSinkType.Name),
		LogLevel:      c.Int(LogLevel.Name),
	}, nil
}

func (c *Config) Validate() error {
	if !supportedDbs.supports(c.DbType) {
		return fmt.Errorf("db type not supported, please select one of: %s", supportedDbs)
	}
	if !supportedEventSinks.supports(c.EventSinkType) {
		return fmt.Errorf(
			"event sink type not supported, please select one of: %s", supportedEventSinks,
		)
	}
	if c.LogLevel < int(log.PanicLevel) || c.LogLevel > int(log.TraceLevel) {
		return fmt.Errorf(
			"invalid log level %d, must be between %d and %d",
			c.LogLevel, log.PanicLevel, log.TraceLevel,
		)
	}

	if err := c.repoManager(); err != nil {
		return err
	}
	c.eventSink()
	c.services()
	return nil
}

func (c *Config) AssetService() *application.AssetService {
	return c.assetSvc
}

func (c *Config) UniqueAssetService() *application.UniqueAssetService {
	return c.uniqueSvc
}

func (c *Config) EventSink() ports.EventSink {
	return c.sink
}

func (c *Config) RepoManager() ports.RepoManager {
	return c.repo
}

func (c *Config) Close() {
	if c.sink != nil {
		c.sink.Close()
	}
	if c.repo != nil {
		c.repo.Close()
	}
}

func (c *Config) repoManager() error {
	var dataStoreConfig []interface{}
	logger := log.New()

	switch c.DbType {
	case "badger":
		dataStoreConfig = []interface{}{c.DbDir, logger}
	case "sqlite":
		dataStoreConfig = []interface{}{c.DbDir}
	default:
		return fmt.Errorf("unknown db type")
	}

	svc, err := db.NewService(db.ServiceConfig{
		DataStoreType:   c.DbType,
		DataStoreConfig: dataStoreConfig,
	})
	if err != nil {
		return err
	}

	c.repo = svc
	return nil
}

func (c *Config) eventSink() {
	switch c.EventSinkType {
	case "inmemory":
		c.sink = inmemorysink.NewEventSink()
	default:
		c.sink = eventbussink.NewEventSink()
	}
}

func (c *Config) services() {
	c.assetSvc = application.NewAssetService(c.repo, c.sink)
	c.uniqueSvc = application.NewUniqueAssetService(c.repo, c.sink)
}

func initDatadir(c *cli.Context) error {
	datadir := c.String(Datadir.Name)
	return makeDirectoryIfNotExists(filepath.Join(datadir, "db"))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tokend"
	}
	return filepath.Join(home, ".tokend")
}
