package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type storage struct {
	Driver      string `mapstructure:"driver"`
	LevelDBPath string `mapstructure:"leveldb_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type catalog struct {
	DefaultPriceMax float64 `mapstructure:"default_price_max"`
}

type mock struct {
	AuthDelay     time.Duration `mapstructure:"auth_delay"`
	CheckoutDelay time.Duration `mapstructure:"checkout_delay"`
	SaveDelay     time.Duration `mapstructure:"save_delay"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether all TLS files are set.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type topics struct {
	CartEvents   string `mapstructure:"cart_events"`
	SearchEvents string `mapstructure:"search_events"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	TLS                tlsFiles `mapstructure:"tls"`
	Topics             topics   `mapstructure:"topics"`
	RelayQueueSize     int      `mapstructure:"relay_queue_size"`
}

// Enabled reports whether events are published to the broker.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Storage        storage    `mapstructure:"storage"`
	Catalog        catalog    `mapstructure:"catalog"`
	Mock           mock       `mapstructure:"mock"`
	Broker         broker     `mapstructure:"broker"`
}

// Load reads the config file named by the --config flag or
// the STOREFRONT_CONFIG_FILE env, the env wins.
//
// Exits the process on failure.
func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the config file at path over the defaults.
func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("storage.driver", "leveldb")
	v.SetDefault("storage.leveldb_path", "./data/storefront")
	v.SetDefault("catalog.default_price_max", 100)
	v.SetDefault("mock.auth_delay", "1s")
	v.SetDefault("mock.checkout_delay", "1.5s")
	v.SetDefault("mock.save_delay", "1s")
	v.SetDefault("broker.topics.cart_events", "storefront-cart-events")
	v.SetDefault("broker.topics.search_events", "storefront-search-events")
	v.SetDefault("broker.relay_queue_size", 256)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Storage:
	Driver=%q
	LevelDBPath=%q
	PostgresDSN=%t

	Catalog:
	DefaultPriceMax=%v

	Mock:
	AuthDelay=%s
	CheckoutDelay=%s
	SaveDelay=%s

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	RelayQueueSize=%d
	Topics:
		CartEvents=%q
		SearchEvents=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Storage.Driver,
		c.Storage.LevelDBPath,
		c.Storage.PostgresDSN != "",
		c.Catalog.DefaultPriceMax,
		c.Mock.AuthDelay,
		c.Mock.CheckoutDelay,
		c.Mock.SaveDelay,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.RelayQueueSize,
		c.Broker.Topics.CartEvents,
		c.Broker.Topics.SearchEvents,
	)
}
