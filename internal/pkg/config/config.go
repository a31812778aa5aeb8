package config

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/amethyst-mc/amethyst/pkg/ipfilter"
	"github.com/amethyst-mc/amethyst/pkg/webhook"
)

//go:embed defaults.yml
var defaultsYAML []byte

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Bind              string              `mapstructure:"bind"`
	ProxyProtocol     ProxyProtocolConfig `mapstructure:"proxyProtocol"`
	RateLimiter       RateLimiterConfig   `mapstructure:"rateLimiter"`
	IPFilter          IPFilterConfig      `mapstructure:"ipFilter"`
	OnlineMode        bool                `mapstructure:"onlineMode"`
	MaxPacketSize     datasize.ByteSize   `mapstructure:"maxPacketSize"`
	ClientTimeout     time.Duration       `mapstructure:"clientTimeout"`
	KeepAliveInterval time.Duration       `mapstructure:"keepAliveInterval"`
	SessionServerURL  string              `mapstructure:"sessionServerURL"`
	Status            StatusConfig        `mapstructure:"status"`
	Play              PlayConfig          `mapstructure:"play"`
	Prometheus        PrometheusConfig    `mapstructure:"prometheus"`
	Webhooks          []WebhookConfig     `mapstructure:"webhooks"`
}

type StatusConfig struct {
	VersionName string `mapstructure:"versionName"`
	MaxPlayers  int    `mapstructure:"maxPlayers"`
	MOTD        string `mapstructure:"motd"`
	IconPath    string `mapstructure:"iconPath"`
}

type PlayConfig struct {
	GameMode         string      `mapstructure:"gameMode"`
	Hardcore         bool        `mapstructure:"hardcore"`
	Dimension        string      `mapstructure:"dimension"`
	Difficulty       string      `mapstructure:"difficulty"`
	LevelType        string      `mapstructure:"levelType"`
	ReducedDebugInfo bool        `mapstructure:"reducedDebugInfo"`
	Spawn            SpawnConfig `mapstructure:"spawn"`
}

type SpawnConfig struct {
	X int `mapstructure:"x"`
	Y int `mapstructure:"y"`
	Z int `mapstructure:"z"`
}

type ProxyProtocolConfig struct {
	Receive      bool     `mapstructure:"receive"`
	TrustedCIDRs []string `mapstructure:"trustedCIDRs"`
}

// RateLimiterConfig limits new connections per IP. A RequestLimit of zero
// disables the limiter.
type RateLimiterConfig struct {
	RequestLimit int           `mapstructure:"requestLimit"`
	WindowLength time.Duration `mapstructure:"windowLength"`
}

// IPFilterConfig lists networks that are either the only ones allowed or
// the ones denied, depending on the mode.
type IPFilterConfig struct {
	Mode  string   `mapstructure:"mode"`
	CIDRs []string `mapstructure:"cidrs"`
}

type PrometheusConfig struct {
	Bind string `mapstructure:"bind"`
}

type WebhookConfig struct {
	ID     string   `mapstructure:"id"`
	URL    string   `mapstructure:"url"`
	Topics []string `mapstructure:"topics"`
}

// Defaults returns a fresh copy of the built-in settings as a config map.
func Defaults() (map[string]any, error) {
	data := map[string]any{}
	if err := yaml.Unmarshal(defaultsYAML, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Load merges data over the defaults and decodes the result.
func Load(data map[string]any) (Config, error) {
	merged, err := Defaults()
	if err != nil {
		return Config{}, err
	}

	if len(data) > 0 {
		if err := mergo.Merge(&merged, data, mergo.WithOverride); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := Unmarshal(merged, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Unmarshal decodes a config map into v. Durations and byte sizes may be
// given as strings like "30s" or "2MB".
func Unmarshal(data map[string]any, v any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}

func (cfg Config) Validate() error {
	if _, _, err := net.SplitHostPort(cfg.Bind); err != nil {
		return fmt.Errorf("%w: bind: %v", ErrInvalidConfig, err)
	}

	if cfg.MaxPacketSize == 0 || cfg.MaxPacketSize > datasize.ByteSize(1<<31-1) {
		return fmt.Errorf("%w: maxPacketSize out of range: %s", ErrInvalidConfig, cfg.MaxPacketSize.HR())
	}

	if cfg.ProxyProtocol.Receive {
		if len(cfg.ProxyProtocol.TrustedCIDRs) == 0 {
			return fmt.Errorf("%w: proxyProtocol.trustedCIDRs is empty", ErrInvalidConfig)
		}

		for _, cidr := range cfg.ProxyProtocol.TrustedCIDRs {
			if _, _, err := net.ParseCIDR(cidr); err != nil {
				return fmt.Errorf("%w: proxyProtocol.trustedCIDRs: %v", ErrInvalidConfig, err)
			}
		}
	}

	if cfg.RateLimiter.RequestLimit > 0 && cfg.RateLimiter.WindowLength <= 0 {
		return fmt.Errorf("%w: rateLimiter.windowLength must be positive", ErrInvalidConfig)
	}

	if _, err := ipfilter.ParseMode(cfg.IPFilter.Mode); err != nil {
		return fmt.Errorf("%w: ipFilter.mode: %v", ErrInvalidConfig, err)
	}

	for _, cidr := range cfg.IPFilter.CIDRs {
		if _, err := ipfilter.ParseNet(cidr); err != nil {
			return fmt.Errorf("%w: ipFilter.cidrs: %v", ErrInvalidConfig, err)
		}
	}

	if cfg.ClientTimeout < 0 || cfg.KeepAliveInterval < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}

	if cfg.Status.MaxPlayers < 0 || cfg.Status.MaxPlayers > 255 {
		return fmt.Errorf("%w: status.maxPlayers must be between 0 and 255", ErrInvalidConfig)
	}

	for i, wh := range cfg.Webhooks {
		u, err := url.Parse(wh.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: webhooks[%d].url: %q", ErrInvalidConfig, i, wh.URL)
		}

		for _, topic := range wh.Topics {
			if !webhook.IsTopic(topic) {
				return fmt.Errorf("%w: webhooks[%d].topics: unknown topic %q", ErrInvalidConfig, i, topic)
			}
		}
	}

	if _, err := cfg.Play.ParseGameMode(); err != nil {
		return err
	}

	if _, err := cfg.Play.ParseDimension(); err != nil {
		return err
	}

	if _, err := cfg.Play.ParseDifficulty(); err != nil {
		return err
	}

	return nil
}
