package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tburdett/owl2json/pkg/cache"
	"github.com/tburdett/owl2json/pkg/counter"
	"github.com/tburdett/owl2json/pkg/errors"
)

// Config is the --config file. Unset fields leave the flag defaults alone.
//
//	ontology = "http://www.ebi.ac.uk/efo"
//	ontology_file = "efo.obo"
//	depth = 3
//	formats = ["json", "svg"]
//
//	[zooma]
//	datasource = "http://www.ebi.ac.uk/gxa"
//
//	[cache.redis]
//	addr = "localhost:6379"
type Config struct {
	Ontology     string   `toml:"ontology" yaml:"ontology" validate:"omitempty,uri"`
	OntologyFile string   `toml:"ontology_file" yaml:"ontology_file"`
	Synonym      string   `toml:"synonym" yaml:"synonym" validate:"omitempty,uri"`
	Reasoning    *bool    `toml:"reasoning" yaml:"reasoning"`
	Depth        *int     `toml:"depth" yaml:"depth" validate:"omitempty,gte=-1"`
	Size         *int     `toml:"size" yaml:"size" validate:"omitempty,gte=-1"`
	AutoSize     bool     `toml:"auto_size" yaml:"auto_size"`
	Formats      []string `toml:"formats" yaml:"formats" validate:"dive,oneof=json tree dot svg pdf png graph"`
	Detailed     bool     `toml:"detailed" yaml:"detailed"`

	// Count sources; at most one may be set.
	Counts string               `toml:"counts" yaml:"counts"`
	Zooma  *ZoomaConfig         `toml:"zooma" yaml:"zooma"`
	Mongo  *counter.MongoConfig `toml:"mongo" yaml:"mongo"`

	Cache CacheConfig `toml:"cache" yaml:"cache"`
}

// ZoomaConfig selects ZOOMA counting.
type ZoomaConfig struct {
	Datasource string `toml:"datasource" yaml:"datasource" validate:"omitempty,uri"`
	URL        string `toml:"url" yaml:"url" validate:"omitempty,url"`
}

// CacheConfig chooses where ontology graphs and counts are cached.
type CacheConfig struct {
	Dir      string             `toml:"dir" yaml:"dir"`
	Disabled bool               `toml:"disabled" yaml:"disabled"`
	Redis    *cache.RedisConfig `toml:"redis" yaml:"redis"`
}

// LoadConfig reads a TOML (.toml) or YAML (.yml, .yaml) config file and
// validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := new(Config)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yml", ".yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown extension (use .toml, .yml or .yaml)", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks field formats and that at most one count source is set.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace()+" ("+fe.Tag()+")")
			}
			return errors.New(errors.ErrCodeInvalidConfig, "validation failed on %s", strings.Join(fields, ", "))
		}
		return err
	}
	sources := 0
	for _, set := range []bool{c.Counts != "", c.Zooma != nil, c.Mongo != nil} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "set at most one of counts, zooma and mongo")
	}
	return nil
}
