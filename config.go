package arena

import (
	"bytes"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes an arena in configuration files.
type Config struct {
	BlockSize    datasize.ByteSize `yaml:"block_size"`
	MaxBlockSize datasize.ByteSize `yaml:"max_block_size"`
	Growth       Growth            `yaml:"growth"`
	// MaxBytes limits the total capacity of live blocks. 0 means unlimited.
	MaxBytes datasize.ByteSize `yaml:"max_bytes"`
	Pool     PoolConfig        `yaml:"pool"`
}

// PoolConfig configures a PoolSource.
type PoolConfig struct {
	Enabled bool              `yaml:"enabled"`
	MinSize datasize.ByteSize `yaml:"min_size"`
	MaxSize datasize.ByteSize `yaml:"max_size"`
	Factor  float64           `yaml:"factor"`
}

// DefaultConfig returns the configuration matching New(0).
func DefaultConfig() Config {
	return Config{
		BlockSize:    DefaultBlockSize,
		MaxBlockSize: DefaultMaxBlockSize,
		Growth:       GrowthFixed,
		Pool: PoolConfig{
			MinSize: 4 * datasize.KB,
			MaxSize: DefaultMaxBlockSize,
			Factor:  2,
		},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing arena config")
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.BlockSize == 0 {
		return errors.New("block_size must be positive")
	}
	if c.BlockSize.Bytes() > maxHeapBlock {
		return errors.Errorf("block_size %s too large", c.BlockSize.HR())
	}
	if c.MaxBlockSize != 0 && c.MaxBlockSize < c.BlockSize {
		return errors.Errorf("max_block_size %s below block_size %s", c.MaxBlockSize.HR(), c.BlockSize.HR())
	}
	if c.MaxBytes != 0 && c.MaxBytes < c.BlockSize {
		return errors.Errorf("max_bytes %s below block_size %s", c.MaxBytes.HR(), c.BlockSize.HR())
	}
	if c.Growth != GrowthFixed && c.Growth != GrowthDoubling {
		return errors.Errorf("unknown growth policy %v", c.Growth)
	}
	if c.Pool.Enabled {
		if c.Pool.MinSize == 0 || c.Pool.MaxSize < c.Pool.MinSize {
			return errors.Errorf("pool sizes %s..%s are invalid", c.Pool.MinSize.HR(), c.Pool.MaxSize.HR())
		}
		if c.Pool.Factor <= 1 {
			return errors.Errorf("pool factor %v must be greater than 1", c.Pool.Factor)
		}
	}
	return nil
}

// Options converts the configuration into arena options. The block size is
// passed to Init or New separately.
func (c Config) Options() []Option {
	var src BlockSource = HeapSource{}
	if c.Pool.Enabled {
		src = NewPoolSource(int(c.Pool.MinSize), int(c.Pool.MaxSize), c.Pool.Factor)
	}
	if c.MaxBytes != 0 {
		src = NewLimitSource(src, int(c.MaxBytes))
	}
	return []Option{
		WithSource(src),
		WithGrowth(c.Growth),
		WithMaxBlockSize(int(c.MaxBlockSize)),
	}
}

// NewFromConfig builds an arena from a validated configuration.
func NewFromConfig(c Config) (*Arena, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	a := &Arena{}
	if err := a.Init(int(c.BlockSize), c.Options()...); err != nil {
		return nil, err
	}
	return a, nil
}
