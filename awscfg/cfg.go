package awscfg

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/src-bin/adk/ui"
)

// Config wraps aws.Config so that service clients can be had from one place
// and so that the region this program is talking to is always known.
type Config struct {
	cfg aws.Config
}

// NewConfig loads AWS configuration from the environment and shared
// configuration files, the way the AWS CLI does, in the given region or, if
// region is empty, whatever region that configuration specifies.
func NewConfig(ctx context.Context, region string) (*Config, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, err
	}
	if cfg.Region == "" {
		return nil, &aws.MissingRegionError{}
	}
	return &Config{cfg: cfg}, nil
}

// Must is ui.Must2 for the common case of NewConfig.
func Must(cfg *Config, err error) *Config {
	ui.Must(err)
	return cfg
}

func (c *Config) AWS() aws.Config {
	return c.cfg.Copy()
}

func (c *Config) Region() string {
	return c.cfg.Region
}
