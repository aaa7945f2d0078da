package ioconfig

import (
	"github.com/evefrontier/fixgen/pkg/config"
	"gopkg.in/yaml.v3"
)

// GenerateConfig renders the persistent part of cfg as config.yaml
// content. Runtime-only fields are left out.
func GenerateConfig(cfg *config.Config) (string, error) {
	bs, err := yaml.Marshal(cfg)
	if err != nil {
		return "", ConfigRenderError(err)
	}
	return string(bs), nil
}
