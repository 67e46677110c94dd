/*
 * Copyright 2023 Cydarm Technologies Pty Ltd, https://cydarm.com/
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * 		http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads the optional YAML configuration file accepted by
// the -config flag.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RenderConfig controls optional narrative sections. Every field defaults
// to the full, unabridged rendering: a missing or empty -config file
// produces identical output to SPEC_FULL.md's default behaviour.
// OutputDir is parsed but not read by the CLI, which writes into the
// directory given by its -output-dir flag.
type RenderConfig struct {
	OutputDir                string `yaml:"output_dir"`
	IncludeMessageFlows      bool   `yaml:"include_message_flows"`
	IncludeOrphanAnnotations bool   `yaml:"include_orphan_annotations"`
}

// Default returns the configuration used when no -config flag is given.
func Default() RenderConfig {
	return RenderConfig{
		OutputDir:                ".",
		IncludeMessageFlows:      true,
		IncludeOrphanAnnotations: true,
	}
}

// Load reads and parses a YAML configuration file at path, starting from
// Default so an omitted key keeps its full-rendering default.
func Load(path string) (RenderConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
