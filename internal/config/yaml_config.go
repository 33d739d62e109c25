package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoKeywords is returned when the YAML file declares a topic section with no keywords.
var ErrNoKeywords = errors.New("topic.keywords must list at least one phrase")

// YAMLConfig represents the structure of the config.yaml file.
// Lists that are awkward to keep in env vars live here.
type YAMLConfig struct {
	Topic TopicConfig `yaml:"topic"`
	Page  PageConfig  `yaml:"page"`
}

// TopicConfig overrides the topic gate's keyword phrases.
type TopicConfig struct {
	Keywords []string `yaml:"keywords"`
}

// PageConfig controls the introductory text on the chat page.
type PageConfig struct {
	Intro    string   `yaml:"intro"`
	Examples []string `yaml:"examples"`
}

// DefaultExamples are shown under the page intro when none are configured.
var DefaultExamples = []string{
	"What are Fundamental Rights?",
	"What does Article 21 state?",
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if _, ok := raw["topic"]; ok && len(cfg.Topic.Keywords) == 0 {
		return nil, ErrNoKeywords
	}

	return &cfg, nil
}

// KeywordsOr returns the configured keywords, or fallback when none are set.
func (c *YAMLConfig) KeywordsOr(fallback []string) []string {
	if c == nil || len(c.Topic.Keywords) == 0 {
		return fallback
	}
	return c.Topic.Keywords
}

// Examples returns the configured example questions, or DefaultExamples.
func (c *YAMLConfig) Examples() []string {
	if c == nil || len(c.Page.Examples) == 0 {
		return DefaultExamples
	}
	return c.Page.Examples
}

// Intro returns the configured page intro, or an empty string.
func (c *YAMLConfig) Intro() string {
	if c == nil {
		return ""
	}
	return c.Page.Intro
}
