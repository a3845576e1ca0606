package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Dictionary.BaseURL == "" {
		return fmt.Errorf("dictionary.base_url must not be empty")
	}
	if c.Dictionary.Timeout <= 0 {
		return fmt.Errorf("dictionary.timeout must be > 0 (got %v)", c.Dictionary.Timeout)
	}

	if err := c.Vocabulary.validate(); err != nil {
		return fmt.Errorf("vocabulary: %w", err)
	}
	if err := c.Simplify.validate(); err != nil {
		return fmt.Errorf("simplify: %w", err)
	}

	return nil
}

func (v *VocabularyConfig) validate() error {
	if v.CueTarget <= 0 {
		return fmt.Errorf("cue_target must be > 0 (got %d)", v.CueTarget)
	}
	if v.ChecklistTarget <= 0 {
		return fmt.Errorf("checklist_target must be > 0 (got %d)", v.ChecklistTarget)
	}
	return nil
}

func (s *SimplifyConfig) validate() error {
	if s.Percent < 1 || s.Percent > 100 {
		return fmt.Errorf("percent must be in [1,100] (got %d)", s.Percent)
	}
	if s.Epsilon < 0 {
		return fmt.Errorf("epsilon must be >= 0 (got %v)", s.Epsilon)
	}
	return nil
}
