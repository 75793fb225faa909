package config

import "os"

// ApplyEnvConfig applies SEGCOUNTER_* environment variables to cfg,
// skipping any value whose flag was set explicitly.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if b := os.Getenv("SEGCOUNTER_BOARD"); b != "" && !changed["board"] {
		if err := cfg.SwitchBoard(b, changed); err != nil {
			return err
		}
	}

	if err := s.setIntFromString("digits", os.Getenv("SEGCOUNTER_DIGITS"), &cfg.Digits); err != nil {
		return err
	}
	if err := s.setDuration("poll", os.Getenv("SEGCOUNTER_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	s.setBoolFromString("lamp-test", os.Getenv("SEGCOUNTER_LAMP_TEST"), &cfg.LampTest)
	s.setString("render", os.Getenv("SEGCOUNTER_RENDER"), &cfg.Render)
	s.setString("log-level", os.Getenv("SEGCOUNTER_LOG_LEVEL"), &cfg.LogLevel)

	return nil
}
