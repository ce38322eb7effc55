// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Only hard requirements are enforced here; each process checks the groups
// it actually uses (the relay has no database, the server has no consumer
// group), so cross-group rules live in the respective main packages.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey != "" && cfg.Auth.TokenDuration < 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Workers.ReminderInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
