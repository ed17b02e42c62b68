// Package config resolves where nudocs keeps its files, which service it
// talks to, and which API key it sends.
//
// # Configuration Precedence
//
// Settings are loaded in this order (later sources override earlier ones):
//
//  1. Default values (url https://nudocs.ai, log level warn)
//  2. Optional YAML file ~/.config/nudocs/config.yaml
//  3. Environment variables (NUDOCS_ prefix)
//  4. CLI flags
//
// # Usage
//
//	paths := config.DefaultPaths()
//	settings, err := config.Load([]string{paths.ConfigFile}, cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	resolver := config.NewResolver(paths, settings)
//
//	key, err := resolver.APIKey()
//	if errors.Is(err, nudocs.ErrMissingCredential) {
//	    fmt.Fprintln(os.Stderr, config.SetupInstructions)
//	}
//
// # Environment Variables
//
//   - url → NUDOCS_URL
//   - log.level → NUDOCS_LOG_LEVEL
//   - NUDOCS_API_KEY overrides the api_key file; it is not a setting and
//     is read directly by the Resolver on every request
//
// # Validation
//
// Settings are validated using struct tags:
//   - url must be an http or https URL
//   - log level must be debug, info, warn, or error
package config
