/*
Package config loads bulk store settings.

Sources are applied in order, later ones winning: built-in defaults, a YAML
file, .env files and the process environment.

	aws:
	  region: eu-west-1
	  endpoint: http://localhost:8000
	table: players
	backoff:
	  initial: 500ms
	  max: 20s
	  factor: 1.5
	writes:
	  onChunkFailure: raise
	log:
	  level: debug
*/
package config
