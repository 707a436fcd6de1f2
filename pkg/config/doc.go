// Package config provides configuration management for relaydb.
//
// Settings are layered: built-in defaults, then the config file, then the
// environment. Each attribute remembers which layer set it.
//
// # Configuration File
//
// The file is $RELAYDB_CONFIG_PATH/relaydb.yml (default directory
// /etc/relaydb). A relaydb.toml in the same directory is used when no YAML
// file exists.
//
//	userdb_type: postgresql
//	userdb: postgres://turn:secret@db/coturn?sslmode=disable
//	hash_algorithm: sha256
//	max_bps: 64000
//
// # Environment Variables
//
//   - RELAYDB_USERDB_TYPE: sqlite, postgresql, mysql or redis
//   - RELAYDB_USERDB: database path or connection string
//   - RELAYDB_HASH_ALGORITHM: sha1, sha256, sha384 or sha512
//   - RELAYDB_MAX_BPS, RELAYDB_TOTAL_QUOTA, RELAYDB_USER_QUOTA: realm defaults
//   - RELAYDB_LOG_LEVEL: Logging verbosity
//   - RELAYDB_STATUS_ADDRESS: status API listen address
//
// A .env file in the working directory is read before the environment is
// parsed.
package config
