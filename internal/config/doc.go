// Package config loads bot settings from a YAML file and SPORTSBOT_*
// environment variables.
package config
