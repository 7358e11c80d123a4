// Package config loads the settings of the bionic command: server address,
// upload limit, batch concurrency, output directory, logging and converter
// tuning. Settings come from a YAML file found in the working directory or
// under the XDG config home, with defaults for everything left out.
package config
