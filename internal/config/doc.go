// Package config loads the catalogue tool's TOML configuration.
//
// Lookup order: the path passed on the command line, then
// ~/.config/catalogue/config.toml, then ./catalogue.toml. A missing file is
// not an error; defaults apply. CATALOGUE_FILE, CATALOGUE_LOG_LEVEL and
// CATALOGUE_STRICT override the file.
package config
