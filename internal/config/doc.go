// Package config provides configuration structures and utilities for
// vikibot. It defines the wiki connection settings, the page names and
// category names the maintenance commands operate on, and the editing
// thresholds, loaded from a YAML file with environment overrides for
// credentials.
package config
