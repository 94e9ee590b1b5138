// Package cmd implements the dotenv subcommands.
//
// Every command loads the dotenv sources named on the command line, in
// order, into one store. Earlier sources take precedence over later ones
// because the first assignment of a name wins.
package cmd

var (
	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// FormatEnumIdentifier is the kong variable identifier containing the
	// comma-separated list of output formats.
	FormatEnumIdentifier = "formatEnum"
)
