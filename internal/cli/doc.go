// Package cli implements the analysis, symnmf and kmeans command-line tools.
//
// All three share one flag set and one configuration source: an optional
// config file (YAML, TOML or JSON), SYMNMF_* environment variables and
// flags, in increasing order of precedence. Whatever goes wrong, a tool
// prints the single line "An Error Has Occurred" on stdout and exits 1; the
// typed error is logged at error level.
package cli
