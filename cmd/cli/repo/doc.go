// Package repo hosts the repository-facing CLI subcommands. Each command
// resolves a gitrepo.Repository for the requested working directory and
// renders the structured result as YAML.
package repo
