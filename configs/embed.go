// Package configs provides embedded configuration templates for invsearch.
//
// Templates are embedded at build time so `invsearch config init` works
// from any install. See internal/config Load for how the files are merged:
//  1. Hardcoded defaults
//  2. User config (~/.config/invsearch/config.yaml)
//  3. Project config (.invsearch.yaml)
//  4. Environment variables (INVSEARCH_*)
package configs

import _ "embed"

// UserConfigTemplate is written by `invsearch config init` to the user
// config path. It holds settings that apply to every inventory file.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written by `invsearch config init --project`
// to .invsearch.yaml in the working directory.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
