// Package config loads and validates the setup manifest: the declarative
// list of tools, repositories, and files the engine will provision.
package config

import "fmt"

// Manifest is the root of the setup configuration.
type Manifest struct {
	Tools  []Tool       `yaml:"tools" toml:"tools"`
	Clones []Clone      `yaml:"clones" toml:"clones"`
	Shell  ShellConfig  `yaml:"shell" toml:"shell"`
	Prompt PromptConfig `yaml:"prompt" toml:"prompt"`
}

// Tool declares one developer tool to install through the detected package
// manager.
type Tool struct {
	// Name is the canonical tool name and the default package name.
	Name string `yaml:"name" toml:"name"`
	// Binary overrides the executable probed on PATH when it differs from
	// Name (e.g. ripgrep installs "rg").
	Binary string `yaml:"binary" toml:"binary"`
	// MinVersion, when set, requires at least this semantic version; an
	// older installed binary is reinstalled.
	MinVersion string `yaml:"min_version" toml:"min_version"`
	// Critical marks failures of this tool as blocking for dependents.
	Critical bool `yaml:"critical" toml:"critical"`
	// Packages maps a package-manager identifier to the package name to use
	// with it, overriding Name.
	Packages map[string]string `yaml:"packages" toml:"packages"`
	// Requires lists tool names that must be installed first.
	Requires []string `yaml:"requires" toml:"requires"`
}

// BinaryName returns the executable to probe for.
func (t Tool) BinaryName() string {
	if t.Binary != "" {
		return t.Binary
	}
	return t.Name
}

// PackageFor returns the package name to use with the given manager.
func (t Tool) PackageFor(manager string) string {
	if pkg, ok := t.Packages[manager]; ok {
		return pkg
	}
	return t.Name
}

// Clone declares a configuration repository to clone.
type Clone struct {
	URL  string `yaml:"url" toml:"url"`
	Dest string `yaml:"dest" toml:"dest"`
}

// ShellConfig declares the managed block written into shell profiles.
type ShellConfig struct {
	// Shells lists the profiles to manage: bash, zsh, fish.
	Shells []string `yaml:"shells" toml:"shells"`
	// Lines are written verbatim inside the managed block.
	Lines []string `yaml:"lines" toml:"lines"`
}

// PromptConfig declares the starship prompt installation and theme.
type PromptConfig struct {
	Enabled  bool `yaml:"enabled" toml:"enabled"`
	Critical bool `yaml:"critical" toml:"critical"`
	// Theme is written to starship.toml verbatim.
	Theme map[string]interface{} `yaml:"theme" toml:"theme"`
}

var validShells = map[string]bool{"bash": true, "zsh": true, "fish": true}

// Validate checks structural rules: unique non-empty tool names, complete
// clone declarations, known shells, and resolvable tool requirements.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Tools))
	for i, tool := range m.Tools {
		if tool.Name == "" {
			return NewValidationError(fmt.Sprintf("tools[%d]", i), "tool name is required")
		}
		if seen[tool.Name] {
			return NewValidationError("tools", fmt.Sprintf("duplicate tool %q", tool.Name))
		}
		seen[tool.Name] = true
	}

	for _, tool := range m.Tools {
		for _, req := range tool.Requires {
			if !seen[req] {
				return NewValidationError("tools",
					fmt.Sprintf("tool %q requires %q which is not declared", tool.Name, req))
			}
		}
	}

	for i, clone := range m.Clones {
		if clone.URL == "" {
			return NewValidationError(fmt.Sprintf("clones[%d]", i), "clone url is required")
		}
		if clone.Dest == "" {
			return NewValidationError(fmt.Sprintf("clones[%d]", i), "clone dest is required")
		}
	}

	for _, shell := range m.Shell.Shells {
		if !validShells[shell] {
			return NewValidationError("shell.shells",
				fmt.Sprintf("unsupported shell %q (expected bash, zsh, or fish)", shell))
		}
	}

	return nil
}
