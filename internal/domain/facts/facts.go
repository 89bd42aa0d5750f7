// Package facts detects the host environment and exposes it as an immutable
// fact sheet shared by every provisioning step.
package facts

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OSFamily represents the coarse operating system family.
type OSFamily string

const (
	// OSLinux is native Linux (including WSL).
	OSLinux OSFamily = "linux"
	// OSWindowsCompat is a Windows compatibility shell (Git Bash, MSYS, Cygwin).
	OSWindowsCompat OSFamily = "windows-compat"
	// OSUnknown is an unrecognized host.
	OSUnknown OSFamily = "unknown"
)

// PackageManager identifies the system package manager steps should use.
type PackageManager string

// Supported package managers, in detection priority order. Both a legacy and
// a current manager can be present on the same family (dnf and yum); the
// priority order resolves the tie.
const (
	ManagerApt    PackageManager = "apt"
	ManagerDnf    PackageManager = "dnf"
	ManagerYum    PackageManager = "yum"
	ManagerPacman PackageManager = "pacman"
	ManagerZypper PackageManager = "zypper"
	ManagerApk    PackageManager = "apk"
	ManagerBrew   PackageManager = "brew"
	// ManagerNone means no supported manager was found; steps must treat
	// this as "cannot act automatically".
	ManagerNone PackageManager = "none"
)

// Sandbox classifies the virtualization or compatibility layer, if any.
type Sandbox string

const (
	// SandboxNative is bare metal or an ordinary VM.
	SandboxNative Sandbox = "native"
	// SandboxWSL is the Windows Subsystem for Linux.
	SandboxWSL Sandbox = "wsl"
	// SandboxCompatLayer is a Windows compatibility shell without a native
	// package manager.
	SandboxCompatLayer Sandbox = "compat-layer"
)

// Arch is the normalized CPU architecture.
type Arch string

const (
	// ArchX8664 is 64-bit x86.
	ArchX8664 Arch = "x86_64"
	// ArchARM64 is 64-bit ARM.
	ArchARM64 Arch = "aarch64"
	// ArchOther is anything else.
	ArchOther Arch = "other"
)

// DistroUnknown is the sentinel for a missing or unreadable distro descriptor.
const DistroUnknown = "unknown"

// Facts is the immutable snapshot of host characteristics. It is computed
// once at startup and shared read-only by every step.
type Facts struct {
	osFamily OSFamily
	manager  PackageManager
	arch     Arch
	sandbox  Sandbox
	distro   string
}

// New creates a Facts value. Intended for the Prober and for tests.
func New(osFamily OSFamily, manager PackageManager, arch Arch, sandbox Sandbox, distro string) Facts {
	if distro == "" {
		distro = DistroUnknown
	}
	return Facts{
		osFamily: osFamily,
		manager:  manager,
		arch:     arch,
		sandbox:  sandbox,
		distro:   distro,
	}
}

// OSFamily returns the operating system family.
func (f Facts) OSFamily() OSFamily { return f.osFamily }

// PackageManager returns the detected package manager.
func (f Facts) PackageManager() PackageManager { return f.manager }

// Arch returns the normalized architecture.
func (f Facts) Arch() Arch { return f.arch }

// Sandbox returns the sandbox classification.
func (f Facts) Sandbox() Sandbox { return f.sandbox }

// Distro returns the os-release ID, or DistroUnknown.
func (f Facts) Distro() string { return f.distro }

// HasPackageManager reports whether automatic package installation is possible.
func (f Facts) HasPackageManager() bool {
	return f.manager != ManagerNone && f.manager != ""
}

// IsWSL reports whether the host is a WSL distribution.
func (f Facts) IsWSL() bool { return f.sandbox == SandboxWSL }

// IsCompatLayer reports whether the host is a Windows compatibility shell.
func (f Facts) IsCompatLayer() bool { return f.sandbox == SandboxCompatLayer }

// DistroTitle returns the distro ID in title case for display.
func (f Facts) DistroTitle() string {
	if f.distro == DistroUnknown {
		return "Unknown"
	}
	return cases.Title(language.English).String(f.distro)
}

// String returns a compact human-readable description.
func (f Facts) String() string {
	parts := []string{string(f.osFamily), string(f.arch)}
	if f.distro != DistroUnknown {
		parts = append(parts, f.distro)
	}
	if f.sandbox != SandboxNative {
		parts = append(parts, string(f.sandbox))
	}
	parts = append(parts, string(f.manager))
	return strings.Join(parts, "/")
}
