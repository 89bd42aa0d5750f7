package facts

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	procVersionPath = "/proc/version"
	osReleasePath   = "/etc/os-release"
)

// managerPriority is the fixed probe order; the first executable found wins.
var managerPriority = []PackageManager{
	ManagerApt,
	ManagerDnf,
	ManagerYum,
	ManagerPacman,
	ManagerZypper,
	ManagerApk,
	ManagerBrew,
}

// managerBinaries maps a manager to the executable probed for on PATH.
var managerBinaries = map[PackageManager]string{
	ManagerApt:    "apt-get",
	ManagerDnf:    "dnf",
	ManagerYum:    "yum",
	ManagerPacman: "pacman",
	ManagerZypper: "zypper",
	ManagerApk:    "apk",
	ManagerBrew:   "brew",
}

// Prober reads host signals once and produces Facts. All signal sources are
// overridable so tests can simulate any host.
type Prober struct {
	goos     string
	goarch   string
	readFile func(string) ([]byte, error)
	getenv   func(string) string
	lookPath func(string) bool
}

// ProbeOption overrides one of the Prober's signal sources.
type ProbeOption func(*Prober)

// WithGOOS overrides the operating system signal.
func WithGOOS(goos string) ProbeOption {
	return func(p *Prober) { p.goos = goos }
}

// WithGOARCH overrides the architecture signal.
func WithGOARCH(goarch string) ProbeOption {
	return func(p *Prober) { p.goarch = goarch }
}

// WithFileReader overrides how descriptor files are read.
func WithFileReader(fn func(string) ([]byte, error)) ProbeOption {
	return func(p *Prober) { p.readFile = fn }
}

// WithEnv overrides environment variable lookup.
func WithEnv(fn func(string) string) ProbeOption {
	return func(p *Prober) { p.getenv = fn }
}

// WithLookPath overrides executable probing.
func WithLookPath(fn func(string) bool) ProbeOption {
	return func(p *Prober) { p.lookPath = fn }
}

// NewProber creates a Prober reading real host signals.
func NewProber(opts ...ProbeOption) *Prober {
	p := &Prober{
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
		readFile: os.ReadFile,
		getenv:   os.Getenv,
		lookPath: func(name string) bool {
			_, err := exec.LookPath(name)
			return err == nil
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe computes the fact sheet. It never fails: every signal that cannot be
// resolved degrades to an explicit unknown/none sentinel.
func (p *Prober) Probe() Facts {
	sandbox := SandboxNative

	// A Microsoft kernel signature means WSL.
	if data, err := p.readFile(procVersionPath); err == nil {
		version := strings.ToLower(string(data))
		if strings.Contains(version, "microsoft") || strings.Contains(version, "wsl") {
			sandbox = SandboxWSL
		}
	}

	// A Windows compatibility shell short-circuits everything else: there is
	// no native package manager to find.
	if p.isCompatShell() {
		return New(OSWindowsCompat, ManagerNone, p.normalizeArch(), SandboxCompatLayer, DistroUnknown)
	}

	osFamily := OSUnknown
	if p.goos == "linux" {
		osFamily = OSLinux
	}

	return New(osFamily, p.detectManager(), p.normalizeArch(), sandbox, p.readDistro())
}

// isCompatShell detects Git Bash / MSYS / Cygwin environments.
func (p *Prober) isCompatShell() bool {
	if p.getenv("MSYSTEM") != "" {
		return true
	}
	ostype := strings.ToLower(p.getenv("OSTYPE"))
	return strings.HasPrefix(ostype, "msys") || strings.HasPrefix(ostype, "cygwin")
}

func (p *Prober) normalizeArch() Arch {
	switch p.goarch {
	case "amd64":
		return ArchX8664
	case "arm64":
		return ArchARM64
	default:
		return ArchOther
	}
}

// readDistro extracts the ID field from /etc/os-release, which is INI syntax.
func (p *Prober) readDistro() string {
	data, err := p.readFile(osReleasePath)
	if err != nil {
		return DistroUnknown
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return DistroUnknown
	}

	id := strings.Trim(cfg.Section("").Key("ID").String(), `"`)
	if id == "" {
		return DistroUnknown
	}
	return strings.ToLower(id)
}

func (p *Prober) detectManager() PackageManager {
	for _, mgr := range managerPriority {
		if p.lookPath(managerBinaries[mgr]) {
			return mgr
		}
	}
	return ManagerNone
}
