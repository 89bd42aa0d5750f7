// Package pkgmgr turns manifest tool declarations into install steps that
// drive the host's system package manager.
package pkgmgr

import "github.com/ThiagoSantosOFC/starship/internal/domain/facts"

// command describes how to invoke one package manager non-interactively.
type command struct {
	// binary is the executable to run; apt is driven through apt-get.
	binary string
	// installArgs precede the package name.
	installArgs []string
	// needsSudo marks managers that mutate system state and so need root.
	needsSudo bool
}

// dispatch maps each supported manager to its non-interactive install
// invocation.
var dispatch = map[facts.PackageManager]command{
	facts.ManagerApt:    {binary: "apt-get", installArgs: []string{"install", "-y"}, needsSudo: true},
	facts.ManagerDnf:    {binary: "dnf", installArgs: []string{"install", "-y"}, needsSudo: true},
	facts.ManagerYum:    {binary: "yum", installArgs: []string{"install", "-y"}, needsSudo: true},
	facts.ManagerPacman: {binary: "pacman", installArgs: []string{"-S", "--noconfirm", "--needed"}, needsSudo: true},
	facts.ManagerZypper: {binary: "zypper", installArgs: []string{"--non-interactive", "install"}, needsSudo: true},
	facts.ManagerApk:    {binary: "apk", installArgs: []string{"add"}, needsSudo: true},
	facts.ManagerBrew:   {binary: "brew", installArgs: []string{"install"}},
}

// installCommand returns the full argv for installing pkg with the given
// manager. The second value is false when the manager has no dispatch entry.
func installCommand(manager facts.PackageManager, pkg string, sudo bool) (string, []string, bool) {
	cmd, ok := dispatch[manager]
	if !ok {
		return "", nil, false
	}

	args := append([]string{}, cmd.installArgs...)
	args = append(args, pkg)
	if sudo && cmd.needsSudo {
		return "sudo", append([]string{cmd.binary}, args...), true
	}
	return cmd.binary, args, true
}
