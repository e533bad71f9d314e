package spec

// Spec mirrors a construct.yaml document.
type Spec struct {
	// Name of the installer.
	Name string `yaml:"name"`

	// Version of the installer.
	Version string `yaml:"version"`

	// Packages to install.
	// @type: list, string
	Specs []string `yaml:"specs,omitempty"`

	// Channels to fetch packages from.
	Channels []string `yaml:"channels,omitempty"`

	// Extra environments keyed by name.
	ExtraEnvs map[string]Env `yaml:"extra_envs,omitempty"`

	// Keep the package cache after installing.
	KeepPkgs *bool `yaml:"keep_pkgs,omitempty"`

	// Use the standalone binary to uninstall.
	// @required: conditionally
	UninstallWithCondaExe bool `yaml:"uninstall_with_conda_exe"`

	// XXX
	Hidden string `yaml:"hidden,omitempty"`

	Ignored string `yaml:"-"`

	internal string

	Timeout int `yaml:"timeout,omitempty"` // Seconds to wait.
}

// Env is an extra environment.
type Env struct {
	Specs []string `yaml:"specs"`
}
