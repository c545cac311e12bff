package interpreter

// Info is what the probe script reports about an interpreter
type Info struct {
	Major          uint8  `json:"major"`
	Minor          uint8  `json:"minor"`
	Patch          uint8  `json:"patch"`
	Version        string `json:"version"`
	Implementation string `json:"implementation"`
	SysExecutable  string `json:"sys_executable"`
	Prefix         string `json:"prefix"`
	BasePrefix     string `json:"base_prefix"`
	OS             string `json:"os"`
	Arch           string `json:"arch"`
}

// Interpreter is a queried Python installation
type Interpreter struct {
	executable string
	info       Info
}

// New builds an Interpreter for executable from probe output
func New(executable string, info Info) *Interpreter {
	return &Interpreter{
		executable: executable,
		info:       info,
	}
}

// Executable is the path the interpreter was found at
func (i *Interpreter) Executable() string { return i.executable }

// SysExecutable is sys.executable as reported by the interpreter itself
func (i *Interpreter) SysExecutable() string { return i.info.SysExecutable }

func (i *Interpreter) PythonMajor() uint8 { return i.info.Major }
func (i *Interpreter) PythonMinor() uint8 { return i.info.Minor }
func (i *Interpreter) PythonPatch() uint8 { return i.info.Patch }

// Version is the full version string, e.g. "3.12.1" or "3.13.0rc1"
func (i *Interpreter) Version() string { return i.info.Version }

func (i *Interpreter) Implementation() string { return i.info.Implementation }
func (i *Interpreter) Prefix() string         { return i.info.Prefix }
func (i *Interpreter) BasePrefix() string     { return i.info.BasePrefix }

// IsVirtualEnv reports whether the interpreter runs inside a venv
func (i *Interpreter) IsVirtualEnv() bool {
	return i.info.Prefix != i.info.BasePrefix
}

// Info returns a copy of the probe data
func (i *Interpreter) Info() Info { return i.info }
