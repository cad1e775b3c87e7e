package main

import "time"

// SeparatorStyle tells how a platform spells absolute paths.
type SeparatorStyle int

const (
	SeparatorSlash     SeparatorStyle = iota // /Users/me/Game
	SeparatorBackslash                       // C:\Users\me\Game
)

// PlatformProfile holds everything that differs between the supported platforms.
// It is selected once per run; the rest of the pipeline only looks at Separator.
type PlatformProfile struct {
	Name         string
	EditorPath   string
	ProcessName  string // Name of the running editor process, used for the "already running" probe
	AutoOpen     bool
	Separator    SeparatorStyle
	RestoreFocus bool
}

// Paths are the absolute locations a sync works with.
type Paths struct {
	ProjectRoot      string
	AssetRoot        string
	ProjectName      string
	ManagedDir       string // Engine assemblies, with trailing separator
	ScriptAssemblies string // Compiled project assemblies, with trailing separator
	DescriptorPath   string
}

// FolderEntry is one top-level folder in the descriptor.
type FolderEntry struct {
	Path            string
	ExcludePatterns []string
	IncludePatterns []string
}

// Descriptor is the project file handed to the editor.
type Descriptor struct {
	Folders    []FolderEntry
	Assemblies []string
}

// Settings is the resolved configuration for one run.
type Settings struct {
	Profile        PlatformProfile
	EngineContents string
	Extensions     []string
	Gitignore      bool
	FocusDelay     time.Duration
}

// Result summarizes a finished sync.
type Result struct {
	DescriptorPath string
	Excluded       int
	Libraries      int
	Launched       bool
	Text           string
}
