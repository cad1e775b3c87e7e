package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	assetsDirName       = "Assets"
	descriptorExtension = ".sublime-project"
)

// ErrNoProject is returned when no directory with an Assets folder can be found.
var ErrNoProject = errors.New("no Unity project found")

// defaultExtensions is the allow-list used when neither config nor a preset provides one.
var defaultExtensions = []string{"cs", "js", "txt", "shader", "compute", "cginc", "xml"}

// profileFor returns the platform profile for a GOOS value.
// Everything that is not Windows is treated as the forward-slash platform.
func profileFor(goos string) PlatformProfile {
	switch goos {
	case "windows":
		return PlatformProfile{
			Name:         "windows",
			EditorPath:   `C:\Program Files\Sublime Text 3\sublime_text.exe`,
			ProcessName:  "sublime_text.exe",
			AutoOpen:     true,
			Separator:    SeparatorBackslash,
			RestoreFocus: true,
		}
	case "darwin":
		return PlatformProfile{
			Name:        "darwin",
			EditorPath:  "/Applications/Sublime Text.app/Contents/SharedSupport/bin/subl",
			ProcessName: "Sublime Text",
			AutoOpen:    true,
			Separator:   SeparatorSlash,
		}
	default:
		return PlatformProfile{
			Name:        goos,
			EditorPath:  "subl",
			ProcessName: "sublime_text",
			AutoOpen:    true,
			Separator:   SeparatorSlash,
		}
	}
}

// defaultEngineContents is where the engine install keeps its Contents/Data folder.
func defaultEngineContents(goos string) string {
	switch goos {
	case "windows":
		return `C:\Program Files\Unity\Editor\Data`
	case "darwin":
		return "/Applications/Unity/Unity.app/Contents"
	default:
		return "/opt/unity/Editor/Data"
	}
}

// nativize rewrites forward slashes for the backslash platform.
func (p PlatformProfile) nativize(path string) string {
	if p.Separator == SeparatorBackslash {
		return strings.ReplaceAll(path, "/", `\`)
	}
	return path
}

// ResolvePaths computes every location a sync needs from the project root.
// The script assemblies path keeps its ".." segment; the editor resolves it.
func ResolvePaths(projectRoot, engineContents string, p PlatformProfile) Paths {
	root := filepath.Clean(projectRoot)
	assets := filepath.Join(root, assetsDirName)
	name := filepath.Base(root)

	var managed, scripts string
	if p.Separator == SeparatorBackslash {
		managed = p.nativize(engineContents) + `\Managed\`
		scripts = p.nativize(assets) + `\..\Library\ScriptAssemblies\`
	} else {
		managed = engineContents + "/Frameworks/Managed/"
		scripts = assets + "/../Library/ScriptAssemblies/"
	}

	return Paths{
		ProjectRoot:      root,
		AssetRoot:        assets,
		ProjectName:      name,
		ManagedDir:       managed,
		ScriptAssemblies: scripts,
		DescriptorPath:   filepath.Join(root, name+descriptorExtension),
	}
}

// FindProjectRoot walks upward from start until it finds a directory holding Assets.
// When that fails and start sits inside a git worktree, the worktree is searched instead.
func FindProjectRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("error resolving path %s: %w", start, err)
	}

	for dir := abs; ; {
		if isProjectRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if root, ok := gitProjectRoot(abs); ok {
		return root, nil
	}
	return "", fmt.Errorf("%w at or above %s", ErrNoProject, abs)
}

// isProjectRoot reports whether dir directly contains an Assets directory.
func isProjectRoot(dir string) bool {
	return isDir(filepath.Join(dir, assetsDirName))
}

// isDir checks if a path is an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
