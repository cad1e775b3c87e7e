package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Invocation is the state of a single sync. The pending fields are written once
// and cleared once; nothing survives the call that created the invocation.
type Invocation struct {
	Profile    PlatformProfile
	Paths      Paths
	Extensions []string
	Gitignore  bool

	pendingDescriptor string
	pendingFocus      uintptr
}

// newInvocation resolves paths for the project at root.
func newInvocation(root string, s Settings) *Invocation {
	return &Invocation{
		Profile:    s.Profile,
		Paths:      ResolvePaths(root, s.EngineContents, s.Profile),
		Extensions: s.Extensions,
		Gitignore:  s.Gitignore,
	}
}

// Build scans the asset root and returns the normalized descriptor text.
func (inv *Invocation) Build() (string, Result, error) {
	excluded, err := ScanExcludedFolders(inv.Paths.AssetRoot, inv.Extensions, ScanOptions{Gitignore: inv.Gitignore})
	if err != nil {
		return "", Result{}, err
	}
	libs, err := CollectLibraries(inv.Paths.AssetRoot)
	if err != nil {
		return "", Result{}, err
	}

	d := BuildDescriptor(inv.nativePaths(), inv.nativeList(excluded), inv.Extensions, inv.nativeList(libs))
	text := Normalize(Render(d), inv.Profile.Separator)

	return text, Result{
		DescriptorPath: inv.Paths.DescriptorPath,
		Excluded:       len(excluded),
		Libraries:      len(libs),
		Text:           text,
	}, nil
}

// nativePaths spells the asset root in the profile's separator style, matching
// how the engine reports it.
func (inv *Invocation) nativePaths() Paths {
	p := inv.Paths
	p.AssetRoot = inv.Profile.nativize(p.AssetRoot)
	return p
}

func (inv *Invocation) nativeList(paths []string) []string {
	out := make([]string, len(paths))
	for i, path := range paths {
		out[i] = inv.Profile.nativize(path)
	}
	return out
}

// Write builds the descriptor and stores it next to the project.
func (inv *Invocation) Write() (Result, error) {
	text, res, err := inv.Build()
	if err != nil {
		return Result{}, err
	}
	if err := WriteDescriptor(inv.Paths.DescriptorPath, text); err != nil {
		return Result{}, err
	}
	inv.pendingDescriptor = inv.Paths.DescriptorPath
	log.Info().Str("path", res.DescriptorPath).Int("excluded", res.Excluded).Int("libraries", res.Libraries).
		Msg("descriptor written")
	return res, nil
}

// Sync runs the whole pipeline for the project at root: scan, render, write,
// then hand the file to the editor.
func Sync(ctx context.Context, root string, s Settings, l *Launcher) (Result, error) {
	inv := newInvocation(root, s)
	if !isDir(inv.Paths.AssetRoot) {
		return Result{}, fmt.Errorf("%w: %s has no %s folder", ErrNoProject, root, assetsDirName)
	}

	res, err := inv.Write()
	if err != nil {
		return Result{}, err
	}

	launched, err := l.Launch(ctx, inv)
	if err != nil {
		return res, err
	}
	res.Launched = launched
	return res, nil
}
