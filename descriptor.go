package main

import (
	"strings"
)

const assembliesKey = "completesharp_assemblies"

// IncludePatterns maps each allow-listed extension to a "*.<ext>" glob, keeping order.
func IncludePatterns(allow []string) []string {
	patterns := make([]string, len(allow))
	for i, ext := range allow {
		patterns[i] = "*." + ext
	}
	return patterns
}

// AssemblyList orders the completion assemblies: engine runtime, engine editor,
// the two compiled project assemblies, then any libraries found in the assets.
func AssemblyList(paths Paths, libs []string) []string {
	assemblies := []string{
		paths.ManagedDir + "UnityEngine.dll",
		paths.ManagedDir + "UnityEditor.dll",
		paths.ScriptAssemblies + "Assembly-CSharp.dll",
		paths.ScriptAssemblies + "Assembly-CSharp-Editor.dll",
	}
	return append(assemblies, libs...)
}

// BuildDescriptor assembles the descriptor for a single asset root.
func BuildDescriptor(paths Paths, excluded, allow, libs []string) Descriptor {
	return Descriptor{
		Folders: []FolderEntry{{
			Path:            paths.AssetRoot,
			ExcludePatterns: excluded,
			IncludePatterns: IncludePatterns(allow),
		}},
		Assemblies: AssemblyList(paths, libs),
	}
}

// Render writes the descriptor as tab-indented JSON. Strings are emitted as-is:
// paths never carry quotes on the backslash platform, and backslashes must
// survive until Normalize rewrites them.
func Render(d Descriptor) string {
	var builder strings.Builder

	builder.WriteString("{\n")
	builder.WriteString("\t\"folders\":\n")
	builder.WriteString("\t[\n")
	for i, folder := range d.Folders {
		builder.WriteString("\t\t{\n")
		builder.WriteString("\t\t\t\"folder_exclude_patterns\":\n")
		writeList(&builder, "\t\t\t", folder.ExcludePatterns)
		builder.WriteString(",\n")
		builder.WriteString("\t\t\t\"file_include_patterns\":\n")
		writeList(&builder, "\t\t\t", folder.IncludePatterns)
		builder.WriteString(",\n")
		builder.WriteString("\t\t\t\"path\": \"" + folder.Path + "\"\n")
		builder.WriteString("\t\t}")
		if i != len(d.Folders)-1 {
			builder.WriteString(",")
		}
		builder.WriteString("\n")
	}
	builder.WriteString("\t],\n")
	builder.WriteString("\n")

	builder.WriteString("\t\"settings\":\n")
	builder.WriteString("\t{\n")
	builder.WriteString("\t\t\"" + assembliesKey + "\":\n")
	writeList(&builder, "\t\t", d.Assemblies)
	builder.WriteString("\n")
	builder.WriteString("\t}\n")
	builder.WriteString("}\n")

	return builder.String()
}

// writeList renders a bracketed string list at the given indent, without a
// trailing newline after the closing bracket.
func writeList(builder *strings.Builder, indent string, items []string) {
	builder.WriteString(indent + "[\n")
	for i, item := range items {
		builder.WriteString(indent + "\t\"" + item + "\"")
		if i != len(items)-1 {
			builder.WriteString(",")
		}
		builder.WriteString("\n")
	}
	builder.WriteString(indent + "]")
}
