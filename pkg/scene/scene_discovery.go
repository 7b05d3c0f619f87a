package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	builtInGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name to pass to Load
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // Display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin", "json" or "gltf"
	FilePath    string `json:"filePath"`    // Path to the scene file (file types only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents every scene that can be rendered
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListSceneFiles scans dir for scene files. A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filePath := filepath.Join(dir, entry.Name())
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".json":
			scenes = append(scenes, ParseSceneMetadata(filePath))
		case ".gltf", ".glb":
			scenes = append(scenes, fileSceneInfo(filePath, "gltf"))
		}
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name and description of a JSON scene file.
// Unreadable files keep the values derived from the file name.
func ParseSceneMetadata(filePath string) SceneInfo {
	info := fileSceneInfo(filePath, "json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return info
	}

	if file.Name != "" {
		info.Name = file.Name
		info.DisplayName = file.Name
	}
	info.Description = file.Description
	return info
}

func fileSceneInfo(filePath, sceneType string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))
	return SceneInfo{
		ID:          filePath,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       fileGroup,
		Type:        sceneType,
		FilePath:    filePath,
	}
}

// ListAllScenes returns the built-in scenes followed by the files found in dir
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	builtInScenes := []SceneInfo{
		{
			ID:          "reference",
			Name:        "Reference",
			DisplayName: "Reference",
			Description: "Small sphere resting on a large ground sphere",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		{
			ID:          "empty",
			Name:        "Empty",
			DisplayName: "Empty",
			Description: "No geometry, sky gradient only",
			Group:       builtInGroup,
			Type:        "builtin",
		},
	}
	response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: builtInScenes})

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	if len(fileScenes) > 0 {
		response.Groups = append(response.Groups, SceneGroup{Name: fileGroup, Scenes: fileScenes})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
