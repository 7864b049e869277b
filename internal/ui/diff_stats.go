package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/fatih/color"
)

// PrintDiffStats shows the aggregate change statistics of the working tree.
func PrintDiffStats(result models.DiffAnalysisResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Printf("%s ", StatsEmoji)
	fmt.Printf("%d files changed | ", result.FilesChanged)
	_, _ = green.Printf("+%d ", result.LinesAdded)
	_, _ = red.Printf("-%d", result.LinesDeleted)
	if result.BranchName != "" {
		fmt.Printf(" | %s", Dim.Sprint(result.BranchName))
	}
	fmt.Println()
}

// ShowFilesTree shows the changed files in tree format.
func ShowFilesTree(files []string, headerMessage string) {
	if len(files) == 0 {
		return
	}

	fmt.Printf("\n%s\n", headerMessage)
	tree := buildFileTree(files)
	printTree(tree, "", true)
}

// treeNode represents a node in the file tree
type treeNode struct {
	name     string
	isFile   bool
	children map[string]*treeNode
}

func buildFileTree(files []string) *treeNode {
	root := &treeNode{children: make(map[string]*treeNode)}

	for _, file := range files {
		parts := strings.Split(file, "/")
		current := root

		for i, part := range parts {
			isFile := i == len(parts)-1

			if current.children[part] == nil {
				current.children[part] = &treeNode{
					name:     part,
					isFile:   isFile,
					children: make(map[string]*treeNode),
				}
			}
			current = current.children[part]
		}
	}
	return root
}

func printTree(node *treeNode, prefix string, isLast bool) {
	if node.name != "" {
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		name := node.name
		if !node.isFile {
			name = Info.Sprint(name + "/")
		}

		fmt.Printf("%s%s%s\n", prefix, connector, name)
	}

	childPrefix := prefix
	if node.name != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}

	// directories first, then files, each group alphabetical
	sort.Slice(keys, func(i, j int) bool {
		a, b := node.children[keys[i]], node.children[keys[j]]
		if a.isFile != b.isFile {
			return !a.isFile
		}
		return keys[i] < keys[j]
	})

	for i, key := range keys {
		printTree(node.children[key], childPrefix, i == len(keys)-1)
	}
}
