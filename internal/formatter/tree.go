package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
)

// TreeFormatter renders the records as a directory tree.
type TreeFormatter struct{}

func (f *TreeFormatter) Format(records []models.FileRecord, cfg *config.Config) (string, error) {
	var sb strings.Builder

	if cfg.HeaderText != "" {
		sb.WriteString(cfg.HeaderText)
		sb.WriteString("\n\n")
	}
	if len(records) == 0 {
		sb.WriteString(NoFilesMessage + "\n")
	} else {
		sb.WriteString(generateDirectoryStructure(records, cfg))
	}
	writeFooter(&sb, cfg)
	return sb.String(), nil
}

type treeNode struct {
	name     string
	record   *models.FileRecord
	children map[string]*treeNode
}

func buildTree(records []models.FileRecord) *treeNode {
	root := &treeNode{name: ".", children: map[string]*treeNode{}}
	for i := range records {
		node := root
		parts := strings.Split(records[i].Path, "/")
		for j, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, children: map[string]*treeNode{}}
				node.children[part] = child
			}
			if j == len(parts)-1 {
				child.record = &records[i]
			}
			node = child
		}
	}
	return root
}

// sortedChildren lists directories before files, each alphabetically.
func (n *treeNode) sortedChildren() []*treeNode {
	children := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		di, dj := len(children[i].children) > 0, len(children[j].children) > 0
		if di != dj {
			return di
		}
		return children[i].name < children[j].name
	})
	return children
}

func generateDirectoryStructure(records []models.FileRecord, cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString(".\n")
	printTree(&sb, buildTree(records), "", cfg)
	return sb.String()
}

func printTree(sb *strings.Builder, node *treeNode, prefix string, cfg *config.Config) {
	children := node.sortedChildren()
	for i, child := range children {
		isLast := i == len(children)-1

		connector, childPrefix := "├── ", "│   "
		if isLast {
			connector, childPrefix = "└── ", "    "
		}

		sb.WriteString(prefix + connector + child.name)
		if len(child.children) > 0 {
			sb.WriteString("/")
		} else if child.record != nil {
			sb.WriteString(annotation(child.record, cfg))
		}
		sb.WriteString("\n")

		if len(child.children) > 0 {
			printTree(sb, child, prefix+childPrefix, cfg)
		}
	}
}

func annotation(r *models.FileRecord, cfg *config.Config) string {
	var parts []string
	if cfg.TreeShowSize {
		parts = append(parts, formatSize(r.Size))
	}
	if cfg.TreeShowModified {
		parts = append(parts, r.Modified.Format(time.DateTime))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, ", "))
}
