package workbench

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"carrel/internal/workspace"
)

// TreeNode is one item in the grouped display tree. Children is non-nil
// only for folders.
type TreeNode struct {
	Item     workspace.Item
	Children []*TreeNode
}

// TreeView groups a workspace's flat item list into a parent→child tree
// for display. Siblings are ordered folders first, then files, each group
// collated case-insensitively by name. Items referencing a parent that
// does not exist in the workspace surface at the root rather than
// disappearing.
func (w *Workbench) TreeView(ctx context.Context, workspaceID string) ([]*TreeNode, error) {
	items, err := w.items.ListItems(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("tree view: %w", err)
	}

	nodes := make(map[string]*TreeNode, len(items))
	for _, item := range items {
		nodes[item.ItemID()] = &TreeNode{Item: item}
	}

	var roots []*TreeNode
	for _, item := range items {
		node := nodes[item.ItemID()]
		parent := item.Parent()
		if parent == nil {
			roots = append(roots, node)
			continue
		}
		if parentNode, ok := nodes[*parent]; ok {
			parentNode.Children = append(parentNode.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	collator := collate.New(language.Und, collate.IgnoreCase)
	sortSiblings(roots, collator)
	for _, node := range nodes {
		sortSiblings(node.Children, collator)
	}
	return roots, nil
}

func sortSiblings(nodes []*TreeNode, collator *collate.Collator) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Item, nodes[j].Item
		if a.ItemKind() != b.ItemKind() {
			return a.ItemKind() == workspace.KindFolder
		}
		return collator.CompareString(a.ItemName(), b.ItemName()) < 0
	})
}
