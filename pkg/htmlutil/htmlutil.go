// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package htmlutil has small helpers for inspecting golang.org/x/net/html node trees,
// used to verify rendered HTML output.
package htmlutil

import (
	"golang.org/x/net/html"
)

// Walk does a pre-order walk of the node tree, calling fn on every node.  A non-nil
// error aborts the walk.
func Walk(node *html.Node, fn func(*html.Node) error) error {
	if err := fn(node); err != nil {
		return err
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Attr returns the value of the named (un-namespaced) attribute, or ok=false if the
// node doesn't have it.
func Attr(node *html.Node, name string) (val string, ok bool) {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// Elements returns every element node in the tree with the given tag name.
func Elements(root *html.Node, tag string) []*html.Node {
	var ret []*html.Node
	_ = Walk(root, func(node *html.Node) error {
		if node.Type == html.ElementNode && node.Data == tag {
			ret = append(ret, node)
		}
		return nil
	})
	return ret
}
