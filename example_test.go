package rowan

import (
	"fmt"
	"strings"
)

func ExampleTree_IterDepthSimple() {
	t := New[string]()
	root := t.AddRoot("root")
	a := t.Add(root, "a")
	t.Add(root, "b")
	c := t.Add(root, "c")
	t.AddAll(a, "a1", "a2")
	t.AddAll(c, "c1", "c2")
	for p := range t.IterDepthSimple() {
		fmt.Printf("%d:%s\n", p.Depth, p.Value())
	}
	// Output:
	// 2:a1
	// 2:a2
	// 1:a
	// 1:b
	// 2:c1
	// 2:c2
	// 1:c
	// 0:root
}

func ExampleTree_IterDepthMut() {
	t := New[string]()
	root := t.AddRoot("root")
	a := t.Add(root, "a")
	t.Add(root, "b")
	c := t.Add(root, "c")
	t.AddAll(a, "a1", "a2")
	t.AddAll(c, "c1", "c2")

	// Uppercase every inner node whose value, or any direct child's
	// value, starts with "c".
	for p := range t.IterDepthMut() {
		promote := strings.HasPrefix(p.Value(), "c")
		for v := range p.IterChildrenValues() {
			if strings.HasPrefix(strings.ToLower(v), "c") {
				promote = true
			}
		}
		if promote && p.NumChildren() > 0 {
			p.Set(strings.ToUpper(p.Value()))
		}
	}
	fmt.Println(t)
	// Output:
	// ROOT(a(a1,a2),b,C(c1,c2))
}

func ExampleFromSpecs() {
	t := FromSpecs(0, []NodeSpec[string]{
		{Value: "root", Children: []int{1, 2}},
		{Value: "a", Children: []int{3, 4}},
		{Value: "b"},
		{Value: "a.1"},
		{Value: "a.2"},
	})
	for p := range t.IterDepthSimple() {
		fmt.Printf("%d:%s\n", p.Depth, p.Value())
	}
	// Output:
	// 2:a.1
	// 2:a.2
	// 1:a
	// 1:b
	// 0:root
}
