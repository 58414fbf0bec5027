// Package text renders hierarchies as indented text trees.
//
// Output looks like:
//
//	animal [4]
//	├── bird [2]
//	│   └── owl [1]
//	└── Other animal [1]
//
// Each line shows the node name and its size. Tree drawing is done by
// [github.com/ddddddO/gtree].
package text
