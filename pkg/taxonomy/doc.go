// Package taxonomy walks an ecosystem taxonomy hosted in a GitHub repository.
//
// The taxonomy is a directory of categories. Each category holds TOML
// declaration files, and each declaration lists repositories:
//
//	title = "Ethereum"
//
//	[[repo]]
//	url = "https://github.com/ethereum/go-ethereum"
//	tags = ["Protocol"]
//
//	[[repo]]
//	url = "https://github.com/old/gone"
//	missing = true
//
// A [Walker] lists categories eagerly, then yields eligible repository
// references lazily through an [iter.Seq]. A consumer that stops pulling
// stops the walk: no further file listing or download happens.
//
// Only the category listing is fatal. A file listing, download or parse
// failure is logged and the walk moves on.
package taxonomy
