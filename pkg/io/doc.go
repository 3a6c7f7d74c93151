// Package io reads and writes pipeline results as JSON or YAML.
//
// # Format
//
// The JSON form is the same document the HTTP surface returns, plus the
// request echo, the selected repositories and run statistics:
//
//	{
//	  "runId": "0b5e...",
//	  "request": {"repoLimit": 10, "offset": 0, ...},
//	  "candidatesWithInfo": [
//	    {
//	      "user": "alice",
//	      "contributions": 120,
//	      "repo": "ethereum/go-ethereum",
//	      "matchedTechnologies": ["go"],
//	      "contactInfo": {"email": "alice@example.com"},
//	      "recentContributions": 7
//	    }
//	  ],
//	  "processedRepos": 10
//	}
//
// YAML uses the same keys.
//
// # Usage
//
// [Export] and [Import] pick the format from the file extension (.yaml and
// .yml mean YAML, anything else JSON). [Write], [WriteJSON], [WriteYAML],
// [ReadJSON] and [ReadYAML] work on any reader or writer.
//
//	if err := io.Export(result, "candidates.yaml"); err != nil {
//	    log.Fatal(err)
//	}
package io
