package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/matzehuels/ecoscout/pkg/pipeline"
)

// ReadJSON decodes a result previously written by [WriteJSON].
//
// Every candidate must carry a "user" and a "repo"; anything else is
// optional so that bare HTTP responses can be imported too:
//
//	{
//	  "candidatesWithInfo": [
//	    {"user": "alice", "repo": "ethereum/go-ethereum", "contributions": 12}
//	  ],
//	  "processedRepos": 10
//	}
func ReadJSON(r io.Reader) (*pipeline.Result, error) {
	var res pipeline.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ReadYAML decodes a result previously written by [WriteYAML].
func ReadYAML(r io.Reader) (*pipeline.Result, error) {
	var res pipeline.Result
	if err := yaml.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Import reads a result file, choosing the format from its extension.
func Import(path string) (*pipeline.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if FormatFromPath(path) == FormatYAML {
		return ReadYAML(f)
	}
	return ReadJSON(f)
}

func validate(res *pipeline.Result) error {
	for i, c := range res.Candidates {
		if c.Login == "" {
			return fmt.Errorf("candidate %d: missing user", i)
		}
		if c.SourceRepository == "" {
			return fmt.Errorf("candidate %d (%s): missing repo", i, c.Login)
		}
	}
	return nil
}
