// Package pkg holds the libraries behind ecoscout, a tool that finds
// contributors across the crypto-ecosystems taxonomy.
//
// # Overview
//
// The data flow of one run:
//
//	taxonomy repository (TOML declarations)
//	         ↓
//	    [taxonomy] package (lazy walk of eligible repository references)
//	         ↓
//	    [pipeline] package (select → aggregate → filter → enrich)
//	         ↓
//	    [candidate] records with contact data and recent activity
//	         ↓
//	    [io] JSON/YAML, [render] provenance graph
//
// Supporting packages:
//
//   - [integrations] and [integrations/github]: cached, throttled HTTP
//     clients with typed fetch outcomes
//   - [cache]: file, redis and null response caches
//   - [cursor]: resumption cursors between runs
//   - [httputil]: rate limiting helpers
//   - [observability]: pipeline, cache and HTTP hooks
//   - [errors]: coded errors shared by the CLI and the HTTP server
//
// [taxonomy]: github.com/matzehuels/ecoscout/pkg/taxonomy
// [pipeline]: github.com/matzehuels/ecoscout/pkg/pipeline
// [candidate]: github.com/matzehuels/ecoscout/pkg/candidate
// [io]: github.com/matzehuels/ecoscout/pkg/io
// [render]: github.com/matzehuels/ecoscout/pkg/render
// [integrations]: github.com/matzehuels/ecoscout/pkg/integrations
// [integrations/github]: github.com/matzehuels/ecoscout/pkg/integrations/github
// [cache]: github.com/matzehuels/ecoscout/pkg/cache
// [cursor]: github.com/matzehuels/ecoscout/pkg/cursor
// [httputil]: github.com/matzehuels/ecoscout/pkg/httputil
// [observability]: github.com/matzehuels/ecoscout/pkg/observability
// [errors]: github.com/matzehuels/ecoscout/pkg/errors
package pkg
