// Package pkg provides the libraries behind pipreq.
//
// # Overview
//
// pipreq turns pip requirements files into structured requirements and
// PEP 440 version strings into their canonical form. The pkg directory is
// organized into three areas:
//
//  1. Parsing - [requirement], [pep440] and [manifest]
//  2. Index data - [integrations], [integrations/pypi] and [catalog]
//  3. Infrastructure - [cache], [store], [observability], [errors] and [buildinfo]
//
// # Architecture
//
//	requirements.txt / pyproject.toml / poetry.lock
//	         ↓
//	    [manifest] (pick a reader by file name)
//	         ↓
//	    [requirement] (classify lines, follow -r includes)
//	         ↓
//	    []requirement.Requirement ── [includegraph] (include diagram)
//	         ↓
//	    [store] (saved results: file, memory or MongoDB)
//
// Release lists are fetched through [integrations/pypi], cached in a
// [cache.Cache] (file or Redis) and kept in a [catalog].
//
// # Quick Start
//
//	reqs := requirement.Parse("Django>=1.8,<2.0\nrequests[security]==2.8.1\n")
//	for _, r := range reqs {
//	    fmt.Println(r.Name, r.Constraints)
//	}
//
//	v, ok := pep440.Normalize("1.0-1")
//	fmt.Println(v, ok) // 1.0.post1 true
//
// Follow includes and record them:
//
//	rec := includegraph.NewRecorder()
//	p := requirement.NewParser(requirement.WithObserver(rec.Observe))
//	reqs, err := p.ParseFile("requirements/prod.txt")
//	dot := includegraph.ToDOT(rec.Graph())
//
// # Testing
//
//	go test ./...                          # All tests
//	PIPREQ_TEST_REDIS=localhost:6379 \
//	PIPREQ_TEST_MONGO=mongodb://localhost:27017 go test ./pkg/cache ./pkg/store
//
// [requirement]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/requirement
// [pep440]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/pep440
// [manifest]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/manifest
// [includegraph]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/includegraph
// [integrations]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/integrations
// [integrations/pypi]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/integrations/pypi
// [catalog]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/catalog
// [cache]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/cache
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/cache#Cache
// [store]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pipreq/pkg/buildinfo
package pkg
