// Package storage provides the named-resource store the generator reads
// applicant profiles from and writes provider requests to.
//
// Two backends are available:
//   - Local: files under a root directory; writes are atomic (temp file + rename)
//   - Memory: an in-process map, used by tests
//
// A missing resource is reported as a *NotFoundError matching ErrNotFound:
//
//	data, err := store.Read(ctx, "applicant.json")
//	if errors.Is(err, storage.ErrNotFound) {
//	    // input missing
//	}
package storage
