// Package catalog implements the media-backed lifecycle engine for catalog
// entities (categories and products).
//
// Records live in a Repository (document store) while binary assets live in
// a BlobStore, and either side can fail independently. The service runs each
// create/update/delete as an ordered sequence (reserve the record first,
// upload media, then patch the record) and issues compensating deletes when
// a later step fails. Blob-store outages degrade to a local fallback store
// instead of failing the operation.
//
// Construct a Service with New and the functional options:
//
//	svc, err := catalog.New(
//	    catalog.WithRepository(memory.New()),
//	    catalog.WithBlobStore(blob),
//	    catalog.WithUploader(uploader.New(blob, fallback)),
//	)
package catalog
