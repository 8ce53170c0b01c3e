// Package domain contains the core types of the ingestion pipeline.
//
// The pipeline turns scraped NASA API documentation (RawDocument) into
// bounded, overlapping, classified chunks (Chunk) grouped per source page
// (ProcessedDocument). Domain types carry no behaviour beyond identity and
// validation; the processing packages and services operate on them.
package domain
