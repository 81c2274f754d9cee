// Package ingest moves detections between CSV files and the store.
//
// ReadCSV parses the DateTime,LicensePlate format and validates every
// timestamp up front so malformed rows never reach the database. Generate
// writes synthetic detections in the same format: each pair is a random
// plate followed shortly after by a misread of it.
package ingest
