// Package fileutil writes output files so readers never observe a partial write.
package fileutil
