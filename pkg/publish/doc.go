// Package publish uploads rendered documents to object storage.
package publish
