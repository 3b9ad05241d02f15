// Package api contains the HTTP handlers for the note-generation service.
package api
