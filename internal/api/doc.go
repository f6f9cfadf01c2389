// Package api contains the HTTP handlers for the vocabulary trainer:
// answer evaluation, review scheduling overrides, mastery updates, and
// question generation with audio. Handlers translate between the JSON
// surface and the core packages, and map internal errors to safe HTTP
// responses.
package api
