// Package generation orchestrates the note-generation pipeline: validating
// raw consultation input, rendering it into a prompt, invoking a language
// model completion client, and assembling the final result. It abstracts
// the details of LLM API integration behind the CompletionClient interface,
// allowing the pipeline to run against any provider (or a test double)
// without coupling to a specific external service.
package generation
