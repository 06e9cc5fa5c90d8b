package channel

// Channel is the synchronous turn-taking surface of one call: Prompt speaks
// to the caller, Collect asks a question and blocks for the reply. One
// question at a time; Collect returns trimmed text, empty when the caller
// gave none.
type Channel interface {
	Prompt(message string)
	Collect(promptText string) (string, error)
}
