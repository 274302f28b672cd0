package chat

// Suggestion is an example prompt offered on an empty conversation.
type Suggestion struct {
	Title    string
	Subtitle string
	Prompt   string
}

var DefaultSuggestions = []Suggestion{
	{
		Title:    "What are the advantages",
		Subtitle: "of using Next.js?",
		Prompt:   "What are the advantages of using Next.js for web development?",
	},
	{
		Title:    "Write code to",
		Subtitle: "demonstrate dijkstra's algorithm",
		Prompt:   "Write code to demonstrate Dijkstra's algorithm with explanations",
	},
	{
		Title:    "Help me write an essay",
		Subtitle: "about silicon valley",
		Prompt:   "Help me write an essay about Silicon Valley's impact on technology",
	},
	{
		Title:    "What is the weather",
		Subtitle: "in San Francisco?",
		Prompt:   "What is the current weather in San Francisco?",
	},
}
