package fakellm

import "time"

// Config is the fake inference server configuration.
type Config struct {
	// Address to listen on (e.g., ":11434")
	ListenAddr string

	// Words is the number of words generated per response.
	Words int

	// Delay between streamed chunks.
	Delay time.Duration
}

// RefusalModel makes the server answer every prompt with a refusal.
const RefusalModel = "refuse"

const refusalText = "I am unable to answer that. I cannot help with that request."
