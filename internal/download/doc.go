package download

// Package download implements the job orchestrator: it validates user requests,
// resolves quality selections into engine format specs, runs one info-fetch or
// download job at a time on a background goroutine, and reports busy state,
// status text and the final outcome through a Reporter.
