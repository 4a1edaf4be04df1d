package model

// Package model defines the domain data shared by the orchestrator, the engines
// and the presentation layers: download requests, quality selectors, engine
// format specs, job states and video metadata. Types carry no behaviour beyond
// formatting and explicit state predicates.
